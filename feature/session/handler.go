package session

import (
	"errors"

	"loot-splitter/core/logger"
	"loot-splitter/core/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const claimsKey = "session_claims"

// CreateRequest is the body of POST /sessions.
type CreateRequest struct {
	Name     string `json:"name"`
	PartyLog string `json:"party_log"`
}

// JoinRequest is the body of POST /sessions/:id/join.
type JoinRequest struct {
	Name string `json:"name"`
}

// PartyLogRequest is the body of PUT /sessions/:id/party-log.
type PartyLogRequest struct {
	PartyLog string `json:"party_log"`
}

// Handler handles HTTP requests for live sessions.
type Handler struct {
	service   *Service
	validator *validate.Validator
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, validator *validate.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sessions")
	group.Post("/", h.HandleCreate)
	group.Post("/:id/join", h.HandleJoin)

	group.Get("/:id", h.requireMember, h.HandleGet)
	group.Put("/:id/members/me", h.requireMember, h.HandleUpdateMember)
	group.Put("/:id/party-log", h.requireMember, h.HandleUpdatePartyLog)
	group.Post("/:id/calculate", h.requireMember, h.HandleCalculate)
}

func (h *Handler) requireMember(c *fiber.Ctx) error {
	claims, err := h.service.Authenticate(bearerToken(c.Get(fiber.HeaderAuthorization)))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	c.Locals(claimsKey, claims)
	return c.Next()
}

func claimsFrom(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals(claimsKey).(*Claims)
	return claims
}

// HandleCreate opens a session.
// @Summary Create Session
// @Description Opens a live session. The caller becomes its leader and receives a member token.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Leader name and optional party log"
// @Success 201 {object} Joined "Session and leader token"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 503 {object} map[string]string "Session capacity reached"
// @Router /sessions [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req CreateRequest
	if err := h.validator.Bind(validate.SessionCreate, c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	joined, err := h.service.Create(c.Context(), req.Name, req.PartyLog)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(joined)
}

// HandleJoin adds a member to a session.
// @Summary Join Session
// @Description Adds a member to a live session and returns their member token.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body JoinRequest true "Member name"
// @Success 201 {object} Joined "Session and member token"
// @Failure 404 {object} map[string]string "Unknown session"
// @Router /sessions/{id}/join [post]
func (h *Handler) HandleJoin(c *fiber.Ctx) error {
	var req JoinRequest
	if err := h.validator.Bind(validate.SessionJoin, c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	joined, err := h.service.Join(c.Context(), c.Params("id"), req.Name)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(joined)
}

// HandleGet returns the session.
// @Summary Get Session
// @Description Returns the session snapshot, including the last published result.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param Authorization header string true "Bearer member token"
// @Success 200 {object} Session "Session"
// @Failure 401 {object} map[string]string "Invalid token"
// @Failure 403 {object} map[string]string "Not a member"
// @Router /sessions/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	sess, err := h.service.Get(c.Context(), claimsFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess)
}

// HandleUpdateMember updates the caller's name or session log.
// @Summary Update Own Member Entry
// @Description Changes the caller's display name or session log. Rate limited per member.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param Authorization header string true "Bearer member token"
// @Param request body MemberUpdate true "Fields to change"
// @Success 200 {object} Session "Session"
// @Failure 429 {object} map[string]string "Too many updates"
// @Router /sessions/{id}/members/me [put]
func (h *Handler) HandleUpdateMember(c *fiber.Ctx) error {
	var req MemberUpdate
	if err := h.validator.Bind(validate.MemberUpdate, c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess, err := h.service.UpdateMember(c.Context(), claimsFrom(c), c.Params("id"), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess)
}

// HandleUpdatePartyLog replaces the party summary log.
// @Summary Update Party Log
// @Description Replaces the party summary log. Leader only.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param Authorization header string true "Bearer member token"
// @Param request body PartyLogRequest true "Party log"
// @Success 200 {object} Session "Session"
// @Failure 403 {object} map[string]string "Not the leader"
// @Router /sessions/{id}/party-log [put]
func (h *Handler) HandleUpdatePartyLog(c *fiber.Ctx) error {
	var req PartyLogRequest
	if err := h.validator.Bind(validate.PartyLogUpdate, c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess, err := h.service.UpdatePartyLog(c.Context(), claimsFrom(c), c.Params("id"), req.PartyLog)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess)
}

// HandleCalculate settles the session and publishes the result.
// @Summary Calculate Session
// @Description Settles the session with the current logs and pushes the result to every member. Leader only.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param Authorization header string true "Bearer member token"
// @Success 200 {object} Session "Session with result"
// @Failure 403 {object} map[string]string "Not the leader"
// @Router /sessions/{id}/calculate [post]
func (h *Handler) HandleCalculate(c *fiber.Ctx) error {
	sess, err := h.service.Calculate(c.Context(), claimsFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, ErrRateLimited):
		status = fiber.StatusTooManyRequests
	case errors.Is(err, ErrInvalidName):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, ErrCapacity):
		status = fiber.StatusServiceUnavailable
	default:
		logger.WithRayID(h.service.logger, c).Error("Session request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
