package share

import (
	"errors"

	"loot-splitter/core/logger"
	"loot-splitter/core/settlement"
	"loot-splitter/core/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DecodeRequest carries an encoded share string.
type DecodeRequest struct {
	State string `json:"state"`
}

// SettleResponse is a decoded state with its settlement.
type SettleResponse struct {
	State  State              `json:"state"`
	Result *settlement.Result `json:"result"`
}

// Handler handles HTTP requests for shared states.
type Handler struct {
	service   *Service
	validator *validate.Validator
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, validator *validate.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// RegisterRoutes registers the share routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/share")
	group.Post("/", h.HandleCreate)
	group.Post("/decode", h.HandleDecode)
	group.Post("/settle", h.HandleSettle)
	group.Get("/:code", h.HandleResolve)
}

// HandleCreate stores a state under a short code.
// @Summary Create Share Link
// @Description Compresses the party log and player logs into a share string and stores it under a short code.
// @Tags share
// @Accept json
// @Produce json
// @Param request body State true "State to share"
// @Success 201 {object} Link "Short code and share string"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /share [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var state State
	if err := h.validator.Bind(validate.SettleRequest, c.Body(), &state); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	link, err := h.service.Create(c.Context(), state)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Share link creation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(link)
}

// HandleResolve resolves a short code.
// @Summary Resolve Share Link
// @Description Returns the share string and decoded state stored under a short code.
// @Tags share
// @Produce json
// @Param code path string true "Short code"
// @Success 200 {object} map[string]interface{} "Link and state"
// @Failure 404 {object} map[string]string "Unknown code"
// @Router /share/{code} [get]
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	link, state, err := h.service.Resolve(c.Context(), c.Params("code"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"code":    link.Code,
		"encoded": link.State,
		"state":   state,
	})
}

// HandleDecode decodes a share string.
// @Summary Decode Share String
// @Description Decodes a share string into the party log and player logs.
// @Tags share
// @Accept json
// @Produce json
// @Param request body DecodeRequest true "Share string"
// @Success 200 {object} State "Decoded state"
// @Failure 400 {object} map[string]string "Invalid share string"
// @Router /share/decode [post]
func (h *Handler) HandleDecode(c *fiber.Ctx) error {
	var req DecodeRequest
	if err := h.validator.Bind(validate.ShareDecode, c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	state, err := h.service.Decode(req.State)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(state)
}

// HandleSettle decodes a share string and settles it.
// @Summary Settle Share String
// @Description Decodes a share string and returns the state with its settlement plan.
// @Tags share
// @Accept json
// @Produce json
// @Param request body DecodeRequest true "Share string"
// @Success 200 {object} SettleResponse "State and settlement"
// @Failure 400 {object} map[string]string "Invalid share string"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /share/settle [post]
func (h *Handler) HandleSettle(c *fiber.Ctx) error {
	var req DecodeRequest
	if err := h.validator.Bind(validate.ShareDecode, c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	state, result, err := h.service.Settle(c.Context(), req.State)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(SettleResponse{State: state, Result: result})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidState):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("Share request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
