package settlement

import (
	"errors"
	"net/url"

	"loot-splitter/core/logger"
	"loot-splitter/core/settlement"
	"loot-splitter/core/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SettleRequest is the body of POST /settle.
type SettleRequest struct {
	PartyLog string                   `json:"party_log"`
	Players  []settlement.PlayerInput `json:"players"`
}

// Handler handles HTTP requests for settlements and prices.
type Handler struct {
	service   *Service
	validator *validate.Validator
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, validator *validate.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// RegisterRoutes registers the settlement routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/settle", h.HandleSettle)

	group := app.Group("/prices")
	group.Get("/", h.HandleListPrices)
	group.Get("/:name", h.HandleGetPrice)
}

// HandleSettle computes a settlement plan.
// @Summary Settle Party Loot
// @Description Parses the party summary and each player's session log and returns the item and gold transfers that equalize the party.
// @Tags settlement
// @Accept json
// @Produce json
// @Param request body SettleRequest true "Party log and player session logs"
// @Success 200 {object} settlement.Result "Settlement plan"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /settle [post]
func (h *Handler) HandleSettle(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SettleRequest
	if err := h.validator.Bind(validate.SettleRequest, c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.Settle(c.Context(), req.PartyLog, req.Players)
	if err != nil {
		l.Error("Settlement failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// HandleListPrices lists the reference price table.
// @Summary List Prices
// @Description Returns every item of the reference price table sorted by name.
// @Tags prices
// @Produce json
// @Success 200 {object} map[string]interface{} "Price table"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /prices [get]
func (h *Handler) HandleListPrices(c *fiber.Ctx) error {
	items, err := h.service.Prices(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Price table load failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"source": h.service.SourceName(),
		"count":  len(items),
		"items":  items,
	})
}

// HandleGetPrice returns a single reference item.
// @Summary Get Price
// @Description Looks up an item by name, case-insensitively.
// @Tags prices
// @Produce json
// @Param name path string true "Item name (e.g. 'Demon Horn')"
// @Success 200 {object} pricing.Item "Item"
// @Failure 404 {object} map[string]string "Unknown item"
// @Router /prices/{name} [get]
func (h *Handler) HandleGetPrice(c *fiber.Ctx) error {
	name, err := decodeParam(c, "name")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item, ok, err := h.service.Price(c.Context(), name)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Price table load failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown item"})
	}

	return c.JSON(item)
}

var errEmptyParam = errors.New("empty path parameter")

func decodeParam(c *fiber.Ctx, key string) (string, error) {
	raw := c.Params(key)
	if raw == "" {
		return "", errEmptyParam
	}
	return url.PathUnescape(raw)
}
