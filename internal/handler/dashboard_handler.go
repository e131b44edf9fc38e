package handler

import (
	"go-gudang-tekstil/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns overview statistics for the dashboard.
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, "", stats)
}

// GetLowStock lists products below the replenishment threshold.
// GET /api/dashboard/low-stock?threshold&limit
func (h *DashboardHandler) GetLowStock(c *fiber.Ctx) error {
	// Absent parameters fall back to the configured defaults, but an explicit
	// zero is honored: ?threshold=0 matches nothing and yields an empty list.
	threshold := c.QueryInt("threshold", -1)
	limit := c.QueryInt("limit", -1)

	products, err := h.service.GetLowStockProducts(threshold, limit)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, "", products)
}
