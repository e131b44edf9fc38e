package handler

import (
	"strconv"

	"go-gudang-tekstil/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.ProductService
}

func NewCategoryHandler(s service.ProductService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

type categoryItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProductCount int64  `json:"productCount"`
}

// GetCategories lists categories with product counts over non-deleted rows.
// GET /api/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	counts, err := h.service.Categories()
	if err != nil {
		return err
	}

	// The ids are row numbers over the alphabetical listing, not stable
	// identifiers; they shift as categories appear and disappear.
	items := make([]categoryItem, 0, len(counts))
	for i, count := range counts {
		items = append(items, categoryItem{
			ID:           strconv.Itoa(i + 1),
			Name:         count.Name,
			ProductCount: count.ProductCount,
		})
	}
	return success(c, fiber.StatusOK, "", items)
}

// GetSizes returns the static size enum.
// GET /api/sizes
func (h *CategoryHandler) GetSizes(c *fiber.Ctx) error {
	return success(c, fiber.StatusOK, "", h.service.Sizes())
}
