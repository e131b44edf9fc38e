package handler

import (
	"go-gudang-tekstil/internal/apperr"
	"go-gudang-tekstil/internal/model"
	"go-gudang-tekstil/internal/repository"
	"go-gudang-tekstil/internal/service"
	"go-gudang-tekstil/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.BadRequest("Invalid product ID")
	}
	return id, nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

// queryFilters parses and validates the listing query parameters.
func queryFilters(c *fiber.Ctx) (repository.ProductFilters, error) {
	filters := repository.ProductFilters{
		Page:     c.QueryInt("page", 0),
		Limit:    c.QueryInt("limit", 0),
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Size:     c.Query("size"),
		Color:    c.Query("color"),
		Material: c.Query("material"),
		SortBy:   c.Query("sortBy"),
		Order:    c.Query("order"),
	}

	var errs []validator.FieldError
	if filters.Category != "" && !contains(model.ValidCategories, filters.Category) {
		errs = append(errs, validator.FieldError{Field: "category", Message: "must be one of: Celana, Celana Jeans, Baju, Jaket"})
	}
	if filters.Size != "" && !contains(model.ValidSizes, filters.Size) {
		errs = append(errs, validator.FieldError{Field: "size", Message: "must be one of: XS, S, M, L, XL, XXL, XXXL"})
	}
	if filters.SortBy != "" && !contains([]string{"name", "stock", "price", "createdAt"}, filters.SortBy) {
		errs = append(errs, validator.FieldError{Field: "sortBy", Message: "must be one of: name, stock, price, createdAt"})
	}
	if filters.Order != "" && filters.Order != "asc" && filters.Order != "desc" {
		errs = append(errs, validator.FieldError{Field: "order", Message: "must be one of: asc, desc"})
	}
	if errs != nil {
		return filters, apperr.Validation("Validation failed", errs)
	}
	return filters, nil
}

// List returns a filtered, sorted, paginated catalog page.
// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filters, err := queryFilters(c)
	if err != nil {
		return err
	}

	page, err := h.service.List(filters)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, "", page)
}

// Get returns a single product.
// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetByID(id)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, "", product)
}

// Create adds a product to the catalog.
// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var input service.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return apperr.BadRequest("Invalid JSON body")
	}

	product, err := h.service.Create(&input, actorID(c))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, "Product created successfully", product)
}

// Update applies a partial update.
// PUT/PATCH /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input service.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return apperr.BadRequest("Invalid JSON body")
	}

	product, err := h.service.Update(id, &input, actorID(c))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, "Product updated successfully", product)
}

// Delete soft-deletes a product.
// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(id); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, "Product deleted successfully", fiber.Map{})
}
