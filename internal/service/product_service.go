package service

import (
	"errors"
	"fmt"
	"math"

	"go-gudang-tekstil/internal/apperr"
	"go-gudang-tekstil/internal/model"
	"go-gudang-tekstil/internal/repository"
	"go-gudang-tekstil/internal/ws"
	"go-gudang-tekstil/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateProductInput mirrors the product creation body.
type CreateProductInput struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Category    string          `json:"category" validate:"required,oneof='Celana Jeans' Celana Baju Jaket"`
	Sizes       []string        `json:"sizes" validate:"required,min=1,unique,dive,oneof=XS S M L XL XXL XXXL"`
	Color       string          `json:"color" validate:"required,max=50"`
	Material    string          `json:"material" validate:"required,max=100"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description" validate:"max=1000"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateProductInput carries a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Category    *string          `json:"category" validate:"omitempty,oneof='Celana Jeans' Celana Baju Jaket"`
	Sizes       []string         `json:"sizes" validate:"omitempty,min=1,unique,dive,oneof=XS S M L XL XXL XXXL"`
	Color       *string          `json:"color" validate:"omitempty,max=50"`
	Material    *string          `json:"material" validate:"omitempty,max=100"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	ImageURL    *string          `json:"imageUrl" validate:"omitempty,url"`
}

// Pagination metadata computed against the filtered count.
type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

type ProductPage struct {
	Products   []model.Product `json:"products"`
	Pagination Pagination      `json:"pagination"`
}

type ProductService interface {
	List(filters repository.ProductFilters) (*ProductPage, error)
	GetByID(id uuid.UUID) (*model.Product, error)
	Create(input *CreateProductInput, actorID *uuid.UUID) (*model.Product, error)
	Update(id uuid.UUID, input *UpdateProductInput, actorID *uuid.UUID) (*model.Product, error)
	Delete(id uuid.UUID) error
	Categories() ([]repository.CategoryCount, error)
	Sizes() []string
}

// EventPublisher pushes catalog events to connected clients.
type EventPublisher interface {
	Publish(event ws.Event)
}

type productService struct {
	repo              repository.ProductRepository
	hub               EventPublisher
	defaultLimit      int
	maxLimit          int
	lowStockThreshold int
}

func NewProductService(repo repository.ProductRepository, hub EventPublisher, defaultLimit, maxLimit, lowStockThreshold int) ProductService {
	return &productService{
		repo:              repo,
		hub:               hub,
		defaultLimit:      defaultLimit,
		maxLimit:          maxLimit,
		lowStockThreshold: lowStockThreshold,
	}
}

// List returns one page of the catalog with pagination metadata. Soft-deleted
// products never appear, whatever the filters say.
func (s *productService) List(filters repository.ProductFilters) (*ProductPage, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = s.defaultLimit
	}
	if filters.Limit > s.maxLimit {
		filters.Limit = s.maxLimit
	}
	if filters.SortBy == "" {
		filters.SortBy = "createdAt"
	}
	if filters.Order == "" {
		filters.Order = "desc"
	}

	products, total, err := s.repo.FindPage(filters)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(filters.Limit)))
	if products == nil {
		products = []model.Product{}
	}

	return &ProductPage{
		Products: products,
		Pagination: Pagination{
			CurrentPage:     filters.Page,
			TotalPages:      totalPages,
			TotalItems:      total,
			ItemsPerPage:    filters.Limit,
			HasNextPage:     filters.Page < totalPages,
			HasPreviousPage: filters.Page > 1,
		},
	}, nil
}

func (s *productService) GetByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("Product not found")
	}
	return product, nil
}

func (s *productService) Create(input *CreateProductInput, actorID *uuid.UUID) (*model.Product, error) {
	if errs := validateProductInput(input); errs != nil {
		return nil, apperr.Validation("Validation failed", errs)
	}

	// Fast-path duplicate check; the partial unique index on Postgres is the
	// authoritative guard under concurrent writers.
	if existing, _ := s.repo.FindActiveByName(input.Name, nil); existing != nil {
		return nil, apperr.Conflict("Product with this name already exists")
	}

	product := &model.Product{
		Name:        input.Name,
		Category:    input.Category,
		Sizes:       model.SizeList(input.Sizes),
		Color:       input.Color,
		Material:    input.Material,
		Stock:       input.Stock,
		Price:       input.Price.Round(2),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
	}

	if err := s.repo.Create(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Product with this name already exists")
		}
		return nil, err
	}

	s.notify("product_created", product)
	return product, nil
}

func (s *productService) Update(id uuid.UUID, input *UpdateProductInput, actorID *uuid.UUID) (*model.Product, error) {
	if errs := validator.ValidateStruct(input); errs != nil {
		return nil, apperr.Validation("Validation failed", errs)
	}
	if input.Price != nil && !input.Price.IsPositive() {
		return nil, apperr.Validation("Validation failed", []validator.FieldError{
			{Field: "price", Message: "must be a positive number"},
		})
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	// A changed name must stay unique among the other non-deleted products;
	// the product's own row is excluded so an unchanged name never conflicts.
	if input.Name != nil {
		if existing, _ := s.repo.FindActiveByName(*input.Name, &id); existing != nil {
			return nil, apperr.Conflict("Product with this name already exists")
		}
		product.Name = *input.Name
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Sizes != nil {
		product.Sizes = model.SizeList(input.Sizes)
	}
	if input.Color != nil {
		product.Color = *input.Color
	}
	if input.Material != nil {
		product.Material = *input.Material
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Price != nil {
		product.Price = input.Price.Round(2)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	product.UpdatedBy = actorID

	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Product with this name already exists")
		}
		return nil, err
	}

	s.notify("product_updated", product)
	return product, nil
}

func (s *productService) Delete(id uuid.UUID) error {
	product, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.SoftDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product not found")
		}
		return err
	}

	s.notify("product_deleted", product)
	return nil
}

func (s *productService) Categories() ([]repository.CategoryCount, error) {
	return s.repo.CategoryCounts()
}

func (s *productService) Sizes() []string {
	return model.ValidSizes
}

// notify broadcasts a catalog event plus a low-stock alert when warranted.
func (s *productService) notify(eventType string, product *model.Product) {
	if s.hub == nil {
		return
	}
	go func() {
		s.hub.Publish(ws.Event{
			Type:    eventType,
			Message: fmt.Sprintf("Product '%s' %s", product.Name, eventVerb(eventType)),
			Data:    product,
		})
		if eventType != "product_deleted" && product.Stock < s.lowStockThreshold {
			s.hub.Publish(ws.Event{
				Type:    "low_stock_alert",
				Message: fmt.Sprintf("Product '%s' is low on stock (%d left)", product.Name, product.Stock),
				Data:    product,
			})
		}
	}()
}

func eventVerb(eventType string) string {
	switch eventType {
	case "product_created":
		return "created"
	case "product_updated":
		return "updated"
	default:
		return "deleted"
	}
}

// validateProductInput combines tag validation with the positive-price rule,
// which the tag language cannot express for a decimal.
func validateProductInput(input *CreateProductInput) []validator.FieldError {
	errs := validator.ValidateStruct(input)
	if !input.Price.IsPositive() {
		errs = append(errs, validator.FieldError{Field: "price", Message: "must be a positive number"})
	}
	return errs
}
