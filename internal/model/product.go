package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Valid product categories for the textile warehouse
const (
	CategoryCelana      = "Celana"
	CategoryCelanaJeans = "Celana Jeans"
	CategoryBaju        = "Baju"
	CategoryJaket       = "Jaket"
)

var ValidCategories = []string{CategoryCelana, CategoryCelanaJeans, CategoryBaju, CategoryJaket}

// Valid product sizes
var ValidSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}

// SizeList is a set of sizes stored as a JSON array column.
type SizeList []string

func (s SizeList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SizeList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return errors.New("unsupported type for SizeList")
	}
}

// Contains reports whether the list includes the given size.
func (s SizeList) Contains(size string) bool {
	for _, v := range s {
		if v == size {
			return true
		}
	}
	return false
}

// Product represents a textile catalog entry. Rows are soft-deleted: a set
// deleted_at hides the row from every normal read.
type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Category    string          `gorm:"type:varchar(50);not null" json:"category" validate:"required,oneof='Celana Jeans' Celana Baju Jaket"`
	Sizes       SizeList        `gorm:"type:jsonb;not null" json:"sizes" validate:"required,min=1,unique,dive,oneof=XS S M L XL XXL XXXL"`
	Color       string          `gorm:"type:varchar(50);not null" json:"color" validate:"required,max=50"`
	Material    string          `gorm:"type:varchar(100);not null" json:"material" validate:"required,max=100"`
	Stock       int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description,omitempty" validate:"max=1000"`
	ImageURL    string          `gorm:"type:varchar(500)" json:"imageUrl,omitempty" validate:"omitempty,url"`

	// Audit user references; nil for seed/system actions
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"createdBy,omitempty"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updatedBy,omitempty"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}
