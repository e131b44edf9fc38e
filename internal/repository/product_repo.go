package repository

import (
	"fmt"
	"strings"

	"go-gudang-tekstil/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilters are the listing parameters after defaults were applied.
// All filters combine with AND; soft-deleted rows are excluded by gorm.
type ProductFilters struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Size     string
	Color    string
	Material string
	SortBy   string
	Order    string
}

// CategoryStat is the per-category slice of the dashboard breakdown.
type CategoryStat struct {
	Category      string `json:"category"`
	TotalProducts int64  `json:"totalProducts"`
	TotalStock    int64  `json:"totalStock"`
}

// DashboardStats holds the aggregate numbers over non-deleted products.
type DashboardStats struct {
	TotalProducts    int64          `json:"totalProducts"`
	TotalStock       int64          `json:"totalStock"`
	LowStockProducts int64          `json:"lowStockProducts"`
	CategoryStats    []CategoryStat `json:"categoryStats"`
}

// CategoryCount backs the GET /categories listing.
type CategoryCount struct {
	Name         string `json:"name"`
	ProductCount int64  `json:"productCount"`
}

var sortColumns = map[string]string{
	"name":      "name",
	"stock":     "stock",
	"price":     "price",
	"createdAt": "created_at",
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindPage(filters ProductFilters) ([]model.Product, int64, error)
	FindActiveByName(name string, excludeID *uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	SoftDelete(id uuid.UUID) error
	Stats(lowStockThreshold int) (*DashboardStats, error)
	FindLowStock(threshold, limit int) ([]model.Product, error)
	CategoryCounts() ([]CategoryCount, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// filtered applies all listing conditions onto a fresh product query.
func (r *productRepo) filtered(f ProductFilters) *gorm.DB {
	q := r.db.Model(&model.Product{})

	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Color != "" {
		q = q.Where("LOWER(color) LIKE ?", "%"+strings.ToLower(f.Color)+"%")
	}
	if f.Material != "" {
		q = q.Where("LOWER(material) LIKE ?", "%"+strings.ToLower(f.Material)+"%")
	}
	if f.Size != "" {
		// Set membership against the JSON sizes column. Postgres gets the
		// native JSONB containment operator; other dialects (sqlite in tests)
		// match the serialized form.
		if r.db.Dialector.Name() == "postgres" {
			q = q.Where("sizes @> ?::jsonb", fmt.Sprintf(`[%q]`, f.Size))
		} else {
			q = q.Where("sizes LIKE ?", fmt.Sprintf(`%%%q%%`, f.Size))
		}
	}
	return q
}

// FindPage returns one page of matching products plus the filtered total.
func (r *productRepo) FindPage(f ProductFilters) ([]model.Product, int64, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		direction = "ASC"
	}

	var products []model.Product
	err := r.filtered(f).
		Order(column + " " + direction).
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// FindActiveByName finds a non-deleted product with the exact name,
// optionally excluding one id (for update self-exclusion).
func (r *productRepo) FindActiveByName(name string, excludeID *uuid.UUID) (*model.Product, error) {
	q := r.db.Where("name = ?", name)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var product model.Product
	if err := q.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// SoftDelete sets deleted_at; the row stays in the table.
func (r *productRepo) SoftDelete(id uuid.UUID) error {
	result := r.db.Delete(&model.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) Stats(lowStockThreshold int) (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&stats.TotalStock).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("stock < ?", lowStockThreshold).
		Count(&stats.LowStockProducts).Error; err != nil {
		return nil, err
	}

	rows, err := r.db.Model(&model.Product{}).
		Select("category, COUNT(*) as total_products, COALESCE(SUM(stock), 0) as total_stock").
		Group("category").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.CategoryStats = []CategoryStat{}
	for rows.Next() {
		var cs CategoryStat
		if err := rows.Scan(&cs.Category, &cs.TotalProducts, &cs.TotalStock); err != nil {
			return nil, err
		}
		stats.CategoryStats = append(stats.CategoryStats, cs)
	}
	return &stats, rows.Err()
}

// FindLowStock returns non-deleted products below the threshold, lowest first.
func (r *productRepo) FindLowStock(threshold, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("stock < ?", threshold).
		Order("stock ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) CategoryCounts() ([]CategoryCount, error) {
	rows, err := r.db.Model(&model.Product{}).
		Select("category, COUNT(*) as product_count").
		Group("category").
		Order("category ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []CategoryCount{}
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Name, &cc.ProductCount); err != nil {
			return nil, err
		}
		counts = append(counts, cc)
	}
	return counts, rows.Err()
}
