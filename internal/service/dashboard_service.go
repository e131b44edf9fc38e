package service

import (
	"go-gudang-tekstil/internal/model"
	"go-gudang-tekstil/internal/repository"
)

// LowStockProduct is a catalog row annotated with the threshold it violated.
type LowStockProduct struct {
	model.Product
	Threshold int `json:"threshold"`
}

type DashboardService interface {
	GetDashboardStats() (*repository.DashboardStats, error)
	GetLowStockProducts(threshold, limit int) ([]LowStockProduct, error)
}

type dashboardService struct {
	repo             repository.ProductRepository
	defaultThreshold int
	defaultLimit     int
}

func NewDashboardService(repo repository.ProductRepository, defaultThreshold, defaultLimit int) DashboardService {
	return &dashboardService{
		repo:             repo,
		defaultThreshold: defaultThreshold,
		defaultLimit:     defaultLimit,
	}
}

func (s *dashboardService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.repo.Stats(s.defaultThreshold)
}

// GetLowStockProducts lists products with stock strictly below the threshold,
// lowest stock first. Negative arguments fall back to the defaults; zero
// passes through, so a zero threshold matches nothing.
func (s *dashboardService) GetLowStockProducts(threshold, limit int) ([]LowStockProduct, error) {
	if threshold < 0 {
		threshold = s.defaultThreshold
	}
	if limit < 0 {
		limit = s.defaultLimit
	}

	products, err := s.repo.FindLowStock(threshold, limit)
	if err != nil {
		return nil, err
	}

	result := make([]LowStockProduct, 0, len(products))
	for _, p := range products {
		result = append(result, LowStockProduct{Product: p, Threshold: threshold})
	}
	return result, nil
}
