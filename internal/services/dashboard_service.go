// internal/services/dashboard_service.go
package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/craftconnect/backend/internal/models"
)

// DashboardService assembles the seller's home screen from the catalog and
// sales services.
type DashboardService struct {
	products *ProductService
	sales    *SalesService
}

type Dashboard struct {
	Stats         models.UserStats    `json:"stats"`
	Sales         models.SalesSummary `json:"sales"`
	RecentSales   []models.Sale       `json:"recent_sales"`
	TopProducts   []models.Product    `json:"top_products"`
	DraftCount    int64               `json:"draft_count"`
	ArchivedCount int64               `json:"archived_count"`
}

func NewDashboardService(products *ProductService, sales *SalesService) *DashboardService {
	return &DashboardService{
		products: products,
		sales:    sales,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context, ownerID string) (*Dashboard, error) {
	stats, err := s.products.GetUserStats(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog stats: %w", err)
	}

	summary, err := s.sales.Summary(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales summary: %w", err)
	}

	recent, err := s.sales.ListSales(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	owned, err := s.products.products.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	var drafts, archived int64
	for _, p := range owned {
		switch p.Status {
		case models.ProductStatusDraft:
			drafts++
		case models.ProductStatusArchived:
			archived++
		}
	}

	top := topByEngagement(owned, 5)

	return &Dashboard{
		Stats:         *stats,
		Sales:         *summary,
		RecentSales:   recent,
		TopProducts:   top,
		DraftCount:    drafts,
		ArchivedCount: archived,
	}, nil
}

// topByEngagement ranks products by views plus likes, highest first.
func topByEngagement(products []models.Product, limit int) []models.Product {
	ranked := make([]models.Product, len(products))
	copy(ranked, products)

	sort.Slice(ranked, func(i, j int) bool {
		ei := ranked[i].ViewsCount + ranked[i].LikesCount
		ej := ranked[j].ViewsCount + ranked[j].LikesCount
		if ei != ej {
			return ei > ej
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
