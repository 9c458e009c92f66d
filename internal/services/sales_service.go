// internal/services/sales_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/repository"
	"github.com/craftconnect/backend/internal/store"
	"github.com/craftconnect/backend/internal/utils"
)

// SalesService records sales the seller enters by hand. There is no payment
// flow; a sale is a bookkeeping entry against one of the seller's products.
type SalesService struct {
	sales    *repository.SaleRepository
	products *repository.ProductRepository
}

type RecordSaleRequest struct {
	ProductID    string    `json:"product_id" validate:"required"`
	Amount       float64   `json:"amount" validate:"required,gt=0"`
	Currency     string    `json:"currency" validate:"required,len=3,alpha"`
	BuyerName    string    `json:"buyer_name,omitempty" validate:"omitempty,max=100"`
	BuyerContact string    `json:"buyer_contact,omitempty" validate:"omitempty,max=255"`
	Notes        string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
	SoldAt       time.Time `json:"sold_at,omitempty"`
}

func NewSalesService(sales *repository.SaleRepository, products *repository.ProductRepository) *SalesService {
	return &SalesService{
		sales:    sales,
		products: products,
	}
}

func (s *SalesService) RecordSale(ctx context.Context, ownerID string, req *RecordSaleRequest) (*models.Sale, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	product, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	soldAt := req.SoldAt
	if soldAt.IsZero() {
		soldAt = time.Now().UTC()
	}

	sale := &models.Sale{
		SaleID:       uuid.New().String(),
		OwnerID:      ownerID,
		ProductID:    req.ProductID,
		Amount:       req.Amount,
		Currency:     strings.ToUpper(req.Currency),
		BuyerName:    req.BuyerName,
		BuyerContact: req.BuyerContact,
		Notes:        req.Notes,
		Status:       models.SaleStatusCompleted,
		SoldAt:       soldAt,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}
	return sale, nil
}

func (s *SalesService) ListSales(ctx context.Context, ownerID string) ([]models.Sale, error) {
	sales, err := s.sales.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	sort.Slice(sales, func(i, j int) bool {
		if !sales[i].SoldAt.Equal(sales[j].SoldAt) {
			return sales[i].SoldAt.After(sales[j].SoldAt)
		}
		return sales[i].SaleID < sales[j].SaleID
	})
	return sales, nil
}

func (s *SalesService) DeleteSale(ctx context.Context, ownerID, saleID string) error {
	sale, err := s.sales.Get(ctx, saleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load sale: %w", err)
	}
	if sale.OwnerID != ownerID {
		return ErrForbidden
	}
	return s.sales.Delete(ctx, saleID)
}

// Summary totals the seller's sales, broken out by currency and product.
func (s *SalesService) Summary(ctx context.Context, ownerID string) (*models.SalesSummary, error) {
	sales, err := s.sales.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	summary := &models.SalesSummary{
		ByCurrency: make(map[string]float64),
		ByProduct:  make(map[string]int64),
	}
	for _, sale := range sales {
		summary.TotalSales++
		summary.TotalRevenue += sale.Amount
		summary.ByCurrency[sale.Currency] += sale.Amount
		summary.ByProduct[sale.ProductID]++
	}
	return summary, nil
}
