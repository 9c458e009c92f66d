// internal/services/dashboard_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/repository"
)

func TestGetDashboard(t *testing.T) {
	s := newTestStore(t)
	productRepo := repository.NewProductRepository(s)
	products := NewProductService(productRepo, repository.NewLikeRepository(s))
	sales := NewSalesService(repository.NewSaleRepository(s), productRepo)
	svc := NewDashboardService(products, sales)
	ctx := context.Background()

	vase := createProduct(t, products, "owner", models.ProductStatusPublic, "Ceramic Vase")
	createProduct(t, products, "owner", models.ProductStatusDraft, "Draft Vase")
	createProduct(t, products, "owner", models.ProductStatusArchived, "Retired Vase")

	// One view and one like on the vase, one recorded sale.
	_, err := products.GetProduct(ctx, vase.ProductID, "visitor")
	require.NoError(t, err)
	_, _, err = products.ToggleLike(ctx, vase.ProductID, "visitor")
	require.NoError(t, err)
	_, err = sales.RecordSale(ctx, "owner", &RecordSaleRequest{
		ProductID: vase.ProductID,
		Amount:    45,
		Currency:  "USD",
	})
	require.NoError(t, err)

	dashboard, err := svc.GetDashboard(ctx, "owner")
	require.NoError(t, err)

	assert.Equal(t, int64(3), dashboard.Stats.TotalProducts)
	assert.Equal(t, int64(1), dashboard.Stats.PublicProducts)
	assert.Equal(t, int64(1), dashboard.Stats.TotalViews)
	assert.Equal(t, int64(1), dashboard.Stats.TotalLikes)
	assert.Equal(t, int64(1), dashboard.DraftCount)
	assert.Equal(t, int64(1), dashboard.ArchivedCount)
	assert.Equal(t, int64(1), dashboard.Sales.TotalSales)
	require.Len(t, dashboard.RecentSales, 1)
	require.NotEmpty(t, dashboard.TopProducts)
	assert.Equal(t, vase.ProductID, dashboard.TopProducts[0].ProductID)
}

func TestGetDashboardEmpty(t *testing.T) {
	s := newTestStore(t)
	productRepo := repository.NewProductRepository(s)
	products := NewProductService(productRepo, repository.NewLikeRepository(s))
	sales := NewSalesService(repository.NewSaleRepository(s), productRepo)
	svc := NewDashboardService(products, sales)

	dashboard, err := svc.GetDashboard(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, dashboard.Stats.TotalProducts)
	assert.Zero(t, dashboard.Sales.TotalSales)
	assert.Empty(t, dashboard.RecentSales)
}
