// internal/services/sales_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/repository"
)

func newSalesServices(t *testing.T) (*SalesService, *ProductService) {
	t.Helper()
	s := newTestStore(t)
	productRepo := repository.NewProductRepository(s)
	products := NewProductService(productRepo, repository.NewLikeRepository(s))
	sales := NewSalesService(repository.NewSaleRepository(s), productRepo)
	return sales, products
}

func TestRecordSale(t *testing.T) {
	sales, products := newSalesServices(t)
	ctx := context.Background()
	product := createProduct(t, products, "owner", models.ProductStatusPublic, "Ceramic Vase")

	sale, err := sales.RecordSale(ctx, "owner", &RecordSaleRequest{
		ProductID: product.ProductID,
		Amount:    45.50,
		Currency:  "usd",
		BuyerName: "Walk-in customer",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, sale.SaleID)
	assert.Equal(t, "USD", sale.Currency)
	assert.Equal(t, 45.50, sale.Amount)
	assert.Equal(t, models.SaleStatusCompleted, sale.Status)
	assert.False(t, sale.SoldAt.IsZero())
}

func TestRecordSaleValidation(t *testing.T) {
	sales, products := newSalesServices(t)
	ctx := context.Background()
	product := createProduct(t, products, "owner", models.ProductStatusPublic, "Ceramic Vase")

	_, err := sales.RecordSale(ctx, "owner", &RecordSaleRequest{
		ProductID: product.ProductID,
		Amount:    0,
		Currency:  "USD",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = sales.RecordSale(ctx, "owner", &RecordSaleRequest{
		ProductID: product.ProductID,
		Amount:    10,
		Currency:  "dollars",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecordSaleOwnership(t *testing.T) {
	sales, products := newSalesServices(t)
	ctx := context.Background()
	product := createProduct(t, products, "owner", models.ProductStatusPublic, "Ceramic Vase")

	_, err := sales.RecordSale(ctx, "intruder", &RecordSaleRequest{
		ProductID: product.ProductID,
		Amount:    45,
		Currency:  "USD",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = sales.RecordSale(ctx, "owner", &RecordSaleRequest{
		ProductID: "does-not-exist",
		Amount:    45,
		Currency:  "USD",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSalesSummary(t *testing.T) {
	sales, products := newSalesServices(t)
	ctx := context.Background()
	vase := createProduct(t, products, "owner", models.ProductStatusPublic, "Ceramic Vase")
	bowl := createProduct(t, products, "owner", models.ProductStatusPublic, "Walnut Bowl")

	for _, req := range []*RecordSaleRequest{
		{ProductID: vase.ProductID, Amount: 45, Currency: "USD"},
		{ProductID: vase.ProductID, Amount: 50, Currency: "USD"},
		{ProductID: bowl.ProductID, Amount: 30, Currency: "EUR"},
	} {
		_, err := sales.RecordSale(ctx, "owner", req)
		require.NoError(t, err)
	}

	summary, err := sales.Summary(ctx, "owner")
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.TotalSales)
	assert.Equal(t, 125.0, summary.TotalRevenue)
	assert.Equal(t, 95.0, summary.ByCurrency["USD"])
	assert.Equal(t, 30.0, summary.ByCurrency["EUR"])
	assert.Equal(t, int64(2), summary.ByProduct[vase.ProductID])
}

func TestDeleteSale(t *testing.T) {
	sales, products := newSalesServices(t)
	ctx := context.Background()
	product := createProduct(t, products, "owner", models.ProductStatusPublic, "Ceramic Vase")

	sale, err := sales.RecordSale(ctx, "owner", &RecordSaleRequest{
		ProductID: product.ProductID,
		Amount:    45,
		Currency:  "USD",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, sales.DeleteSale(ctx, "intruder", sale.SaleID), ErrForbidden)
	assert.NoError(t, sales.DeleteSale(ctx, "owner", sale.SaleID))
	assert.ErrorIs(t, sales.DeleteSale(ctx, "owner", sale.SaleID), ErrNotFound)
}
