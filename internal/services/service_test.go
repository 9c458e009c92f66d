// internal/services/service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/repository"
	"github.com/craftconnect/backend/internal/store"
)

func newTestStore(t *testing.T) store.DocumentStore {
	t.Helper()

	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps the shared-cache database free of cross-connection
	// table locks under concurrent tests.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	s, err := store.NewSQLStore(db)
	require.NoError(t, err)

	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func newProductService(t *testing.T) (*ProductService, store.DocumentStore) {
	t.Helper()
	s := newTestStore(t)
	svc := NewProductService(
		repository.NewProductRepository(s),
		repository.NewLikeRepository(s),
	)
	return svc, s
}

func createProduct(t *testing.T, svc *ProductService, ownerID string, status models.ProductStatus, title string) *models.Product {
	t.Helper()
	product, err := svc.CreateProduct(context.Background(), ownerID, &CreateProductRequest{
		Title:       title,
		Description: "Wheel thrown and glazed by hand",
		Category:    models.CategoryPottery,
		Tags:        []string{"handmade", "ceramic"},
		Status:      status,
	})
	require.NoError(t, err)
	return product
}
