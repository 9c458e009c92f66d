// internal/repository/sales.go
package repository

import (
	"context"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/store"
)

type SaleRepository struct {
	store store.DocumentStore
}

func NewSaleRepository(s store.DocumentStore) *SaleRepository {
	return &SaleRepository{store: s}
}

func (r *SaleRepository) Save(ctx context.Context, sale *models.Sale) error {
	doc, err := toDoc(sale)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.CollectionSales, sale.SaleID, doc)
}

func (r *SaleRepository) Get(ctx context.Context, saleID string) (*models.Sale, error) {
	doc, err := r.store.Get(ctx, store.CollectionSales, saleID)
	if err != nil {
		return nil, err
	}
	var sale models.Sale
	if err := fromDoc(doc, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) Delete(ctx context.Context, saleID string) error {
	return r.store.Delete(ctx, store.CollectionSales, saleID)
}

func (r *SaleRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Sale, error) {
	docs, err := r.store.Query(ctx, store.CollectionSales, store.Eq("user_id", ownerID))
	if err != nil {
		return nil, err
	}
	sales := make([]models.Sale, 0, len(docs))
	for _, doc := range docs {
		var s models.Sale
		if err := fromDoc(doc, &s); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, nil
}
