// internal/repository/products.go
package repository

import (
	"context"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/store"
)

// ProductRepository maps product entities onto the document store.
type ProductRepository struct {
	store store.DocumentStore
}

func NewProductRepository(s store.DocumentStore) *ProductRepository {
	return &ProductRepository{store: s}
}

func (r *ProductRepository) Save(ctx context.Context, product *models.Product) error {
	doc, err := toDoc(product)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.CollectionProducts, product.ProductID, doc)
}

func (r *ProductRepository) Get(ctx context.Context, productID string) (*models.Product, error) {
	doc, err := r.store.Get(ctx, store.CollectionProducts, productID)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := fromDoc(doc, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateFields merges only the given fields into the stored document, leaving
// everything else untouched.
func (r *ProductRepository) UpdateFields(ctx context.Context, productID string, fields map[string]interface{}) error {
	return r.store.Update(ctx, store.CollectionProducts, productID, fields)
}

func (r *ProductRepository) Delete(ctx context.Context, productID string) error {
	return r.store.Delete(ctx, store.CollectionProducts, productID)
}

// Find returns products matching the conjunction of conditions, unordered.
func (r *ProductRepository) Find(ctx context.Context, conds ...store.Condition) ([]models.Product, error) {
	docs, err := r.store.Query(ctx, store.CollectionProducts, conds...)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		var p models.Product
		if err := fromDoc(doc, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *ProductRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Product, error) {
	return r.Find(ctx, store.Eq("user_id", ownerID))
}

func (r *ProductRepository) FindPublic(ctx context.Context) ([]models.Product, error) {
	return r.Find(ctx, store.Eq("status", string(models.ProductStatusPublic)))
}
