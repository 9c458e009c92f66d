// internal/repository/likes.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/craftconnect/backend/internal/store"
)

// LikeRepository records which users like which products. A like is a bare
// document keyed by product and user; existence is the whole signal.
type LikeRepository struct {
	store store.DocumentStore
}

func NewLikeRepository(s store.DocumentStore) *LikeRepository {
	return &LikeRepository{store: s}
}

func likeID(productID, userID string) string {
	return productID + ":" + userID
}

func (r *LikeRepository) Exists(ctx context.Context, productID, userID string) (bool, error) {
	_, err := r.store.Get(ctx, store.CollectionLikes, likeID(productID, userID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *LikeRepository) Add(ctx context.Context, productID, userID string) error {
	return r.store.Set(ctx, store.CollectionLikes, likeID(productID, userID), store.Document{
		"product_id": productID,
		"user_id":    userID,
		"liked_at":   time.Now().UTC(),
	})
}

func (r *LikeRepository) Remove(ctx context.Context, productID, userID string) error {
	err := r.store.Delete(ctx, store.CollectionLikes, likeID(productID, userID))
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

func (r *LikeRepository) CountByProduct(ctx context.Context, productID string) (int64, error) {
	docs, err := r.store.Query(ctx, store.CollectionLikes, store.Eq("product_id", productID))
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}
