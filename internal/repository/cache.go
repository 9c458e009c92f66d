// internal/repository/cache.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/store"
)

// AnalysisCacheRepository memoizes image analyses by content hash so the same
// photo never hits the captioning endpoint twice.
type AnalysisCacheRepository struct {
	store store.DocumentStore
}

func NewAnalysisCacheRepository(s store.DocumentStore) *AnalysisCacheRepository {
	return &AnalysisCacheRepository{store: s}
}

func (r *AnalysisCacheRepository) Get(ctx context.Context, contentHash string) (*models.ImageAnalysis, string, error) {
	doc, err := r.store.Get(ctx, store.CollectionCache, contentHash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}

	var entry struct {
		ImageURL string               `json:"image_url"`
		Analysis models.ImageAnalysis `json:"analysis"`
	}
	if err := fromDoc(doc, &entry); err != nil {
		return nil, "", err
	}
	return &entry.Analysis, entry.ImageURL, nil
}

func (r *AnalysisCacheRepository) Put(ctx context.Context, contentHash, imageURL string, analysis *models.ImageAnalysis) error {
	doc, err := toDoc(map[string]interface{}{
		"image_url":  imageURL,
		"analysis":   analysis,
		"created_at": time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.CollectionCache, contentHash, doc)
}
