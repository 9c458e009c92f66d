// internal/services/copilot_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/repository"
	"github.com/craftconnect/backend/internal/utils"
)

// CopilotService runs a product photo through storage, captioning and the
// confidence gate. Identical images are served from the analysis cache
// without re-uploading or re-captioning.
type CopilotService struct {
	vision  *VisionService
	storage *StorageService
	cache   *repository.AnalysisCacheRepository
}

func NewCopilotService(vision *VisionService, storage *StorageService, cache *repository.AnalysisCacheRepository) *CopilotService {
	return &CopilotService{
		vision:  vision,
		storage: storage,
		cache:   cache,
	}
}

func (s *CopilotService) AnalyzeProductImage(ctx context.Context, image []byte, filename string) (*models.AnalysisResult, error) {
	contentHash := utils.HashBytes(image)

	if cached, imageURL, err := s.cache.Get(ctx, contentHash); err != nil {
		logrus.WithError(err).Warn("Analysis cache lookup failed")
	} else if cached != nil {
		return s.gated(cached, imageURL, true), nil
	}

	upload, err := s.storage.UploadImage(image, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	analysis := s.vision.AnalyzeImage(ctx, image)

	if err := s.cache.Put(ctx, contentHash, upload.URL, analysis); err != nil {
		logrus.WithError(err).Warn("Failed to cache image analysis")
	}

	return s.gated(analysis, upload.URL, false), nil
}

// gated applies the confidence thresholds. Rejected analyses surface only
// their status and score; the suggestions never leave the service.
func (s *CopilotService) gated(analysis *models.ImageAnalysis, imageURL string, cached bool) *models.AnalysisResult {
	status := ClassifyConfidence(analysis.ConfidenceScore)

	result := &models.AnalysisResult{
		Status:          status,
		ConfidenceScore: analysis.ConfidenceScore,
		ImageURL:        imageURL,
		Cached:          cached,
	}
	if status != models.AnalysisStatusRejected {
		result.Suggestions = analysis
	}
	return result
}
