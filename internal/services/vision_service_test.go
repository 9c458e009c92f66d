// internal/services/vision_service_test.go
package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftconnect/backend/internal/config"
	"github.com/craftconnect/backend/internal/models"
)

func TestExtractAttributesRichCaption(t *testing.T) {
	analysis := ExtractAttributes("a blue ceramic vase on a wooden table")

	assert.Equal(t, string(models.CategoryPottery), analysis.SuggestedCategory)
	assert.Contains(t, analysis.SuggestedMaterials, "ceramic")
	assert.Contains(t, analysis.SuggestedMaterials, "wood")
	assert.Contains(t, analysis.PrimaryColors, "blue")
	assert.Contains(t, analysis.SEOTags, "handmade")
	assert.Contains(t, analysis.SEOTags, "pottery")
	assert.InDelta(t, 0.75, analysis.ConfidenceScore, 0.001)
	assert.Equal(t, models.AnalysisStatusAutoAccepted, ClassifyConfidence(analysis.ConfidenceScore))
	require.NotNil(t, analysis.EstimatedDimensions)
	assert.Equal(t, "cm", analysis.EstimatedDimensions.Unit)
}

func TestExtractAttributesUnrecognizedCaption(t *testing.T) {
	analysis := ExtractAttributes("xyzzy")

	assert.Equal(t, string(models.CategoryOther), analysis.SuggestedCategory)
	assert.Empty(t, analysis.SuggestedMaterials)
	assert.Empty(t, analysis.PrimaryColors)
	assert.InDelta(t, 0.3, analysis.ConfidenceScore, 0.001)
	assert.Equal(t, models.AnalysisStatusRejected, ClassifyConfidence(analysis.ConfidenceScore))
}

func TestFallbackAnalysisNeedsConfirmation(t *testing.T) {
	analysis := FallbackAnalysis()

	assert.InDelta(t, 0.4, analysis.ConfidenceScore, 0.001)
	assert.Equal(t, models.AnalysisStatusNeedsConfirmation, ClassifyConfidence(analysis.ConfidenceScore))
	assert.NotEmpty(t, analysis.SEOTags)
}

func TestAnalyzeImageUsesCaptionEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"generated_text": "a carved wooden bowl"}]`))
	}))
	defer server.Close()

	svc := NewVisionService(config.VisionConfig{
		APIUrl:         server.URL,
		APIToken:       "test-token",
		TimeoutSeconds: 5,
	})

	analysis := svc.AnalyzeImage(context.Background(), []byte("image-bytes"))
	require.NotNil(t, analysis)
	assert.Equal(t, "a carved wooden bowl", analysis.Caption)
	assert.Equal(t, string(models.CategoryWoodwork), analysis.SuggestedCategory)
}

func TestAnalyzeImageFallsBackOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewVisionService(config.VisionConfig{
		APIUrl:         server.URL,
		TimeoutSeconds: 5,
	})

	analysis := svc.AnalyzeImage(context.Background(), []byte("image-bytes"))
	require.NotNil(t, analysis)
	assert.Equal(t, FallbackAnalysis().Caption, analysis.Caption)
	assert.InDelta(t, 0.4, analysis.ConfidenceScore, 0.001)
}
