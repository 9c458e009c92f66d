// internal/services/copilot_service_test.go
package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftconnect/backend/internal/config"
	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/repository"
)

// jpegHeader is enough of a JPEG to clear the image signature check.
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

func newCopilotService(t *testing.T, captionURL string) *CopilotService {
	t.Helper()
	s := newTestStore(t)

	cfg := &config.Config{
		Environment: "development",
		Upload: config.UploadConfig{
			LocalDir:  t.TempDir(),
			PublicURL: "http://localhost:8080/uploads",
		},
	}
	storage, err := NewStorageService(cfg)
	require.NoError(t, err)

	vision := NewVisionService(config.VisionConfig{
		APIUrl:         captionURL,
		TimeoutSeconds: 5,
	})

	return NewCopilotService(vision, storage, repository.NewAnalysisCacheRepository(s))
}

func TestAnalyzeProductImageAutoAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"generated_text": "a blue ceramic vase on a wooden table"}]`))
	}))
	defer server.Close()

	svc := newCopilotService(t, server.URL)

	result, err := svc.AnalyzeProductImage(context.Background(), jpegHeader, "vase.jpg")
	require.NoError(t, err)

	assert.Equal(t, models.AnalysisStatusAutoAccepted, result.Status)
	require.NotNil(t, result.Suggestions)
	assert.Equal(t, string(models.CategoryPottery), result.Suggestions.SuggestedCategory)
	assert.NotEmpty(t, result.ImageURL)
	assert.False(t, result.Cached)
}

func TestAnalyzeProductImageRejectedHidesSuggestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"generated_text": "xyzzy"}]`))
	}))
	defer server.Close()

	svc := newCopilotService(t, server.URL)

	result, err := svc.AnalyzeProductImage(context.Background(), jpegHeader, "blurry.jpg")
	require.NoError(t, err)

	assert.Equal(t, models.AnalysisStatusRejected, result.Status)
	assert.Nil(t, result.Suggestions)
	assert.InDelta(t, 0.3, result.ConfidenceScore, 0.001)
}

func TestAnalyzeProductImageCachesByContent(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`[{"generated_text": "a carved wooden bowl"}]`))
	}))
	defer server.Close()

	svc := newCopilotService(t, server.URL)
	ctx := context.Background()

	first, err := svc.AnalyzeProductImage(ctx, jpegHeader, "bowl.jpg")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	// Same bytes under a different name still hit the cache.
	second, err := svc.AnalyzeProductImage(ctx, jpegHeader, "renamed.jpg")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.ImageURL, second.ImageURL)
	assert.Equal(t, first.ConfidenceScore, second.ConfidenceScore)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAnalyzeProductImageCaptioningDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := newCopilotService(t, server.URL)

	result, err := svc.AnalyzeProductImage(context.Background(), jpegHeader, "vase.jpg")
	require.NoError(t, err)

	// The fallback analysis lands in the confirmation band.
	assert.Equal(t, models.AnalysisStatusNeedsConfirmation, result.Status)
	require.NotNil(t, result.Suggestions)
	assert.NotEmpty(t, result.ImageURL)
}

func TestAnalyzeProductImageRejectsNonImages(t *testing.T) {
	svc := newCopilotService(t, "http://127.0.0.1:0")

	_, err := svc.AnalyzeProductImage(context.Background(), []byte("not an image"), "notes.txt")
	assert.ErrorIs(t, err, ErrValidation)
}
