// internal/services/vision_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/craftconnect/backend/internal/config"
	"github.com/craftconnect/backend/internal/models"
)

// VisionService captions product photos through an image-to-text inference
// endpoint and mines the caption for catalog attributes. When the endpoint
// is down or slow the service degrades to a generic low-confidence analysis
// instead of failing the caller.
type VisionService struct {
	cfg    config.VisionConfig
	client *http.Client
}

func NewVisionService(cfg config.VisionConfig) *VisionService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &VisionService{
		cfg: cfg,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

var categoryKeywords = map[models.ProductCategory][]string{
	models.CategoryPottery:   {"vase", "pot", "ceramic", "clay", "bowl", "mug", "porcelain"},
	models.CategoryWoodwork:  {"wood", "wooden", "carved", "timber", "oak", "walnut"},
	models.CategoryTextiles:  {"fabric", "woven", "knit", "scarf", "blanket", "quilt", "embroider"},
	models.CategoryJewelry:   {"necklace", "ring", "bracelet", "earring", "pendant", "jewelry"},
	models.CategoryMetalwork: {"metal", "iron", "copper", "brass", "forged", "steel"},
	models.CategoryPainting:  {"painting", "canvas", "watercolor", "acrylic", "portrait"},
	models.CategorySculpture: {"sculpture", "statue", "figurine", "bust"},
	models.CategoryLeather:   {"leather", "wallet", "belt", "satchel", "hide"},
	models.CategoryGlasswork: {"glass", "stained", "blown", "crystal"},
}

var materialKeywords = []string{
	"clay", "ceramic", "porcelain", "wood", "oak", "walnut", "bamboo",
	"wool", "cotton", "silk", "linen", "silver", "gold", "copper",
	"brass", "iron", "steel", "leather", "glass", "stone", "resin",
}

// typicalDimensions are rough per-category size estimates, centimeters. The
// seller corrects them before publishing.
var typicalDimensions = map[models.ProductCategory]models.Dimensions{
	models.CategoryPottery:   {Length: 15, Width: 15, Height: 25, Unit: "cm"},
	models.CategoryWoodwork:  {Length: 30, Width: 20, Height: 10, Unit: "cm"},
	models.CategoryTextiles:  {Length: 150, Width: 100, Height: 1, Unit: "cm"},
	models.CategoryJewelry:   {Length: 5, Width: 5, Height: 2, Unit: "cm"},
	models.CategoryMetalwork: {Length: 25, Width: 15, Height: 15, Unit: "cm"},
	models.CategoryPainting:  {Length: 60, Width: 45, Height: 3, Unit: "cm"},
	models.CategorySculpture: {Length: 20, Width: 20, Height: 35, Unit: "cm"},
	models.CategoryLeather:   {Length: 25, Width: 12, Height: 5, Unit: "cm"},
	models.CategoryGlasswork: {Length: 12, Width: 12, Height: 20, Unit: "cm"},
}

var colorKeywords = []string{
	"red", "orange", "yellow", "green", "blue", "purple", "pink",
	"brown", "black", "white", "grey", "gray", "beige", "cream",
	"turquoise", "gold", "silver",
}

// AnalyzeImage captions the image and derives suggestions from the caption.
// It never returns an error for upstream failures; the fallback analysis
// carries a confidence low enough that the gate asks for confirmation.
func (s *VisionService) AnalyzeImage(ctx context.Context, image []byte) *models.ImageAnalysis {
	caption, err := s.caption(ctx, image)
	if err != nil {
		logrus.WithError(err).Warn("Image captioning unavailable, using fallback analysis")
		return FallbackAnalysis()
	}
	return ExtractAttributes(caption)
}

func (s *VisionService) caption(ctx context.Context, image []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIUrl, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("failed to build caption request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if s.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("caption request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read caption response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption endpoint returned status %d", resp.StatusCode)
	}

	var results []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("failed to decode caption response: %w", err)
	}
	if len(results) == 0 || strings.TrimSpace(results[0].GeneratedText) == "" {
		return "", fmt.Errorf("caption endpoint returned no text")
	}
	return strings.TrimSpace(results[0].GeneratedText), nil
}

// ExtractAttributes mines a caption for category, materials and colors. The
// confidence reflects how much of the caption the keyword tables recognized.
func ExtractAttributes(caption string) *models.ImageAnalysis {
	lower := strings.ToLower(caption)

	confidence := 0.3

	category := models.CategoryOther
	bestHits := 0
	for cat, keywords := range categoryKeywords {
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			category = cat
		}
	}
	if bestHits > 0 {
		confidence += 0.25
	}

	var materials []string
	for _, kw := range materialKeywords {
		if strings.Contains(lower, kw) {
			materials = append(materials, kw)
		}
	}
	confidence += 0.05 * float64(min(len(materials), 3))

	var colors []string
	for _, kw := range colorKeywords {
		if strings.Contains(lower, kw) {
			colors = append(colors, kw)
		}
	}
	confidence += 0.05 * float64(min(len(colors), 2))

	if len(strings.Fields(caption)) >= 5 {
		confidence += 0.05
	}
	if confidence > 0.95 {
		confidence = 0.95
	}

	tags := []string{"handmade", "artisan"}
	if category != models.CategoryOther {
		tags = append(tags, string(category))
	}
	tags = append(tags, materials...)

	var dims *models.Dimensions
	if d, ok := typicalDimensions[category]; ok {
		dims = &d
	}

	return &models.ImageAnalysis{
		Caption:             caption,
		ConfidenceScore:     confidence,
		SuggestedTitle:      titleFromCaption(caption),
		SuggestedCategory:   string(category),
		SEOTags:             dedupe(tags),
		SuggestedMaterials:  materials,
		PrimaryColors:       colors,
		EstimatedDimensions: dims,
	}
}

// FallbackAnalysis is what callers get when captioning is unavailable. Its
// confidence lands in the confirmation band, never auto-accepted.
func FallbackAnalysis() *models.ImageAnalysis {
	return &models.ImageAnalysis{
		Caption:            "Handcrafted artisan product",
		ConfidenceScore:    0.4,
		SuggestedTitle:     "Handcrafted Artisan Product",
		SuggestedCategory:  string(models.CategoryOther),
		SEOTags:            []string{"handmade", "artisan", "craft", "unique"},
		SuggestedMaterials: []string{"artisan", "handcrafted"},
		PrimaryColors:      []string{"natural"},
	}
}

func titleFromCaption(caption string) string {
	words := strings.Fields(caption)
	if len(words) > 8 {
		words = words[:8]
	}
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
