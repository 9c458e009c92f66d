// internal/models/analysis.go
package models

// ImageAnalysis holds the attributes extracted from a product photo caption.
type ImageAnalysis struct {
	Caption             string      `json:"caption"`
	ConfidenceScore     float64     `json:"confidence_score"`
	SuggestedTitle      string      `json:"suggested_title"`
	SuggestedCategory   string      `json:"suggested_category"`
	SEOTags             []string    `json:"seo_tags"`
	SuggestedMaterials  []string    `json:"suggested_materials"`
	PrimaryColors       []string    `json:"primary_colors"`
	EstimatedDimensions *Dimensions `json:"estimated_dimensions,omitempty"`
}

// AnalysisResult is the gated outcome surfaced to callers. Suggestions are
// present only when the analysis cleared the rejection threshold.
type AnalysisResult struct {
	Status          AnalysisStatus `json:"status"`
	ConfidenceScore float64        `json:"confidence_score"`
	ImageURL        string         `json:"image_url,omitempty"`
	Suggestions     *ImageAnalysis `json:"suggestions,omitempty"`
	Cached          bool           `json:"cached"`
}

// PriceSuggestion is the output of the cost-based pricing helper.
type PriceSuggestion struct {
	SuggestedPrice float64 `json:"suggested_price"`
	MinPrice       float64 `json:"min_price"`
	MaxPrice       float64 `json:"max_price"`
	Currency       string  `json:"currency"`
	Explanation    string  `json:"explanation"`
}
