// internal/models/product.go
package models

import "time"

type ProductImage struct {
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

type Pricing struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

type Product struct {
	ProductID   string          `json:"product_id"`
	OwnerID     string          `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    ProductCategory `json:"category"`
	Materials   []string        `json:"materials,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Story       string          `json:"story,omitempty"`
	Images      []ProductImage  `json:"images,omitempty"`
	Pricing     *Pricing        `json:"pricing,omitempty"`
	Dimensions  *Dimensions     `json:"dimensions,omitempty"`
	Status      ProductStatus   `json:"status"`
	ViewsCount  int64           `json:"views_count"`
	LikesCount  int64           `json:"likes_count"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PrimaryImage returns the image flagged primary, falling back to the first.
func (p *Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// UserStats aggregates a seller's catalog counters.
type UserStats struct {
	TotalProducts  int64 `json:"total_products"`
	PublicProducts int64 `json:"public_products"`
	TotalViews     int64 `json:"total_views"`
	TotalLikes     int64 `json:"total_likes"`
}
