// internal/models/common.go
package models

// Enums
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusPublic   ProductStatus = "public"
	ProductStatusPrivate  ProductStatus = "private"
	ProductStatusArchived ProductStatus = "archived"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublic, ProductStatusPrivate, ProductStatusArchived:
		return true
	}
	return false
}

type ProductCategory string

const (
	CategoryPottery   ProductCategory = "pottery"
	CategoryWoodwork  ProductCategory = "woodwork"
	CategoryTextiles  ProductCategory = "textiles"
	CategoryJewelry   ProductCategory = "jewelry"
	CategoryMetalwork ProductCategory = "metalwork"
	CategoryPainting  ProductCategory = "painting"
	CategorySculpture ProductCategory = "sculpture"
	CategoryLeather   ProductCategory = "leather"
	CategoryGlasswork ProductCategory = "glasswork"
	CategoryOther     ProductCategory = "other"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryPottery, CategoryWoodwork, CategoryTextiles, CategoryJewelry,
		CategoryMetalwork, CategoryPainting, CategorySculpture, CategoryLeather,
		CategoryGlasswork, CategoryOther:
		return true
	}
	return false
}

// AnalysisStatus classifies an image analysis by its confidence score.
type AnalysisStatus string

const (
	AnalysisStatusAutoAccepted      AnalysisStatus = "auto_accepted"
	AnalysisStatusNeedsConfirmation AnalysisStatus = "needs_confirmation"
	AnalysisStatusRejected          AnalysisStatus = "rejected"
)
