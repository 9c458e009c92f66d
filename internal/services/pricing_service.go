// internal/services/pricing_service.go
package services

import (
	"fmt"
	"math"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/utils"
)

// PricingService suggests a price from material cost and labor. The formula
// is cost-plus: materials plus hours at a per-category labor rate, a 50%
// marketplace markup, rounded to the nearest $5 with a $15 floor.
type PricingService struct{}

type PriceSuggestionRequest struct {
	Category     models.ProductCategory `json:"category" validate:"required"`
	MaterialCost float64                `json:"material_cost" validate:"min=0"`
	HoursWorked  float64                `json:"hours_worked" validate:"required,gt=0"`
}

var laborRates = map[models.ProductCategory]float64{
	models.CategoryPottery:   25,
	models.CategoryWoodwork:  30,
	models.CategoryTextiles:  20,
	models.CategoryJewelry:   40,
	models.CategoryMetalwork: 35,
	models.CategoryPainting:  45,
	models.CategorySculpture: 50,
	models.CategoryLeather:   28,
	models.CategoryGlasswork: 38,
	models.CategoryOther:     25,
}

const (
	pricingMarkup = 1.5
	minimumPrice  = 15.0
	priceStep     = 5.0
	rangeSpread   = 0.15
)

func NewPricingService() *PricingService {
	return &PricingService{}
}

func (s *PricingService) SuggestPrice(req *PriceSuggestionRequest) (*models.PriceSuggestion, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
	}

	rate := laborRates[req.Category]
	base := req.MaterialCost + req.HoursWorked*rate
	price := base * pricingMarkup

	// Round to the nearest price step, then apply the floor.
	price = math.Round(price/priceStep) * priceStep
	if price < minimumPrice {
		price = minimumPrice
	}

	return &models.PriceSuggestion{
		SuggestedPrice: price,
		MinPrice:       math.Round(price * (1 - rangeSpread)),
		MaxPrice:       math.Round(price * (1 + rangeSpread)),
		Currency:       "USD",
		Explanation: fmt.Sprintf(
			"Based on $%.2f in materials and %.1f hours at $%.0f/hour for %s, with a 50%% marketplace markup.",
			req.MaterialCost, req.HoursWorked, rate, req.Category,
		),
	}, nil
}
