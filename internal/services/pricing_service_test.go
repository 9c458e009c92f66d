// internal/services/pricing_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftconnect/backend/internal/models"
)

func TestSuggestPriceCostPlus(t *testing.T) {
	svc := NewPricingService()

	// 20 in materials + 3h at the jewelry rate of 40 = 140, marked up 50%
	// to 210, already on a $5 step.
	suggestion, err := svc.SuggestPrice(&PriceSuggestionRequest{
		Category:     models.CategoryJewelry,
		MaterialCost: 20,
		HoursWorked:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, 210.0, suggestion.SuggestedPrice)
	assert.Equal(t, "USD", suggestion.Currency)
	assert.InDelta(t, 178.5, suggestion.MinPrice, 1)
	assert.InDelta(t, 241.5, suggestion.MaxPrice, 1)
	assert.NotEmpty(t, suggestion.Explanation)
}

func TestSuggestPriceRoundsToStep(t *testing.T) {
	svc := NewPricingService()

	// 11 + 1h at the textiles rate of 20 = 31, marked up to 46.50, rounded
	// down to 45.
	suggestion, err := svc.SuggestPrice(&PriceSuggestionRequest{
		Category:     models.CategoryTextiles,
		MaterialCost: 11,
		HoursWorked:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 45.0, suggestion.SuggestedPrice)
}

func TestSuggestPriceFloor(t *testing.T) {
	svc := NewPricingService()

	suggestion, err := svc.SuggestPrice(&PriceSuggestionRequest{
		Category:     models.CategoryPottery,
		MaterialCost: 0,
		HoursWorked:  0.2,
	})
	require.NoError(t, err)
	assert.Equal(t, 15.0, suggestion.SuggestedPrice)
}

func TestSuggestPriceValidation(t *testing.T) {
	svc := NewPricingService()

	_, err := svc.SuggestPrice(&PriceSuggestionRequest{
		Category:    models.CategoryPottery,
		HoursWorked: 0,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SuggestPrice(&PriceSuggestionRequest{
		Category:    "basketweaving",
		HoursWorked: 1,
	})
	assert.ErrorIs(t, err, ErrValidation)
}
