// internal/services/story_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftconnect/backend/internal/models"
)

func TestGenerateStory(t *testing.T) {
	svc := NewStoryService()

	story, err := svc.GenerateStory(&StoryRequest{
		ProductName: "Azul Vase",
		Category:    models.CategoryPottery,
		Materials:   []string{"clay", "cobalt glaze"},
		ArtisanName: "Maria",
		Location:    "Oaxaca",
		Inspiration: "the colors of the Pacific coast",
	})
	require.NoError(t, err)

	assert.Contains(t, story.Story, "Azul Vase")
	assert.Contains(t, story.Story, "pottery")
	assert.Contains(t, story.Story, "clay and cobalt glaze")
	assert.Contains(t, story.Story, "Maria")
	assert.Contains(t, story.Story, "Oaxaca")
	assert.Contains(t, story.Story, "the colors of the Pacific coast")
}

func TestGenerateStoryIsStablePerName(t *testing.T) {
	svc := NewStoryService()

	req := &StoryRequest{
		ProductName: "Walnut Bowl",
		Category:    models.CategoryWoodwork,
	}

	first, err := svc.GenerateStory(req)
	require.NoError(t, err)
	second, err := svc.GenerateStory(req)
	require.NoError(t, err)

	assert.Equal(t, first.Story, second.Story)
}

func TestGenerateStoryMinimalRequest(t *testing.T) {
	svc := NewStoryService()

	story, err := svc.GenerateStory(&StoryRequest{
		ProductName: "Walnut Bowl",
		Category:    models.CategoryWoodwork,
	})
	require.NoError(t, err)
	assert.Contains(t, story.Story, "Walnut Bowl")
}

func TestGenerateStoryValidation(t *testing.T) {
	svc := NewStoryService()

	_, err := svc.GenerateStory(&StoryRequest{
		ProductName: "",
		Category:    models.CategoryWoodwork,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GenerateStory(&StoryRequest{
		ProductName: "Walnut Bowl",
		Category:    "basketweaving",
	})
	assert.ErrorIs(t, err, ErrValidation)
}
