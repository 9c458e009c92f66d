// internal/services/story_service.go
package services

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/utils"
)

// StoryService drafts a short product narrative from a handful of facts.
// Purely template-based; the seller edits the draft before publishing it.
type StoryService struct{}

type StoryRequest struct {
	ProductName string                 `json:"product_name" validate:"required,min=2,max=255"`
	Category    models.ProductCategory `json:"category" validate:"required"`
	Materials   []string               `json:"materials,omitempty"`
	ArtisanName string                 `json:"artisan_name,omitempty" validate:"omitempty,max=100"`
	Location    string                 `json:"location,omitempty" validate:"omitempty,max=100"`
	Inspiration string                 `json:"inspiration,omitempty" validate:"omitempty,max=500"`
}

type StoryResponse struct {
	Story string `json:"story"`
}

var storyTemplates = []string{
	"%[1]s is a one-of-a-kind piece of %[2]s, shaped by hand%[3]s%[4]s. %[5]sEvery detail carries the maker's touch, so no two pieces are ever quite the same.",
	"Born in a small workshop%[4]s, %[1]s reflects a long tradition of %[2]s%[3]s. %[5]sIt is made slowly and deliberately, the way craft used to be.",
	"%[1]s began as raw material and patient hours of %[2]s%[3]s%[4]s. %[5]sOwning it means owning a small piece of that process.",
}

func NewStoryService() *StoryService {
	return &StoryService{}
}

func (s *StoryService) GenerateStory(req *StoryRequest) (*StoryResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
	}

	materials := ""
	if len(req.Materials) > 0 {
		materials = " from " + joinNatural(req.Materials)
	}

	where := ""
	switch {
	case req.ArtisanName != "" && req.Location != "":
		where = fmt.Sprintf(" by %s in %s", req.ArtisanName, req.Location)
	case req.ArtisanName != "":
		where = " by " + req.ArtisanName
	case req.Location != "":
		where = " in " + req.Location
	}

	inspiration := ""
	if req.Inspiration != "" {
		inspiration = fmt.Sprintf("It was inspired by %s. ", strings.TrimRight(req.Inspiration, "."))
	}

	// Template choice is stable per product name so regenerating without
	// edits returns the same draft.
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(req.ProductName)))
	template := storyTemplates[h.Sum32()%uint32(len(storyTemplates))]

	story := fmt.Sprintf(template, req.ProductName, req.Category, materials, where, inspiration)
	return &StoryResponse{Story: story}, nil
}

func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
