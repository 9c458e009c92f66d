// internal/handlers/copilot.go
package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/craftconnect/backend/internal/services"
	"github.com/craftconnect/backend/internal/utils"
)

type CopilotHandler struct {
	copilotService *services.CopilotService
	pricingService *services.PricingService
	storyService   *services.StoryService
}

func NewCopilotHandler(copilotService *services.CopilotService, pricingService *services.PricingService, storyService *services.StoryService) *CopilotHandler {
	return &CopilotHandler{
		copilotService: copilotService,
		pricingService: pricingService,
		storyService:   storyService,
	}
}

// POST /copilot/analyze
func (h *CopilotHandler) AnalyzeImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "An image file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Unable to read image", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.BadRequestResponse(c, "Unable to read image", nil)
		return
	}

	result, err := h.copilotService.AnalyzeProductImage(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		respondServiceError(c, "Image", err)
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /copilot/pricing
func (h *CopilotHandler) SuggestPrice(c *gin.Context) {
	var req services.PriceSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	suggestion, err := h.pricingService.SuggestPrice(&req)
	if err != nil {
		respondServiceError(c, "Pricing", err)
		return
	}

	utils.SuccessResponse(c, suggestion)
}

// POST /copilot/story
func (h *CopilotHandler) GenerateStory(c *gin.Context) {
	var req services.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	story, err := h.storyService.GenerateStory(&req)
	if err != nil {
		respondServiceError(c, "Story", err)
		return
	}

	utils.SuccessResponse(c, story)
}
