// internal/handlers/sales.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/craftconnect/backend/internal/services"
	"github.com/craftconnect/backend/internal/utils"
)

type SalesHandler struct {
	salesService *services.SalesService
}

func NewSalesHandler(salesService *services.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// POST /sales
func (h *SalesHandler) RecordSale(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	sale, err := h.salesService.RecordSale(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, "Product", err)
		return
	}

	utils.CreatedResponse(c, sale)
}

// GET /sales
func (h *SalesHandler) ListSales(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	sales, err := h.salesService.ListSales(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "Sale", err)
		return
	}

	utils.SuccessResponse(c, sales)
}

// DELETE /sales/:id
func (h *SalesHandler) DeleteSale(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.salesService.DeleteSale(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, "Sale", err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// GET /sales/summary
func (h *SalesHandler) GetSummary(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	summary, err := h.salesService.Summary(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "Sale", err)
		return
	}

	utils.SuccessResponse(c, summary)
}
