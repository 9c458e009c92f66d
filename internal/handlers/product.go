// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/services"
	"github.com/craftconnect/backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, "Product", err)
		return
	}

	utils.CreatedResponse(c, product)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	requesterID, _ := utils.GetUserIDFromContext(c)

	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"), requesterID)
	if err != nil {
		respondServiceError(c, "Product", err)
		return
	}

	utils.SuccessResponse(c, product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		respondServiceError(c, "Product", err)
		return
	}

	utils.SuccessResponse(c, product)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, "Product", err)
		return
	}

	utils.SuccessResponse(c, gin.H{"archived": true})
}

// GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	requesterID, _ := utils.GetUserIDFromContext(c)
	params := utils.GetPaginationParams(c)

	page, err := h.productService.ListProducts(c.Request.Context(), requesterID, services.ListProductsParams{
		OwnerID:  params.OwnerID,
		Status:   models.ProductStatus(params.Status),
		Category: models.ProductCategory(params.Category),
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		respondServiceError(c, "Product", err)
		return
	}

	respondProductPage(c, page)
}

// GET /products/search
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	page, err := h.productService.SearchProducts(c.Request.Context(), params.Search, models.ProductCategory(params.Category), params.Page, params.PageSize)
	if err != nil {
		respondServiceError(c, "Product", err)
		return
	}

	respondProductPage(c, page)
}

// POST /products/:id/like
func (h *ProductHandler) ToggleLike(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	liked, likesCount, err := h.productService.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, "Product", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"liked":       liked,
		"likes_count": likesCount,
	})
}

// GET /users/me/stats
func (h *ProductHandler) GetUserStats(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	stats, err := h.productService.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "User", err)
		return
	}

	utils.SuccessResponse(c, stats)
}

func respondProductPage(c *gin.Context, page *services.ProductPage) {
	utils.SuccessResponseWithMeta(c, page.Products, gin.H{
		"pagination": gin.H{
			"page":      page.Page,
			"page_size": page.PageSize,
			"total":     page.Total,
			"has_more":  page.HasMore,
		},
	})
}
