// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/craftconnect/backend/internal/models"
	"github.com/craftconnect/backend/internal/repository"
	"github.com/craftconnect/backend/internal/store"
	"github.com/craftconnect/backend/internal/utils"
)

type ProductService struct {
	products *repository.ProductRepository
	likes    *repository.LikeRepository

	// mu guards likeLocks. Each product gets its own lock so like toggles on
	// the same product serialize while different products proceed in parallel.
	mu        sync.Mutex
	likeLocks map[string]*sync.Mutex
}

type CreateProductRequest struct {
	Title       string                 `json:"title" validate:"required,min=3,max=255"`
	Description string                 `json:"description" validate:"max=5000"`
	Category    models.ProductCategory `json:"category" validate:"required"`
	Materials   []string               `json:"materials,omitempty"`
	Colors      []string               `json:"colors,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Story       string                 `json:"story,omitempty"`
	Images      []models.ProductImage  `json:"images,omitempty"`
	Pricing     *models.Pricing        `json:"pricing,omitempty"`
	Dimensions  *models.Dimensions     `json:"dimensions,omitempty"`
	Status      models.ProductStatus   `json:"status,omitempty"`
}

type UpdateProductRequest struct {
	Title       string                 `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description *string                `json:"description,omitempty"`
	Category    models.ProductCategory `json:"category,omitempty"`
	Materials   []string               `json:"materials,omitempty"`
	Colors      []string               `json:"colors,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Story       *string                `json:"story,omitempty"`
	Images      []models.ProductImage  `json:"images,omitempty"`
	Pricing     *models.Pricing        `json:"pricing,omitempty"`
	Dimensions  *models.Dimensions     `json:"dimensions,omitempty"`
	Status      models.ProductStatus   `json:"status,omitempty"`
}

type ListProductsParams struct {
	OwnerID  string
	Status   models.ProductStatus
	Category models.ProductCategory
	Page     int
	PageSize int
}

type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	HasMore  bool             `json:"has_more"`
}

func NewProductService(products *repository.ProductRepository, likes *repository.LikeRepository) *ProductService {
	return &ProductService{
		products:  products,
		likes:     likes,
		likeLocks: make(map[string]*sync.Mutex),
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, ownerID string, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
	}

	status := req.Status
	if status == "" {
		status = models.ProductStatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	now := time.Now().UTC()
	product := &models.Product{
		ProductID:   uuid.New().String(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Materials:   req.Materials,
		Colors:      req.Colors,
		Tags:        req.Tags,
		Story:       req.Story,
		Images:      req.Images,
		Pricing:     req.Pricing,
		Dimensions:  req.Dimensions,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ProductID,
		"user_id":    ownerID,
		"status":     product.Status,
	}).Info("Product created")

	return product, nil
}

// GetProduct enforces visibility and counts the view. The owner always sees
// their product and never moves the counter; everyone else sees it only while
// public and adds one view per read.
func (s *ProductService) GetProduct(ctx context.Context, productID, requesterID string) (*models.Product, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if requesterID == product.OwnerID {
		return product, nil
	}

	if product.Status != models.ProductStatusPublic {
		return nil, ErrForbidden
	}

	product.ViewsCount++
	if err := s.products.UpdateFields(ctx, productID, map[string]interface{}{
		"views_count": product.ViewsCount,
	}); err != nil {
		// The read already succeeded; a lost view is not worth failing it.
		logrus.WithField("product_id", productID).WithError(err).Warn("Failed to record product view")
		product.ViewsCount--
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID, requesterID string, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if product.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != "" {
		if !req.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
		}
		updates["category"] = req.Category
	}
	if req.Materials != nil {
		updates["materials"] = req.Materials
	}
	if req.Colors != nil {
		updates["colors"] = req.Colors
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if req.Story != nil {
		updates["story"] = *req.Story
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}
	if req.Pricing != nil {
		updates["pricing"] = req.Pricing
	}
	if req.Dimensions != nil {
		updates["dimensions"] = req.Dimensions
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
		}
		updates["status"] = req.Status
	}

	if len(updates) == 0 {
		return product, nil
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.products.UpdateFields(ctx, productID, updates); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.products.Get(ctx, productID)
}

// DeleteProduct archives rather than removes. Archived products stay readable
// by their owner and drop out of public listings and search.
func (s *ProductService) DeleteProduct(ctx context.Context, productID, requesterID string) error {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if product.OwnerID != requesterID {
		return ErrForbidden
	}

	if product.Status == models.ProductStatusArchived {
		return nil
	}

	err = s.products.UpdateFields(ctx, productID, map[string]interface{}{
		"status":     models.ProductStatusArchived,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to archive product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": productID,
		"user_id":    requesterID,
	}).Info("Product archived")

	return nil
}

// ListProducts pages through the catalog newest first. Only the owner may
// filter their own catalog by status; a foreign owner_id is dropped entirely
// and the listing falls back to the public catalog, as if no owner filter had
// been given.
func (s *ProductService) ListProducts(ctx context.Context, requesterID string, params ListProductsParams) (*ProductPage, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize)

	ownView := params.OwnerID != "" && params.OwnerID == requesterID

	var conds []store.Condition
	if ownView {
		conds = append(conds, store.Eq("user_id", params.OwnerID))
		if params.Status != "" {
			if !params.Status.Valid() {
				return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, params.Status)
			}
			conds = append(conds, store.Eq("status", string(params.Status)))
		}
	} else {
		conds = append(conds, store.Eq("status", string(models.ProductStatusPublic)))
	}
	if params.Category != "" {
		if !params.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, params.Category)
		}
		conds = append(conds, store.Eq("category", string(params.Category)))
	}

	products, err := s.products.Find(ctx, conds...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	sortNewestFirst(products)
	return paginate(products, page, pageSize), nil
}

// SearchProducts does a case-insensitive substring match over title,
// description and tags of public products, optionally narrowed to a category.
func (s *ProductService) SearchProducts(ctx context.Context, query string, category models.ProductCategory, pageNum, pageSize int) (*ProductPage, error) {
	page, size := normalizePage(pageNum, pageSize)

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrValidation)
	}
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}

	products, err := s.products.FindPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	matched := products[:0]
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if productMatches(&p, term) {
			matched = append(matched, p)
		}
	}

	sortNewestFirst(matched)
	return paginate(matched, page, size), nil
}

// ToggleLike flips the requester's like on a product and returns the new
// liked state plus the resulting count. Toggles on one product serialize
// through a per-product lock so the counter always equals the number of
// standing likes.
func (s *ProductService) ToggleLike(ctx context.Context, productID, userID string) (liked bool, likesCount int64, err error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}

	if userID != product.OwnerID && product.Status != models.ProductStatusPublic {
		return false, 0, ErrForbidden
	}

	lock := s.lockFor(productID)
	lock.Lock()
	defer lock.Unlock()

	exists, err := s.likes.Exists(ctx, productID, userID)
	if err != nil {
		return false, 0, err
	}

	if exists {
		if err := s.likes.Remove(ctx, productID, userID); err != nil {
			return false, 0, err
		}
		liked = false
	} else {
		if err := s.likes.Add(ctx, productID, userID); err != nil {
			return false, 0, err
		}
		liked = true
	}

	likesCount, err = s.likes.CountByProduct(ctx, productID)
	if err != nil {
		return false, 0, err
	}

	if err := s.products.UpdateFields(ctx, productID, map[string]interface{}{
		"likes_count": likesCount,
	}); err != nil {
		return false, 0, fmt.Errorf("failed to record like count: %w", err)
	}

	return liked, likesCount, nil
}

// GetUserStats aggregates counters across all of a seller's products,
// archived included.
func (s *ProductService) GetUserStats(ctx context.Context, ownerID string) (*models.UserStats, error) {
	products, err := s.products.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	stats := &models.UserStats{}
	for _, p := range products {
		stats.TotalProducts++
		if p.Status == models.ProductStatusPublic {
			stats.PublicProducts++
		}
		stats.TotalViews += p.ViewsCount
		stats.TotalLikes += p.LikesCount
	}
	return stats, nil
}

// Helper methods

func (s *ProductService) lockFor(productID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.likeLocks[productID]
	if !ok {
		lock = &sync.Mutex{}
		s.likeLocks[productID] = lock
	}
	return lock
}

func productMatches(p *models.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func sortNewestFirst(products []models.Product) {
	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ProductID < products[j].ProductID
	})
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func paginate(products []models.Product, page, pageSize int) *ProductPage {
	total := int64(len(products))

	start := (page - 1) * pageSize
	if start > len(products) {
		start = len(products)
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}

	items := make([]models.Product, end-start)
	copy(items, products[start:end])

	return &ProductPage{
		Products: items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  int64(page*pageSize) < total,
	}
}
