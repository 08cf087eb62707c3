package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/models"
)

// CreateCategoryRequest is the payload for creating a tile category
type CreateCategoryRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	ProductTypeID *uint  `json:"product_type"`
	DisplayOrder  int    `json:"order"`
	Active        *bool  `json:"active"`
}

// UpdateCategoryRequest is the payload for partial category updates
type UpdateCategoryRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	ProductTypeID *uint   `json:"product_type"`
	DisplayOrder  *int    `json:"order"`
	Active        *bool   `json:"active"`
}

// ListCategories handles GET /categories
func ListCategories(c *gin.Context) {
	repo := models.NewCatalogRepository(config.GetDB())
	categories, err := repo.ListCategories(models.CategoryFilters{
		Active:      boolQuery(c, "active"),
		ProductType: c.Query("product_type"),
		Search:      c.Query("search"),
	})
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, toCategoryResponse(&categories[i]))
	}
	respondData(c, http.StatusOK, responses)
}

// GetCategory handles GET /categories/:id (id or slug)
func GetCategory(c *gin.Context) {
	repo := models.NewCatalogRepository(config.GetDB())
	category, err := repo.CategoryByIDOrSlug(c.Param("id"))
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCategoryDetailResponse(category))
}

// CreateCategory handles POST /categories (staff)
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	category := models.TileCategory{
		Name:          req.Name,
		Description:   req.Description,
		ProductTypeID: req.ProductTypeID,
		DisplayOrder:  req.DisplayOrder,
		Active:        true,
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	repo := models.NewCatalogRepository(config.GetDB())
	if err := repo.CreateCategory(&category); err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toCategoryResponse(&category))
}

// UpdateCategory handles PUT /categories/:id (staff)
func UpdateCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ProductTypeID != nil {
		updates["product_type_id"] = *req.ProductTypeID
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	repo := models.NewCatalogRepository(config.GetDB())
	category, err := repo.UpdateCategory(id, updates)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toCategoryResponse(category))
}

// DeleteCategory handles DELETE /categories/:id (staff).
// The category's tiles and their images are deleted with it.
func DeleteCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
		return
	}

	repo := models.NewCatalogRepository(config.GetDB())
	if err := repo.DeleteCategory(id); err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
