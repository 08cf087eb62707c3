package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/models"
)

// CreateProductTypeRequest is the payload for creating a product type
type CreateProductTypeRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	IconName     string `json:"icon_name"`
	DisplayOrder int    `json:"display_order"`
	Active       *bool  `json:"active"`
	ShowInNavbar *bool  `json:"show_in_navbar"`
}

// UpdateProductTypeRequest is the payload for partial product type updates
type UpdateProductTypeRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	IconName     *string `json:"icon_name"`
	DisplayOrder *int    `json:"display_order"`
	Active       *bool   `json:"active"`
	ShowInNavbar *bool   `json:"show_in_navbar"`
}

// ListProductTypes handles GET /product-types
func ListProductTypes(c *gin.Context) {
	repo := models.NewCatalogRepository(config.GetDB())
	productTypes, err := repo.ListProductTypes(models.ProductTypeFilters{
		Active:       boolQuery(c, "active"),
		ShowInNavbar: boolQuery(c, "show_in_navbar"),
		Search:       c.Query("search"),
	})
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	responses := make([]ProductTypeResponse, 0, len(productTypes))
	for i := range productTypes {
		responses = append(responses, toProductTypeResponse(&productTypes[i]))
	}
	respondData(c, http.StatusOK, responses)
}

// GetProductType handles GET /product-types/:id (id or slug)
func GetProductType(c *gin.Context) {
	repo := models.NewCatalogRepository(config.GetDB())
	productType, err := repo.ProductTypeByIDOrSlug(c.Param("id"))
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toProductTypeDetailResponse(productType))
}

// CreateProductType handles POST /product-types (staff)
func CreateProductType(c *gin.Context) {
	var req CreateProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	productType := models.ProductType{
		Name:         req.Name,
		Description:  req.Description,
		IconName:     req.IconName,
		DisplayOrder: req.DisplayOrder,
		Active:       true,
	}
	if req.Active != nil {
		productType.Active = *req.Active
	}
	if req.ShowInNavbar != nil {
		productType.ShowInNavbar = *req.ShowInNavbar
	}

	repo := models.NewCatalogRepository(config.GetDB())
	if err := repo.CreateProductType(&productType); err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toProductTypeResponse(&productType))
}

// UpdateProductType handles PUT /product-types/:id (staff)
func UpdateProductType(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid product type ID")
		return
	}

	var req UpdateProductTypeRequest
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
	if req.IconName != nil {
		updates["icon_name"] = *req.IconName
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.ShowInNavbar != nil {
		updates["show_in_navbar"] = *req.ShowInNavbar
	}

	repo := models.NewCatalogRepository(config.GetDB())
	productType, err := repo.UpdateProductType(id, updates)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toProductTypeResponse(productType))
}

// DeleteProductType handles DELETE /product-types/:id (staff).
// Dependent tiles, categories and projects keep their rows; their product
// type reference is nulled.
func DeleteProductType(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid product type ID")
		return
	}

	repo := models.NewCatalogRepository(config.GetDB())
	if err := repo.DeleteProductType(id); err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "Product type deleted successfully"})
}
