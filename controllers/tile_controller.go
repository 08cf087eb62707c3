package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/models"
	"github.com/tolatiles/tola-tiles-api/services"
)

// CreateTileRequest is the payload for creating a tile
type CreateTileRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	CategoryID    uint            `json:"category" binding:"required"`
	ProductTypeID *uint           `json:"product_type"`
	Price         decimal.Decimal `json:"price"`
	Size          string          `json:"size"`
	Material      string          `json:"material"`
	InStock       *bool           `json:"in_stock"`
	SKU           string          `json:"sku"`
}

// UpdateTileRequest is the payload for partial tile updates. Slug and SKU
// are immutable and therefore absent here.
type UpdateTileRequest struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	CategoryID    *uint            `json:"category"`
	ProductTypeID *uint            `json:"product_type"`
	Price         *decimal.Decimal `json:"price"`
	Size          *string          `json:"size"`
	Material      *string          `json:"material"`
	InStock       *bool            `json:"in_stock"`
}

// ListTiles handles GET /tiles
func ListTiles(c *gin.Context) {
	repo := models.NewCatalogRepository(config.GetDB())
	tiles, err := repo.ListTiles(models.TileFilters{
		InStock:     boolQuery(c, "in_stock"),
		Category:    c.Query("category"),
		ProductType: c.Query("product_type"),
		Search:      c.Query("search"),
	})
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	responses := make([]TileResponse, 0, len(tiles))
	for i := range tiles {
		responses = append(responses, toTileResponse(&tiles[i]))
	}
	respondData(c, http.StatusOK, responses)
}

// GetTile handles GET /tiles/:id (id or slug)
func GetTile(c *gin.Context) {
	repo := models.NewCatalogRepository(config.GetDB())
	tile, err := repo.TileByIDOrSlug(c.Param("id"))
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toTileDetailResponse(tile))
}

// CreateTile handles POST /tiles (staff)
func CreateTile(c *gin.Context) {
	var req CreateTileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tile := models.Tile{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		ProductTypeID: req.ProductTypeID,
		Price:         req.Price,
		Size:          req.Size,
		Material:      req.Material,
		InStock:       true,
		SKU:           req.SKU,
	}
	if req.InStock != nil {
		tile.InStock = *req.InStock
	}

	repo := models.NewCatalogRepository(config.GetDB())
	if err := repo.CreateTile(&tile); err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toTileResponse(&tile))
}

// UpdateTile handles PUT /tiles/:id (staff)
func UpdateTile(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid tile ID")
		return
	}

	var req UpdateTileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.ProductTypeID != nil {
		updates["product_type_id"] = *req.ProductTypeID
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Size != nil {
		updates["size"] = *req.Size
	}
	if req.Material != nil {
		updates["material"] = *req.Material
	}
	if req.InStock != nil {
		updates["in_stock"] = *req.InStock
	}

	repo := models.NewCatalogRepository(config.GetDB())
	tile, err := repo.UpdateTile(id, updates)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toTileResponse(tile))
}

// DeleteTile handles DELETE /tiles/:id (staff)
func DeleteTile(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid tile ID")
		return
	}

	repo := models.NewCatalogRepository(config.GetDB())
	if err := repo.DeleteTile(id); err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "Tile deleted successfully"})
}

// UploadTileImage handles POST /tiles/:id/images (staff, multipart)
func UploadTileImage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid tile ID")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "No image file provided")
		return
	}

	key, err := services.GetImageService().UploadImage(fileHeader, "tiles")
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	image := models.TileImage{
		TileID:    id,
		ImageKey:  key,
		Caption:   c.PostForm("caption"),
		IsPrimary: c.PostForm("is_primary") == "true",
	}

	repo := models.NewCatalogRepository(config.GetDB())
	if err := repo.AddTileImage(&image); err != nil {
		respondRepositoryError(c, err)
		return
	}
	if image.IsPrimary {
		// Route the flag through the transaction so siblings are cleared
		if _, err := repo.SetPrimaryTileImage(image.ID); err != nil {
			respondRepositoryError(c, err)
			return
		}
	}
	respondData(c, http.StatusCreated, toTileImageResponse(&image))
}

// SetPrimaryTileImage handles POST /tile-images/:id/set-primary (staff)
func SetPrimaryTileImage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid image ID")
		return
	}

	repo := models.NewCatalogRepository(config.GetDB())
	image, err := repo.SetPrimaryTileImage(id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toTileImageResponse(image))
}

// DeleteTileImage handles DELETE /tile-images/:id (staff). The stored asset
// is removed after the row; asset deletion failures are non-fatal.
func DeleteTileImage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid image ID")
		return
	}

	repo := models.NewCatalogRepository(config.GetDB())
	image, err := repo.DeleteTileImage(id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	if svc := services.GetImageService(); svc != nil {
		_ = svc.DeleteImage(image.ImageKey)
	}
	respondData(c, http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
