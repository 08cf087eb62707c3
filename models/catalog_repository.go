package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tolatiles/tola-tiles-api/utils"
)

// CatalogRepository owns all catalog mutations (product types, categories,
// tiles and tile images) so the slug, SKU, inheritance and primary-image
// invariants are enforced in one place instead of being scattered across
// handlers.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// isNumeric reports whether the lookup token consists solely of digits,
// in which case it resolves by id rather than slug
func isNumeric(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// findByIDOrSlug resolves dest by numeric id or by slug from a single token
func findByIDOrSlug(query *gorm.DB, token string, dest interface{}) error {
	if isNumeric(token) {
		query = query.Where("id = ?", token)
	} else {
		query = query.Where("slug = ?", token)
	}
	if err := query.First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// uniqueSlug derives a slug from name and disambiguates duplicates by
// appending -2, -3, ... ("marble", "marble-2").
func uniqueSlug(tx *gorm.DB, model interface{}, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		return "", &ValidationError{Field: "slug", Message: "cannot derive a slug from an empty name"}
	}

	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := tx.Model(model).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// generateSKU produces a stock-keeping unit of the form TILE-XXXXXXXX
// (8 random uppercase hex characters)
func generateSKU() string {
	return "TILE-" + utils.RandomHexUpper(4)
}

// ProductTypeFilters are the recognized product type list filters
type ProductTypeFilters struct {
	Active       *bool
	ShowInNavbar *bool
	Search       string
}

// CreateProductType validates and persists a new product type, deriving the
// slug from the name when not supplied
func (r *CatalogRepository) CreateProductType(pt *ProductType) error {
	if strings.TrimSpace(pt.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if pt.Slug == "" {
		slug, err := uniqueSlug(r.db, &ProductType{}, pt.Name)
		if err != nil {
			return err
		}
		pt.Slug = slug
	}
	if err := r.db.Create(pt).Error; err != nil {
		if IsDuplicateErr(err) {
			return NewDuplicateError("slug")
		}
		return err
	}
	return nil
}

// ProductTypeByIDOrSlug resolves a product type from a numeric id or slug token
func (r *CatalogRepository) ProductTypeByIDOrSlug(token string) (*ProductType, error) {
	var pt ProductType
	if err := findByIDOrSlug(r.db.Preload("Categories").Preload("Tiles"), token, &pt); err != nil {
		return nil, err
	}
	return &pt, nil
}

// ListProductTypes returns product types ordered by display order then name
func (r *CatalogRepository) ListProductTypes(filters ProductTypeFilters) ([]ProductType, error) {
	query := r.db.Model(&ProductType{})
	if filters.Active != nil {
		query = query.Where("active = ?", *filters.Active)
	}
	if filters.ShowInNavbar != nil {
		query = query.Where("show_in_navbar = ?", *filters.ShowInNavbar)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var types []ProductType
	if err := query.Order("display_order ASC, name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// UpdateProductType applies a partial update. The slug is immutable.
func (r *CatalogRepository) UpdateProductType(id uint, updates map[string]interface{}) (*ProductType, error) {
	delete(updates, "slug")

	var pt ProductType
	if err := r.db.First(&pt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.Model(&pt).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &pt, nil
}

// DeleteProductType removes a product type. Dependent tiles, categories and
// projects keep existing with their product type reference nulled: the
// association is weak, unlike the category->tile ownership.
func (r *CatalogRepository) DeleteProductType(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var pt ProductType
		if err := tx.First(&pt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&Tile{}).Where("product_type_id = ?", id).
			Update("product_type_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&TileCategory{}).Where("product_type_id = ?", id).
			Update("product_type_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&Project{}).Where("product_type_id = ?", id).
			Update("product_type_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&pt).Error
	})
}

// CategoryFilters are the recognized category list filters
type CategoryFilters struct {
	Active      *bool
	ProductType string // id or slug
	Search      string
}

// CreateCategory validates and persists a new tile category
func (r *CatalogRepository) CreateCategory(category *TileCategory) error {
	if strings.TrimSpace(category.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if category.ProductTypeID != nil {
		var count int64
		if err := r.db.Model(&ProductType{}).Where("id = ?", *category.ProductTypeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &ValidationError{Field: "product_type", Message: "product type does not exist"}
		}
	}
	if category.Slug == "" {
		slug, err := uniqueSlug(r.db, &TileCategory{}, category.Name)
		if err != nil {
			return err
		}
		category.Slug = slug
	}
	if err := r.db.Create(category).Error; err != nil {
		if IsDuplicateErr(err) {
			return NewDuplicateError("slug")
		}
		return err
	}
	return nil
}

// CategoryByIDOrSlug resolves a category from a numeric id or slug token
func (r *CatalogRepository) CategoryByIDOrSlug(token string) (*TileCategory, error) {
	var category TileCategory
	if err := findByIDOrSlug(r.db.Preload("ProductType").Preload("Tiles"), token, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns categories ordered by display order then name
func (r *CatalogRepository) ListCategories(filters CategoryFilters) ([]TileCategory, error) {
	query := r.db.Model(&TileCategory{}).Preload("ProductType")
	if filters.Active != nil {
		query = query.Where("active = ?", *filters.Active)
	}
	if filters.ProductType != "" {
		pt, err := r.ProductTypeByIDOrSlug(filters.ProductType)
		if err != nil {
			return nil, err
		}
		query = query.Where("product_type_id = ?", pt.ID)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var categories []TileCategory
	if err := query.Order("display_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// UpdateCategory applies a partial update. The slug is immutable; a changed
// product type reference is re-validated.
func (r *CatalogRepository) UpdateCategory(id uint, updates map[string]interface{}) (*TileCategory, error) {
	delete(updates, "slug")

	var category TileCategory
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ptID, ok := updates["product_type_id"]; ok && ptID != nil {
		var count int64
		if err := r.db.Model(&ProductType{}).Where("id = ?", ptID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, &ValidationError{Field: "product_type", Message: "product type does not exist"}
		}
	}
	if len(updates) > 0 {
		if err := r.db.Model(&category).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &category, nil
}

// DeleteCategory removes a category together with its tiles and their images.
// The category strongly owns its tiles, so the delete cascades.
func (r *CatalogRepository) DeleteCategory(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category TileCategory
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var tileIDs []uint
		if err := tx.Model(&Tile{}).Where("category_id = ?", id).Pluck("id", &tileIDs).Error; err != nil {
			return err
		}
		if len(tileIDs) > 0 {
			if err := tx.Where("tile_id IN ?", tileIDs).Delete(&TileImage{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM project_tiles WHERE tile_id IN ?", tileIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", tileIDs).Delete(&Tile{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&category).Error
	})
}

// TileFilters are the recognized tile list filters
type TileFilters struct {
	InStock     *bool
	Category    string // id or slug
	ProductType string // id or slug
	Search      string
}

// CreateTile validates and persists a new tile. The slug derives from the
// title, the SKU is generated when absent, and the product type inherits from
// the category's product type when not explicitly set. The inheritance is
// established once here and never re-derived.
func (r *CatalogRepository) CreateTile(tile *Tile) error {
	if strings.TrimSpace(tile.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if tile.CategoryID == 0 {
		return &ValidationError{Field: "category", Message: "category is required"}
	}

	var category TileCategory
	if err := r.db.First(&category, tile.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ValidationError{Field: "category", Message: "category does not exist"}
		}
		return err
	}
	if tile.ProductTypeID == nil {
		tile.ProductTypeID = category.ProductTypeID
	}

	if tile.Slug == "" {
		slug, err := uniqueSlug(r.db, &Tile{}, tile.Title)
		if err != nil {
			return err
		}
		tile.Slug = slug
	}
	if tile.SKU == "" {
		tile.SKU = generateSKU()
	}

	if err := r.db.Create(tile).Error; err != nil {
		if IsDuplicateErr(err) {
			field := "slug"
			if strings.Contains(strings.ToLower(err.Error()), "sku") {
				field = "sku"
			}
			return NewDuplicateError(field)
		}
		return err
	}
	return nil
}

// TileByIDOrSlug resolves a tile with its relations from an id or slug token
func (r *CatalogRepository) TileByIDOrSlug(token string) (*Tile, error) {
	var tile Tile
	query := r.db.Preload("Category").Preload("ProductType").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, created_at ASC")
		})
	if err := findByIDOrSlug(query, token, &tile); err != nil {
		return nil, err
	}
	return &tile, nil
}

// ListTiles returns tiles ordered by creation time, newest first
func (r *CatalogRepository) ListTiles(filters TileFilters) ([]Tile, error) {
	query := r.db.Model(&Tile{}).Preload("Category").Preload("ProductType").Preload("Images")
	if filters.InStock != nil {
		query = query.Where("in_stock = ?", *filters.InStock)
	}
	if filters.Category != "" {
		category, err := r.CategoryByIDOrSlug(filters.Category)
		if err != nil {
			return nil, err
		}
		query = query.Where("category_id = ?", category.ID)
	}
	if filters.ProductType != "" {
		pt, err := r.ProductTypeByIDOrSlug(filters.ProductType)
		if err != nil {
			return nil, err
		}
		query = query.Where("product_type_id = ?", pt.ID)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(material) LIKE ?",
			pattern, pattern, pattern)
	}

	var tiles []Tile
	if err := query.Order("created_at DESC").Find(&tiles).Error; err != nil {
		return nil, err
	}
	return tiles, nil
}

// UpdateTile applies a partial update, re-validating only changed fields.
// Slug and SKU are immutable.
func (r *CatalogRepository) UpdateTile(id uint, updates map[string]interface{}) (*Tile, error) {
	delete(updates, "slug")
	delete(updates, "sku")

	var tile Tile
	if err := r.db.First(&tile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if categoryID, ok := updates["category_id"]; ok {
		var count int64
		if err := r.db.Model(&TileCategory{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, &ValidationError{Field: "category", Message: "category does not exist"}
		}
	}
	if len(updates) > 0 {
		if err := r.db.Model(&tile).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.TileByIDOrSlug(fmt.Sprint(tile.ID))
}

// DeleteTile removes a tile together with its images and project associations
func (r *CatalogRepository) DeleteTile(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var tile Tile
		if err := tx.First(&tile, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("tile_id = ?", id).Delete(&TileImage{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_tiles WHERE tile_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&tile).Error
	})
}

// AddTileImage attaches an uploaded image asset to a tile
func (r *CatalogRepository) AddTileImage(image *TileImage) error {
	if image.ImageKey == "" {
		return &ValidationError{Field: "image", Message: "image is required"}
	}
	var count int64
	if err := r.db.Model(&Tile{}).Where("id = ?", image.TileID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &ValidationError{Field: "tile", Message: "tile does not exist"}
	}
	return r.db.Create(image).Error
}

// TileImageByID resolves a tile image by id
func (r *CatalogRepository) TileImageByID(id uint) (*TileImage, error) {
	var image TileImage
	if err := r.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// DeleteTileImage removes a tile image row and returns it so the caller can
// clean up the stored asset
func (r *CatalogRepository) DeleteTileImage(id uint) (*TileImage, error) {
	image, err := r.TileImageByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// SetPrimaryTileImage flags the given image as the tile's primary image and
// clears the flag on all siblings within a single transaction. Concurrent
// calls serialize on the row updates: last committed wins, two primaries are
// never observable.
func (r *CatalogRepository) SetPrimaryTileImage(imageID uint) (*TileImage, error) {
	var image TileImage
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&image, imageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&TileImage{}).
			Where("tile_id = ? AND id <> ?", image.TileID, image.ID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&image).Update("is_primary", true).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}
