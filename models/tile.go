package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tile represents a single catalog product. The category relation is
// required; the product type defaults from the category's product type at
// creation and is never re-derived afterwards.
type Tile struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"not null" json:"title"`
	Slug          string          `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string          `gorm:"type:text" json:"description"`
	CategoryID    uint            `gorm:"not null;index" json:"category"`
	Category      TileCategory    `gorm:"foreignKey:CategoryID" json:"-"`
	ProductTypeID *uint           `gorm:"index" json:"product_type"`
	ProductType   *ProductType    `gorm:"foreignKey:ProductTypeID" json:"-"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Size          string          `json:"size"`
	Material      string          `json:"material"`
	InStock       bool            `gorm:"default:true" json:"in_stock"`
	SKU           string          `gorm:"uniqueIndex;not null" json:"sku"`
	Images        []TileImage     `gorm:"foreignKey:TileID" json:"-"`
	Projects      []Project       `gorm:"many2many:project_tiles" json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Tile model
func (Tile) TableName() string {
	return "tiles"
}
