package models

import (
	"time"
)

// TileImage is an image asset attached to a tile. At most one image per tile
// carries IsPrimary; the flag is only flipped through
// CatalogRepository.SetPrimaryTileImage so the exclusivity invariant holds.
type TileImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TileID       uint      `gorm:"not null;index" json:"tile_id"`
	Tile         Tile      `gorm:"foreignKey:TileID" json:"-"`
	ImageKey     string    `gorm:"not null" json:"image"`
	ThumbnailKey string    `json:"thumbnail"`
	Caption      string    `json:"caption"`
	IsPrimary    bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the TileImage model
func (TileImage) TableName() string {
	return "tile_images"
}
