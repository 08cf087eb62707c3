package models

import (
	"gorm.io/gorm"
)

// AllModels lists every persisted entity, in dependency order, for migration
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&UserProfile{},
		&AuthToken{},
		&ProductType{},
		&TileCategory{},
		&Tile{},
		&TileImage{},
		&Project{},
		&ProjectImage{},
		&TeamMember{},
		&CustomerTestimonial{},
		&Contact{},
		&Subscriber{},
		&Conversation{},
		&Message{},
	}
}

// AutoMigrate migrates the full schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
