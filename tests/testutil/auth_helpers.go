package testutil

import (
	"testing"

	"github.com/tolatiles/tola-tiles-api/models"
	"gorm.io/gorm"
)

// CreateStaffUser inserts a staff account with the given credentials and
// returns it alongside a live token key for Authorization headers.
func CreateStaffUser(t *testing.T, db *gorm.DB, username, password string) (*models.User, string) {
	t.Helper()

	user := models.User{Username: username, Email: username + "@tolatiles.com", IsStaff: true}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create staff user: %v", err)
	}

	token, err := models.GetOrCreateToken(db, user.ID)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return &user, token.Key
}

// CreateCustomerUser inserts a non-staff account and returns it with a
// token key.
func CreateCustomerUser(t *testing.T, db *gorm.DB, username, password string) (*models.User, string) {
	t.Helper()

	user := models.User{Username: username, Email: username + "@example.com"}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	token, err := models.GetOrCreateToken(db, user.ID)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return &user, token.Key
}
