package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/models"
	"github.com/tolatiles/tola-tiles-api/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupIntegrationEnv(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	config.SetDB(db)
	config.SetConfig(&config.Config{
		Port:            "8080",
		GoEnv:           "test",
		PublicBaseURL:   "http://testserver",
		UploadDir:       t.TempDir(),
		MaxUploadSizeMB: 10,
	})
	services.NewMockImageService().SetAsMockForTesting()
	return db
}

func jsonRequest(router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

// TestAdminCatalogWorkflow exercises the full staff workflow end to end:
// login, build out a catalog branch, then read it back anonymously.
func TestAdminCatalogWorkflow(t *testing.T) {
	db := setupIntegrationEnv(t)
	router := setupRouter()

	admin := models.User{Username: "admin", Email: "admin@tolatiles.com", IsStaff: true}
	assert.NoError(t, admin.SetPassword("admin-password"))
	assert.NoError(t, db.Create(&admin).Error)

	// Login
	w, response := jsonRequest(router, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"username": "admin",
		"password": "admin-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	token := response["data"].(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)

	// Create a product type
	w, response = jsonRequest(router, "POST", "/api/v1/product-types", token, map[string]interface{}{
		"name":           "Pavers",
		"show_in_navbar": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	productTypeID := response["data"].(map[string]interface{})["id"]

	// Create a category under it
	w, response = jsonRequest(router, "POST", "/api/v1/categories", token, map[string]interface{}{
		"name":         "Travertine",
		"product_type": productTypeID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	categoryID := response["data"].(map[string]interface{})["id"]

	// Create a tile; product type is inherited from the category
	w, response = jsonRequest(router, "POST", "/api/v1/tiles", token, map[string]interface{}{
		"title":    "Ivory Blend",
		"category": categoryID,
		"price":    "6.49",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	tileData := response["data"].(map[string]interface{})
	assert.Equal(t, productTypeID, tileData["product_type"])

	// Anonymous clients can browse the result by slug
	w, response = jsonRequest(router, "GET", "/api/v1/tiles/ivory-blend", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ivory Blend", response["data"].(map[string]interface{})["title"])

	// But cannot write
	w, _ = jsonRequest(router, "POST", "/api/v1/tiles", "", map[string]interface{}{
		"title":    "Unauthorized",
		"category": categoryID,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestPublicContactAndNewsletterFlow exercises the anonymous write surface
func TestPublicContactAndNewsletterFlow(t *testing.T) {
	setupIntegrationEnv(t)
	router := setupRouter()

	w, _ := jsonRequest(router, "POST", "/api/v1/contacts", "", map[string]interface{}{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "Do you serve Orlando?",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = jsonRequest(router, "POST", "/api/v1/newsletter/subscribe", "", map[string]interface{}{
		"email": "visitor@example.com",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, response := jsonRequest(router, "POST", "/api/v1/newsletter/subscribe", "", map[string]interface{}{
		"email": "visitor@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	errObj := response["error"].(map[string]interface{})
	assert.Equal(t, "ALREADY_SUBSCRIBED", errObj["code"])
}

// TestSanitizationOnPublicWrites verifies markup is stripped before storage
func TestSanitizationOnPublicWrites(t *testing.T) {
	db := setupIntegrationEnv(t)
	router := setupRouter()

	w, _ := jsonRequest(router, "POST", "/api/v1/contacts", "", map[string]interface{}{
		"name":    `<script>alert("xss")</script>Visitor`,
		"email":   "visitor@example.com",
		"message": "Hello <b>there</b>",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var contact models.Contact
	assert.NoError(t, db.First(&contact).Error)
	assert.Equal(t, "Visitor", contact.Name)
	assert.Equal(t, "Hello there", contact.Message)
}
