package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/middleware"
	"github.com/tolatiles/tola-tiles-api/models"
	"github.com/tolatiles/tola-tiles-api/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupControllerTest(t *testing.T) *gorm.DB {
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

	mock := services.NewMockImageService()
	mock.SetAsMockForTesting()

	return db
}

func createStaffUser(t *testing.T, db *gorm.DB) (*models.User, string) {
	t.Helper()
	user := models.User{Username: "admin", Email: "admin@example.com", IsStaff: true}
	if err := user.SetPassword("admin-password"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create staff user: %v", err)
	}
	token, err := models.GetOrCreateToken(db, user.ID)
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}
	return &user, token.Key
}

func createRegularUser(t *testing.T, db *gorm.DB, username string) (*models.User, string) {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com"}
	if err := user.SetPassword("user-password"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	token, err := models.GetOrCreateToken(db, user.ID)
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}
	return &user, token.Key
}

// performJSON issues a JSON request against the handler chain and returns
// the recorder and decoded envelope
func performJSON(router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
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

// catalogRouter wires the catalog and portfolio routes the way the server does
func catalogRouter() *gin.Engine {
	router := gin.New()
	v1 := router.Group("/api/v1")

	v1.GET("/product-types", ListProductTypes)
	v1.GET("/product-types/:id", GetProductType)
	v1.GET("/categories", ListCategories)
	v1.GET("/categories/:id", GetCategory)
	v1.GET("/tiles", ListTiles)
	v1.GET("/tiles/:id", GetTile)
	v1.GET("/projects", ListProjects)
	v1.GET("/projects/:id", GetProject)
	v1.GET("/testimonials", middleware.OptionalAuth(), ListTestimonials)
	v1.GET("/testimonials/:id", middleware.OptionalAuth(), GetTestimonial)
	v1.POST("/testimonials", middleware.OptionalAuth(), CreateTestimonial)

	staff := v1.Group("", middleware.RequireAuth(), middleware.RequireStaff())
	{
		staff.POST("/product-types", CreateProductType)
		staff.PUT("/product-types/:id", UpdateProductType)
		staff.DELETE("/product-types/:id", DeleteProductType)
		staff.POST("/categories", CreateCategory)
		staff.POST("/tiles", CreateTile)
		staff.PUT("/tiles/:id", UpdateTile)
		staff.DELETE("/tiles/:id", DeleteTile)
		staff.POST("/tiles/:id/images", UploadTileImage)
		staff.POST("/tile-images/:id/set-primary", SetPrimaryTileImage)
		staff.POST("/projects", CreateProject)
		staff.POST("/testimonials/:id/approve", ApproveTestimonial)
	}
	return router
}

// dataOf extracts the data object from a success envelope
func dataOf(t *testing.T, response map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Response has no data object: %v", response)
	}
	return data
}

// listOf extracts the data array from a success envelope
func listOf(t *testing.T, response map[string]interface{}) []interface{} {
	t.Helper()
	data, ok := response["data"].([]interface{})
	if !ok {
		t.Fatalf("Response has no data array: %v", response)
	}
	return data
}

// errorCode extracts the error code from an error envelope
func errorCode(response map[string]interface{}) string {
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}
