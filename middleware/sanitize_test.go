package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func sanitizeTestRouter() (*gin.Engine, *map[string]interface{}) {
	gin.SetMode(gin.TestMode)
	received := map[string]interface{}{}
	router := gin.New()
	router.POST("/submit", SanitizeInput(), func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		_ = json.Unmarshal(body, &received)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router, &received
}

func TestSanitizeStripsMarkup(t *testing.T) {
	router, received := sanitizeTestRouter()

	payload, _ := json.Marshal(map[string]interface{}{
		"name":    `<script>alert("xss")</script>Visitor`,
		"message": "Hello <b>there</b>",
		"rating":  5,
	})
	req := httptest.NewRequest("POST", "/submit", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Visitor", (*received)["name"])
	assert.Equal(t, "Hello there", (*received)["message"])
	// Non-string fields pass through untouched
	assert.Equal(t, float64(5), (*received)["rating"])
}

func TestSanitizeRejectsMalformedJSON(t *testing.T) {
	router, _ := sanitizeTestRouter()

	req := httptest.NewRequest("POST", "/submit", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestSanitizeIgnoresNonJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/upload", SanitizeInput(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req := httptest.NewRequest("POST", "/upload", bytes.NewBufferString("raw bytes"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSanitizeSkipsGET(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/read", SanitizeInput(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req := httptest.NewRequest("GET", "/read", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
