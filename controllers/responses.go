package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/models"
	"github.com/tolatiles/tola-tiles-api/utils"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondData writes the standard success envelope
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondRepositoryError maps repository-layer errors onto the envelope:
// validation failures -> 400 with field detail, duplicates -> 409,
// not-found -> 404, anything else -> 500.
func respondRepositoryError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.As(err, &validationErr):
		status := http.StatusBadRequest
		code := "VALIDATION_ERROR"
		if validationErr.Duplicate {
			status = http.StatusConflict
			code = "DUPLICATE_" + toUpperSnake(validationErr.Field)
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": validationErr.Message,
				"field":   validationErr.Field,
			},
		})
	default:
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "An internal error occurred")
	}
}

func toUpperSnake(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		out = append(out, ch)
	}
	return string(out)
}
