package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError is one field-level validation failure.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": message})
}

// RespondWithValidation writes a 422 listing every invalid field.
func RespondWithValidation(c *gin.Context, fields []FieldError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"detail": "Validation failed",
		"errors": fields,
	})
}
