package api

import "github.com/gin-gonic/gin"

// Stable machine-checkable error categories.
const (
	errorCategoryValidation       = "validation_error"
	errorCategoryNotFound         = "not_found"
	errorCategoryConflict         = "conflict"
	errorCategoryRateLimited      = "rate_limited"
	errorCategoryMethodNotAllowed = "method_not_allowed"
	errorCategoryInternal         = "internal_error"
)

// ErrorResponse is the error body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, category, message string, details any) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   category,
		Message: message,
		Details: details,
	})
}
