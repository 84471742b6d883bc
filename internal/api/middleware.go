package api

import (
	"net/http"
	"strconv"

	"alcyxob/gym-buddy/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// RequestID attaches a request id to every request, honoring one supplied
// by the caller, and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RateLimit gates requests through the injected limiter, keyed by client IP.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := limiter.Check(c.Request.Context(), c.ClientIP())
		if err != nil {
			logrus.WithError(err).Error("rate limiter check failed")
			respondError(c, http.StatusInternalServerError, errorCategoryInternal, "Internal server error.", nil)
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		if !res.Allowed {
			respondError(c, http.StatusTooManyRequests, errorCategoryRateLimited, "Too many requests, slow down.", nil)
			return
		}
		c.Next()
	}
}
