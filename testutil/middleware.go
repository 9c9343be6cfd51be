package testutil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kasuganosora/coffeemon-seed/account"
)

// Request is one request handled by an AccountServer.
type Request struct {
	Method  string
	Path    string
	Status  int
	TraceID string
}

// traceRequests echoes the caller's trace id (or a fresh one) and records
// every request once it has been handled.
func (s *AccountServer) traceRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(account.TraceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Header(account.TraceHeader, traceID)
		c.Next()

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:  c.Request.Method,
			Path:    c.Request.URL.Path,
			Status:  c.Writer.Status(),
			TraceID: traceID,
		})
		s.mu.Unlock()
	}
}

// recoverJSON turns a handler panic into the service's 500 error body.
func recoverJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"statusCode": 500,
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
