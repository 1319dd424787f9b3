package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// AbortWithError writes a JSON error body and stops the handler chain
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// ErrorHandler recovers from panics and returns a JSON error response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				panicRecoveries.Inc()
				log.Printf("Error: %v (request %s %s, id %s)", err, c.Request.Method, c.Request.URL.Path, c.GetString(RequestIDKey))
				AbortWithError(c, http.StatusInternalServerError, "Internal Server Error")
			}
		}()

		c.Next()
	}
}
