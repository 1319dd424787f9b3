package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/recipe-api/internal/dataset"
	"github.com/pageza/recipe-api/internal/middleware"
)

// HealthCheck returns the health status of the API
func HealthCheck(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"recipes": store.Len(),
		})
	}
}

// NotFound answers requests for routes that do not exist
func NotFound(c *gin.Context) {
	middleware.AbortWithError(c, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed answers known routes called with an unsupported verb
func MethodNotAllowed(c *gin.Context) {
	middleware.AbortWithError(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// RegisterRoutes registers all API routes. A nil updateLimiter disables
// rate limiting of recipe updates.
func RegisterRoutes(router *gin.Engine, store *dataset.Store, updateLimiter middleware.Limiter) {
	router.GET("/health", HealthCheck(store))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var updateMiddleware []gin.HandlerFunc
	if updateLimiter != nil {
		updateMiddleware = append(updateMiddleware, middleware.PerRecipeRateLimit(updateLimiter))
	}

	NewRecipeHandler(store).RegisterRoutes(router, updateMiddleware...)
	NewSearchHandler(store).RegisterRoutes(router)
}
