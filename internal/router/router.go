package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-api/internal/api"
	"github.com/pageza/recipe-api/internal/dataset"
	"github.com/pageza/recipe-api/internal/middleware"
)

// Options tunes the router beyond its required collaborators
type Options struct {
	// UpdateLimiter rate limits recipe updates; nil disables limiting
	UpdateLimiter middleware.Limiter
	// AllowedOrigins for CORS; empty uses the development defaults
	AllowedOrigins []string
	// RequestLogging enables gin's per-request logger
	RequestLogging bool
}

// SetupRouter configures the application routes
func SetupRouter(store *dataset.Store, opts Options) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(api.NotFound)
	router.NoMethod(api.MethodNotAllowed)

	router.Use(
		middleware.Metrics(),
		middleware.RequestID(),
		middleware.ErrorHandler(),
		middleware.CORS(opts.AllowedOrigins...),
	)
	if opts.RequestLogging {
		router.Use(gin.Logger())
	}

	api.RegisterRoutes(router, store, opts.UpdateLimiter)

	return router
}
