package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-api/config"
	"github.com/pageza/recipe-api/internal/database"
	"github.com/pageza/recipe-api/internal/dataset"
	"github.com/pageza/recipe-api/internal/middleware"
	"github.com/pageza/recipe-api/internal/router"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	store  *dataset.Store
	redis  *redis.Client
}

// New creates a server over the given store. Updates are rate limited through
// Redis when it is configured and reachable, in process otherwise.
func New(ctx context.Context, cfg *config.Config, store *dataset.Store) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{store: store}

	var limiter middleware.Limiter
	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis for rate limiting: %v", err)
		} else {
			s.redis = client
			limiter = middleware.NewRecipeUpdateRateLimiter(client, cfg.RateLimit, cfg.RateLimitWindow)
		}
	}
	if limiter == nil {
		log.Printf("Using in-process rate limiting: %d updates per %v", cfg.RateLimit, cfg.RateLimitWindow)
		limiter = middleware.NewLocalRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	}

	s.router = router.SetupRouter(store, router.Options{
		UpdateLimiter:  limiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestLogging: !config.IsProduction(),
	})
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until Shutdown is called
func (s *Server) Start() error {
	log.Printf("Serving %d recipes on %s", s.store.Len(), s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and releases Redis
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
