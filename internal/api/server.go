package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/openhorizon/seed-backend/internal/api/docs"
	elaborationapi "github.com/openhorizon/seed-backend/internal/api/elaboration"
	"github.com/openhorizon/seed-backend/internal/api/middleware"
	seedapi "github.com/openhorizon/seed-backend/internal/api/seed"
	"github.com/openhorizon/seed-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(seedHandler *seedapi.Handler, elaborationHandler *elaborationapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	seedapi.RegisterRoutes(r, seedHandler)
	elaborationapi.RegisterRoutes(r, elaborationHandler)

	return r
}
