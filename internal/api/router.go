package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Property-Investment-Calculator-Backend/internal/api/middleware"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/logging"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/service"
)

// Services groups the services the router dispatches to.
type Services struct {
	Analysis  *service.AnalysisService
	Portfolio *service.PortfolioService
	System    *service.SystemService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, allowedOrigins []string, logger *logging.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(allowedOrigins)
	r.Use(corsMiddleware.Handler)

	analysisHandler := handlers.NewAnalysisHandler(services.Analysis)
	portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
	systemHandler := handlers.NewSystemHandler(services.System)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/", analysisHandler.Root)
		r.Post("/analyze", analysisHandler.Analyze)
		r.Get("/analyses", analysisHandler.ListAnalyses)
		r.With(custommiddleware.ValidateUUIDMiddleware).Get("/analysis/{uuid}", analysisHandler.GetAnalysis)

		r.Post("/save-analysis", portfolioHandler.SaveAnalysis)
		r.Get("/portfolio", portfolioHandler.Portfolio)

		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})
	})

	return r
}
