// Package app contains the application setup for the catalog service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rlagos/catalog-api/internal/catalog/config"
	"github.com/rlagos/catalog-api/internal/catalog/handler"
	"github.com/rlagos/catalog-api/internal/catalog/service"
	"github.com/rlagos/catalog-api/internal/catalog/store"
	"github.com/rlagos/catalog-api/pkg/server"
	"github.com/rlagos/catalog-api/pkg/telemetry"
)

type Dependencies struct {
	ProductService service.ProductService
	Metrics        *telemetry.HTTPMetrics
	Logger         *slog.Logger
}

func SetupDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	var seed []store.Product
	if cfg.Catalog.Seed {
		seed = store.DefaultCatalog()
	}
	pService := service.NewService(store.NewInMemoryStore(seed...))

	return &Dependencies{
		ProductService: pService,
		Metrics:        telemetry.NewHTTPMetrics(),
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the router and routes for the catalog service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	mux.Use(deps.Metrics.Middleware)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the catalog service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := handler.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
	mux.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
