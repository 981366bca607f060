// Package app contains the application setup for the inventory service.
package app

import (
	"log/slog"
	"net/http"
	"os"

	"stockroom/internal/config"
	"stockroom/internal/service"
	"stockroom/internal/store"
	"stockroom/internal/transport/rest"
	"stockroom/pkg/server"

	"github.com/go-chi/chi/v5"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

func SetupDependencies(productStore store.ProductStore, logger *slog.Logger) *Dependencies {
	pService := service.NewService(productStore)

	return &Dependencies{
		ProductService: pService,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the inventory service.
// Also used by tests to exercise the full middleware and routing stack.
func SetupHttpHandler(deps *Dependencies, staticDir string) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps, staticDir)
	return mux
}

// wireRoutes sets up the HTTP routes for the inventory service.
func wireRoutes(mux *chi.Mux, deps *Dependencies, staticDir string) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)

	// The browser client is served from the same listener as the API.
	if staticDir != "" {
		if _, err := os.Stat(staticDir); err != nil {
			deps.Logger.Warn("Static directory not found, static serving disabled", "dir", staticDir)
			return
		}
		mux.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}
}

// SetupHttpServer creates and configures an HTTP server for the inventory service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps, cfg.Static.Dir)

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
