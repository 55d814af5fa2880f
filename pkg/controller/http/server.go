package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prodsync/pdgate/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	downloadUC interfaces.DownloadUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	v, err := newValidator(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request validator")
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)
	router.Get("/health/ready", handleReady(downloadUC))
	router.Get("/openapi.json", v.handleSpec)

	// Download endpoints
	downloadHandler := &DownloadHandler{uc: downloadUC, validator: v}
	router.Post("/prepare-download", downloadHandler.PrepareDownload)
	router.Post("/prepare_download_file", downloadHandler.PrepareDownload)
	router.Post("/get-download-file", downloadHandler.GetDownloadFile)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
