package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Routes is anything that can register the portal pages on a router.
type Routes interface {
	RegisterRoutes(router chi.Router)
}

type ServerConfig struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	CORS            CORSConfig
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type Server struct {
	server          *http.Server
	router          *chi.Mux
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

// NewServer builds the middleware chain and registers routes behind it.
func NewServer(cfg ServerConfig, routes Routes, logger zerolog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.StripSlashes)
	router.Use(chimw.CleanPath)
	router.Use(chimw.GetHead)
	router.Use(chimw.Compress(5))
	router.Use(cors.Handler(corsOptions(cfg.CORS)))
	router.Use(middleware.Timeout(cfg.RequestTimeout))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))

	routes.RegisterRoutes(router)

	return &Server{
		server: &http.Server{
			Addr:         cfg.Address,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		router:          router,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
}

// corsOptions fills what the config leaves out with what the portal's
// forms need: same-origin GET and POST with form-encoded bodies.
func corsOptions(cfg CORSConfig) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if len(opts.AllowedMethods) == 0 {
		opts.AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	if len(opts.AllowedHeaders) == 0 {
		opts.AllowedHeaders = []string{"Accept", "Content-Type"}
	}
	if opts.MaxAge == 0 {
		opts.MaxAge = 300
	}
	return opts
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.server.Addr).Msg("Starting server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, bounded by the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}

	s.logger.Info().Dur("timeout", s.shutdownTimeout).Msg("Shutting down server")
	return s.server.Shutdown(ctx)
}
