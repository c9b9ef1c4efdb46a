package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/config"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/delivery/httpd"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/server"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/service/integration"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/store"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/view"
	"github.com/rs/zerolog"
)

type App struct {
	server   *server.Server
	rabbitMQ integration.RabbitMQClient
	logger   zerolog.Logger
	config   *config.Config
}

func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	api := integration.NewAPIClient(integration.APIClientConfig{
		BaseURL:          cfg.API.URL,
		StudentsEndpoint: cfg.API.StudentsEndpoint,
		CampusesEndpoint: cfg.API.CampusesEndpoint,
		Timeout:          cfg.API.Timeout,
		RetryCount:       cfg.API.RetryCount,
		RetryDelay:       cfg.API.RetryDelay,
		MaxIdleConns:     cfg.API.MaxIdleConns,
		IdleConnTimeout:  cfg.API.IdleConnTimeout,
	}, log)

	var opts []store.Option
	var rabbitMQ integration.RabbitMQClient
	if cfg.RabbitMQ.Enabled {
		client, err := integration.NewRabbitMQClient(integration.RabbitMQConfig{
			URL:               cfg.RabbitMQ.URL,
			Exchange:          cfg.RabbitMQ.Exchange,
			StudentRoutingKey: cfg.RabbitMQ.StudentRoutingKey,
			CampusRoutingKey:  cfg.RabbitMQ.CampusRoutingKey,
		}, log)
		if err != nil {
			// edits still work without events
			log.Warn().Err(err).Msg("RabbitMQ unavailable, edit events disabled")
		} else {
			rabbitMQ = client
			opts = append(opts, store.WithEventPublisher(client))
		}
	}

	st := store.New(api, log, opts...)

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	h := httpd.NewHandler(st, renderer, log)

	srv := server.NewServer(server.ServerConfig{
		Address:         cfg.Server.Address,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		RequestTimeout:  cfg.Server.RequestTimeout,
		CORS: server.CORSConfig{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			ExposedHeaders:   cfg.CORS.ExposedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		},
	}, h, log)

	return &App{
		server:   srv,
		rabbitMQ: rabbitMQ,
		logger:   log,
		config:   cfg,
	}, nil
}

// Handler returns the fully wired HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

func (a *App) Run() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)

	if a.rabbitMQ != nil {
		if cerr := a.rabbitMQ.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("Failed to close RabbitMQ connection")
		}
	}

	return err
}
