package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/app"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/config"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/pkg/logger"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log = logger.NewWithConfig(cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.NoColor)

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	go func() {
		if err := application.Run(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run application")
		}
	}()

	log.Info().Msgf("Campus portal started on %s", cfg.Server.Address)

	<-ctx.Done()
	log.Info().Msg("Shutting down campus portal...")

	if err := application.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown gracefully")
	}

	log.Info().Msg("Campus portal stopped")
}
