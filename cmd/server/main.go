package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/teamsite/internal/config"
	"github.com/teamsite/internal/db"
	"github.com/teamsite/internal/logger"
	"github.com/teamsite/internal/router"
	"github.com/teamsite/internal/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabaseURL, cfg.DatabasePath); err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to initialize database")
	}

	if err := db.EnsureUser(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to ensure admin user")
	}

	store, err := storage.FromConfig(context.Background(), cfg)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to initialize blob store")
	}

	r := router.Setup(cfg, store)
	logger.Get().Info().Str("addr", cfg.ListenAddr).Msg("starting server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to run server")
	}
}
