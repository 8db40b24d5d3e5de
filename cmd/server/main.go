package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guoguo/blog-backend/internal/config"
	"github.com/guoguo/blog-backend/internal/db"
	"github.com/guoguo/blog-backend/internal/handler"
	"github.com/guoguo/blog-backend/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := newLogger(cfg.LogLevel)
	log.Info().Msg("starting blog backend server")

	gin.SetMode(cfg.GinMode)

	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	if cfg.RootUserName != "" && cfg.RootUserPassword != "" {
		if err := db.EnsureUser(gdb, cfg.RootUserName, cfg.RootUserPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure root user")
		}
	}

	api := handler.NewAPI(gdb, log)
	r := router.SetupRouter(api, log)

	log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	logLevel := zerolog.InfoLevel
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}

	return zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", "blog-backend").
		Logger()
}
