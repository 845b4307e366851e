package main

import (
	"errors"
	"fmt"

	"github.com/fgiusti90/psico-app/config"
	"github.com/fgiusti90/psico-app/endpoint"
	"github.com/fgiusti90/psico-app/util"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	log := setupLogger()

	if cfg.JWTSecret == "" {
		err := errors.New("JWTSECRET is required")
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	db, err := openDatabase(log)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.DBDriver).Msg("database setup failed")
		return err
	}

	rdb, err := config.ConnectRedis()
	if err != nil {
		// The rate limiter lets traffic through without Redis.
		log.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
	} else if rdb != nil {
		log.Info().Msg("redis connected")
	}

	util.SetAuditLogger(log)
	util.SetAuditLoggerDB(db)
	util.InitInflationCache(cfg.InflationCacheTTL)
	endpoint.SetLogger(log)

	gin.SetMode(cfg.GinMode)
	router := newRouter(db, cfg)

	address := fmt.Sprintf(":%d", cfg.AppPort)
	log.Info().Str("app", cfg.AppName).Str("env", cfg.AppEnv).Str("address", address).Msg("starting server")
	if err := router.Run(address); err != nil {
		log.Error().Err(err).Msg("error starting server")
		return err
	}
	return nil
}
