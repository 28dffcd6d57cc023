package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/staffdir/directory-api/internal/api"
	"github.com/staffdir/directory-api/internal/infrastructure/config"
	mongostore "github.com/staffdir/directory-api/internal/infrastructure/db/mongo"
	redisstore "github.com/staffdir/directory-api/internal/infrastructure/db/redis"
	"github.com/staffdir/directory-api/internal/infrastructure/queue"
	"github.com/staffdir/directory-api/pkg/logger"
)

// @title           Directory API
// @version         1.0
// @description     Multi-tenant user and company directory with JWT authentication and role-based access control.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.New(cfg.Env, cfg.LogLevel)
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("starting directory-api")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb indexes")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection")
	}
	defer rdb.Close()

	dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, mongostore.NewAuditRepository(db), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
