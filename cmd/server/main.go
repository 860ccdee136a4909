package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetworks/account-service/internal/api"
	"github.com/fleetworks/account-service/internal/core/service"
	"github.com/fleetworks/account-service/internal/infrastructure/config"
	mongostore "github.com/fleetworks/account-service/internal/infrastructure/db/mongo"
	redisstore "github.com/fleetworks/account-service/internal/infrastructure/db/redis"
	"github.com/fleetworks/account-service/internal/infrastructure/email"
	"github.com/fleetworks/account-service/internal/infrastructure/queue"
	"github.com/fleetworks/account-service/pkg/logger"

	_ "github.com/fleetworks/account-service/docs"
)

// @title        Account Service API
// @version      1.0
// @description  Account credential and lifecycle management service.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Signing-key absence is a startup failure, never a per-request error.
	issuer, err := service.NewTokenIssuer(cfg.JWTSecret, service.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer init failed")
	}

	mongoClient, db, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = rdb.Close() }()

	accounts := mongostore.NewAccountRepository(db)
	if err := accounts.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index setup failed")
	}
	history := mongostore.NewLoginHistoryRepository(db)
	sessions := redisstore.NewSessionStore(rdb)

	mailer := email.NewSMTPMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	dispatcher := queue.NewDispatcher(0, mailer, log)
	dispatcher.Start(ctx)

	auditor := service.NewAuditService(history, sessions, log)
	authService := service.NewAuthService(accounts, issuer, auditor, dispatcher, cfg.BaseURL, log)
	adminService := service.NewAccountAdminService(accounts, log)

	e := api.NewRouter(api.RouterDeps{
		Auth:          authService,
		Admin:         adminService,
		Issuer:        issuer,
		Mongo:         db,
		Redis:         rdb,
		Logger:        log,
		SecureCookies: cfg.IsProduction(),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("account service started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("account service stopped")
}
