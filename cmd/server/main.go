// Package main initializes and starts the message board HTTP server,
// setting up configuration, logging, the database connection,
// repositories, services, handlers, and graceful shutdown.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/inikari/nglkawe/internal/config"
	"github.com/inikari/nglkawe/internal/db"
	"github.com/inikari/nglkawe/internal/logger"
	"github.com/inikari/nglkawe/internal/repository"
	"github.com/inikari/nglkawe/internal/server/handler/http"
	"github.com/inikari/nglkawe/internal/service"
	"github.com/inikari/nglkawe/internal/session"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Address

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Sessions are unforgeable only while the secret is private; refuse
	// to start without one.
	if options.SessionSecret == "" {
		zapLogger.Fatal("session secret is not configured")
	}
	sessionTTL, err := time.ParseDuration(options.SessionTTL)
	if err != nil {
		zapLogger.Fatal("invalid session TTL", zap.Error(err))
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer func() { _ = postgresDB.Close() }()

	// Initialize repositories for accounts and message logs.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	messageRepo := repository.NewPostgresMessageRepository(postgresDB)

	// Initialize business-logic services.
	accountService := service.NewAccountService(userRepo, service.NewBcryptHasher())
	messageService := service.NewMessageService(messageRepo)
	sessionManager := session.NewManager([]byte(options.SessionSecret), sessionTTL)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{Accounts: accountService, Sessions: sessionManager}
	dashboardHandler := &http.DashboardHandler{Messages: messageService}
	publicHandler := &http.PublicHandler{Accounts: accountService, Messages: messageService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, dashboardHandler, publicHandler, sessionManager, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	// Shut down cleanly on SIGINT/SIGTERM.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zapLogger.Error("server shutdown", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
	<-done
}
