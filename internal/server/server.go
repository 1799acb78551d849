// Package server boots the storefront HTTP server: config, Mongo, indexes,
// Redis, routes, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aurigalabs/storefront/app/routes"
	"github.com/aurigalabs/storefront/config"
	"github.com/aurigalabs/storefront/pkg/cache"
	"github.com/aurigalabs/storefront/pkg/database"
	"github.com/aurigalabs/storefront/pkg/logger"
	"github.com/aurigalabs/storefront/pkg/router"
)

const shutdownGrace = 10 * time.Second

// Start boots every subsystem and blocks until SIGINT/SIGTERM or a listener
// error.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	// In production, fan logs out to a MongoDB sink alongside stdout.
	// A dead sink is non-fatal; stdout still carries every record.
	switch config.AppEnv() {
	case "production", "prod":
		collection := config.Get("LOG_COLLECTION", "logs")
		if err := logger.AttachMongo(config.MongoURI(), config.MongoDatabase(), collection); err != nil {
			logger.Warn("server: mongo log sink unavailable, stdout only", "error", err)
		} else {
			defer logger.CloseMongo()
		}
	}

	ctx := context.Background()
	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Disconnect(context.Background()) //nolint:errcheck

	if err := database.EnsureIndexes(ctx); err != nil {
		return err
	}

	// Redis is optional: a dead cache degrades to pass-through.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, caching disabled", "error", err)
	}

	r := router.New()
	routes.RegisterAPI(r)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
