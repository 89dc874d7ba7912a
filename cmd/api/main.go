// Package main is the catalog API server.
//
// @title                      Catalog API
// @version                    1.0
// @description                Users, Data records and priced Services with image uploads.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the JWT token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/api"
	"github.com/99minutos/catalog-api/internal/core/ports"
	"github.com/99minutos/catalog-api/internal/infrastructure/config"
	"github.com/99minutos/catalog-api/internal/infrastructure/db/memory"
	"github.com/99minutos/catalog-api/internal/infrastructure/db/mongo"
	"github.com/99minutos/catalog-api/internal/infrastructure/db/postgres"
	"github.com/99minutos/catalog-api/internal/infrastructure/storage"
	"github.com/99minutos/catalog-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "catalog-api",
	})

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()

	images, err := storage.NewDisk(cfg.Upload.Dir)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Store:         store,
		Images:        images,
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		MaxImageBytes: cfg.Upload.MaxBytes,
		BodyLimit:     cfg.BodyLimit,
		Log:           log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// openStore connects the configured Persistence Store and prepares its schema.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		dsn := cfg.Postgres.DSN()
		if err := postgres.Migrate(ctx, dsn, log); err != nil {
			return ports.Store{}, err
		}
		db, err := postgres.Connect(ctx, postgres.Config{
			DSN:      dsn,
			MaxConns: cfg.Postgres.MaxConns,
			Trace:    cfg.IsDevelopment(),
		}, log)
		if err != nil {
			return ports.Store{}, err
		}
		return postgres.NewStore(db), nil

	case config.DriverMongo:
		_, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return ports.Store{}, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = db.Client().Disconnect(ctx)
			return ports.Store{}, err
		}
		return mongo.NewStore(db, log), nil

	default:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return memory.NewStore(memory.New()), nil
	}
}
