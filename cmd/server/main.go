package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Clark-Hu/movie-space/internal/catalog"
	"github.com/Clark-Hu/movie-space/internal/config"
	"github.com/Clark-Hu/movie-space/internal/dashboard"
	httpserver "github.com/Clark-Hu/movie-space/internal/http"
	"github.com/Clark-Hu/movie-space/internal/repository"
	"github.com/Clark-Hu/movie-space/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[movie-space] ", log.LstdFlags|log.Lshortfile)

	backend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer backend.Close()

	if pg, ok := backend.(*store.Postgres); ok {
		expvar.Publish("database", expvar.Func(func() any { return pg.Stats() }))
	}

	repo := repository.New(backend, logger)
	credentials := catalog.NewCredentials(repo.Credential, cfg.TMDBAPIKey)

	client, err := catalog.NewHTTPClient(credentials, catalog.Options{
		BaseURL:  cfg.TMDBBaseURL,
		Language: cfg.TMDBLanguage,
		Timeout:  cfg.TMDBTimeout(),
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("init catalog client: %v", err)
	}

	dash, err := dashboard.New(client,
		dashboard.Lists{Bookmarks: repo.Bookmarks, History: repo.History},
		credentials,
		logger,
		dashboard.Options{Debounce: cfg.SearchDebounce()},
	)
	if err != nil {
		log.Fatalf("init dashboard: %v", err)
	}
	defer dash.Close()

	logger.Printf("storage driver %s, loading home", cfg.StorageDriver)
	dash.Start(ctx)

	server := httpserver.New(cfg, backend, dash, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func openBackend(ctx context.Context, cfg config.Config, logger *log.Logger) (store.Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return store.NewMemory(), nil
	case config.DriverRedis:
		redisCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return store.NewRedis(redisCtx, cfg.RedisURL, logger)
	case config.DriverPostgres:
		if err := store.Migrate(cfg.DBURL, logger); err != nil {
			return nil, err
		}
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return store.NewPostgres(dbCtx, cfg.DBURL, store.Options{
			MaxConns:               int32(cfg.DBMaxConns),
			MinConns:               int32(cfg.DBMinConns),
			MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
			MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
			ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
			StatementCacheCapacity: cfg.DBStatementCache,
			Logger:                 logger,
		})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
