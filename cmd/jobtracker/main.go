package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/jobtracker/tracker-web/internal/api"
	"github.com/jobtracker/tracker-web/internal/api/handler"
	"github.com/jobtracker/tracker-web/internal/api/metrics"
	"github.com/jobtracker/tracker-web/internal/api/view"
	"github.com/jobtracker/tracker-web/internal/core/domain"
	"github.com/jobtracker/tracker-web/internal/core/ports"
	"github.com/jobtracker/tracker-web/internal/core/service"
	mongostore "github.com/jobtracker/tracker-web/internal/infrastructure/db/mongo"
	redisstore "github.com/jobtracker/tracker-web/internal/infrastructure/db/redis"
	"github.com/jobtracker/tracker-web/internal/infrastructure/tokenstore"
	"github.com/jobtracker/tracker-web/internal/infrastructure/trackerapi"
	"github.com/jobtracker/tracker-web/internal/pkg/config"
	"github.com/jobtracker/tracker-web/pkg/logger"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "jobtracker",
	})
	log := logger.Get()
	if envErr != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("jobtracker stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	tokens, closeStore, err := openTokenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client, err := trackerapi.New(trackerapi.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		Transport: metrics.InstrumentTransport(nil),
	})
	if err != nil {
		return err
	}

	updateStatus := domain.JobStatus(cfg.API.UpdateStatus)
	svc := service.NewTrackerService(client, tokens, logger.For("tracker"),
		service.WithDefaultStatus(updateStatus),
		service.WithRecorder(metrics.Recorder{}),
	)

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	checkers := []handler.Checker{client}
	if c, ok := tokens.(handler.Checker); ok {
		checkers = append(checkers, c)
	}

	e := api.NewRouter(api.Deps{
		Service:      svc,
		Renderer:     renderer,
		UpdateStatus: updateStatus,
		Checkers:     checkers,
		Log:          logger.For("http"),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", "http://"+cfg.Addr).
			Str("api", cfg.API.BaseURL).
			Str("token_store", cfg.Tokens.Backend).
			Str("env", cfg.Env).
			Msg("page server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("shutting down page server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("page server stopped")
	return nil
}

// openTokenStore builds the configured backend and a func releasing it.
func openTokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, func(), error) {
	switch cfg.Tokens.Backend {
	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		store := redisstore.NewTokenStore(client, cfg.Tokens.Profile)
		return store, func() { _ = store.Close() }, nil

	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}
		return mongostore.NewTokenStore(db, cfg.Tokens.Profile), closeFn, nil

	default:
		path := cfg.Tokens.File
		if path == "" {
			p, err := tokenstore.DefaultPath(cfg.Tokens.Profile)
			if err != nil {
				return nil, nil, err
			}
			path = p
		}
		return tokenstore.NewFile(path), func() {}, nil
	}
}
