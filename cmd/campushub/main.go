// Command campushub serves the Campus Event Hub API.
//
//go:generate swag init -g cmd/campushub/main.go -d ../../ -o ../../docs
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/event-hub/internal/api"
	"github.com/campushub/event-hub/internal/api/handler"
	"github.com/campushub/event-hub/internal/core/ports"
	"github.com/campushub/event-hub/internal/core/service"
	"github.com/campushub/event-hub/internal/infrastructure/activity"
	"github.com/campushub/event-hub/internal/infrastructure/config"
	"github.com/campushub/event-hub/internal/infrastructure/db/memory"
	mongostore "github.com/campushub/event-hub/internal/infrastructure/db/mongo"
	redisstore "github.com/campushub/event-hub/internal/infrastructure/db/redis"
	"github.com/campushub/event-hub/pkg/logger"
)

// @title                       Campus Event Hub API
// @version                     1.0.0
// @description                 Campus event catalog and student registrations.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.MustLoad()
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "campushub",
		Version: handler.Version,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

type stores struct {
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	users         ports.AuthRepository
	health        map[string]handler.Checker
	close         func(context.Context)
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		st.close(closeCtx)
	}()

	guard, closeGuard := openGuard(ctx, cfg, log, st.health)
	defer closeGuard()

	auth := service.NewAuthService(st.users, cfg.JWTSecret, cfg.TokenTTL)
	router := api.NewRouter(api.Deps{
		Events:             service.NewEventService(st.events, log),
		Registrations:      service.NewRegistrationService(st.registrations, st.events, guard, log),
		Auth:               auth,
		Verifier:           auth,
		Activity:           activity.New(cfg.ActivityCapacity),
		Health:             st.health,
		Logger:             log,
		EventMutationRoles: cfg.EventMutationRoles,
		CORSAllowOrigins:   cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openGuard connects the registration guard. Redis is best-effort: when it is
// disabled or unreachable the returned guard is nil and duplicate registrations
// are rejected by the store's unique index alone.
func openGuard(ctx context.Context, cfg *config.Config, log zerolog.Logger, health map[string]handler.Checker) (ports.RegistrationGuard, func()) {
	if !cfg.Redis.Enabled {
		log.Warn().Msg("redis disabled: duplicate registrations rely on the store alone")
		return nil, func() {}
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable: running without registration guard")
		return nil, func() {}
	}

	health["redis"] = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis: connected")
	return redisstore.NewRegistrationGuard(rdb, cfg.Redis.GuardTTL), func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn().Msg("using in-memory store: data is lost on restart")
		return &stores{
			events:        memory.NewEventRepository(),
			registrations: memory.NewRegistrationRepository(),
			users:         memory.NewAuthRepository(),
			health:        map[string]handler.Checker{},
			close:         func(context.Context) {},
		}, nil
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.StoreTimeout,
	})
	if err != nil {
		return nil, err
	}
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("db", cfg.Mongo.Database).Msg("mongodb: connected")

	return &stores{
		events:        mongostore.NewEventRepository(db, cfg.StoreTimeout),
		registrations: mongostore.NewRegistrationRepository(db, cfg.StoreTimeout),
		users:         mongostore.NewAuthRepository(db, cfg.StoreTimeout),
		health: map[string]handler.Checker{
			"mongodb": func(ctx context.Context) error { return mongostore.Ping(ctx, client) },
		},
		close: func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Warn().Err(err).Msg("mongodb disconnect")
			}
		},
	}, nil
}
