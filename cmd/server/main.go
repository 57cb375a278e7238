package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/attest"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/handler"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/metrics"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/service"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/store"
	"github.com/devfelipenunes/zolvency-contracts/internal/jwttoken"
	"github.com/devfelipenunes/zolvency-contracts/internal/platform/config"
	"github.com/devfelipenunes/zolvency-contracts/internal/platform/events"
	"github.com/devfelipenunes/zolvency-contracts/internal/platform/httpserver"
	"github.com/devfelipenunes/zolvency-contracts/internal/platform/logger"
	"github.com/devfelipenunes/zolvency-contracts/internal/platform/middleware"
	"github.com/devfelipenunes/zolvency-contracts/internal/platform/postgres"
	platformredis "github.com/devfelipenunes/zolvency-contracts/internal/platform/redis"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the identity packages.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}
	defer closeStore()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
	}

	if cfg.MintVerifyKey != "" {
		key, err := hex.DecodeString(cfg.MintVerifyKey)
		if err != nil {
			return fmt.Errorf("decode mint verify key: %w", err)
		}
		verifier, err := attest.NewEd25519Verifier(key)
		if err != nil {
			return fmt.Errorf("build signature verifier: %w", err)
		}
		opts = append(opts, service.WithSignatureVerifier(verifier))
	}
	if cfg.StrictProofs {
		opts = append(opts, service.WithProofVerifier(attest.DigestProofVerifier{}))
	}

	var sink events.Sink
	if len(cfg.KafkaBrokers) > 0 {
		sink, err = events.NewKafkaSink(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer sink.Close()
		opts = append(opts, service.WithEvents(sink))
		log.Info("kafka event sink enabled", "topic", cfg.KafkaTopic)
	}

	svc := service.New(st, opts...)
	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	identityHandler := handler.New(svc, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.ClientMetadata)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		identityHandler.RegisterPublic(r)
	})
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtService, log))
		identityHandler.RegisterProtected(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("identity service listening", "addr", cfg.Addr, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildStore constructs the configured store backend and returns a cleanup
// function for its underlying connections.
func buildStore(ctx context.Context, cfg config.Server, log *slog.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewInMemoryStore(), func() {}, nil

	case config.BackendRedis:
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, errors.New("redis backend selected but REDIS_URL is empty")
		}
		return store.NewRedisStore(client.Client), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		if cfg.PostgresDSN == "" {
			return nil, nil, errors.New("postgres backend selected but POSTGRES_DSN is empty")
		}
		if err := postgres.Migrate(cfg.PostgresDSN, store.Migrations, "migrations"); err != nil {
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		log.Info("postgres store ready")
		return store.NewPostgresStore(pool), func() { pool.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
