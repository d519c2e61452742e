// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/nwrobel/gravity-server/internal/audit"
	"github.com/nwrobel/gravity-server/internal/audit/notifier"
	"github.com/nwrobel/gravity-server/internal/gate"
	"github.com/nwrobel/gravity-server/internal/gate/schema"
	"github.com/nwrobel/gravity-server/internal/gate/validation"
	identitystore "github.com/nwrobel/gravity-server/internal/identity/store"
	"github.com/nwrobel/gravity-server/internal/identity/token"
	"github.com/nwrobel/gravity-server/internal/platform/config"
	"github.com/nwrobel/gravity-server/internal/platform/httpserver"
	"github.com/nwrobel/gravity-server/internal/platform/logger"
	"github.com/nwrobel/gravity-server/internal/platform/metrics"
	platformredis "github.com/nwrobel/gravity-server/internal/platform/redis"
	httptransport "github.com/nwrobel/gravity-server/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store selection: Postgres when configured, in-memory otherwise. Redis,
	// when configured, overlays the session reads and writes.
	var (
		identities identitystore.Store
		hits       audit.HitStore
	)
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres pool setup failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		identities = identitystore.NewPostgresStore(pool)
		hits = audit.NewPostgresHitStore(pool)
	} else {
		identities = identitystore.NewInMemoryStore()
		hits = audit.NewInMemoryHitStore()
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		identities = identitystore.NewRedisSessions(identities, redisClient.Client)
	}

	recorder := audit.NewRecorder(hits)
	reporter := notifier.NewReporter(notifier.LogTransport{Logger: log}, cfg.NotifyMinInterval, log)

	g := gate.New(
		gate.Config{
			ResponseMessages: cfg.ResponseMessages,
			BanCheckEnabled:  cfg.BanCheckEnabled,
		},
		schema.NewRegistry(),
		validation.New(),
		identities,
		recorder,
		reporter,
		log,
		gate.WithMetrics(metrics.New()),
	)

	issuer := token.NewIssuer(cfg.TokenSigningKey, cfg.SessionTTL)
	handler := httptransport.NewHandler(g, identities, issuer, recorder, log)
	router := httptransport.NewRouter(handler)

	srv := httpserver.New(cfg.Addr, router)
	metricsSrv := httpserver.New(":9090", promhttp.Handler())

	log.Info("starting gravity-server",
		"addr", cfg.Addr,
		"ban_check", cfg.BanCheckEnabled,
		"response_messages", cfg.ResponseMessages,
	)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
