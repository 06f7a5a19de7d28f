package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/socialmesh/internal/crdt"
	"github.com/iudanet/socialmesh/internal/replication/broadcast"
	"github.com/iudanet/socialmesh/internal/replication/distributor"
	"github.com/iudanet/socialmesh/internal/replication/health"
	"github.com/iudanet/socialmesh/internal/replication/merge"
	"github.com/iudanet/socialmesh/internal/replication/peerapi"
	"github.com/iudanet/socialmesh/internal/replication/peerstore/boltdb"
	"github.com/iudanet/socialmesh/internal/replication/reconcile"
	"github.com/iudanet/socialmesh/internal/replication/registry"
	"github.com/iudanet/socialmesh/internal/replication/scheduler"
	"github.com/iudanet/socialmesh/internal/server/handlers"
	"github.com/iudanet/socialmesh/internal/server/middleware"
	"github.com/iudanet/socialmesh/internal/server/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "socialmesh-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if cfg.ShowVersion {
		printVersion()
		return nil
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище сущностей и пользователей
	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	// Часы восстанавливаются из максимального сохраненного timestamp,
	// иначе после рестарта узел выдавал бы уже занятые значения.
	clock := crdt.NewLamportClockWithNodeID(cfg.SelfURL)
	maxTS, err := store.MaxTimestamp(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore clock: %w", err)
	}
	clock.SetTimestamp(maxTS)

	// Снапшот пиров переживает рестарты
	peerStore, err := boltdb.New(cfg.PeerSnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to open peer snapshot store: %w", err)
	}
	defer func() {
		if err := peerStore.Close(); err != nil {
			logger.Error("failed to close peer snapshot store", "error", err)
		}
	}()

	client := peerapi.NewClient()

	reg, err := registry.New(cfg.SelfURL, client, logger)
	if err != nil {
		return fmt.Errorf("failed to create peer registry: %w", err)
	}

	snapshot, err := peerStore.Load()
	if err != nil {
		logger.Warn("failed to load peer snapshot", "error", err)
	} else {
		reg.Restore(snapshot)
	}

	applier := merge.NewApplier(store, clock, logger)
	propagator := broadcast.NewPropagator(reg, client, logger)
	checker := health.NewChecker(reg, client, logger)
	engine := reconcile.NewEngine(reg, client, applier, store, logger)
	dist := distributor.New(reg, cfg.SelfURL, logger)

	sched := scheduler.New(checker, engine, logger,
		scheduler.WithHealthInterval(cfg.HealthInterval),
		scheduler.WithReconcileInterval(cfg.ReconcileInterval),
		scheduler.WithSnapshot(func() error {
			return peerStore.Save(reg.Snapshot())
		}),
	)
	sched.Start(ctx)

	// Знакомство со стартовыми пирами; их списки вливаются в реестр
	reg.Bootstrap(ctx, cfg.BootstrapPeers)

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(cfg.JWTSecret),
		AccessTokenTTL: cfg.AccessTokenTTL,
	}

	authHandler := handlers.NewAuthHandler(logger, store, jwtConfig)
	socialHandler := handlers.NewSocialHandler(
		logger, store, clock, propagator, dist, handlers.NewTimelineProxy(), cfg.SelfURL)
	replicationHandler := handlers.NewReplicationHandler(logger, reg, applier, store, cfg.SelfURL)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           buildRouter(logger, cfg, jwtConfig, authHandler, socialHandler, replicationHandler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			"addr", cfg.ListenAddr,
			"self_url", cfg.SelfURL,
			"version", Version,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	// Порядок остановки: сначала фоновые циклы и хвосты рассылок,
	// потом HTTP, в конце снапшот пиров.
	sched.Stop()
	propagator.Wait()
	reg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	if err := peerStore.Save(reg.Snapshot()); err != nil {
		logger.Warn("failed to save peer snapshot", "error", err)
	}

	logger.Info("server stopped")
	return serveErr
}

// buildRouter собирает маршруты и цепочку middleware.
// Replication-маршруты не требуют авторизации: узлы доверяют друг другу
// на уровне сети. Пользовательские маршруты закрыты JWT.
func buildRouter(
	logger *slog.Logger,
	cfg *Config,
	jwtConfig handlers.JWTConfig,
	auth *handlers.AuthHandler,
	social *handlers.SocialHandler,
	replication *handlers.ReplicationHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/peers/register", replication.RegisterPeer)
	mux.HandleFunc("GET /api/v1/peers", replication.Peers)
	mux.HandleFunc("POST /api/v1/replication/broadcast", replication.ReceiveBroadcast)
	mux.HandleFunc("GET /api/v1/replication/pull", replication.Pull)
	mux.HandleFunc("GET /api/v1/ping", replication.Ping)
	mux.HandleFunc("GET /api/v1/status", replication.Status)

	mux.HandleFunc("POST /api/v1/auth/register", auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", auth.Login)

	authMW := middleware.AuthMiddleware(logger, jwtConfig)
	mux.Handle("POST /api/v1/posts", authMW(http.HandlerFunc(social.CreatePost)))
	mux.Handle("POST /api/v1/posts/{id}/like", authMW(http.HandlerFunc(social.ToggleLike)))
	mux.Handle("POST /api/v1/posts/{id}/comments", authMW(http.HandlerFunc(social.CreateComment)))
	mux.Handle("GET /api/v1/timeline", authMW(http.HandlerFunc(social.Timeline)))

	// Меж-узловой трафик не ограничивается: broadcast и pull идут
	// с одних и тех же адресов постоянно.
	exempt := []string{"/api/v1/replication/", "/api/v1/peers", "/api/v1/ping", "/api/v1/status"}

	var handler http.Handler = mux
	handler = middleware.RateLimitWithExempt(cfg.RateLimit, cfg.RateWindow, exempt, logger)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/ping"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)
	return handler
}

func printVersion() {
	fmt.Printf("SocialMesh Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
