package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/commands"
	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/application/ratelimit"
	"github.com/AaronCarney/collabboard-sub001/application/session"
	"github.com/AaronCarney/collabboard-sub001/infrastructure/config"
	memrepo "github.com/AaronCarney/collabboard-sub001/infrastructure/persistence/memory"
	sbrepo "github.com/AaronCarney/collabboard-sub001/infrastructure/persistence/supabase"
	"github.com/AaronCarney/collabboard-sub001/infrastructure/realtime"
	"github.com/AaronCarney/collabboard-sub001/interfaces/http/rest"
	wsiface "github.com/AaronCarney/collabboard-sub001/interfaces/websocket"
	"github.com/AaronCarney/collabboard-sub001/pkg/auth"
	"github.com/AaronCarney/collabboard-sub001/pkg/observability"
)

func main() {
	cfg := config.New()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	var (
		objects ports.ObjectRepository
		shares  ports.ShareRepository
		authn   ports.Authenticator
	)
	if cfg.SupabaseURL != "" {
		client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
		if err != nil {
			logger.Fatal("failed to create supabase client", zap.Error(err))
		}
		objects = sbrepo.NewObjectRepository(client)
		shares = sbrepo.NewShareRepository(client)
		if cfg.SupabaseJWTSecret != "" {
			validator, err := auth.NewJWTValidator(cfg.SupabaseJWTSecret)
			if err != nil {
				logger.Fatal("failed to create jwt validator", zap.Error(err))
			}
			authn = sbrepo.NewLocalAuthenticator(validator)
		} else {
			authn = sbrepo.NewAuthenticator(client)
		}
		logger.Info("using supabase persistence")
	} else {
		objects = memrepo.NewObjectRepository()
		shares = memrepo.NewShareRepository()
		validator, err := auth.NewJWTValidator("local-dev-secret")
		if err != nil {
			logger.Fatal("failed to create jwt validator", zap.Error(err))
		}
		authn = sbrepo.NewLocalAuthenticator(validator)
		logger.Warn("no SUPABASE_URL set, using in-memory persistence")
	}

	var (
		sessions session.Store
		limiter  ratelimit.Limiter
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sessions = session.NewRedisStore(rdb)
		limiter = ratelimit.NewRedisLimiter(rdb, logger)
		logger.Info("using redis session memory and rate limiting", zap.String("addr", cfg.RedisAddr))
	} else {
		sessions = session.NewMemoryStore()
		limiter = ratelimit.NewMemoryLimiter()
	}

	hub := realtime.NewHub(logger, metrics)
	commandService := commands.NewService(sessions, limiter, noopRouter{}, logger, metrics)
	wsServer := wsiface.NewServer(hub, authn, logger, metrics)

	router := rest.NewRouter(rest.Deps{
		Objects:   objects,
		Shares:    shares,
		Channels:  hub,
		Authn:     authn,
		Commands:  commandService,
		Logger:    logger,
		Metrics:   metrics,
		Registry:  registry,
		WSHandler: wsServer,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	var lvl zap.AtomicLevel
	if err := lvl.UnmarshalText([]byte(level)); err == nil {
		cfg.Level = lvl
	}
	return cfg.Build()
}

// noopRouter stands in until an LLM-backed router is configured; it reports
// that no AI backend is available instead of failing the request path.
type noopRouter struct{}

func (noopRouter) Route(_ context.Context, _ ports.CommandRequest) (*ports.CommandResult, error) {
	return &ports.CommandResult{
		Message: "AI command routing is not configured on this deployment",
	}, nil
}
