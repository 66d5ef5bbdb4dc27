package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/contact-manager/config"
	"github.com/ErlanBelekov/contact-manager/internal/auth"
	"github.com/ErlanBelekov/contact-manager/internal/health"
	"github.com/ErlanBelekov/contact-manager/internal/infrastructure/memory"
	"github.com/ErlanBelekov/contact-manager/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/contact-manager/internal/log"
	"github.com/ErlanBelekov/contact-manager/internal/metrics"
	"github.com/ErlanBelekov/contact-manager/internal/repository"
	httptransport "github.com/ErlanBelekov/contact-manager/internal/transport/http"
	"github.com/ErlanBelekov/contact-manager/internal/transport/http/handler"
	"github.com/ErlanBelekov/contact-manager/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

type repositories struct {
	users     repository.UserRepository
	contacts  repository.ContactRepository
	addresses repository.AddressRepository
	dep       health.Dependency
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	repos, err := openStorage(ctx, cfg, logger)
	if err != nil {
		stop()
		log.Fatalf("storage: %v", err)
	}
	defer repos.close()

	hasher, err := auth.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		stop()
		log.Fatalf("password hasher: %v", err)
	}
	tokens, err := auth.NewTokenService([]byte(cfg.JWTSecret))
	if err != nil {
		stop()
		log.Fatalf("token service: %v", err)
	}

	// Users
	identityUsecase := usecase.NewIdentityUsecase(repos.users, hasher, tokens)
	authHandler := handler.NewAuthHandler(identityUsecase, logger)

	// Contacts
	contactUsecase := usecase.NewContactUsecase(repos.contacts, repos.addresses)
	contactHandler := handler.NewContactHandler(contactUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, repos.dep)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, httptransport.Handlers{
			Auth:    authHandler,
			Contact: contactHandler,
			Health:  handler.NewHealthHandler(checker),
		}, tokens),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsSrv := metrics.NewServer(":" + cfg.MetricsPort)

	go func() {
		logger.Info("server started", "port", cfg.Port, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:     store.Users(),
			contacts:  store.Contacts(),
			addresses: store.Addresses(),
			dep:       health.Dependency{Name: "memory", Pinger: store},
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("migrations applied")
	}

	return &repositories{
		users:     postgres.NewUserRepository(pool),
		contacts:  postgres.NewContactRepository(pool),
		addresses: postgres.NewAddressRepository(pool),
		dep:       health.Dependency{Name: "postgres", Pinger: pool},
		close:     pool.Close,
	}, nil
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
