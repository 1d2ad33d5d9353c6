package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/content-gateway/internal/api/http"
	"github.com/spec-kit/content-gateway/internal/api/http/handlers"
	"github.com/spec-kit/content-gateway/internal/auth"
	"github.com/spec-kit/content-gateway/internal/config"
	"github.com/spec-kit/content-gateway/internal/content"
	"github.com/spec-kit/content-gateway/internal/domain"
	"github.com/spec-kit/content-gateway/internal/events"
	"github.com/spec-kit/content-gateway/internal/observability"
	"github.com/spec-kit/content-gateway/internal/persistence"
	"github.com/spec-kit/content-gateway/internal/repository"
	"github.com/spec-kit/content-gateway/internal/service"
	"github.com/spec-kit/content-gateway/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Configured() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var userRepo repository.UserRepository
	if pg.Configured() {
		userRepo = repository.NewUserRepository(pg.PoolHandle())
	} else {
		userRepo = repository.NewMemoryUserRepository()
		seedDemoUser(ctx, userRepo, cfg.Auth, logger)
	}

	root, err := os.OpenRoot(cfg.Content.Root)
	if err != nil {
		logger.Fatal("failed to open content root", zap.Error(err))
	}
	store := content.NewFSStore(root)

	metrics := observability.NewMetrics()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger, metrics)

	gate := auth.NewRefererGate(cfg.Referer.AllowedOrigins, cfg.Referer.TrustedPages)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		Dispatcher: dispatcher,
	})
	gatewayService := service.NewGatewayService(store, gate, dispatcher)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService, tokens)
	contentHandler := handlers.NewContentHandler(gatewayService, tokens)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    healthHandler,
		Auth:      authHandler,
		Content:   contentHandler,
		PublicDir: filepath.Join(cfg.Content.Root, "public"),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// seedDemoUser provisions the stub account the in-memory store starts
// with. Purchase state begins false and flips through /purchase.
func seedDemoUser(ctx context.Context, repo repository.UserRepository, cfg config.AuthConfig, logger *zap.Logger) {
	hash, err := auth.HashPassword(cfg.DemoPassword, cfg.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash demo password", zap.Error(err))
	}

	user := &domain.User{
		Username:     cfg.DemoUsername,
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
	}
	if err := repo.Create(ctx, user); err != nil {
		logger.Fatal("failed to seed demo user", zap.Error(err))
	}
	logger.Info("seeded demo user", zap.String("username", user.Username))
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
