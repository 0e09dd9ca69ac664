package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/news-gateway/internal/api/http"
	"github.com/spec-kit/news-gateway/internal/api/http/handlers"
	"github.com/spec-kit/news-gateway/internal/auth"
	"github.com/spec-kit/news-gateway/internal/config"
	"github.com/spec-kit/news-gateway/internal/events"
	"github.com/spec-kit/news-gateway/internal/observability"
	"github.com/spec-kit/news-gateway/internal/persistence"
	"github.com/spec-kit/news-gateway/internal/repository"
	"github.com/spec-kit/news-gateway/internal/rpc"
	"github.com/spec-kit/news-gateway/internal/service"
	"github.com/spec-kit/news-gateway/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	articleRepo := repository.NewArticleRepository(pool)
	tokenRepo := repository.NewAdminTokenRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTokenTTL())
	directoryService := service.NewUserDirectoryService(userRepo, tokenManager, dispatcher, logger, cfg.Auth.BcryptCost)
	adminTokenService := service.NewAdminTokenService(tokenRepo, dispatcher, logger, cfg.AdminToken.TTL())
	contentService := service.NewContentService(articleRepo, categoryRepo, redis, cfg.Content.ArticleCacheTTL(), logger)

	authMiddleware := auth.NewMiddleware(tokenManager)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	soapHandler := rpc.NewHandler(rpc.NewDispatcher(directoryService, tokenManager, logger))
	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	articlesHandler := handlers.NewArticlesHandler(contentService)
	tokensHandler := handlers.NewTokensHandler(adminTokenService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Articles:       articlesHandler,
		Tokens:         tokensHandler,
		Soap:           soapHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
