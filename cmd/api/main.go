package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/restaurant-service/internal/api/http"
	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/observability"
	"github.com/spec-kit/restaurant-service/internal/persistence"
	"github.com/spec-kit/restaurant-service/internal/repository"
	"github.com/spec-kit/restaurant-service/internal/service"
	"github.com/spec-kit/restaurant-service/internal/worker"
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
	productRepo := repository.NewProductRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	alertRepo := repository.NewAlertRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	alertCache := persistence.NewAlertCache(redis)

	authService := service.NewAuthService(*cfg, userRepo)
	productService := service.NewProductService(productRepo)
	categoryService := service.NewCategoryService(categoryRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, dispatcher)
	conversationService := service.NewConversationService(conversationRepo, dispatcher)
	alertService := service.NewAlertService(alertRepo, userRepo, alertCache)
	notificationService := service.NewNotificationService(dispatcher, alertService, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Products:       handlers.NewProductsHandler(productService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Conversations:  handlers.NewConversationsHandler(conversationService),
		Alerts:         handlers.NewAlertsHandler(alertService),
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
