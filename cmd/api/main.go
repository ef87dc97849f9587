package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	httptransport "github.com/greenhaven/nursery-service/internal/api/http"
	"github.com/greenhaven/nursery-service/internal/api/http/handlers"
	"github.com/greenhaven/nursery-service/internal/auth"
	"github.com/greenhaven/nursery-service/internal/config"
	"github.com/greenhaven/nursery-service/internal/events"
	"github.com/greenhaven/nursery-service/internal/observability"
	"github.com/greenhaven/nursery-service/internal/persistence"
	"github.com/greenhaven/nursery-service/internal/repository"
	"github.com/greenhaven/nursery-service/internal/service"
	"github.com/greenhaven/nursery-service/internal/worker"
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
	plantRepo := repository.NewPlantRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	wishlistRepo := repository.NewWishlistRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	sessions := auth.NewSessionManager(redis.Client, cfg.Auth.SessionTTL())

	authService := service.NewAuthService(*cfg, userRepo, sessions, dispatcher)
	authService.RegisterSessionEviction(logger)
	userService := service.NewUserService(userRepo, dispatcher, cfg.Auth.BcryptCost)
	catalogService := service.NewCatalogService(plantRepo)
	cartService := service.NewCartService(cartRepo)
	orderService := service.NewOrderService(orderRepo, dispatcher)
	wishlistService := service.NewWishlistService(wishlistRepo)
	taskService := service.NewTaskService(taskRepo, userRepo, dispatcher)
	analyticsService := service.NewAnalyticsService(analyticsRepo)
	chatbotService := service.NewChatbotService()

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	sessionMiddleware := auth.NewMiddleware(sessions, authService.TokenManager())

	metrics := observability.NewMetrics()

	engine := html.New("./views", ".html")
	// Optional metrics arrive as pointers; nil means "not measured".
	engine.AddFunc("fmtFloat", func(v *float64) string {
		if v == nil {
			return "-"
		}
		return strconv.FormatFloat(*v, 'f', 1, 64)
	})
	engine.AddFunc("fmtInt", func(v *int) string {
		if v == nil {
			return "-"
		}
		return strconv.Itoa(*v)
	})
	engine.AddFunc("fmtStr", func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	})
	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		Views:       engine,
		ViewsLayout: "layouts/main",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(authService),
		Users:     handlers.NewUsersHandler(userService),
		Customer:  handlers.NewCustomerHandler(catalogService, cartService, wishlistService, orderService),
		Admin:     handlers.NewAdminHandler(userService, catalogService, orderService, taskService),
		Caretaker: handlers.NewCaretakerHandler(taskService, analyticsService),
		Chatbot:   handlers.NewChatbotHandler(chatbotService),
		Sessions:  sessionMiddleware,
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
