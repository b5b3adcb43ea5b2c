package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/bharatmovers/booking-service/internal/api/http"
	"github.com/bharatmovers/booking-service/internal/api/http/handlers"
	"github.com/bharatmovers/booking-service/internal/auth"
	"github.com/bharatmovers/booking-service/internal/config"
	"github.com/bharatmovers/booking-service/internal/events"
	"github.com/bharatmovers/booking-service/internal/lifecycle"
	"github.com/bharatmovers/booking-service/internal/mailer"
	"github.com/bharatmovers/booking-service/internal/observability"
	"github.com/bharatmovers/booking-service/internal/persistence"
	"github.com/bharatmovers/booking-service/internal/repository"
	"github.com/bharatmovers/booking-service/internal/service"
	"github.com/bharatmovers/booking-service/internal/worker"
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
	actorRepo := repository.NewActorRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	vehicleTypeRepo := repository.NewVehicleTypeRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	txManager := repository.NewTxManager(pool)

	dispatcher := events.NewInMemoryDispatcher()
	engine := lifecycle.NewEngine()
	mail := mailer.New(cfg.Mail, logger)

	notificationService := service.NewNotificationService(actorRepo, messageRepo, dispatcher, mail, logger)
	authService := service.NewAuthService(cfg.Auth, actorRepo, redis.Client, logger)
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo:     bookingRepo,
		ServiceRepo:     serviceRepo,
		VehicleTypeRepo: vehicleTypeRepo,
		ActorRepo:       actorRepo,
		TxRunner:        txManager,
		Engine:          engine,
		Notifier:        notificationService,
		Dispatcher:      dispatcher,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		ActorRepo:   actorRepo,
		TxRunner:    txManager,
		Engine:      engine,
		Notifier:    notificationService,
		Dispatcher:  dispatcher,
	})
	messageService := service.NewMessageService(messageRepo, notificationService)
	catalogService := service.NewCatalogService(vehicleTypeRepo, serviceRepo)
	adminService := service.NewAdminService(actorRepo)

	worker.StartMailRelay(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), actorRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Bookings:       handlers.NewBookingsHandler(bookingService),
		Requests:       handlers.NewRequestsHandler(requestService),
		Messages:       handlers.NewMessagesHandler(messageService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Admin:          handlers.NewAdminHandler(adminService),
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
