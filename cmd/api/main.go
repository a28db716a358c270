package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/medcore-io/appointment-service/internal/api/http"
	"github.com/medcore-io/appointment-service/internal/api/http/handlers"
	"github.com/medcore-io/appointment-service/internal/auth"
	"github.com/medcore-io/appointment-service/internal/config"
	"github.com/medcore-io/appointment-service/internal/events"
	"github.com/medcore-io/appointment-service/internal/observability"
	"github.com/medcore-io/appointment-service/internal/persistence"
	"github.com/medcore-io/appointment-service/internal/repository"
	"github.com/medcore-io/appointment-service/internal/risk"
	"github.com/medcore-io/appointment-service/internal/service"
	"github.com/medcore-io/appointment-service/internal/worker"
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
	doctorRepo := repository.NewDoctorRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	estimator := risk.NewBoundedEstimator(risk.NewHeuristicEstimator(), cfg.Risk.Timeout())

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		DoctorRepo:        doctorRepo,
		PasswordResetRepo: resetRepo,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		AppointmentRepo: appointmentRepo,
		DoctorRepo:      doctorRepo,
		HistoryRepo:     historyRepo,
		Estimator:       estimator,
		Dispatcher:      dispatcher,
	})
	directoryService := service.NewDirectoryService(doctorRepo, redis, cfg.Directory.CacheTTL(), logger)
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, doctorRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:             handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Patients:           handlers.NewPatientsHandler(authService),
		Doctors:            handlers.NewDoctorsHandler(directoryService),
		Appointments:       handlers.NewAppointmentsHandler(bookingService),
		DoctorAppointments: handlers.NewDoctorAppointmentsHandler(bookingService),
		AuthMiddleware:     authMiddleware,
		RateLimiter:        httptransport.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
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
