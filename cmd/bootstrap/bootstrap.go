package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vetclinic-booking/config"
	deliveryHttp "vetclinic-booking/internal/delivery/http"
	"vetclinic-booking/internal/delivery/http/handler"
	"vetclinic-booking/internal/delivery/http/middleware"
	"vetclinic-booking/internal/gateway/mailer"
	"vetclinic-booking/internal/gateway/paymongo"
	"vetclinic-booking/internal/infrastructure/cache"
	"vetclinic-booking/internal/infrastructure/database"
	"vetclinic-booking/internal/repository"
	"vetclinic-booking/internal/service"
	"vetclinic-booking/internal/usecase"
	"vetclinic-booking/pkg/jwt"
	"vetclinic-booking/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	availabilityIndex *service.AvailabilityIndex
	paymentExpiry     *service.PaymentExpiryService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply migrations before serving
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.Server = app.initializeServer()

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer wires every layer and returns the HTTP server
func (app *App) initializeServer() *http.Server {
	cfg := app.Config
	db := app.DB
	redisClient := app.RedisClient

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	petRepo := repository.NewPetRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	unavailabilityRepo := repository.NewUnavailabilityRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()
	notificationRepo := repository.NewNotificationRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	sessionStore := repository.NewBookingSessionStore(redisClient, cfg.Booking.SessionTTL)

	// Initialize gateway clients
	paymentClient := paymongo.NewClient(cfg.Payment.GatewayBaseURL, log)
	mailerClient := mailer.NewClient(cfg.Mailer.BaseURL, log)

	// Initialize domain services
	availabilityIndex := service.NewAvailabilityIndex(db, log, appointmentRepo, unavailabilityRepo)
	reservation := service.NewSlotReservationService(redisClient, log, cfg.Booking.SlotHoldTTL)
	notifier := service.NewNotificationService(db, log, userRepo, notificationRepo)
	paymentExpiry := service.NewPaymentExpiryService(db, log, appointmentRepo, availabilityIndex,
		cfg.Payment.PendingTTL, cfg.Payment.SweepInterval)
	paymentExpiry.Start()

	app.availabilityIndex = availabilityIndex
	app.paymentExpiry = paymentExpiry

	// Initialize usecases
	authUsecase := usecase.NewAuthUseCase(db, log, cfg, userRepo, auditLogRepo, jwtService, redisClient, mailerClient)
	petUsecase := usecase.NewPetUseCase(db, log, petRepo)
	bookingUsecase := usecase.NewBookingUseCase(db, log, cfg, sessionStore, appointmentRepo, petRepo,
		userRepo, auditLogRepo, availabilityIndex, reservation, notifier, paymentClient)
	paymentUsecase := usecase.NewPaymentUseCase(db, log, appointmentRepo, auditLogRepo,
		notifier, paymentClient)
	availabilityUsecase := usecase.NewAvailabilityUseCase(availabilityIndex)
	unavailabilityUsecase := usecase.NewUnavailabilityUseCase(db, log, unavailabilityRepo, availabilityIndex)
	appointmentUsecase := usecase.NewAppointmentUseCase(db, log, appointmentRepo, auditLogRepo,
		availabilityIndex, notifier)
	medicalRecordUsecase := usecase.NewMedicalRecordUseCase(db, log, medicalRecordRepo, petRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	petHandler := handler.NewPetHandler(petUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	unavailabilityHandler := handler.NewUnavailabilityHandler(unavailabilityUsecase, customValidator)
	paymentHandler := handler.NewPaymentHandler(paymentUsecase)
	medicalRecordHandler := handler.NewMedicalRecordHandler(medicalRecordUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, petHandler, bookingHandler, availabilityHandler,
		appointmentHandler, unavailabilityHandler, paymentHandler, medicalRecordHandler,
		authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Stop background services before closing connections
	if app.paymentExpiry != nil {
		app.paymentExpiry.Stop()
	}
	if app.availabilityIndex != nil {
		app.availabilityIndex.Stop()
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
