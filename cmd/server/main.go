package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/hrstack/hr-api/internal/alerts"
	"github.com/hrstack/hr-api/internal/config"
	"github.com/hrstack/hr-api/internal/handlers"
	"github.com/hrstack/hr-api/internal/middleware"
	"github.com/hrstack/hr-api/internal/migration"
	"github.com/hrstack/hr-api/internal/notification"
	"github.com/hrstack/hr-api/internal/repository"
	"github.com/hrstack/hr-api/internal/routes"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type application struct {
	config        *config.Config
	db            *sql.DB
	logger        zerolog.Logger
	notifications notification.Service
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	gooseAdapter := migration.NewGooseAdapter(logger)
	goose.SetLogger(gooseAdapter)

	// Load configuration.
	cfg := config.Load()

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	migration.RunMigrations(cfg.DatabaseURL, logger)

	// Initialize notification service. The email channel is optional and
	// only attached when SMTP is configured.
	notificationRepo := repository.NewNotificationRepository(db)
	var notifiers []notification.Notifier
	if cfg.Email.SMTPHost != "" {
		emailNotifier, err := notification.NewEmailNotifier(cfg.Email, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure email notifier")
		}
		notifiers = append(notifiers, emailNotifier)
	}
	notificationService := notification.NewService(notificationRepo, logger, notifiers...)

	// Create the application instance.
	app := &application{
		config:        cfg,
		db:            db,
		logger:        logger,
		notifications: notificationService,
	}

	// Initialize the HTTP router and middleware.
	router := app.initRouter(logger)
	loggedRouter := middleware.LoggingMiddleware(app.logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins(cfg.AllowedOrigins),
		h.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		h.AllowCredentials(),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, logger)

	logger.Info().Msg("Application terminated.")
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter(logger zerolog.Logger) http.Handler {
	// Repositories
	employeeRepo := repository.NewEmployeeRepository(app.db)
	scheduleRepo := repository.NewScheduleRepository(app.db)
	shiftRepo := repository.NewShiftRepository(app.db)
	documentRepo := repository.NewDocumentRepository(app.db)
	trainingRepo := repository.NewTrainingRepository(app.db)
	requestRepo := repository.NewRequestRepository(app.db)
	payrollRepo := repository.NewPayrollRepository(app.db)
	branchRepo := repository.NewBranchRepository(app.db)

	// Alert aggregation core
	policy := alerts.FailFast
	if app.config.Alerts.PartialResults {
		policy = alerts.Degrade
	}
	alertService := alerts.NewService(alerts.Sources{
		Requests:  requestRepo,
		Shifts:    shiftRepo,
		Documents: documentRepo,
		Trainings: trainingRepo,
		Payroll:   payrollRepo,
		Employees: employeeRepo,
	}, alerts.Horizons{
		ShiftDays:    app.config.Alerts.ShiftHorizonDays,
		DocumentDays: app.config.Alerts.DocumentHorizonDays,
		TrainingDays: app.config.Alerts.TrainingHorizonDays,
	}, policy, logger)

	// Handlers
	return routes.NewRouter(routes.Handlers{
		Auth:         handlers.NewAuthHandler(app.db, app.config, logger),
		Health:       handlers.NewHealthHandler(app.db, logger),
		Alert:        handlers.NewAlertHandler(alertService, app.config.Alerts.PartialResults, logger),
		Employee:     handlers.NewEmployeeHandler(employeeRepo, scheduleRepo, logger),
		Shift:        handlers.NewShiftHandler(shiftRepo, employeeRepo, logger),
		Document:     handlers.NewDocumentHandler(documentRepo, app.notifications, logger),
		Training:     handlers.NewTrainingHandler(trainingRepo, logger),
		Request:      handlers.NewRequestHandler(requestRepo, app.notifications, logger),
		Payroll:      handlers.NewPayrollHandler(payrollRepo, app.notifications, logger),
		Branch:       handlers.NewBranchHandler(branchRepo, logger),
		Notification: handlers.NewNotificationHandler(app.notifications, logger),
	})
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, logger zerolog.Logger) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}
}
