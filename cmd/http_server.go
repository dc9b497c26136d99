package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/internal/database"
	"github.com/frahmantamala/employee-management/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-management/internal/employee/postgres"
	"github.com/frahmantamala/employee-management/internal/holiday"
	holidayPostgres "github.com/frahmantamala/employee-management/internal/holiday/postgres"
	"github.com/frahmantamala/employee-management/internal/holidaysource"
	"github.com/frahmantamala/employee-management/internal/scheduler"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/frahmantamala/employee-management/internal/transport/middleware"
	"github.com/frahmantamala/employee-management/internal/transport/rest"
	"github.com/frahmantamala/employee-management/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests, and the upcoming-holidays scheduler when enabled`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config          *internal.Config
	DB              *sqlx.DB
	Gorm            *gorm.DB
	EventBus        *events.EventBus
	EmployeeRepo    employee.RepositoryAPI
	HolidayRepo     holiday.RepositoryAPI
	EmployeeService *employee.Service
	HolidayService  *holiday.Service
	Logger          *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	router, err := setupRoutes(deps)
	if err != nil {
		deps.Logger.Error("failed to set up routes", "error", err)
		os.Exit(1)
	}

	var sched *scheduler.Scheduler
	if deps.Config.Scheduler.Enabled {
		sched = newScheduler(deps)
		if err := sched.Start(); err != nil {
			deps.Logger.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(ctx); err != nil {
			deps.Logger.Error("Scheduler shutdown error", "error", err)
		}
	}
	if err := server.Shutdown(ctx); err != nil {
		deps.Logger.Error("Server shutdown error", "error", err)
	}
	if err := deps.EventBus.Wait(ctx); err != nil {
		deps.Logger.Warn("Event handlers still running at shutdown", "error", err)
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) (*chi.Mux, error) {
	base := transport.NewBaseHandler(deps.Logger)
	opts := rest.Options{
		SpecPath:       deps.Config.OpenAPI.SpecPath,
		RequestTimeout: deps.Config.Server.RequestTimeout,
	}

	if deps.Config.OpenAPI.ValidateRequest {
		doc, err := middleware.LoadOpenAPI(context.Background(), deps.Config.OpenAPI.SpecPath)
		if err != nil {
			return nil, err
		}
		contract, err := middleware.OpenAPIValidator(doc, deps.Logger)
		if err != nil {
			return nil, err
		}
		opts.Contract = contract
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, deps.DB,
		employee.NewHandler(base, deps.EmployeeService),
		holiday.NewHandler(base, deps.HolidayService),
		opts,
		deps.Logger)
	return router, nil
}

func newScheduler(deps *Dependencies) *scheduler.Scheduler {
	return scheduler.New(scheduler.Config{
		Interval: deps.Config.Scheduler.Interval,
		Timeout:  deps.Config.Scheduler.Timeout,
	}, deps.HolidayService, deps.EventBus, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.L()

	db, err := database.Connect(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := database.OpenGorm(db, config.Database, lg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(lg)
	registerEventHandlers(bus, lg)

	tx := database.NewTxManager(gormDB)
	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	holidayRepo := holidayPostgres.NewHolidayRepository(gormDB)

	source := holidaysource.NewClient(holidaysource.Config{
		BaseURL:    config.Holidays.SourceURL,
		Timeout:    config.Holidays.Timeout,
		MaxRetries: config.Holidays.MaxRetries,
	}, lg)

	clock := internal.SystemClock{}

	return &Dependencies{
		Config:          config,
		DB:              db,
		Gorm:            gormDB,
		EventBus:        bus,
		EmployeeRepo:    employeeRepo,
		HolidayRepo:     holidayRepo,
		EmployeeService: employee.NewService(employeeRepo, tx, bus, clock, lg),
		HolidayService: holiday.NewService(holidayRepo, employeeRepo, source, tx, holiday.Options{
			WindowDays: config.Scheduler.WindowDays,
			Publisher:  bus,
			Clock:      clock,
			Logger:     lg,
		}),
		Logger: lg,
	}, nil
}

func (d *Dependencies) Close() {
	if d.DB == nil {
		return
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}
