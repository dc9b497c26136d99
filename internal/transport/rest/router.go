package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/frahmantamala/employee-management/internal/holiday"
	"github.com/frahmantamala/employee-management/internal/transport/middleware"
	"github.com/frahmantamala/employee-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Options struct {
	// SpecPath is the OpenAPI document served at /openapi.yml.
	SpecPath       string
	RequestTimeout time.Duration
	// Contract validates requests against the OpenAPI document when set.
	Contract func(http.Handler) http.Handler
}

func RegisterAllRoutes(router *chi.Mux, db Pinger, employeeHandler *employee.Handler, holidayHandler *holiday.Handler, opts Options, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	if opts.RequestTimeout > 0 {
		router.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}

	if opts.SpecPath != "" {
		router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, opts.SpecPath)
		})
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/employees", func(er chi.Router) {
			if opts.Contract != nil {
				er.Use(opts.Contract)
			}

			if employeeHandler != nil {
				er.Post("/", employeeHandler.CreateEmployee)
				er.With(middleware.Timezone).Get("/", employeeHandler.GetEmployees)
			}

			// registered before /{id} so the literal segment wins
			if holidayHandler != nil {
				er.With(middleware.Timezone).Get("/upcoming-holidays", holidayHandler.GetUpcomingHolidayEmployees)
				er.Get("/{id}/holidays/{year}", holidayHandler.GetEmployeeHolidays)
			}

			if employeeHandler != nil {
				er.With(middleware.Timezone).Get("/{id}", employeeHandler.GetEmployee)
				er.Put("/{id}", employeeHandler.UpdateEmployee)
				er.Delete("/{id}", employeeHandler.DeleteEmployee)
			}
		})
	})
}
