package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	sourcetypes "github.com/frahmantamala/employee-management/internal/core/datamodel/holidaysource"
	"github.com/frahmantamala/employee-management/internal/database"
	"github.com/frahmantamala/employee-management/internal/database/sqlitetest"
	"github.com/frahmantamala/employee-management/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-management/internal/employee/postgres"
	"github.com/frahmantamala/employee-management/internal/holiday"
	holidayPostgres "github.com/frahmantamala/employee-management/internal/holiday/postgres"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/frahmantamala/employee-management/internal/transport/rest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

type emptySource struct{}

func (emptySource) PublicHolidays(ctx context.Context, country string, year int) []sourcetypes.PublicHoliday {
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

var _ = Describe("Router", func() {
	var (
		router  *chi.Mux
		pingErr error
	)

	build := func() {
		db, err := sqlitetest.Open()
		Expect(err).NotTo(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		base := &transport.BaseHandler{Logger: logger}
		tx := database.NewTxManager(db)
		employeeRepo := employeePostgres.NewEmployeeRepository(db)

		employeeService := employee.NewService(employeeRepo, tx, nil, internal.SystemClock{}, logger)
		holidayService := holiday.NewService(holidayPostgres.NewHolidayRepository(db), employeeRepo, emptySource{}, tx, holiday.Options{
			WindowDays: 7,
			Logger:     logger,
		})

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, fakePinger{err: pingErr},
			employee.NewHandler(base, employeeService),
			holiday.NewHandler(base, holidayService),
			rest.Options{RequestTimeout: 5 * time.Second},
			logger)
	}

	BeforeEach(func() {
		pingErr = nil
		build()
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("serves the employee lifecycle under /api", func() {
		w := do(http.MethodPost, "/api/employees", `{
			"name": "John Doe",
			"email": "john.doe@example.com",
			"salary": 60000,
			"address": {"street": "Main St", "house_number": "1", "country": "US", "state": "NY", "zipcode": "10001"}
		}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		Expect(do(http.MethodGet, "/api/employees/"+created.EmployeeID, "").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/api/employees/"+created.EmployeeID+"/holidays/2025", "").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodDelete, "/api/employees/"+created.EmployeeID, "").Code).To(Equal(http.StatusNoContent))
		Expect(do(http.MethodGet, "/api/employees/"+created.EmployeeID, "").Code).To(Equal(http.StatusNotFound))
	})

	It("routes upcoming-holidays ahead of the id route", func() {
		w := do(http.MethodGet, "/api/employees/upcoming-holidays", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(strings.TrimSpace(w.Body.String())).To(Equal("[]"))
	})

	It("rejects an unknown timezone on GET endpoints", func() {
		Expect(do(http.MethodGet, "/api/employees?timezone=Nowhere/Land", "").Code).To(Equal(http.StatusBadRequest))
	})

	It("tags responses with a request id", func() {
		Expect(do(http.MethodGet, "/api/ping", "").Header().Get("X-Request-ID")).NotTo(BeEmpty())
	})

	Describe("health", func() {
		It("reports a healthy store", func() {
			w := do(http.MethodGet, "/api/health", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp rest.HealthResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Status).To(Equal(rest.HealthHealthy))
		})

		It("reports 503 when the store is down", func() {
			pingErr = errors.New("connection refused")
			build()

			Expect(do(http.MethodGet, "/api/health", "").Code).To(Equal(http.StatusServiceUnavailable))
		})
	})
})
