package holiday_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	sourcetypes "github.com/frahmantamala/employee-management/internal/core/datamodel/holidaysource"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/frahmantamala/employee-management/internal/holiday"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Holiday Handler Integration", func() {
	var (
		f      *fixture
		router *chi.Mux
	)

	BeforeEach(func() {
		f = newFixture(time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC))
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler := holiday.NewHandler(&transport.BaseHandler{Logger: slogger}, f.service)

		router = chi.NewRouter()
		router.Get("/employees/upcoming-holidays", handler.GetUpcomingHolidayEmployees)
		router.Get("/employees/{id}/holidays/{year}", handler.GetEmployeeHolidays)
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("returns the employee's holidays for a year", func() {
		e := f.hire("us@example.com", "US")
		f.source.Set("US", sourcetypes.PublicHoliday{Date: "2024-12-25", LocalName: "Christmas Day", Name: "Christmas Day"})

		w := get("/employees/" + e.ID + "/holidays/2024")
		Expect(w.Code).To(Equal(http.StatusOK))

		var body []holiday.HolidayResponse
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body).To(HaveLen(1))
		Expect(body[0].Date).To(Equal("2024-12-25"))
		Expect(body[0].LocalName).To(Equal("Christmas Day"))
		Expect(body[0].Country).To(Equal("US"))
	})

	It("returns an empty list when the source has nothing", func() {
		e := f.hire("xx@example.com", "XX")

		w := get("/employees/" + e.ID + "/holidays/2024")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`[]`))
	})

	It("rejects a non-numeric year", func() {
		e := f.hire("us@example.com", "US")
		Expect(get("/employees/" + e.ID + "/holidays/next").Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 for an unknown employee", func() {
		Expect(get("/employees/" + uuid.NewString() + "/holidays/2024").Code).To(Equal(http.StatusNotFound))
		Expect(get("/employees/abc/holidays/2024").Code).To(Equal(http.StatusNotFound))
	})

	It("lists employees with upcoming holidays", func() {
		f.hire("us@example.com", "US")
		f.hire("jp@example.com", "JP")
		f.cache("US", time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC))

		w := get("/employees/upcoming-holidays")
		Expect(w.Code).To(Equal(http.StatusOK))

		var body []employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body).To(HaveLen(1))
		Expect(body[0].Email).To(Equal("us@example.com"))
	})
})
