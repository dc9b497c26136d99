package holiday

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	ResolveHolidaysForEmployee(ctx context.Context, employeeID string, year int) ([]*Holiday, error)
	EmployeesWithUpcomingHolidays(ctx context.Context) ([]*employee.Employee, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	if baseHandler == nil {
		baseHandler = transport.NewBaseHandler(nil)
	}
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetEmployeeHolidays serves GET /employees/{id}/holidays/{year}.
func (h *Handler) GetEmployeeHolidays(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, ErrEmployeeNotFound)
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.HandleServiceError(w, ErrInvalidYear)
		return
	}

	holidays, err := h.Service.ResolveHolidaysForEmployee(r.Context(), id.String(), year)
	if err != nil {
		h.Logger.Error("GetEmployeeHolidays: service error", "error", err, "employee_id", id.String(), "year", year)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponses(holidays))
}

// GetUpcomingHolidayEmployees serves GET /employees/upcoming-holidays.
func (h *Handler) GetUpcomingHolidayEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.EmployeesWithUpcomingHolidays(r.Context())
	if err != nil {
		h.Logger.Error("GetUpcomingHolidayEmployees: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, employee.ToResponses(employees, internal.TimezoneFromContext(r.Context())))
}
