package employee

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	CreateEmployeeWithAddress(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error)
	UpdateEmployeeWithAddress(ctx context.Context, id string, dto UpdateEmployeeDTO) (int64, error)
	DeleteEmployeeWithAddress(ctx context.Context, id string) (int64, error)
	GetAll(ctx context.Context) ([]*Employee, error)
	GetByID(ctx context.Context, id string) (*Employee, error)
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

// employeeID returns the {id} path parameter, or false when it cannot name an employee.
func employeeID(r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Warn("CreateEmployee: invalid request body", "error", err)
		h.HandleServiceError(w, internal.ErrInvalidBody)
		return
	}

	employee, err := h.Service.CreateEmployeeWithAddress(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, employee.ToResponse(nil))
}

func (h *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("GetEmployees: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponses(employees, internal.TimezoneFromContext(r.Context())))
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		h.HandleServiceError(w, ErrEmployeeNotFound)
		return
	}

	employee, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, employee.ToResponse(internal.TimezoneFromContext(r.Context())))
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		h.HandleServiceError(w, ErrEmployeeNotFound)
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Warn("UpdateEmployee: invalid request body", "error", err, "employee_id", id)
		h.HandleServiceError(w, internal.ErrInvalidBody)
		return
	}

	updated, err := h.Service.UpdateEmployeeWithAddress(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}
	if updated == 0 {
		h.HandleServiceError(w, ErrEmployeeNotFound)
		return
	}

	employee, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, employee.ToResponse(nil))
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		h.HandleServiceError(w, ErrEmployeeNotFound)
		return
	}

	deleted, err := h.Service.DeleteEmployeeWithAddress(r.Context(), id)
	if err != nil {
		h.Logger.Error("DeleteEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}
	if deleted == 0 {
		h.HandleServiceError(w, ErrEmployeeNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
