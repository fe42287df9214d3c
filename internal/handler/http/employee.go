package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/handler/http/middleware"
	"github.com/thinkforge/hrms-backend-go/internal/handler/http/response"
	employeeservice "github.com/thinkforge/hrms-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	Provision(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService *employeeservice.EmployeeServiceImpl
}

func NewEmployeeHandler(employeeService *employeeservice.EmployeeServiceImpl) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Provision implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Provision(w http.ResponseWriter, r *http.Request) {
	var req employee.ProvisionEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actorUserID := middleware.UserIDFromContext(r.Context())
	if actorUserID == "" {
		response.Unauthorized(w, "Missing authenticated user")
		return
	}

	resp, err := h.employeeService.Provision(r.Context(), actorUserID, req)
	if err != nil {
		slog.Error("Provision employee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee provisioned", resp)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employee.NewEmployeeResponses(employees))
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employee.NewEmployeeResponse(emp))
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	emp, err := h.employeeService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("Update employee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated", employee.NewEmployeeResponse(emp))
}

// Deactivate implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deactivated", nil)
}
