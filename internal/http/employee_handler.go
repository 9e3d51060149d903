package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/branch-roster/internal/application"
	"github.com/example/branch-roster/internal/roster"
)

type employeeService interface {
	CreateEmployee(ctx context.Context, input application.EmployeeInput) (roster.Employee, error)
	UpdateEmployee(ctx context.Context, id int, input application.EmployeeInput) (roster.Employee, error)
	GetEmployee(ctx context.Context, id int) (roster.Employee, error)
	ListEmployees(ctx context.Context) ([]roster.Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
}

type EmployeeHandler struct {
	service   employeeService
	responder responder
	logger    *slog.Logger
}

func NewEmployeeHandler(service employeeService, logger *slog.Logger) *EmployeeHandler {
	base := defaultLogger(logger)
	return &EmployeeHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EmployeeHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EmployeeHandler", operation, attrs...)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode employee request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	employee, err := h.service.CreateEmployee(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "employee creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("employee_id", employee.ID).InfoContext(r.Context(), "employee created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, employeeResponse{Employee: toEmployeeDTO(employee)})
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EmployeeIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	employee, err := h.service.GetEmployee(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "employee_id", id).ErrorContext(r.Context(), "employee lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, employeeResponse{Employee: toEmployeeDTO(employee)})
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EmployeeIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "employee_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode employee update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "employee_id", id)

	employee, err := h.service.UpdateEmployee(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "employee update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "employee updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, employeeResponse{Employee: toEmployeeDTO(employee)})
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EmployeeIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	logger := h.log(r.Context(), "Delete", "employee_id", id)
	if err := h.service.DeleteEmployee(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "employee delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "employee deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "employee list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(employees)).InfoContext(r.Context(), "employees listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEmployeesResponse{Employees: toEmployeeDTOs(employees)})
}

type employeeRequest struct {
	Name             string   `json:"name"`
	Role             string   `json:"role"`
	Skill            string   `json:"skill"`
	HomeBranch       string   `json:"home_branch"`
	FixedHolidays    []int    `json:"fixed_holidays"`
	HolidayRequests  []string `json:"holiday_requests"`
	MinShiftsPerWeek int      `json:"min_shifts_per_week"`
	MaxShiftsPerWeek int      `json:"max_shifts_per_week"`
}

func (r employeeRequest) toInput() application.EmployeeInput {
	fixed := make([]time.Weekday, 0, len(r.FixedHolidays))
	for _, d := range r.FixedHolidays {
		fixed = append(fixed, time.Weekday(d))
	}
	return application.EmployeeInput{
		Name:             strings.TrimSpace(r.Name),
		Role:             strings.TrimSpace(r.Role),
		Skill:            roster.Skill(r.Skill),
		HomeBranch:       roster.Branch(r.HomeBranch),
		FixedHolidays:    fixed,
		HolidayRequests:  r.HolidayRequests,
		MinShiftsPerWeek: r.MinShiftsPerWeek,
		MaxShiftsPerWeek: r.MaxShiftsPerWeek,
	}
}

type employeeResponse struct {
	Employee employeeDTO `json:"employee"`
}

type listEmployeesResponse struct {
	Employees []employeeDTO `json:"employees"`
}

type employeeDTO struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Role             string   `json:"role,omitempty"`
	Skill            string   `json:"skill"`
	HomeBranch       string   `json:"home_branch"`
	FixedHolidays    []int    `json:"fixed_holidays,omitempty"`
	HolidayRequests  []string `json:"holiday_requests,omitempty"`
	MinShiftsPerWeek int      `json:"min_shifts_per_week"`
	MaxShiftsPerWeek int      `json:"max_shifts_per_week"`
}

func toEmployeeDTO(emp roster.Employee) employeeDTO {
	fixed := make([]int, 0, len(emp.FixedHolidays))
	for _, d := range emp.FixedHolidays {
		fixed = append(fixed, int(d))
	}
	return employeeDTO{
		ID:               emp.ID,
		Name:             emp.Name,
		Role:             emp.Role,
		Skill:            string(emp.Skill),
		HomeBranch:       string(emp.HomeBranch),
		FixedHolidays:    fixed,
		HolidayRequests:  emp.HolidayRequests,
		MinShiftsPerWeek: emp.MinShiftsPerWeek,
		MaxShiftsPerWeek: emp.MaxShiftsPerWeek,
	}
}

func toEmployeeDTOs(employees []roster.Employee) []employeeDTO {
	if len(employees) == 0 {
		return nil
	}
	out := make([]employeeDTO, 0, len(employees))
	for _, emp := range employees {
		out = append(out, toEmployeeDTO(emp))
	}
	return out
}
