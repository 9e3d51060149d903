package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/branch-roster/internal/application"
	"github.com/example/branch-roster/internal/persistence"
)

type attendanceService interface {
	PunchIn(ctx context.Context, employeeID int) (persistence.AttendanceRecord, error)
	PunchOut(ctx context.Context, employeeID int) (persistence.AttendanceRecord, error)
	Adjust(ctx context.Context, date string, employeeID int, adj application.AttendanceAdjustment) error
	ListDay(ctx context.Context, date string) ([]persistence.AttendanceRecord, error)
}

type AttendanceHandler struct {
	service   attendanceService
	responder responder
	logger    *slog.Logger
}

func NewAttendanceHandler(service attendanceService, logger *slog.Logger) *AttendanceHandler {
	base := defaultLogger(logger)
	return &AttendanceHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AttendanceHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AttendanceHandler", operation, attrs...)
}

// PunchIn stamps a clock-in for the employee named in the request body.
func (h *AttendanceHandler) PunchIn(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, "PunchIn", func(ctx context.Context, employeeID int) (persistence.AttendanceRecord, error) {
		return h.service.PunchIn(ctx, employeeID)
	})
}

// PunchOut stamps a clock-out for the employee named in the request body.
func (h *AttendanceHandler) PunchOut(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, "PunchOut", func(ctx context.Context, employeeID int) (persistence.AttendanceRecord, error) {
		return h.service.PunchOut(ctx, employeeID)
	})
}

func (h *AttendanceHandler) punch(w http.ResponseWriter, r *http.Request, operation string, call func(ctx context.Context, employeeID int) (persistence.AttendanceRecord, error)) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req punchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode punch request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), operation, "employee_id", req.EmployeeID)

	record, err := call(r.Context(), req.EmployeeID)
	if err != nil {
		logger.ErrorContext(r.Context(), "punch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "punch recorded", "date", record.Date)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, attendanceResponse{Record: toAttendanceDTO(record)})
}

// Adjust overrides stored punch times for one employee and date.
func (h *AttendanceHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date, ok := DateFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}
	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Adjust", "date", date, "employee_id", employeeID)

	err := h.service.Adjust(r.Context(), date, employeeID, application.AttendanceAdjustment{
		ClockIn:  req.ClockIn,
		ClockOut: req.ClockOut,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "punch adjust failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "punch adjusted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// ListDay returns the punch records stored for one date.
func (h *AttendanceHandler) ListDay(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date, ok := DateFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	records, err := h.service.ListDay(r.Context(), date)
	if err != nil {
		h.log(r.Context(), "ListDay", "date", date).ErrorContext(r.Context(), "attendance list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAttendanceResponse{Records: toAttendanceDTOs(records)})
}

type punchRequest struct {
	EmployeeID int `json:"employee_id"`
}

type adjustRequest struct {
	ClockIn  *string `json:"clock_in"`
	ClockOut *string `json:"clock_out"`
}

type attendanceResponse struct {
	Record attendanceDTO `json:"record"`
}

type listAttendanceResponse struct {
	Records []attendanceDTO `json:"records"`
}

type attendanceDTO struct {
	Date       string `json:"date"`
	EmployeeID int    `json:"employee_id"`
	ClockIn    string `json:"clock_in,omitempty"`
	ClockOut   string `json:"clock_out,omitempty"`
}

func toAttendanceDTO(rec persistence.AttendanceRecord) attendanceDTO {
	return attendanceDTO{
		Date:       rec.Date,
		EmployeeID: rec.EmployeeID,
		ClockIn:    rec.ClockIn,
		ClockOut:   rec.ClockOut,
	}
}

func toAttendanceDTOs(records []persistence.AttendanceRecord) []attendanceDTO {
	if len(records) == 0 {
		return nil
	}
	out := make([]attendanceDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, toAttendanceDTO(rec))
	}
	return out
}
