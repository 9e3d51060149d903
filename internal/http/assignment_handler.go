package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/branch-roster/internal/application"
)

type assignmentService interface {
	Assign(ctx context.Context, params application.AssignParams) (application.AssignResult, error)
}

type AssignmentHandler struct {
	service   assignmentService
	responder responder
	logger    *slog.Logger
}

func NewAssignmentHandler(service assignmentService, logger *slog.Logger) *AssignmentHandler {
	base := defaultLogger(logger)
	return &AssignmentHandler{service: service, responder: newResponder(base), logger: base}
}

// Assign runs auto-assignment over the requested range.
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlerLogger(r.Context(), h.logger, "AssignmentHandler", "Assign", "error_kind", "bad_request").
			ErrorContext(r.Context(), "failed to decode assign request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := handlerLogger(r.Context(), h.logger, "AssignmentHandler", "Assign",
		"start", req.Start, "days", req.Days, "overwrite", req.Overwrite)

	result, err := h.service.Assign(r.Context(), application.AssignParams{
		Start:        req.Start,
		Days:         req.Days,
		Overwrite:    req.Overwrite,
		WeeklyOffCap: req.WeeklyOffCap,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "assignment failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "assignment completed", "end", result.End)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, assignResponse{
		Start:     result.Start,
		End:       result.End,
		Days:      result.Days,
		Employees: result.Employees,
	})
}

type assignRequest struct {
	Start        string `json:"start"`
	Days         int    `json:"days"`
	Overwrite    bool   `json:"overwrite"`
	WeeklyOffCap int    `json:"weekly_off_cap"`
}

type assignResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Days      int    `json:"days"`
	Employees int    `json:"employees"`
}
