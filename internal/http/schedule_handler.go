package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/branch-roster/internal/application"
	"github.com/example/branch-roster/internal/persistence"
	"github.com/example/branch-roster/internal/roster"
)

var errInvalidMonth = errors.New("無効な年月です。YYYY-MM 形式で指定してください。")

type scheduleService interface {
	GetDay(ctx context.Context, date string) (*roster.DaySchedule, error)
	PutDay(ctx context.Context, date string, input application.DayInput) (*roster.DaySchedule, error)
	DeleteDay(ctx context.Context, date string) error
	UpdateMemo(ctx context.Context, date, memo string) (*roster.DaySchedule, error)
	SetClosed(ctx context.Context, date string, closed bool) (*roster.DaySchedule, error)
	MonthView(ctx context.Context, year int, month time.Month) (application.MonthView, error)
	GetNote(ctx context.Context) (persistence.Note, error)
	SaveNote(ctx context.Context, body string) error
}

type ScheduleHandler struct {
	service   scheduleService
	responder responder
	logger    *slog.Logger
}

func NewScheduleHandler(service scheduleService, logger *slog.Logger) *ScheduleHandler {
	base := defaultLogger(logger)
	return &ScheduleHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ScheduleHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ScheduleHandler", operation, attrs...)
}

func (h *ScheduleHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date, ok := DateFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	day, err := h.service.GetDay(r.Context(), date)
	if err != nil {
		h.log(r.Context(), "GetDay", "date", date).ErrorContext(r.Context(), "day lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, dayResponse{Day: toDayDTO(day)})
}

func (h *ScheduleHandler) PutDay(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date, ok := DateFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	var req dayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "PutDay", "date", date, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode day request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "PutDay", "date", date)

	day, err := h.service.PutDay(r.Context(), date, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "day update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "day schedule stored")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dayResponse{Day: toDayDTO(day)})
}

func (h *ScheduleHandler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date, ok := DateFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	logger := h.log(r.Context(), "DeleteDay", "date", date)
	if err := h.service.DeleteDay(r.Context(), date); err != nil {
		logger.ErrorContext(r.Context(), "day delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "day schedule deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ScheduleHandler) UpdateMemo(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date, ok := DateFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	var req memoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	day, err := h.service.UpdateMemo(r.Context(), date, req.Memo)
	if err != nil {
		h.log(r.Context(), "UpdateMemo", "date", date).ErrorContext(r.Context(), "memo update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, dayResponse{Day: toDayDTO(day)})
}

func (h *ScheduleHandler) SetClosed(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date, ok := DateFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	var req closedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "SetClosed", "date", date, "closed", req.Closed)

	day, err := h.service.SetClosed(r.Context(), date, req.Closed)
	if err != nil {
		logger.ErrorContext(r.Context(), "closed update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "closed flag updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dayResponse{Day: toDayDTO(day)})
}

func (h *ScheduleHandler) Month(w http.ResponseWriter, r *http.Request, yearMonth string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	parsed, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMonth)
		return
	}

	view, err := h.service.MonthView(r.Context(), parsed.Year(), parsed.Month())
	if err != nil {
		h.log(r.Context(), "Month", "month", yearMonth).ErrorContext(r.Context(), "month view failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMonthDTO(view))
}

func (h *ScheduleHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	note, err := h.service.GetNote(r.Context())
	if err != nil {
		h.log(r.Context(), "GetNote").ErrorContext(r.Context(), "note load failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, noteResponse{Body: note.Body, UpdatedAt: formatNoteTime(note.UpdatedAt)})
}

func (h *ScheduleHandler) SaveNote(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "SaveNote")
	if err := h.service.SaveNote(r.Context(), req.Body); err != nil {
		logger.ErrorContext(r.Context(), "note save failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "shared note updated")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type dayRequest struct {
	Working  map[string][]int `json:"working"`
	Holidays []int            `json:"holidays"`
	Memo     string           `json:"memo"`
	Closed   bool             `json:"closed"`
}

func (r dayRequest) toInput() application.DayInput {
	working := make(map[roster.Branch][]int, len(r.Working))
	for branch, ids := range r.Working {
		working[roster.Branch(branch)] = ids
	}
	return application.DayInput{
		Working:  working,
		Holidays: r.Holidays,
		Memo:     r.Memo,
		Closed:   r.Closed,
	}
}

type memoRequest struct {
	Memo string `json:"memo"`
}

type closedRequest struct {
	Closed bool `json:"closed"`
}

type noteRequest struct {
	Body string `json:"body"`
}

type noteResponse struct {
	Body      string `json:"body"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type dayResponse struct {
	Day dayDTO `json:"day"`
}

type dayDTO struct {
	Date      string           `json:"date"`
	WeekIndex int              `json:"week_index,omitempty"`
	Working   map[string][]int `json:"working"`
	Holidays  []int            `json:"holidays"`
	Memo      string           `json:"memo,omitempty"`
	Closed    bool             `json:"closed"`
}

type monthResponse struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Days  []dayDTO `json:"days"`
}

func toDayDTO(day *roster.DaySchedule) dayDTO {
	working := make(map[string][]int, len(day.Working))
	for branch, ids := range day.Working {
		working[string(branch)] = append([]int{}, ids...)
	}
	return dayDTO{
		Date:     day.Date,
		Working:  working,
		Holidays: append([]int{}, day.Holidays...),
		Memo:     day.Memo,
		Closed:   day.Closed,
	}
}

func toMonthDTO(view application.MonthView) monthResponse {
	days := make([]dayDTO, 0, len(view.Days))
	for _, day := range view.Days {
		working := make(map[string][]int, len(day.Working))
		for branch, ids := range day.Working {
			working[string(branch)] = append([]int{}, ids...)
		}
		days = append(days, dayDTO{
			Date:      day.Date,
			WeekIndex: day.WeekIndex,
			Working:   working,
			Holidays:  append([]int{}, day.Holidays...),
			Memo:      day.Memo,
			Closed:    day.Closed,
		})
	}
	return monthResponse{Year: view.Year, Month: int(view.Month), Days: days}
}

func formatNoteTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
