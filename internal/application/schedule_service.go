package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/example/branch-roster/internal/persistence"
	"github.com/example/branch-roster/internal/roster"
)

// ScheduleRepository captures the persistence interactions needed by the service.
type ScheduleRepository interface {
	GetSchedule(ctx context.Context, date string) (*roster.DaySchedule, error)
	PutSchedule(ctx context.Context, sched *roster.DaySchedule) error
	DeleteSchedule(ctx context.Context, date string) error
	LoadRange(ctx context.Context, from, to string) (map[string]*roster.DaySchedule, error)
	SaveAll(ctx context.Context, schedules map[string]*roster.DaySchedule) error
}

// NoteRepository captures the shared note interactions needed by the service.
type NoteRepository interface {
	LoadNote(ctx context.Context) (persistence.Note, error)
	SaveNote(ctx context.Context, body string) error
}

// ScheduleService orchestrates validation and persistence for day schedules,
// month views, and the shared note.
type ScheduleService struct {
	schedules ScheduleRepository
	employees EmployeeRepository
	notes     NoteRepository
	logger    *slog.Logger
}

// NewScheduleService wires dependencies for schedule operations.
func NewScheduleService(schedules ScheduleRepository, employees EmployeeRepository, notes NoteRepository, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		employees: employees,
		notes:     notes,
		logger:    defaultLogger(logger),
	}
}

// GetDay returns the stored schedule for the date, or an empty day when none
// was saved yet.
func (s *ScheduleService) GetDay(ctx context.Context, date string) (*roster.DaySchedule, error) {
	if s == nil || s.schedules == nil {
		return nil, fmt.Errorf("schedule repository not configured")
	}
	if err := checkDate(date); err != nil {
		return nil, err
	}

	sched, err := s.schedules.GetSchedule(ctx, date)
	if errors.Is(err, persistence.ErrNotFound) {
		return roster.NewDaySchedule(date), nil
	}
	if err != nil {
		return nil, mapRepoError(err)
	}
	return sched, nil
}

// PutDay validates and stores one schedule day.
func (s *ScheduleService) PutDay(ctx context.Context, date string, input DayInput) (*roster.DaySchedule, error) {
	if s == nil || s.schedules == nil {
		return nil, fmt.Errorf("schedule repository not configured")
	}
	if err := checkDate(date); err != nil {
		return nil, err
	}

	sched := roster.NewDaySchedule(date)
	for _, branch := range roster.Branches {
		sched.Working[branch] = append(sched.Working[branch], input.Working[branch]...)
	}
	sched.Holidays = append(sched.Holidays, input.Holidays...)
	sched.Memo = input.Memo
	sched.Closed = input.Closed

	if err := sched.Validate(); err != nil {
		vErr := &ValidationError{}
		vErr.add("schedule", err.Error())
		return nil, vErr
	}
	groups := [][]int{sched.Holidays}
	for _, branch := range roster.Branches {
		groups = append(groups, sched.Working[branch])
	}
	if err := s.ensureEmployeesExist(ctx, groups...); err != nil {
		return nil, err
	}

	if err := s.schedules.PutSchedule(ctx, sched); err != nil {
		return nil, mapRepoError(err)
	}

	serviceLogger(ctx, s.logger, "schedule", "put_day").InfoContext(ctx, "day schedule stored",
		"date", date, "closed", sched.Closed)
	return sched, nil
}

// DeleteDay removes the stored schedule for the date.
func (s *ScheduleService) DeleteDay(ctx context.Context, date string) error {
	if s == nil || s.schedules == nil {
		return fmt.Errorf("schedule repository not configured")
	}
	if err := checkDate(date); err != nil {
		return err
	}
	if err := s.schedules.DeleteSchedule(ctx, date); err != nil {
		return mapRepoError(err)
	}
	serviceLogger(ctx, s.logger, "schedule", "delete_day").InfoContext(ctx, "day schedule deleted", "date", date)
	return nil
}

// UpdateMemo replaces the memo of the date, creating an empty day if needed.
func (s *ScheduleService) UpdateMemo(ctx context.Context, date, memo string) (*roster.DaySchedule, error) {
	sched, err := s.GetDay(ctx, date)
	if err != nil {
		return nil, err
	}
	sched.Memo = memo
	if err := s.schedules.PutSchedule(ctx, sched); err != nil {
		return nil, mapRepoError(err)
	}
	return sched, nil
}

// SetClosed marks the date as a closed day or reopens it. Closing clears any
// assignments stored for the date.
func (s *ScheduleService) SetClosed(ctx context.Context, date string, closed bool) (*roster.DaySchedule, error) {
	sched, err := s.GetDay(ctx, date)
	if err != nil {
		return nil, err
	}
	sched.Closed = closed
	if closed {
		for _, branch := range roster.Branches {
			sched.Working[branch] = sched.Working[branch][:0]
		}
		sched.Holidays = sched.Holidays[:0]
	}
	if err := s.schedules.PutSchedule(ctx, sched); err != nil {
		return nil, mapRepoError(err)
	}
	serviceLogger(ctx, s.logger, "schedule", "set_closed").InfoContext(ctx, "closed flag updated",
		"date", date, "closed", closed)
	return sched, nil
}

// MonthView returns every stored day of the month in date order, each
// decorated with its Sunday-start calendar week ordinal.
func (s *ScheduleService) MonthView(ctx context.Context, year int, month time.Month) (MonthView, error) {
	if s == nil || s.schedules == nil {
		return MonthView{}, fmt.Errorf("schedule repository not configured")
	}
	if month < time.January || month > time.December {
		vErr := &ValidationError{}
		vErr.add("month", "month must be between 1 and 12")
		return MonthView{}, vErr
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	stored, err := s.schedules.LoadRange(ctx, first.Format(roster.DateLayout), last.Format(roster.DateLayout))
	if err != nil {
		return MonthView{}, mapRepoError(err)
	}

	weeks := roster.MonthWeekIndex(year, month)
	view := MonthView{Year: year, Month: month, Days: make([]DayView, 0, len(stored))}
	for date, sched := range stored {
		view.Days = append(view.Days, DayView{
			Date:      date,
			WeekIndex: weeks[date],
			Working:   sched.Working,
			Holidays:  sched.Holidays,
			Memo:      sched.Memo,
			Closed:    sched.Closed,
		})
	}
	sort.Slice(view.Days, func(i, j int) bool { return view.Days[i].Date < view.Days[j].Date })
	return view, nil
}

// GetNote returns the shared note.
func (s *ScheduleService) GetNote(ctx context.Context) (persistence.Note, error) {
	if s == nil || s.notes == nil {
		return persistence.Note{}, fmt.Errorf("note repository not configured")
	}
	note, err := s.notes.LoadNote(ctx)
	if err != nil {
		return persistence.Note{}, mapRepoError(err)
	}
	return note, nil
}

// SaveNote replaces the shared note body.
func (s *ScheduleService) SaveNote(ctx context.Context, body string) error {
	if s == nil || s.notes == nil {
		return fmt.Errorf("note repository not configured")
	}
	if err := s.notes.SaveNote(ctx, body); err != nil {
		return mapRepoError(err)
	}
	serviceLogger(ctx, s.logger, "schedule", "save_note").InfoContext(ctx, "shared note updated")
	return nil
}

func (s *ScheduleService) ensureEmployeesExist(ctx context.Context, groups ...[]int) error {
	if s.employees == nil {
		return nil
	}
	known, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return mapRepoError(err)
	}
	ids := make(map[int]struct{}, len(known))
	for _, emp := range known {
		ids[emp.ID] = struct{}{}
	}
	for _, group := range groups {
		for _, id := range group {
			if _, ok := ids[id]; !ok {
				vErr := &ValidationError{}
				vErr.add("employees", fmt.Sprintf("unknown employee id %d", id))
				return vErr
			}
		}
	}
	return nil
}

func checkDate(date string) error {
	if _, err := time.Parse(roster.DateLayout, date); err != nil {
		vErr := &ValidationError{}
		vErr.add("date", "date must be formatted YYYY-MM-DD")
		return vErr
	}
	return nil
}
