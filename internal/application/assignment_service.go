package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/branch-roster/internal/roster"
)

// AssignmentService drives the auto-assignment engine over persisted state:
// it loads the registry and the affected date range, runs the engine, and
// persists the result in one batch.
type AssignmentService struct {
	employees EmployeeRepository
	schedules ScheduleRepository
	engine    *roster.Engine
	logger    *slog.Logger
}

// NewAssignmentService wires dependencies for assignment runs. A nil engine
// falls back to one seeded from the shared random source.
func NewAssignmentService(employees EmployeeRepository, schedules ScheduleRepository, engine *roster.Engine, logger *slog.Logger) *AssignmentService {
	if engine == nil {
		engine = roster.NewEngine(nil)
	}
	return &AssignmentService{
		employees: employees,
		schedules: schedules,
		engine:    engine,
		logger:    defaultLogger(logger),
	}
}

// Assign runs the engine for params.Days dates starting at params.Start and
// saves every touched day in a single transaction. Nothing is written when
// the registry is empty or the engine reports an error.
func (s *AssignmentService) Assign(ctx context.Context, params AssignParams) (AssignResult, error) {
	if s == nil || s.employees == nil || s.schedules == nil {
		return AssignResult{}, fmt.Errorf("assignment repositories not configured")
	}

	start, err := time.Parse(roster.DateLayout, params.Start)
	if err != nil {
		vErr := &ValidationError{}
		vErr.add("start", "start must be formatted YYYY-MM-DD")
		return AssignResult{}, vErr
	}
	if params.Days < 1 {
		vErr := &ValidationError{}
		vErr.add("days", "days must be at least 1")
		return AssignResult{}, vErr
	}
	if params.WeeklyOffCap == 0 {
		params.WeeklyOffCap = roster.DefaultWeeklyOffCap
	}

	logger := serviceLogger(ctx, s.logger, "assignment", "assign",
		"start", params.Start, "days", params.Days, "overwrite", params.Overwrite)

	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return AssignResult{}, mapRepoError(err)
	}
	if len(employees) == 0 {
		logger.WarnContext(ctx, "assignment skipped", "reason", "empty registry")
		return AssignResult{}, ErrNoEmployees
	}

	end := start.AddDate(0, 0, params.Days-1).Format(roster.DateLayout)
	schedules, err := s.schedules.LoadRange(ctx, params.Start, end)
	if err != nil {
		return AssignResult{}, mapRepoError(err)
	}

	opts := roster.Options{Overwrite: params.Overwrite, WeeklyOffCap: params.WeeklyOffCap}
	if err := s.engine.Run(employees, schedules, params.Start, params.Days, opts); err != nil {
		if errors.Is(err, roster.ErrNoEmployees) {
			return AssignResult{}, ErrNoEmployees
		}
		return AssignResult{}, err
	}

	if err := s.schedules.SaveAll(ctx, schedules); err != nil {
		return AssignResult{}, mapRepoError(err)
	}

	logger.InfoContext(ctx, "assignment completed", "end", end, "employees", len(employees))
	return AssignResult{Start: params.Start, End: end, Days: params.Days, Employees: len(employees)}, nil
}
