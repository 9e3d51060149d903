package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/branch-roster/internal/persistence"
	"github.com/example/branch-roster/internal/roster"
)

// AttendanceRepository captures the punch clock interactions needed by the service.
type AttendanceRepository interface {
	PunchIn(ctx context.Context, date string, employeeID int, hhmm string) error
	PunchOut(ctx context.Context, date string, employeeID int, hhmm string) error
	Adjust(ctx context.Context, date string, employeeID int, clockIn, clockOut *string) error
	ListDay(ctx context.Context, date string) ([]persistence.AttendanceRecord, error)
}

// AttendanceService records punch clock events against the roster. Punches
// stamp the current wall clock; the first punch of each kind per day wins.
type AttendanceService struct {
	attendance AttendanceRepository
	employees  EmployeeRepository
	now        func() time.Time
	logger     *slog.Logger
}

// NewAttendanceService wires dependencies for attendance operations.
func NewAttendanceService(attendance AttendanceRepository, employees EmployeeRepository, now func() time.Time, logger *slog.Logger) *AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceService{
		attendance: attendance,
		employees:  employees,
		now:        now,
		logger:     defaultLogger(logger),
	}
}

// PunchIn stamps a clock-in for the employee on today's date.
func (s *AttendanceService) PunchIn(ctx context.Context, employeeID int) (persistence.AttendanceRecord, error) {
	return s.punch(ctx, employeeID, "punch_in", s.attendancePunchIn)
}

// PunchOut stamps a clock-out for the employee on today's date.
func (s *AttendanceService) PunchOut(ctx context.Context, employeeID int) (persistence.AttendanceRecord, error) {
	return s.punch(ctx, employeeID, "punch_out", s.attendancePunchOut)
}

func (s *AttendanceService) punch(ctx context.Context, employeeID int, operation string, write func(ctx context.Context, date string, employeeID int, hhmm string) error) (persistence.AttendanceRecord, error) {
	if s == nil || s.attendance == nil {
		return persistence.AttendanceRecord{}, fmt.Errorf("attendance repository not configured")
	}
	if err := s.ensureEmployeeExists(ctx, employeeID); err != nil {
		return persistence.AttendanceRecord{}, err
	}

	now := s.now()
	date := now.Format(roster.DateLayout)
	hhmm := now.Format("15:04")
	if err := write(ctx, date, employeeID, hhmm); err != nil {
		return persistence.AttendanceRecord{}, mapRepoError(err)
	}

	serviceLogger(ctx, s.logger, "attendance", operation).InfoContext(ctx, "punch recorded",
		"employee_id", employeeID, "date", date, "time", hhmm)
	return s.findRecord(ctx, date, employeeID)
}

// Adjust overrides punch times for the employee on a date. Nil fields stay as
// stored, empty strings clear them; clearing both removes the record.
func (s *AttendanceService) Adjust(ctx context.Context, date string, employeeID int, adj AttendanceAdjustment) error {
	if s == nil || s.attendance == nil {
		return fmt.Errorf("attendance repository not configured")
	}
	if err := checkDate(date); err != nil {
		return err
	}
	for field, value := range map[string]*string{"clock_in": adj.ClockIn, "clock_out": adj.ClockOut} {
		if value == nil || *value == "" {
			continue
		}
		if _, err := time.Parse("15:04", *value); err != nil {
			vErr := &ValidationError{}
			vErr.add(field, "time must be formatted HH:MM")
			return vErr
		}
	}
	if err := s.ensureEmployeeExists(ctx, employeeID); err != nil {
		return err
	}

	if err := s.attendance.Adjust(ctx, date, employeeID, adj.ClockIn, adj.ClockOut); err != nil {
		return mapRepoError(err)
	}
	serviceLogger(ctx, s.logger, "attendance", "adjust").InfoContext(ctx, "punch adjusted",
		"employee_id", employeeID, "date", date)
	return nil
}

// ListDay returns the punch records stored for one date.
func (s *AttendanceService) ListDay(ctx context.Context, date string) ([]persistence.AttendanceRecord, error) {
	if s == nil || s.attendance == nil {
		return nil, fmt.Errorf("attendance repository not configured")
	}
	if err := checkDate(date); err != nil {
		return nil, err
	}
	records, err := s.attendance.ListDay(ctx, date)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return records, nil
}

func (s *AttendanceService) attendancePunchIn(ctx context.Context, date string, employeeID int, hhmm string) error {
	return s.attendance.PunchIn(ctx, date, employeeID, hhmm)
}

func (s *AttendanceService) attendancePunchOut(ctx context.Context, date string, employeeID int, hhmm string) error {
	return s.attendance.PunchOut(ctx, date, employeeID, hhmm)
}

func (s *AttendanceService) ensureEmployeeExists(ctx context.Context, employeeID int) error {
	if s.employees == nil {
		return nil
	}
	if _, err := s.employees.GetEmployee(ctx, employeeID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *AttendanceService) findRecord(ctx context.Context, date string, employeeID int) (persistence.AttendanceRecord, error) {
	records, err := s.attendance.ListDay(ctx, date)
	if err != nil {
		return persistence.AttendanceRecord{}, mapRepoError(err)
	}
	for _, rec := range records {
		if rec.EmployeeID == employeeID {
			return rec, nil
		}
	}
	return persistence.AttendanceRecord{}, ErrNotFound
}
