package persistence

import (
	"context"

	"github.com/example/branch-roster/internal/roster"
)

// EmployeeRepository stores the employee registry. IDs are assigned by the
// store, monotonically increasing.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, emp roster.Employee) (roster.Employee, error)
	UpdateEmployee(ctx context.Context, emp roster.Employee) error
	GetEmployee(ctx context.Context, id int) (roster.Employee, error)
	ListEmployees(ctx context.Context) ([]roster.Employee, error)
	// DeleteEmployee removes the employee and purges the id from every
	// stored roster and holiday list, keeping schedules registry-consistent
	// for the assignment engine.
	DeleteEmployee(ctx context.Context, id int) error
}

// ScheduleRepository stores day schedules keyed by ISO date.
type ScheduleRepository interface {
	GetSchedule(ctx context.Context, date string) (*roster.DaySchedule, error)
	PutSchedule(ctx context.Context, sched *roster.DaySchedule) error
	DeleteSchedule(ctx context.Context, date string) error
	// LoadRange returns every stored schedule with from <= date <= to.
	LoadRange(ctx context.Context, from, to string) (map[string]*roster.DaySchedule, error)
	// SaveAll persists the given schedules in a single transaction. It is
	// the engine's persist-once-at-the-end contract.
	SaveAll(ctx context.Context, schedules map[string]*roster.DaySchedule) error
}

// AttendanceRepository stores punch-clock entries.
type AttendanceRepository interface {
	// PunchIn records a clock-in for the date. The first punch wins; later
	// calls are ignored.
	PunchIn(ctx context.Context, date string, employeeID int, hhmm string) error
	// PunchOut records a clock-out for the date, first write wins.
	PunchOut(ctx context.Context, date string, employeeID int, hhmm string) error
	// Adjust overrides punch times. A nil pointer leaves the field alone,
	// an empty string clears it; records with both fields empty are removed.
	Adjust(ctx context.Context, date string, employeeID int, clockIn, clockOut *string) error
	ListDay(ctx context.Context, date string) ([]AttendanceRecord, error)
}

// NoteRepository stores the single shared note.
type NoteRepository interface {
	LoadNote(ctx context.Context) (Note, error)
	SaveNote(ctx context.Context, body string) error
}
