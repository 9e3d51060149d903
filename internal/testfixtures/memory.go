package testfixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/example/branch-roster/internal/persistence"
	"github.com/example/branch-roster/internal/roster"
)

// MemoryStore is an in-memory stand-in for the SQLite repositories. It backs
// service and handler tests that do not need a real database.
type MemoryStore struct {
	mu        sync.Mutex
	nextID    int
	employees map[int]roster.Employee
	schedules map[string]*roster.DaySchedule
	punches   map[string]persistence.AttendanceRecord
	note      persistence.Note
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:    1,
		employees: make(map[int]roster.Employee),
		schedules: make(map[string]*roster.DaySchedule),
		punches:   make(map[string]persistence.AttendanceRecord),
	}
}

// CreateEmployee stores the employee under a fresh id.
func (m *MemoryStore) CreateEmployee(_ context.Context, emp roster.Employee) (roster.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emp.ID = m.nextID
	m.nextID++
	m.employees[emp.ID] = emp
	return emp, nil
}

// UpdateEmployee replaces a stored employee.
func (m *MemoryStore) UpdateEmployee(_ context.Context, emp roster.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[emp.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.employees[emp.ID] = emp
	return nil
}

// GetEmployee retrieves one employee.
func (m *MemoryStore) GetEmployee(_ context.Context, id int) (roster.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emp, ok := m.employees[id]
	if !ok {
		return roster.Employee{}, persistence.ErrNotFound
	}
	return emp, nil
}

// ListEmployees returns the registry ordered by id.
func (m *MemoryStore) ListEmployees(_ context.Context) ([]roster.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]roster.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteEmployee removes the employee and purges the id from schedules.
func (m *MemoryStore) DeleteEmployee(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.employees, id)
	for _, sched := range m.schedules {
		sched.RemoveEmployee(id)
	}
	return nil
}

// GetSchedule retrieves one stored day.
func (m *MemoryStore) GetSchedule(_ context.Context, date string) (*roster.DaySchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sched, ok := m.schedules[date]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	return sched.Clone(), nil
}

// PutSchedule stores one day.
func (m *MemoryStore) PutSchedule(_ context.Context, sched *roster.DaySchedule) error {
	if err := sched.Validate(); err != nil {
		return persistence.ErrConstraintViolation
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[sched.Date] = sched.Clone()
	return nil
}

// DeleteSchedule removes one stored day.
func (m *MemoryStore) DeleteSchedule(_ context.Context, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.schedules[date]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.schedules, date)
	return nil
}

// LoadRange returns stored days with from <= date <= to.
func (m *MemoryStore) LoadRange(_ context.Context, from, to string) (map[string]*roster.DaySchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*roster.DaySchedule)
	for date, sched := range m.schedules {
		if date >= from && date <= to {
			out[date] = sched.Clone()
		}
	}
	return out, nil
}

// SaveAll stores every day in the map.
func (m *MemoryStore) SaveAll(_ context.Context, schedules map[string]*roster.DaySchedule) error {
	for _, sched := range schedules {
		if err := sched.Validate(); err != nil {
			return persistence.ErrConstraintViolation
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for date, sched := range schedules {
		m.schedules[date] = sched.Clone()
	}
	return nil
}

// ScheduleCount reports how many days are stored.
func (m *MemoryStore) ScheduleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.schedules)
}

func punchKey(date string, employeeID int) string {
	return fmt.Sprintf("%s/%d", date, employeeID)
}

// PunchIn records a clock-in, keeping the first recorded time.
func (m *MemoryStore) PunchIn(_ context.Context, date string, employeeID int, hhmm string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := punchKey(date, employeeID)
	rec, ok := m.punches[key]
	if !ok {
		rec = persistence.AttendanceRecord{Date: date, EmployeeID: employeeID}
	}
	if rec.ClockIn == "" {
		rec.ClockIn = hhmm
	}
	m.punches[key] = rec
	return nil
}

// PunchOut records a clock-out, keeping the first recorded time.
func (m *MemoryStore) PunchOut(_ context.Context, date string, employeeID int, hhmm string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := punchKey(date, employeeID)
	rec, ok := m.punches[key]
	if !ok {
		rec = persistence.AttendanceRecord{Date: date, EmployeeID: employeeID}
	}
	if rec.ClockOut == "" {
		rec.ClockOut = hhmm
	}
	m.punches[key] = rec
	return nil
}

// Adjust overrides punch fields, deleting records cleared on both sides.
func (m *MemoryStore) Adjust(_ context.Context, date string, employeeID int, clockIn, clockOut *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := punchKey(date, employeeID)
	rec, ok := m.punches[key]
	if !ok {
		rec = persistence.AttendanceRecord{Date: date, EmployeeID: employeeID}
	}
	if clockIn != nil {
		rec.ClockIn = *clockIn
	}
	if clockOut != nil {
		rec.ClockOut = *clockOut
	}
	if rec.ClockIn == "" && rec.ClockOut == "" {
		delete(m.punches, key)
		return nil
	}
	m.punches[key] = rec
	return nil
}

// ListDay returns the date's punch records ordered by employee id.
func (m *MemoryStore) ListDay(_ context.Context, date string) ([]persistence.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []persistence.AttendanceRecord
	for _, rec := range m.punches {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

// LoadNote returns the shared note.
func (m *MemoryStore) LoadNote(context.Context) (persistence.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.note, nil
}

// SaveNote replaces the shared note body.
func (m *MemoryStore) SaveNote(_ context.Context, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.note.Body = body
	return nil
}
