package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/branch-roster/internal/persistence"
	"github.com/example/branch-roster/internal/roster"
)

// EmployeeRepository implements persistence.EmployeeRepository on SQLite.
type EmployeeRepository struct {
	pool *Pool
	now  func() time.Time
}

// NewEmployeeRepository creates an employee repository over the pool.
func NewEmployeeRepository(pool *Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool, now: time.Now}
}

const employeeColumns = "id, name, role, skill, home_branch, fixed_holidays, holiday_requests, min_shifts_per_week, max_shifts_per_week"

// CreateEmployee inserts the employee and returns it with the store-assigned id.
func (r *EmployeeRepository) CreateEmployee(ctx context.Context, emp roster.Employee) (roster.Employee, error) {
	if err := checkEmployee(emp); err != nil {
		return roster.Employee{}, err
	}

	now := r.now().UTC().Format(time.RFC3339)
	res, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO employees (name, role, skill, home_branch, fixed_holidays, holiday_requests, min_shifts_per_week, max_shifts_per_week, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		emp.Name,
		emp.Role,
		string(emp.Skill),
		string(emp.HomeBranch),
		encodeWeekdays(emp.FixedHolidays),
		strings.Join(emp.HolidayRequests, ","),
		emp.MinShiftsPerWeek,
		emp.MaxShiftsPerWeek,
		now,
		now,
	)
	if err != nil {
		return roster.Employee{}, mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return roster.Employee{}, fmt.Errorf("read inserted employee id: %w", err)
	}
	emp.ID = int(id)
	return emp, nil
}

// UpdateEmployee replaces the stored attributes of an existing employee.
func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, emp roster.Employee) error {
	if err := checkEmployee(emp); err != nil {
		return err
	}

	res, err := r.pool.db.ExecContext(ctx, `
		UPDATE employees
		SET name = ?, role = ?, skill = ?, home_branch = ?, fixed_holidays = ?, holiday_requests = ?, min_shifts_per_week = ?, max_shifts_per_week = ?, updated_at = ?
		WHERE id = ?`,
		emp.Name,
		emp.Role,
		string(emp.Skill),
		string(emp.HomeBranch),
		encodeWeekdays(emp.FixedHolidays),
		strings.Join(emp.HolidayRequests, ","),
		emp.MinShiftsPerWeek,
		emp.MaxShiftsPerWeek,
		r.now().UTC().Format(time.RFC3339),
		emp.ID,
	)
	if err != nil {
		return mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetEmployee retrieves one employee by id.
func (r *EmployeeRepository) GetEmployee(ctx context.Context, id int) (roster.Employee, error) {
	row := r.pool.db.QueryRowContext(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = ?", id)
	emp, err := scanEmployee(row)
	if err != nil {
		return roster.Employee{}, mapError(err)
	}
	return emp, nil
}

// ListEmployees returns the registry ordered by id.
func (r *EmployeeRepository) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	rows, err := r.pool.db.QueryContext(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY id")
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var employees []roster.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, mapError(err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return employees, nil
}

// DeleteEmployee removes the employee and purges the id from stored rosters,
// holiday lists, and attendance in the same transaction, so schedules stay
// consistent with the registry.
func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, id int) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
		if err != nil {
			return mapError(err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("read rows affected: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}

		for _, stmt := range []string{
			"DELETE FROM schedule_shifts WHERE employee_id = ?",
			"DELETE FROM schedule_holidays WHERE employee_id = ?",
			"DELETE FROM attendance WHERE employee_id = ?",
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return mapError(err)
			}
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (roster.Employee, error) {
	var emp roster.Employee
	var skill, branch, fixed, requests string
	if err := row.Scan(&emp.ID, &emp.Name, &emp.Role, &skill, &branch, &fixed, &requests, &emp.MinShiftsPerWeek, &emp.MaxShiftsPerWeek); err != nil {
		return roster.Employee{}, err
	}
	emp.Skill = roster.Skill(skill)
	emp.HomeBranch = roster.Branch(branch)
	emp.FixedHolidays = decodeWeekdays(fixed)
	emp.HolidayRequests = splitList(requests)
	return emp, nil
}

func checkEmployee(emp roster.Employee) error {
	if strings.TrimSpace(emp.Name) == "" {
		return persistence.ErrConstraintViolation
	}
	if !roster.ValidSkill(emp.Skill) || !roster.ValidBranch(emp.HomeBranch) {
		return persistence.ErrConstraintViolation
	}
	if emp.MinShiftsPerWeek < 0 || emp.MinShiftsPerWeek > emp.MaxShiftsPerWeek {
		return persistence.ErrConstraintViolation
	}
	return nil
}

func encodeWeekdays(days []time.Weekday) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(encoded string) []time.Weekday {
	var days []time.Weekday
	for _, part := range splitList(encoded) {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}

func splitList(encoded string) []string {
	var out []string
	for _, part := range strings.Split(encoded, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
