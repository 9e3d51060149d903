package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/branch-roster/internal/persistence"
)

// AttendanceRepository implements persistence.AttendanceRepository on SQLite.
type AttendanceRepository struct {
	pool *Pool
}

// NewAttendanceRepository creates an attendance repository over the pool.
func NewAttendanceRepository(pool *Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// PunchIn records a clock-in, keeping the first recorded time.
func (r *AttendanceRepository) PunchIn(ctx context.Context, date string, employeeID int, hhmm string) error {
	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO attendance (date, employee_id, clock_in) VALUES (?, ?, ?)
		ON CONFLICT(date, employee_id) DO UPDATE SET clock_in = excluded.clock_in
		WHERE attendance.clock_in = ''`,
		date, employeeID, hhmm)
	return mapError(err)
}

// PunchOut records a clock-out, keeping the first recorded time.
func (r *AttendanceRepository) PunchOut(ctx context.Context, date string, employeeID int, hhmm string) error {
	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO attendance (date, employee_id, clock_out) VALUES (?, ?, ?)
		ON CONFLICT(date, employee_id) DO UPDATE SET clock_out = excluded.clock_out
		WHERE attendance.clock_out = ''`,
		date, employeeID, hhmm)
	return mapError(err)
}

// Adjust overrides punch times. Nil pointers leave fields alone, empty
// strings clear them; a record left with neither time is deleted.
func (r *AttendanceRepository) Adjust(ctx context.Context, date string, employeeID int, clockIn, clockOut *string) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var in, out string
		err := tx.QueryRowContext(ctx,
			"SELECT clock_in, clock_out FROM attendance WHERE date = ? AND employee_id = ?",
			date, employeeID).Scan(&in, &out)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return mapError(err)
		}

		if clockIn != nil {
			in = *clockIn
		}
		if clockOut != nil {
			out = *clockOut
		}

		if in == "" && out == "" {
			_, err := tx.ExecContext(ctx,
				"DELETE FROM attendance WHERE date = ? AND employee_id = ?", date, employeeID)
			return mapError(err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO attendance (date, employee_id, clock_in, clock_out) VALUES (?, ?, ?, ?)
			ON CONFLICT(date, employee_id) DO UPDATE SET clock_in = excluded.clock_in, clock_out = excluded.clock_out`,
			date, employeeID, in, out)
		return mapError(err)
	})
}

// ListDay returns the date's punch records ordered by employee id.
func (r *AttendanceRepository) ListDay(ctx context.Context, date string) ([]persistence.AttendanceRecord, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT date, employee_id, clock_in, clock_out FROM attendance WHERE date = ? ORDER BY employee_id", date)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var records []persistence.AttendanceRecord
	for rows.Next() {
		var rec persistence.AttendanceRecord
		if err := rows.Scan(&rec.Date, &rec.EmployeeID, &rec.ClockIn, &rec.ClockOut); err != nil {
			return nil, mapError(err)
		}
		records = append(records, rec)
	}
	return records, mapError(rows.Err())
}
