package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/branch-roster/internal/persistence"
	"github.com/example/branch-roster/internal/roster"
)

// ScheduleRepository implements persistence.ScheduleRepository on SQLite.
// Rosters and holiday lists live in child tables keyed by (date, position) so
// their order round-trips.
type ScheduleRepository struct {
	pool *Pool
	now  func() time.Time
}

// NewScheduleRepository creates a schedule repository over the pool.
func NewScheduleRepository(pool *Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool, now: time.Now}
}

// GetSchedule retrieves the schedule for one date.
func (r *ScheduleRepository) GetSchedule(ctx context.Context, date string) (*roster.DaySchedule, error) {
	sched := roster.NewDaySchedule(date)
	var closed int
	err := r.pool.db.QueryRowContext(ctx, "SELECT memo, closed FROM schedules WHERE date = ?", date).Scan(&sched.Memo, &closed)
	if err != nil {
		return nil, mapError(err)
	}
	sched.Closed = closed != 0

	if err := r.loadAssignments(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// PutSchedule upserts the schedule for its date.
func (r *ScheduleRepository) PutSchedule(ctx context.Context, sched *roster.DaySchedule) error {
	if sched == nil {
		return persistence.ErrConstraintViolation
	}
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		return r.upsertTx(ctx, tx, sched)
	})
}

// DeleteSchedule removes the date and its assignment rows.
func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, date string) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM schedules WHERE date = ?", date)
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
	})
}

// LoadRange returns every stored schedule with from <= date <= to.
func (r *ScheduleRepository) LoadRange(ctx context.Context, from, to string) (map[string]*roster.DaySchedule, error) {
	rows, err := r.pool.db.QueryContext(ctx, "SELECT date, memo, closed FROM schedules WHERE date >= ? AND date <= ? ORDER BY date", from, to)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	schedules := make(map[string]*roster.DaySchedule)
	for rows.Next() {
		var date, memo string
		var closed int
		if err := rows.Scan(&date, &memo, &closed); err != nil {
			return nil, mapError(err)
		}
		sched := roster.NewDaySchedule(date)
		sched.Memo = memo
		sched.Closed = closed != 0
		schedules[date] = sched
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	for _, sched := range schedules {
		if err := r.loadAssignments(ctx, sched); err != nil {
			return nil, err
		}
	}
	return schedules, nil
}

// SaveAll persists the whole map in one transaction.
func (r *ScheduleRepository) SaveAll(ctx context.Context, schedules map[string]*roster.DaySchedule) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, sched := range schedules {
			if err := r.upsertTx(ctx, tx, sched); err != nil {
				return fmt.Errorf("save schedule %s: %w", sched.Date, err)
			}
		}
		return nil
	})
}

func (r *ScheduleRepository) upsertTx(ctx context.Context, tx *sql.Tx, sched *roster.DaySchedule) error {
	if err := sched.Validate(); err != nil {
		return fmt.Errorf("%w: %v", persistence.ErrConstraintViolation, err)
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO schedules (date, memo, closed, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET memo = excluded.memo, closed = excluded.closed, updated_at = excluded.updated_at`,
		sched.Date, sched.Memo, boolToInt(sched.Closed), r.now().UTC().Format(time.RFC3339))
	if err != nil {
		return mapError(err)
	}

	for _, stmt := range []string{
		"DELETE FROM schedule_shifts WHERE date = ?",
		"DELETE FROM schedule_holidays WHERE date = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, sched.Date); err != nil {
			return mapError(err)
		}
	}

	for _, branch := range roster.Branches {
		for pos, id := range sched.Working[branch] {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO schedule_shifts (date, branch, position, employee_id) VALUES (?, ?, ?, ?)",
				sched.Date, string(branch), pos, id)
			if err != nil {
				return mapError(err)
			}
		}
	}
	for pos, id := range sched.Holidays {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO schedule_holidays (date, position, employee_id) VALUES (?, ?, ?)",
			sched.Date, pos, id)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (r *ScheduleRepository) loadAssignments(ctx context.Context, sched *roster.DaySchedule) error {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT branch, employee_id FROM schedule_shifts WHERE date = ? ORDER BY branch, position", sched.Date)
	if err != nil {
		return mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var branch string
		var id int
		if err := rows.Scan(&branch, &id); err != nil {
			return mapError(err)
		}
		code := roster.Branch(branch)
		sched.Working[code] = append(sched.Working[code], id)
	}
	if err := rows.Err(); err != nil {
		return mapError(err)
	}

	holidayRows, err := r.pool.db.QueryContext(ctx,
		"SELECT employee_id FROM schedule_holidays WHERE date = ? ORDER BY position", sched.Date)
	if err != nil {
		return mapError(err)
	}
	defer holidayRows.Close()

	for holidayRows.Next() {
		var id int
		if err := holidayRows.Scan(&id); err != nil {
			return mapError(err)
		}
		sched.Holidays = append(sched.Holidays, id)
	}
	return mapError(holidayRows.Err())
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
