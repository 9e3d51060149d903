package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/branch-roster/internal/persistence"
	_ "modernc.org/sqlite"
)

// Pool wraps the SQLite handle with transaction support shared by the
// repositories.
type Pool struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn and bootstraps the schema.
func Open(dsn string) (*Pool, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// The driver serializes writes; a single connection avoids spurious
	// SQLITE_BUSY errors and keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return &Pool{db: db}, nil
}

// DB exposes the underlying handle.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Close releases the database handle.
func (p *Pool) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// Ping verifies the connection.
func (p *Pool) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// WithTransaction runs fn inside a transaction, rolling back when fn fails.
func (p *Pool) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// mapError translates driver errors into persistence sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return persistence.ErrNotFound
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return persistence.ErrDuplicate
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return persistence.ErrForeignKeyViolation
	case strings.Contains(msg, "CHECK constraint failed"):
		return persistence.ErrConstraintViolation
	}
	return err
}
