package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/branch-roster/internal/persistence"
)

// NoteRepository implements persistence.NoteRepository on SQLite. The store
// holds a single shared note row.
type NoteRepository struct {
	pool *Pool
	now  func() time.Time
}

// NewNoteRepository creates a note repository over the pool.
func NewNoteRepository(pool *Pool) *NoteRepository {
	return &NoteRepository{pool: pool, now: time.Now}
}

// LoadNote returns the shared note, or an empty note when none was saved yet.
func (r *NoteRepository) LoadNote(ctx context.Context) (persistence.Note, error) {
	var note persistence.Note
	var updatedAt string
	err := r.pool.db.QueryRowContext(ctx, "SELECT body, updated_at FROM notes WHERE id = 1").Scan(&note.Body, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.Note{}, nil
	}
	if err != nil {
		return persistence.Note{}, mapError(err)
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		note.UpdatedAt = ts
	}
	return note, nil
}

// SaveNote replaces the shared note body.
func (r *NoteRepository) SaveNote(ctx context.Context, body string) error {
	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO notes (id, body, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		body, r.now().UTC().Format(time.RFC3339))
	return mapError(err)
}
