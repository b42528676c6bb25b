package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/studyloop/studyloop/internal/db"
	"github.com/studyloop/studyloop/internal/domain"
)

const todoColumns = `id, owner_id, title, description, status, created_at, completed_at`

// SQLiteTodoRepo implements TodoRepo using a SQLite database.
// All reads are scoped by owner id.
type SQLiteTodoRepo struct {
	db db.DBTX
}

// NewSQLiteTodoRepo creates a new SQLiteTodoRepo.
func NewSQLiteTodoRepo(conn db.DBTX) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: conn}
}

func (r *SQLiteTodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	query := `INSERT INTO todos (` + todoColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.OwnerID,
		t.Title,
		t.Description,
		string(t.Status),
		t.CreatedAt.Format(time.RFC3339),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting todo: %w", err)
	}
	return nil
}

func (r *SQLiteTodoRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE owner_id = ? AND id = ?`
	return r.scanTodo(r.db.QueryRowContext(ctx, query, ownerID, id))
}

// ListByOwner returns the owner's todos in descending creation-time order.
func (r *SQLiteTodoRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos
		WHERE owner_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		var t domain.Todo
		var status, createdAtStr string
		var completedAtStr sql.NullString

		err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &status, &createdAtStr, &completedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning todo row: %w", err)
		}
		todo, parseErr := r.populateTodo(&t, status, createdAtStr, completedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return todos, nil
}

func (r *SQLiteTodoRepo) Update(ctx context.Context, t *domain.Todo) error {
	query := `UPDATE todos
		SET title = ?, description = ?, status = ?, completed_at = ?
		WHERE owner_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		string(t.Status),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		t.OwnerID,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo: %w", ErrNotFound)
	}
	return nil
}

// Delete removes a todo permanently. No tombstone is kept.
func (r *SQLiteTodoRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo: %w", ErrNotFound)
	}
	return nil
}

// CountByStatus returns the owner's completed and total todo counts.
func (r *SQLiteTodoRepo) CountByStatus(ctx context.Context, ownerID string) (completed, total int, err error) {
	query := `SELECT
		COUNT(CASE WHEN status = 'completed' THEN 1 END),
		COUNT(*)
		FROM todos WHERE owner_id = ?`
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&completed, &total); err != nil {
		return 0, 0, fmt.Errorf("counting todos: %w", err)
	}
	return completed, total, nil
}

func (r *SQLiteTodoRepo) scanTodo(row *sql.Row) (*domain.Todo, error) {
	var t domain.Todo
	var status, createdAtStr string
	var completedAtStr sql.NullString

	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &status, &createdAtStr, &completedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("todo: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning todo: %w", err)
	}
	return r.populateTodo(&t, status, createdAtStr, completedAtStr)
}

func (r *SQLiteTodoRepo) populateTodo(t *domain.Todo, status, createdAtStr string, completedAtStr sql.NullString) (*domain.Todo, error) {
	t.Status = domain.TodoStatus(status)
	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)
	return t, nil
}
