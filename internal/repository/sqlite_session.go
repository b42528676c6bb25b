package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/studyloop/studyloop/internal/db"
	"github.com/studyloop/studyloop/internal/domain"
)

const sessionColumns = `id, owner_id, name, subject, started_at, ended_at, duration_min, created_at, updated_at`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
// All reads are scoped by owner id.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.StudySession) error {
	query := `INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.OwnerID,
		s.Name,
		s.Subject,
		s.StartedAt.Format(time.RFC3339),
		nullableTimeToString(s.EndedAt, time.RFC3339),
		s.DurationMin,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting study session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE owner_id = ? AND id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, ownerID, id))
}

// GetOpen returns the owner's single open session, or ErrNotFound when none.
func (r *SQLiteSessionRepo) GetOpen(ctx context.Context, ownerID string) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions
		WHERE owner_id = ? AND ended_at IS NULL`
	return r.scanSession(r.db.QueryRowContext(ctx, query, ownerID))
}

func (r *SQLiteSessionRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions
		WHERE owner_id = ? ORDER BY started_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

// ListClosedSince returns closed sessions whose end time falls at or after
// the given instant, oldest first. Feeds the time-bucketed insight views.
func (r *SQLiteSessionRepo) ListClosedSince(ctx context.Context, ownerID string, since time.Time) ([]*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions
		WHERE owner_id = ? AND ended_at IS NOT NULL AND ended_at >= ?
		ORDER BY ended_at`
	rows, err := r.db.QueryContext(ctx, query, ownerID, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing closed sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.StudySession) error {
	query := `UPDATE study_sessions
		SET name = ?, subject = ?, ended_at = ?, duration_min = ?, updated_at = ?
		WHERE owner_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Subject,
		nullableTimeToString(s.EndedAt, time.RFC3339),
		s.DurationMin,
		s.UpdatedAt.Format(time.RFC3339),
		s.OwnerID,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating study session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("study session: %w", ErrNotFound)
	}
	return nil
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.StudySession, error) {
	var s domain.StudySession
	var startedAtStr, createdAtStr, updatedAtStr string
	var endedAtStr sql.NullString

	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Subject,
		&startedAtStr, &endedAtStr, &s.DurationMin, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("study session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning study session: %w", err)
	}

	return r.populateSession(&s, startedAtStr, endedAtStr, createdAtStr, updatedAtStr)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.StudySession, error) {
	var sessions []*domain.StudySession
	for rows.Next() {
		var s domain.StudySession
		var startedAtStr, createdAtStr, updatedAtStr string
		var endedAtStr sql.NullString

		err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Name, &s.Subject,
			&startedAtStr, &endedAtStr, &s.DurationMin, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		session, parseErr := r.populateSession(&s, startedAtStr, endedAtStr, createdAtStr, updatedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed fields on a StudySession after scanning raw strings.
func (r *SQLiteSessionRepo) populateSession(s *domain.StudySession, startedAtStr string, endedAtStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.StudySession, error) {
	var parseErr error
	s.StartedAt, parseErr = time.Parse(time.RFC3339, startedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing started_at: %w", parseErr)
	}
	s.EndedAt = parseNullableTime(endedAtStr, time.RFC3339)
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return s, nil
}
