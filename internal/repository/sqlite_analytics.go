package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/studyloop/studyloop/internal/db"
	"github.com/studyloop/studyloop/internal/domain"
)

// SQLiteAnalyticsRepo implements AnalyticsRepo using a SQLite database.
//
// Counter updates are expressed as in-place SQL increments, never as
// read-then-write from Go, so two concurrent folds for the same owner cannot
// lose an update. The subjects breakdown is a JSON column; its read-modify-
// write happens after a counter increment in the same statement sequence, so
// inside a UnitOfWork transaction the row is already write-locked before the
// breakdown is read.
type SQLiteAnalyticsRepo struct {
	db db.DBTX
}

// NewSQLiteAnalyticsRepo creates a new SQLiteAnalyticsRepo.
func NewSQLiteAnalyticsRepo(conn db.DBTX) *SQLiteAnalyticsRepo {
	return &SQLiteAnalyticsRepo{db: conn}
}

// Get returns the owner's aggregate. A missing row yields a zeroed aggregate
// rather than an error, so readers never see an absent record.
func (r *SQLiteAnalyticsRepo) Get(ctx context.Context, ownerID string) (*domain.Aggregate, error) {
	query := `SELECT owner_id, total_sessions, total_study_min, total_completed_tasks, subjects_breakdown
		FROM analytics WHERE owner_id = ?`

	var agg domain.Aggregate
	var subjectsRaw string
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&agg.OwnerID, &agg.TotalSessions, &agg.TotalStudyMin, &agg.TotalCompletedTasks, &subjectsRaw,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.NewAggregate(ownerID), nil
		}
		return nil, fmt.Errorf("scanning aggregate: %w", err)
	}

	agg.Subjects, err = unmarshalSubjects(subjectsRaw)
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// EnsureRow provisions a zeroed aggregate row if one does not exist yet.
// Rows are normally created at user-creation time; this covers legacy owners.
func (r *SQLiteAnalyticsRepo) EnsureRow(ctx context.Context, ownerID string) error {
	query := `INSERT OR IGNORE INTO analytics (owner_id) VALUES (?)`
	if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("ensuring aggregate row: %w", err)
	}
	return nil
}

// ApplySessionClosed folds a closed session into the aggregate:
// total_sessions += 1, total_study_min += minutes, and the session's subject
// accumulates the same minutes in the breakdown.
func (r *SQLiteAnalyticsRepo) ApplySessionClosed(ctx context.Context, ownerID, subject string, minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("session minutes must be non-negative, got %d", minutes)
	}
	if err := r.EnsureRow(ctx, ownerID); err != nil {
		return err
	}

	query := `UPDATE analytics
		SET total_sessions = total_sessions + 1,
		    total_study_min = total_study_min + ?
		WHERE owner_id = ?`
	if _, err := r.db.ExecContext(ctx, query, minutes, ownerID); err != nil {
		return fmt.Errorf("incrementing session counters: %w", err)
	}

	return r.addSubjectMinutes(ctx, ownerID, subject, minutes)
}

// ApplyTaskCompleted folds a task completion into the aggregate. There is no
// decrement counterpart: un-completing a task leaves the counter untouched.
func (r *SQLiteAnalyticsRepo) ApplyTaskCompleted(ctx context.Context, ownerID string) error {
	if err := r.EnsureRow(ctx, ownerID); err != nil {
		return err
	}
	query := `UPDATE analytics
		SET total_completed_tasks = total_completed_tasks + 1
		WHERE owner_id = ?`
	if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("incrementing completed tasks: %w", err)
	}
	return nil
}

func (r *SQLiteAnalyticsRepo) addSubjectMinutes(ctx context.Context, ownerID, subject string, minutes int) error {
	var subjectsRaw string
	query := `SELECT subjects_breakdown FROM analytics WHERE owner_id = ?`
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&subjectsRaw); err != nil {
		return fmt.Errorf("reading subjects breakdown: %w", err)
	}

	subjects, err := unmarshalSubjects(subjectsRaw)
	if err != nil {
		return err
	}
	subjects.Add(subject, minutes)

	raw, err := marshalSubjects(subjects)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE analytics SET subjects_breakdown = ? WHERE owner_id = ?`, raw, ownerID); err != nil {
		return fmt.Errorf("writing subjects breakdown: %w", err)
	}
	return nil
}
