package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/studyloop/studyloop/internal/domain"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// marshalSubjects serializes a subject breakdown for the analytics JSON column.
func marshalSubjects(m domain.SubjectMinutes) (string, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshaling subjects breakdown: %w", err)
	}
	return string(raw), nil
}

// unmarshalSubjects deserializes the analytics JSON column. An empty or NULL
// column yields an empty map.
func unmarshalSubjects(raw string) (domain.SubjectMinutes, error) {
	m := make(domain.SubjectMinutes)
	if raw == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("unmarshaling subjects breakdown: %w", err)
	}
	return m, nil
}
