package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/studyloop/studyloop/internal/repository"
)

var (
	// ErrValidation indicates malformed input (empty title, bad range value).
	// Surfaced immediately to the caller, never retried.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates a missing or unknown bearer credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTransientIO indicates a storage call that timed out, was cancelled
	// or lost a lock race. Mutations surface it; insight reads degrade instead.
	ErrTransientIO = errors.New("transient storage error")
)

// classifyStorageErr converts timeout, cancellation and lock-contention
// failures from the storage layer into ErrTransientIO. Errors that already
// carry a taxonomy kind pass through unchanged, as does anything
// unrecognized.
func classifyStorageErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrTransientIO),
		errors.Is(err, ErrValidation),
		errors.Is(err, repository.ErrNotFound):
		return err
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		isLockContention(err):
		return fmt.Errorf("%s: %w", err, ErrTransientIO)
	}
	return err
}

// isLockContention matches the driver's busy/locked failures. The sqlite
// driver reports them by message, not by a sentinel the caller can unwrap.
func isLockContention(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
