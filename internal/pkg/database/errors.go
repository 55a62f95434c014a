package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrTransient marks failures worth retrying: serialization failures,
// deadlocks and lost connections.
var ErrTransient = errors.New("transient database error")

const (
	CodeUniqueViolation      = "23505"
	CodeExclusionViolation   = "23P01"
	CodeCheckViolation       = "23514"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// PgCode returns the SQLSTATE carried by err, or "".
func PgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// ConstraintName returns the violated constraint carried by err, or "".
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// IsTransient reports whether err is safe to retry as a whole transaction.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTransient) {
		return true
	}
	switch PgCode(err) {
	case CodeSerializationFailure, CodeDeadlockDetected:
		return true
	}
	// Class 08: connection exception.
	if code := PgCode(err); len(code) == 5 && code[:2] == "08" {
		return true
	}
	return pgconn.SafeToRetry(err)
}

// MarkTransient wraps err with ErrTransient when it is retryable.
func MarkTransient(err error) error {
	if err == nil || errors.Is(err, ErrTransient) || !IsTransient(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}
