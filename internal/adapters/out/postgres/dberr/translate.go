// Package dberr maps storage failures that carry business meaning onto the errs
// taxonomy. Everything else is returned unchanged so it stays an infrastructure error.
package dberr

import (
	"errors"
	"strings"

	"laundry/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes that mean "another transaction won".
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// Translate returns errs.ConflictError for unique violations, serialization failures
// and deadlocks, and err otherwise.
func Translate(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause(resource, "already exists", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return errs.NewConflictErrorWithCause(resource, "already exists", err)
		case codeSerializationFailure, codeDeadlockDetected:
			return errs.NewConflictErrorWithCause(resource, "concurrent update", err)
		}
	}

	// SQLite reports busy databases and constraint failures as plain text.
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return errs.NewConflictErrorWithCause(resource, "already exists", err)
	}
	if strings.Contains(msg, "database is locked") {
		return errs.NewConflictErrorWithCause(resource, "concurrent update", err)
	}

	return err
}

// NotFound converts gorm.ErrRecordNotFound into errs.ObjectNotFoundError. Other
// errors go through Translate, so a locked read that lost a race is a conflict.
func NotFound(err error, param string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(param, id, err)
	}
	return Translate(err, param)
}
