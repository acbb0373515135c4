package service

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation detects the postgres duplicate-key error class.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// asAppError returns the typed error when the repository already classified
// the failure, nil otherwise.
func asAppError(err error) *appErrors.Error {
	var e *appErrors.Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
