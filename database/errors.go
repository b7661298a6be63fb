package database

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/conduit-labs/conduit/errors"
)

// IsNotFound checks if the error is a GORM record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate checks if the error is a duplicate-key violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// FromDatabase converts a persistence error into an AppError: not-found
// maps to 404 for the named resource, anything else is a 500 with the
// cause retained for logging only.
func FromDatabase(err error, resource string) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if IsNotFound(err) {
		return apperrors.NotFound(resource)
	}
	return apperrors.DatabaseError(err)
}
