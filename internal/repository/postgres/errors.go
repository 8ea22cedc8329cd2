package postgres

import (
	"errors"

	"gorm.io/gorm"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// translateErr maps gorm sentinel errors onto the service error taxonomy so
// callers only ever match on ierr marks.
func translateErr(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ierr.WithError(err).
			WithHintf("%s was not found", entity).
			Mark(ierr.ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ierr.WithError(err).
			WithHintf("%s already exists", entity).
			Mark(ierr.ErrAlreadyExists)
	}
	return ierr.WithError(err).
		WithHintf("Database operation on %s failed", entity).
		Mark(ierr.ErrDatabase)
}
