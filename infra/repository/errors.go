package repository

import (
	"errors"
	"fmt"

	"github.com/sociomart/backend/pkg/domain"
	"gorm.io/gorm"
)

// mapGormError converts gorm errors to domain errors so database
// concerns stay inside the infrastructure layer. The error chain is
// walked because gorm wraps driver errors.
func mapGormError(err error) error {
	if err == nil {
		return nil
	}

	for current := err; current != nil; current = errors.Unwrap(current) {
		switch {
		case errors.Is(current, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(current, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
	}

	// Anything else is infrastructure trouble the caller cannot act
	// on beyond rolling back.
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// wrapError wraps a gorm operation and maps its error.
func wrapError(op func() error) error {
	return mapGormError(op())
}
