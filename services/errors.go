package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds returned across the service boundary. Handlers map these to
// HTTP statuses; no raw driver error leaves the services package.
var (
	// ErrValidation: bad input, rejected before any write.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound: referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: constraint or concurrent-update conflict; retryable.
	ErrConflict = errors.New("conflict")
	// ErrTransient: infrastructure failure after rollback; retryable.
	ErrTransient = errors.New("transient failure")
)

// classifyStoreErr translates a gorm/driver error into one of the error
// kinds above. Anything unrecognized is treated as transient: the
// transaction already rolled back, so retrying is safe.
func classifyStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict), errors.Is(err, ErrTransient):
		return err // already classified
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrTransient, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
}

// Retryable reports whether the caller may safely retry the operation.
func Retryable(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrTransient)
}
