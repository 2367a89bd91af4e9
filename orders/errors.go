package orders

import "errors"

type validationError struct {
	message string
}

// NewValidationError is returned when a referenced order does not exist
// or is not in a state that permits the requested operation.
func NewValidationError(message string) error {
	return &validationError{message: message}
}

func (err *validationError) Error() string {
	return err.message
}

func IsValidationError(err error) bool {
	var validationErr *validationError
	return errors.As(err, &validationErr)
}

type consistencyError struct {
	message string
}

// NewConsistencyError is returned when an expected invariant is
// violated, e.g. zero rows affected by an update that should have
// affected exactly one.
func NewConsistencyError(message string) error {
	return &consistencyError{message: message}
}

func (err *consistencyError) Error() string {
	return err.message
}

func IsConsistencyError(err error) bool {
	var consistencyErr *consistencyError
	return errors.As(err, &consistencyErr)
}
