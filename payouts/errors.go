package payouts

import "errors"

type validationError struct {
	message string
}

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

// NewConsistencyError is returned when the payout an operation expects
// to act on does not exist in the required status.
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

type paymentFailedError struct {
	message string
}

// NewPaymentFailedError is returned when the node reports the payout
// payment as not complete; the payout row is left untouched so the
// operation can be retried.
func NewPaymentFailedError(message string) error {
	return &paymentFailedError{message: message}
}

func (err *paymentFailedError) Error() string {
	return err.message
}

func IsPaymentFailedError(err error) bool {
	var paymentFailedErr *paymentFailedError
	return errors.As(err, &paymentFailedErr)
}
