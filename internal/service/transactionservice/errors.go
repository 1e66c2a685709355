package transactionservice

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrSignatureMismatch    = errors.New("signature mismatch")
	ErrStorage              = errors.New("storage failure")
	ErrGrantPending         = errors.New("payment recorded, enrollment pending")
	ErrConsistencyViolation = errors.New("consistency violation")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotSuccessful = errors.New("payment is not successful")
)

// GrantError is returned when the payment is stored but access could not be
// granted. PaymentID is what RetryGrant expects.
type GrantError struct {
	PaymentID int64
	Err       error
}

func (e *GrantError) Error() string {
	return fmt.Sprintf("grant pending for payment %d: %v", e.PaymentID, e.Err)
}

func (e *GrantError) Unwrap() []error {
	return []error{ErrGrantPending, e.Err}
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
