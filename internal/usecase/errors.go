package usecase

import (
	"errors"
	"fmt"

	"transcribe_billing/internal/domain/pricing"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrAlreadyProcessed      = errors.New("order already processed")
	ErrPaymentDeclined       = errors.New("payment declined by provider")
	ErrAmountMismatch        = errors.New("paid amount does not match order")
	ErrProviderFailure       = errors.New("payment provider failure")
	ErrForbidden             = errors.New("operation not allowed for this user")
	ErrInvalidTransition     = errors.New("invalid order status transition")
	ErrReferencesExhausted   = errors.New("could not allocate unique order references")
	ErrRepositoryUnavailable = errors.New("order repository not configured")
)

// ProviderFailureError means the payment outcome is unknown. The order stays
// pending and the client may retry the confirmation.
type ProviderFailureError struct {
	Err error
}

func (e *ProviderFailureError) Error() string {
	return fmt.Sprintf("%s: %v", ErrProviderFailure.Error(), e.Err)
}

func (e *ProviderFailureError) Unwrap() error { return e.Err }

func (e *ProviderFailureError) Is(target error) bool { return target == ErrProviderFailure }

// AmountMismatchError describes why a verified transaction was not accepted
// for the order it was submitted against.
type AmountMismatchError struct {
	ExpectedMinor    int64
	PaidMinor        int64
	ExpectedCurrency string
	PaidCurrency     string
	Reason           string
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("%s: %s (expected %s %s, paid %s %s)", ErrAmountMismatch.Error(), e.Reason,
		pricing.FormatMinor(e.ExpectedMinor), e.ExpectedCurrency, pricing.FormatMinor(e.PaidMinor), e.PaidCurrency)
}

func (e *AmountMismatchError) Is(target error) bool { return target == ErrAmountMismatch }

func requiredField(field string) error {
	return pricing.NewValidationError(field, "is required")
}
