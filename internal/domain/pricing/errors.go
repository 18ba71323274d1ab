package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("invalid pricing specification")
	ErrBelowMinimumCharge  = errors.New("total below minimum charge")
	ErrUnknownVersion      = errors.New("unknown rate table version")
	ErrInvalidEngineConfig = errors.New("invalid pricing engine config")
	ErrAmountOutOfRange    = errors.New("amount exceeds the representable minor-unit range")
)

// ValidationError reports which specification field was rejected.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// BelowMinimumChargeError is returned instead of clamping the total up to the
// payment provider floor. The caller has to change the specification.
type BelowMinimumChargeError struct {
	MinimumMinor  int64
	ComputedMinor int64
}

func (e *BelowMinimumChargeError) Error() string {
	return fmt.Sprintf("%s: computed %s, minimum %s",
		ErrBelowMinimumCharge.Error(), FormatMinor(e.ComputedMinor), FormatMinor(e.MinimumMinor))
}

func (e *BelowMinimumChargeError) Is(target error) bool {
	return target == ErrBelowMinimumCharge
}
