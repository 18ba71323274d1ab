package interfaces

import (
	"context"
	"errors"

	"transcribe_billing/internal/domain/entities"
)

// ErrInvalidExternalReference is returned for references the provider could never accept.
var ErrInvalidExternalReference = errors.New("invalid external payment reference")

// IPaymentVerifier asks the payment provider about a transaction the client
// reports as completed. A returned error means the outcome is unknown.
type IPaymentVerifier interface {
	Verify(ctx context.Context, externalReference string) (entities.PaymentVerification, error)
}
