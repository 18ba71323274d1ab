package interfaces

import (
	"context"

	"transcribe_billing/internal/domain/entities"
)

// IOrderEventPublisher announces committed order changes to other services.
type IOrderEventPublisher interface {
	Publish(ctx context.Context, e entities.OrderEvent) error
}
