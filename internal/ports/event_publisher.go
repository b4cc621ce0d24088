package ports

import (
	"context"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
)

type EventPublisher interface {
	Publish(ctx context.Context, event *domain.LookupEvent) error
	Close() error
}
