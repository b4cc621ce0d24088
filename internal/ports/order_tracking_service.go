package ports

import (
	"context"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
)

// OrderTrackingService — поиск заказа и вычисление статуса доставки.
type OrderTrackingService interface {
	Track(ctx context.Context, query domain.OrderQuery) (*domain.TrackingReport, error)
}
