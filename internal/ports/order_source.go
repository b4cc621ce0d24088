package ports

import (
	"context"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
)

// OrderSource — внешний магазин заказов. Пустой результат — не ошибка.
// Запрашиваются заказы в любом статусе (open, closed, cancelled).
type OrderSource interface {
	// FindByName — поиск по точному отображаемому имени ("#1001").
	FindByName(ctx context.Context, displayName string) ([]domain.OrderCandidate, error)
	// FindByEmail — поиск по email покупателя.
	FindByEmail(ctx context.Context, email string) ([]domain.OrderCandidate, error)
}
