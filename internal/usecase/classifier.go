package usecase

import (
	"time"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
)

// inTransitAfterHours — после этого срока заказ без трек-номера считается отправленным.
const inTransitAfterHours = 48

const (
	reasonDelivered      = "Order has been delivered"
	reasonInTransit      = "Order is in transit"
	reasonInTransitByAge = "Order is in transit (48+ hours)"
)

// Classify — статус заказа по упорядоченному списку правил (первое сработавшее побеждает):
// доставлен (ClosedAt) → есть трек-номер → моложе 48 часов → в пути по сроку.
// Состояние не хранится: статус пересчитывается на каждый запрос.
func Classify(order *domain.OrderCandidate, trackingNumber *string, now time.Time) domain.StatusResult {
	switch {
	case order.ClosedAt != nil:
		deliveredAt := *order.ClosedAt
		return domain.StatusResult{
			Status:          domain.StatusDelivered,
			TrackingNumber:  trackingNumber,
			DeliveredAt:     &deliveredAt,
			ButtonsDisabled: true,
			DisabledReason:  strPtr(reasonDelivered),
		}
	case trackingNumber != nil:
		return domain.StatusResult{
			Status:          domain.StatusInTransit,
			TrackingNumber:  trackingNumber,
			ButtonsDisabled: true,
			DisabledReason:  strPtr(reasonInTransit),
		}
	case hoursSince(order.CreatedAt, now) < inTransitAfterHours:
		return domain.StatusResult{Status: domain.StatusProcessing}
	default:
		return domain.StatusResult{
			Status:          domain.StatusInTransit,
			ButtonsDisabled: true,
			DisabledReason:  strPtr(reasonInTransitByAge),
		}
	}
}

// hoursSince — целое число часов между from и now (дробная часть отбрасывается).
func hoursSince(from, now time.Time) int64 {
	return int64(now.Sub(from) / time.Hour)
}

func strPtr(s string) *string { return &s }
