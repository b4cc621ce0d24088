package shopify

import (
	"time"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
)

// Формат ответа GET /orders.json. Трек-номер у разных интеграций лежит в разных полях.

type ordersResponse struct {
	Orders []orderJSON `json:"orders"`
}

type orderJSON struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	CreatedAt    time.Time         `json:"created_at"`
	ClosedAt     *time.Time        `json:"closed_at"`
	Fulfillments []fulfillmentJSON `json:"fulfillments"`
}

type fulfillmentJSON struct {
	TrackingNumbers   []string       `json:"tracking_numbers"`
	TrackingNumber    *string        `json:"tracking_number"`
	TrackingNumberAlt *string        `json:"trackingNumber"`
	LineItems         []lineItemJSON `json:"line_items"`
}

type lineItemJSON struct {
	TrackingNumber *string `json:"tracking_number"`
}

func (o *orderJSON) toDomain() domain.OrderCandidate {
	c := domain.OrderCandidate{
		ID:          o.ID,
		DisplayName: o.Name,
		Email:       o.Email,
		CreatedAt:   o.CreatedAt,
		ClosedAt:    o.ClosedAt,
	}
	if len(o.Fulfillments) > 0 {
		c.Fulfillments = make([]domain.FulfillmentRecord, 0, len(o.Fulfillments))
	}
	for _, f := range o.Fulfillments {
		rec := domain.FulfillmentRecord{
			TrackingNumbers:   f.TrackingNumbers,
			TrackingNumber:    deref(f.TrackingNumber),
			TrackingNumberAlt: deref(f.TrackingNumberAlt),
		}
		for _, li := range f.LineItems {
			rec.LineItems = append(rec.LineItems, domain.LineItem{TrackingNumber: deref(li.TrackingNumber)})
		}
		c.Fulfillments = append(c.Fulfillments, rec)
	}
	return c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
