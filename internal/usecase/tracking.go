package usecase

import "github.com/manish-env/shopify-order-tracking/internal/domain"

// trackingStrategy — одна из известных форм хранения трек-номера в отгрузке.
type trackingStrategy func(f *domain.FulfillmentRecord) (string, bool)

// trackingStrategies — порядок важен: побеждает первая сработавшая.
var trackingStrategies = []trackingStrategy{
	fromTrackingList,
	fromTrackingField,
	fromTrackingFieldAlt,
	fromLineItems,
}

// ExtractTracking — трек-номер из первой отгрузки заказа; остальные отгрузки игнорируются.
func ExtractTracking(order *domain.OrderCandidate) (string, bool) {
	if order == nil || len(order.Fulfillments) == 0 {
		return "", false
	}
	first := &order.Fulfillments[0]
	for _, strategy := range trackingStrategies {
		if tn, ok := strategy(first); ok {
			return tn, true
		}
	}
	return "", false
}

func fromTrackingList(f *domain.FulfillmentRecord) (string, bool) {
	if len(f.TrackingNumbers) > 0 && f.TrackingNumbers[0] != "" {
		return f.TrackingNumbers[0], true
	}
	return "", false
}

func fromTrackingField(f *domain.FulfillmentRecord) (string, bool) {
	return f.TrackingNumber, f.TrackingNumber != ""
}

func fromTrackingFieldAlt(f *domain.FulfillmentRecord) (string, bool) {
	return f.TrackingNumberAlt, f.TrackingNumberAlt != ""
}

func fromLineItems(f *domain.FulfillmentRecord) (string, bool) {
	for i := range f.LineItems {
		if tn := f.LineItems[i].TrackingNumber; tn != "" {
			return tn, true
		}
	}
	return "", false
}
