package domain

import "time"

// OrderMarker — префикс отображаемого номера заказа в магазине ("#1001").
const OrderMarker = "#"

// OrderQuery — критерии поиска заказа; пустая строка означает отсутствие критерия.
type OrderQuery struct {
	OrderNumber string
	Email       string
}

// HasOrderNumber — задан ли номер заказа.
func (q OrderQuery) HasOrderNumber() bool { return q.OrderNumber != "" }

// HasEmail — задан ли email.
func (q OrderQuery) HasEmail() bool { return q.Email != "" }

// OrderCandidate — один заказ из ответа магазина. Не кэшируется и не сохраняется.
type OrderCandidate struct {
	ID           int64
	DisplayName  string
	Email        string
	CreatedAt    time.Time
	ClosedAt     *time.Time
	Fulfillments []FulfillmentRecord
}

// OrderNumber — отображаемый номер без ведущего маркера.
func (o *OrderCandidate) OrderNumber() string {
	if len(o.DisplayName) > 0 && o.DisplayName[:1] == OrderMarker {
		return o.DisplayName[1:]
	}
	return o.DisplayName
}

// FulfillmentRecord — отгрузка. Разные источники заполняют трек-номер по-разному,
// поэтому все известные формы хранятся рядом; пустое значение = поле не задано.
type FulfillmentRecord struct {
	TrackingNumbers   []string   // tracking_numbers
	TrackingNumber    string     // tracking_number
	TrackingNumberAlt string     // trackingNumber
	LineItems         []LineItem // line_items
}

// LineItem — позиция отгрузки; трек-номер у неё есть не всегда.
type LineItem struct {
	TrackingNumber string
}
