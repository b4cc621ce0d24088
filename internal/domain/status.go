package domain

import "time"

// Status — статус заказа для покупателя.
type Status string

const (
	StatusProcessing Status = "Order Processing"
	StatusInTransit  Status = "In Transit"
	StatusDelivered  Status = "Order Delivered"
)

// StatusResult — результат классификации заказа.
type StatusResult struct {
	Status          Status
	TrackingNumber  *string
	DeliveredAt     *time.Time
	ButtonsDisabled bool
	DisabledReason  *string
}

// TrackingReport — успешный ответ сервиса отслеживания.
type TrackingReport struct {
	OrderNumber     string     `json:"orderNumber"`
	Status          Status     `json:"status"`
	TrackingNumber  *string    `json:"trackingNumber"`
	OrderDate       time.Time  `json:"orderDate"`
	LastUpdated     time.Time  `json:"lastUpdated"`
	DeliveredAt     *time.Time `json:"deliveredAt"`
	ButtonsDisabled bool       `json:"buttonsDisabled"`
	DisabledReason  *string    `json:"disabledReason"`
}
