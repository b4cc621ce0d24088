package domain

import "time"

// LookupEvent — событие о завершённом поиске заказа (для аналитики).
type LookupEvent struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"requestId,omitempty"`
	ClientID    string    `json:"clientId,omitempty"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	Status      Status    `json:"status,omitempty"`
	ErrorKind   ErrorKind `json:"errorKind,omitempty"`
	At          time.Time `json:"at"`
}
