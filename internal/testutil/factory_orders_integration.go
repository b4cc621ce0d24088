//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"time"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// StoreOrder — заказ в формате ответа orders.json.
type StoreOrder struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	CreatedAt    time.Time          `json:"created_at"`
	ClosedAt     *time.Time         `json:"closed_at"`
	Fulfillments []StoreFulfillment `json:"fulfillments"`
}

// StoreFulfillment — отгрузка в формате магазина.
type StoreFulfillment struct {
	TrackingNumbers []string `json:"tracking_numbers,omitempty"`
	TrackingNumber  *string  `json:"tracking_number,omitempty"`
}

var orderSeq atomic.Int64

// Мини-генератор заказа магазина
func MakeStoreOrder(opts ...func(*StoreOrder)) StoreOrder {
	id := orderSeq.Add(1)
	o := StoreOrder{
		ID:        1000 + id,
		Name:      "#" + strings.ToUpper(randHex(3)),
		Email:     "buyer-" + UniqSuffix() + "@example.com",
		CreatedAt: time.Now().UTC().Add(-time.Hour).Truncate(time.Second),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithTracking — отгрузка с трек-номером.
func WithTracking(tn string) func(*StoreOrder) {
	return func(o *StoreOrder) {
		o.Fulfillments = append(o.Fulfillments, StoreFulfillment{TrackingNumbers: []string{tn}})
	}
}

// WithClosedAt — заказ закрыт в момент at.
func WithClosedAt(at time.Time) func(*StoreOrder) {
	return func(o *StoreOrder) { o.ClosedAt = &at }
}

// StartFakeStore — httptest-сервер, отвечающий на /orders.json фильтрацией по name/email.
// token — ожидаемый X-Shopify-Access-Token; при несовпадении 401.
func StartFakeStore(token string, orders ...StoreOrder) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders.json" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("X-Shopify-Access-Token") != token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		name, email := r.URL.Query().Get("name"), r.URL.Query().Get("email")
		out := make([]StoreOrder, 0, len(orders))
		for _, o := range orders {
			if (name != "" && o.Name == name) || (email != "" && strings.EqualFold(o.Email, email)) {
				out = append(out, o)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"orders": out})
	}))
}
