// Package shopify — клиент Admin API магазина: поиск заказов по имени или email.
package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
	"github.com/manish-env/shopify-order-tracking/internal/ports"
	"github.com/manish-env/shopify-order-tracking/pkg/metrics"
)

// orderFields — поля заказа, которые запрашиваются у магазина.
const orderFields = "id,name,email,created_at,closed_at,fulfillments"

var _ ports.OrderSource = (*Client)(nil)

// StatusError — магазин ответил кодом не из 2xx. Тело ответа наружу не отдаётся.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("order store responded with status %d", e.StatusCode)
}

// HTTPStatus — код ответа магазина.
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// Config — параметры подключения к магазину.
type Config struct {
	StoreDomain string        // example.myshopify.com
	APIVersion  string        // 2024-01
	AccessToken string        // токен Admin API
	Timeout     time.Duration // таймаут одного запроса
	BaseURL     string        // переопределяет https://{StoreDomain}/admin/api/{APIVersion}
}

// Client — HTTP-клиент магазина. Безопасен для конкурентного использования.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient — конструктор; транспорт обёрнут otelhttp.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		if cfg.StoreDomain == "" {
			return nil, errors.New("shopify: store domain is required")
		}
		base = fmt.Sprintf("https://%s/admin/api/%s", cfg.StoreDomain, cfg.APIVersion)
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("shopify: parse base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		token:   cfg.AccessToken,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// FindByName — заказы с данным отображаемым именем ("#1001").
func (c *Client) FindByName(ctx context.Context, displayName string) ([]domain.OrderCandidate, error) {
	return c.findOrders(ctx, "name", displayName)
}

// FindByEmail — заказы покупателя с данным email.
func (c *Client) FindByEmail(ctx context.Context, email string) ([]domain.OrderCandidate, error) {
	return c.findOrders(ctx, "email", email)
}

func (c *Client) findOrders(ctx context.Context, key, value string) ([]domain.OrderCandidate, error) {
	q := url.Values{}
	q.Set("status", "any")
	q.Set("fields", orderFields)
	q.Set(key, value)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders.json?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("shopify: build request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	result := "ok"
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()

	resp, err := c.http.Do(req)
	if err != nil {
		result = "network_error"
		return nil, fmt.Errorf("shopify: request orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result = "http_error"
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var payload ordersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		result = "decode_error"
		return nil, fmt.Errorf("shopify: decode orders: %w", err)
	}

	out := make([]domain.OrderCandidate, 0, len(payload.Orders))
	for i := range payload.Orders {
		out = append(out, payload.Orders[i].toDomain())
	}
	return out, nil
}
