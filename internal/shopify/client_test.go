package shopify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersBody = `{"orders":[{
  "id": 450789469,
  "name": "#1001",
  "email": "bob@example.com",
  "created_at": "2024-01-10T09:00:00-05:00",
  "closed_at": null,
  "fulfillments": [{
    "tracking_numbers": [],
    "tracking_number": null,
    "trackingNumber": "ALT-1",
    "line_items": [{"tracking_number": null}, {"tracking_number": "LI-2"}]
  }]
}]}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/", AccessToken: "secret", Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestFindByName_QueryAndMapping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders.json", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Shopify-Access-Token"))
		q := r.URL.Query()
		assert.Equal(t, "#1001", q.Get("name"))
		assert.Equal(t, "any", q.Get("status"))
		assert.Equal(t, orderFields, q.Get("fields"))
		assert.Empty(t, q.Get("email"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ordersBody))
	})

	got, err := c.FindByName(context.Background(), "#1001")
	require.NoError(t, err)
	require.Len(t, got, 1)

	o := got[0]
	require.Equal(t, int64(450789469), o.ID)
	require.Equal(t, "1001", o.OrderNumber())
	require.Equal(t, "bob@example.com", o.Email)
	require.True(t, o.CreatedAt.Equal(time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)))
	require.Nil(t, o.ClosedAt)

	require.Len(t, o.Fulfillments, 1)
	f := o.Fulfillments[0]
	require.Empty(t, f.TrackingNumbers)
	require.Empty(t, f.TrackingNumber)
	require.Equal(t, "ALT-1", f.TrackingNumberAlt)
	require.Len(t, f.LineItems, 2)
	require.Empty(t, f.LineItems[0].TrackingNumber)
	require.Equal(t, "LI-2", f.LineItems[1].TrackingNumber)
}

func TestFindByEmail_EmptyList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a+b@example.com", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"orders":[]}`))
	})

	got, err := c.FindByEmail(context.Background(), "a+b@example.com")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFindByName_StatusError(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusBadGateway} {
		code := code
		t.Run(http.StatusText(code), func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"errors":"internal details"}`, code)
			})

			_, err := c.FindByName(context.Background(), "#1")
			var se *StatusError
			require.True(t, errors.As(err, &se))
			require.Equal(t, code, se.HTTPStatus())
			require.NotContains(t, err.Error(), "internal details")
		})
	}
}

func TestFindByName_DecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"orders":`))
	})

	_, err := c.FindByName(context.Background(), "#1")
	require.Error(t, err)
	var se *StatusError
	require.False(t, errors.As(err, &se))
}

func TestFindByName_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"orders":[]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FindByName(ctx, "#1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_BaseURL(t *testing.T) {
	c, err := NewClient(Config{StoreDomain: "shop.myshopify.com", APIVersion: "2024-01"})
	require.NoError(t, err)
	require.Equal(t, "https://shop.myshopify.com/admin/api/2024-01", c.baseURL)
	require.Equal(t, 10*time.Second, c.http.Timeout)

	_, err = NewClient(Config{})
	require.Error(t, err)
}
