// Пакет ctxmeta — метаданные запроса поиска заказа в context.Context:
// request_id, client_id (ключ ограничителя) и идентификаторы активного спана OpenTelemetry.
// HTTP-слой пишет значения, логгер и сервис только читают.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyClientID  ctxKey = "client_id"
)

// WithRequestID — кладёт request_id в контекст; пустой id контекст не меняет.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext — request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithClientID — кладёт идентификатор клиента, по которому считает ограничитель.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return withString(ctx, KeyClientID, clientID)
}

// ClientIDFromContext — client_id из контекста.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyClientID)
}

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
