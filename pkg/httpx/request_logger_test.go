package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/manish-env/shopify-order-tracking/internal/ports/mocks"
	"github.com/manish-env/shopify-order-tracking/pkg/ctxmeta"
	"github.com/manish-env/shopify-order-tracking/pkg/httpx"
)

func TestRequestLogger_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		status int
		expect func(l *mocks.MockLogger)
	}{
		{"ok", http.StatusOK, func(l *mocks.MockLogger) {
			l.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
		}},
		{"not found", http.StatusNotFound, func(l *mocks.MockLogger) {
			l.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
		}},
		{"unavailable", http.StatusServiceUnavailable, func(l *mocks.MockLogger) {
			l.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			log := mocks.NewMockLogger(ctrl)
			tc.expect(log)

			r := gin.New()
			r.Use(httpx.RequestLogger(log))
			r.GET("/api/order-status", func(c *gin.Context) { c.Status(tc.status) })

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/order-status", http.NoBody))
		})
	}
}

func TestRequestLogger_SeesSpanFromOtelgin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var traceID, spanArg string
	log.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, _ string, args ...any) {
			traceID, _ = ctxmeta.TraceIDFromContext(ctx)
			spanArg, _ = args[4].(string) // method, path, status, ip, span
		})

	r := gin.New()
	r.Use(otelgin.Middleware("order-tracking", otelgin.WithTracerProvider(tp)))
	r.Use(httpx.RequestLogger(log))
	r.GET("/api/order-status", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/order-status", http.NoBody))

	if len(traceID) != 32 {
		t.Fatalf("trace id must reach the logger context, got %q", traceID)
	}
	if len(spanArg) != 16 {
		t.Fatalf("span id must be logged, got %q", spanArg)
	}
}

func TestRequestLogger_SkipsServiceRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl) // любые вызовы провалят тест

	r := gin.New()
	r.Use(httpx.RequestLogger(log))
	for _, p := range []string{"/ping", "/health", "/metrics"} {
		r.GET(p, func(c *gin.Context) { c.Status(http.StatusOK) })
	}

	for _, p := range []string{"/ping", "/health", "/metrics"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, http.NoBody))
	}
}
