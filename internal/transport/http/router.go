// Package rest — HTTP-транспорт сервиса отслеживания заказов на gin.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
	"github.com/manish-env/shopify-order-tracking/internal/ports"
	"github.com/manish-env/shopify-order-tracking/pkg/httpx"
)

// Handler — HTTP-обработчики поверх OrderTrackingService.
type Handler struct {
	service    ports.OrderTrackingService
	log        ports.Logger
	reqTimeout time.Duration
}

// NewHandler — конструктор; reqTimeout <= 0 — без собственного таймаута.
func NewHandler(service ports.OrderTrackingService, log ports.Logger, reqTimeout time.Duration) *Handler {
	return &Handler{service: service, log: log, reqTimeout: reqTimeout}
}

// RouterOptions — необязательные части конвейера middleware.
type RouterOptions struct {
	Throttle        ports.Throttle        // nil — без ограничения частоты
	ThrottleOptions httpx.ThrottleOptions // окно для Retry-After и поведение при сбое
	AllowOrigin     string                // Access-Control-Allow-Origin
	OtelServiceName string                // "" — без otelgin
	TrustedProxies  []string              // пусто — X-Forwarded-For игнорируется, ClientIP берётся из RemoteAddr
}

// NewRouter — gin.Engine со служебными маршрутами и /api/order-status.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	// ClientIP — ключ ограничителя: заголовки клиента учитываются только от доверенных прокси.
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		h.log.Errorf(context.Background(), "invalid trusted proxies %v, ignoring forwarded headers: %v", opts.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(gin.Recovery())
	if opts.OtelServiceName != "" {
		r.Use(otelgin.Middleware(opts.OtelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", httpx.CORS(opts.AllowOrigin))
	status := []gin.HandlerFunc{h.getOrderStatus}
	if opts.Throttle != nil {
		status = append([]gin.HandlerFunc{httpx.Throttle(opts.Throttle, opts.ThrottleOptions, h.log)}, status...)
	}
	api.GET("/order-status", status...)
	// preflight целиком обрабатывает CORS
	api.OPTIONS("/order-status", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}

// getOrderStatus — GET /api/order-status?orderNumber=&email=
func (h *Handler) getOrderStatus(c *gin.Context) {
	query := domain.OrderQuery{
		OrderNumber: httpx.QueryParam(c, "orderNumber", "order_number"),
		Email:       httpx.QueryParam(c, "email"),
	}

	ctx := c.Request.Context()
	if h.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.reqTimeout)
		defer cancel()
	}

	report, err := h.service.Track(ctx, query)
	if err != nil {
		kind := domain.KindOf(err)
		if kind == domain.KindInternalError {
			h.log.Errorf(ctx, "track order failed: %v", err)
		}
		httpx.AbortWithError(c, statusFor(kind), kind)
		return
	}
	c.JSON(http.StatusOK, report)
}

// statusFor — HTTP-код для кода ошибки.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindMissingCriteria, domain.KindInvalidOrderNumber, domain.KindInvalidEmail:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindUpstreamAuthError, domain.KindUpstreamAccessDenied:
		return http.StatusBadGateway
	case domain.KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
