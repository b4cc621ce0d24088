package httpx

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
	"github.com/manish-env/shopify-order-tracking/internal/ports"
	"github.com/manish-env/shopify-order-tracking/pkg/ctxmeta"
	"github.com/manish-env/shopify-order-tracking/pkg/metrics"
)

// ThrottleOptions — настройки middleware ограничителя.
type ThrottleOptions struct {
	Window   time.Duration // для Retry-After
	FailOpen bool          // пропускать запрос при сбое хранилища ограничителя
}

// Throttle — допускает запрос клиента (ClientIP) через ports.Throttle до обработчика.
// Отказ: 429 RateLimited с Retry-After в секундах.
func Throttle(t ports.Throttle, opts ThrottleOptions, log ports.Logger) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(math.Ceil(opts.Window.Seconds())))

	return func(c *gin.Context) {
		client := c.ClientIP()
		ctx := ctxmeta.WithClientID(c.Request.Context(), client)
		c.Request = c.Request.WithContext(ctx)

		ok, err := t.Admit(ctx, client, time.Now())
		if err != nil {
			metrics.ThrottleErrors.Inc()
			if opts.FailOpen {
				log.Warnf(ctx, "throttle backend failed, admitting request: %v", err)
				c.Next()
				return
			}
			log.Errorf(ctx, "throttle backend failed: %v", err)
			AbortWithError(c, http.StatusServiceUnavailable, domain.KindUpstreamUnavailable)
			return
		}
		if !ok {
			metrics.ThrottleRejections.Inc()
			c.Header("Retry-After", retryAfter)
			AbortWithError(c, http.StatusTooManyRequests, domain.KindRateLimited)
			return
		}
		c.Next()
	}
}

// ErrorBody — тело ответа с ошибкой.
type ErrorBody struct {
	ErrorKind domain.ErrorKind `json:"errorKind"`
	Message   string           `json:"message"`
}

// AbortWithError — прерывает цепочку и отдаёт ErrorBody с фиксированным сообщением кода.
func AbortWithError(c *gin.Context, status int, kind domain.ErrorKind) {
	c.AbortWithStatusJSON(status, ErrorBody{ErrorKind: kind, Message: kind.Message()})
}
