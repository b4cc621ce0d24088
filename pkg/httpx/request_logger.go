package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manish-env/shopify-order-tracking/internal/ports"
	"github.com/manish-env/shopify-order-tracking/pkg/ctxmeta"
)

// serviceRoutes — служебные маршруты, которые не логируются.
var serviceRoutes = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
	"/health":  {},
}

// RequestLogger — access-лог запросов. 5xx пишется как Error, 4xx как Warn.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if _, skip := serviceRoutes[path]; skip {
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		span, _ := ctxmeta.SpanIDFromContext(ctx)
		status := c.Writer.Status()

		logf := log.Infof
		switch {
		case status >= http.StatusInternalServerError:
			logf = log.Errorf
		case status >= http.StatusBadRequest:
			logf = log.Warnf
		}
		logf(ctx, "request method=%s path=%s status=%d ip=%s span=%s duration=%s size=%d",
			c.Request.Method, path, status, c.ClientIP(), span, time.Since(start), c.Writer.Size())
	}
}
