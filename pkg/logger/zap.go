// Package logger — реализация ports.Logger поверх zap.
package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/manish-env/shopify-order-tracking/pkg/ctxmeta"
)

// ZapLogger — ports.Logger на zap.SugaredLogger.
// Метаданные запроса из контекста (request_id, client_id, trace_id) добавляются полями.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// NewZapLogger — production (JSON) или development (консоль) логгер и функция Sync.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	l := wrap(logger, isProd)
	return l, l.Sync, nil
}

func wrap(logger *zap.Logger, isProd bool) *ZapLogger {
	return &ZapLogger{
		base:   logger,
		sugar:  logger.WithOptions(zap.AddCallerSkip(1)).Sugar(),
		isProd: isProd,
	}
}

// Sync — сбрасывает буферы базового логгера.
func (z *ZapLogger) Sync() error { return z.base.Sync() }

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

// with — логгер с полями запроса; без метаданных возвращает базовый.
func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.sugar
	}
	var fields []any
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", rid)
	}
	if cid, ok := ctxmeta.ClientIDFromContext(ctx); ok {
		fields = append(fields, "client_id", cid)
	}
	if tid, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		fields = append(fields, "trace_id", tid)
	}
	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}
