// Package telemetry — трассировка OpenTelemetry: OTLP/HTTP экспорт запросов к сервису и магазину.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const (
	defaultServiceName = "order-tracking"
	defaultEndpoint    = "localhost:4318"
)

// Options — параметры трассировки.
type Options struct {
	ServiceName string
	Endpoint    string  // host:port OTLP/HTTP коллектора
	SampleRatio float64 // доля корневых трасс, [0..1]
	StoreDomain string  // магазин, к которому ходит сервис; пусто — атрибут не пишется
}

// SetupTracing настраивает OTLP/HTTP экспорт и глобальные пропагаторы.
// Возвращает Shutdown провайдера.
func SetupTracing(ctx context.Context, opts Options) (func(context.Context) error, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = defaultEndpoint
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sampler(opts.SampleRatio)),
		sdktrace.WithResource(newResource(opts)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)
	return tp.Shutdown, nil
}

// sampler — решение родительского спана (traceparent) приоритетнее доли.
func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

func newResource(opts Options) *resource.Resource {
	name := opts.ServiceName
	if name == "" {
		name = defaultServiceName
	}
	attrs := []attribute.KeyValue{
		semconv.ServiceName(name),
		attribute.String("service.component", "order-tracking-api"),
	}
	if opts.StoreDomain != "" {
		attrs = append(attrs, attribute.String("shopify.store", opts.StoreDomain))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}
