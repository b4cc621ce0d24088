// Package kafka — публикация событий поиска заказа в Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
	"github.com/manish-env/shopify-order-tracking/internal/ports"
	"github.com/manish-env/shopify-order-tracking/pkg/metrics"
)

// Проверка, что Publisher и NoopPublisher удовлетворяют порту.
var (
	_ ports.EventPublisher = (*Publisher)(nil)
	_ ports.EventPublisher = NoopPublisher{}
)

// writer — минимальный контракт над kafka.Writer, чтобы подменять его в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher — синхронная публикация LookupEvent в JSON. Ключ сообщения — номер заказа,
// события одного заказа попадают в одну партицию.
type Publisher struct {
	writer    writer
	timeout   time.Duration
	closeOnce sync.Once
	closeErr  error
}

// NewPublisher — конструктор поверх kafka.Writer.
func NewPublisher(cfg *PublisherConfig) *Publisher {
	return &Publisher{writer: cfg.newWriter(), timeout: cfg.writeTimeout()}
}

// Publish — отправляет событие и ждёт подтверждения не дольше WriteTimeout.
func (p *Publisher) Publish(ctx context.Context, event *domain.LookupEvent) error {
	if event == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		metrics.LookupEventsPublished.WithLabelValues("failed").Inc()
		return fmt.Errorf("marshal lookup event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   messageKey(event),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(event.ID)},
		},
		Time: event.At,
	}
	if event.RequestID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "request-id", Value: []byte(event.RequestID)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.LookupEventsPublished.WithLabelValues("failed").Inc()
		return fmt.Errorf("write lookup event: %w", err)
	}
	metrics.LookupEventsPublished.WithLabelValues("ok").Inc()
	return nil
}

// messageKey — номер заказа; поиск только по email номера не имеет,
// такие события распределяются по партициям по своему id.
func messageKey(event *domain.LookupEvent) []byte {
	if event.OrderNumber != "" {
		return []byte(event.OrderNumber)
	}
	return []byte(event.ID)
}

// Close — закрывает writer (дожидается отправки буфера). Повторный вызов безопасен.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() { p.closeErr = p.writer.Close() })
	return p.closeErr
}

// NoopPublisher — используется, когда поток событий выключен.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *domain.LookupEvent) error { return nil }
func (NoopPublisher) Close() error                                     { return nil }
