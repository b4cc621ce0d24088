//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/manish-env/shopify-order-tracking/internal/domain"
)

// UniqueTopic — тема для одного теста: base + "-" + UniqSuffix().
func UniqueTopic(base string) string {
	return base + "-" + UniqSuffix()
}

// EnsureTopic — создаёт тему с одной партицией через контроллер кластера и ждёт метаданных.
// Уже существующая тема ошибкой не считается.
func EnsureTopic(ctx context.Context, broker, topic string) error {
	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return fmt.Errorf("dial %s: %w", broker, err)
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		parts, perr := conn.ReadPartitions(topic)
		if perr == nil && len(parts) > 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("topic %q not ready: %w", topic, ctx.Err())
		case <-tick.C:
		}
	}
}

// ReadLookupEvent — читает первое сообщение темы и декодирует LookupEvent.
func ReadLookupEvent(ctx context.Context, brokers []string, topic string) (kafka.Message, *domain.LookupEvent, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     topic + "-reader",
		StartOffset: kafka.FirstOffset,
	})
	defer r.Close()

	msg, err := r.ReadMessage(ctx)
	if err != nil {
		return kafka.Message{}, nil, fmt.Errorf("read message: %w", err)
	}
	var event domain.LookupEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return msg, nil, fmt.Errorf("decode event: %w", err)
	}
	return msg, &event, nil
}
