package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// PublisherConfig — параметры публикации событий поиска.
type PublisherConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	MaxAttempts  int
}

// newWriter — kafka.Writer с синхронной записью и подтверждением от лидера.
func (c *PublisherConfig) newWriter() *kafka.Writer {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            attempts,
		WriteTimeout:           c.writeTimeout(),
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

func (c *PublisherConfig) writeTimeout() time.Duration {
	if c.WriteTimeout <= 0 {
		return 2 * time.Second
	}
	return c.WriteTimeout
}
