// Package sink provides the delivery.Sink implementations: a Kafka
// publisher, a Redis Streams publisher, and a direct Postgres writer.
package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Kafka publishes each stream to its own topic, one writer per stream.
type Kafka struct {
	writers map[string]*kafka.Writer
}

// NewKafka creates a Kafka sink. topics maps stream names to topic
// names.
func NewKafka(brokers []string, topics map[string]string) *Kafka {
	writers := make(map[string]*kafka.Writer, len(topics))
	for stream, topic := range topics {
		writers[stream] = &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  3,
			WriteTimeout: 10 * time.Second,
			ReadTimeout:  10 * time.Second,
		}
	}
	return &Kafka{writers: writers}
}

// Publish writes one event to the stream's topic.
func (k *Kafka) Publish(ctx context.Context, stream string, payload []byte) error {
	writer, ok := k.writers[stream]
	if !ok {
		return fmt.Errorf("no topic configured for stream %q", stream)
	}

	err := writer.WriteMessages(ctx, kafka.Message{
		Value: payload,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

// Close closes all topic writers.
func (k *Kafka) Close() error {
	var firstErr error
	for _, w := range k.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
