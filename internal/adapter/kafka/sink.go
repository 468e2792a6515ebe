// Package kafka publishes audit events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/heartmarshall/reflect-backend/internal/config"
	"github.com/heartmarshall/reflect-backend/internal/domain"
)

// record is the wire format of a published audit event.
type record struct {
	EventID   string            `json:"event_id"`
	Kind      string            `json:"kind"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Fields    map[string]string `json:"fields"`
}

// AuditSink publishes each event as a JSON message keyed by user id, so one
// user's events land on one partition in order.
type AuditSink struct {
	producer sarama.SyncProducer
	topic    string
}

// NewAuditSink wraps an existing producer.
func NewAuditSink(producer sarama.SyncProducer, topic string) *AuditSink {
	return &AuditSink{producer: producer, topic: topic}
}

// NewProducer creates a synchronous producer that waits for all in-sync
// replicas to acknowledge each message.
func NewProducer(cfg config.KafkaConfig) (sarama.SyncProducer, error) {
	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Version = sarama.V2_8_0_0
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Return.Successes = true
	sc.Producer.Timeout = cfg.Timeout
	sc.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

func (s *AuditSink) Write(ctx context.Context, event domain.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(record{
		EventID:   event.ID.String(),
		Kind:      event.Kind.String(),
		UserID:    event.UserID,
		Timestamp: event.Timestamp,
		Fields:    event.Fields,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     s.topic,
		Key:       sarama.StringEncoder(event.UserID),
		Value:     sarama.ByteEncoder(data),
		Timestamp: event.Timestamp,
	}
	if _, _, err := s.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("publish audit event %s: %w", event.ID, err)
	}
	return nil
}

// Close closes the underlying producer.
func (s *AuditSink) Close() error {
	return s.producer.Close()
}
