package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"consentd/internal/platform/kafka/producer"
)

// KafkaStore publishes audit events to a Kafka topic keyed by user, so all
// events of one user land on one partition in order.
type KafkaStore struct {
	producer *producer.Producer
	topic    string
}

func NewKafkaStore(p *producer.Producer, topic string) *KafkaStore {
	return &KafkaStore{producer: p, topic: topic}
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.producer.Produce(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.UserID),
		Value: payload,
	})
}
