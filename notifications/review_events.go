package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/college_review/models"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ReviewProducer publishes review change events to Kafka, keyed by review id
// so one review's events stay on one partition.
type ReviewProducer struct {
	writer messageWriter
}

// NewReviewProducer returns nil when no broker is configured. A nil producer
// skips every publish.
func NewReviewProducer(broker, topic string) *ReviewProducer {
	if broker == "" {
		log.Println("⚠️ Kafka broker not configured, review events are disabled.")
		return nil
	}

	log.Printf("✅ Publishing review events to %s on %s", topic, broker)
	return &ReviewProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(broker),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			WriteTimeout:           10 * time.Second,
		},
	}
}

func (p *ReviewProducer) PublishReviewEvent(ctx context.Context, event models.ReviewEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ReviewID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
}

func (p *ReviewProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
