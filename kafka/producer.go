package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/yashrajoria/storefront/models"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes order events to a Kafka topic.
type Producer struct {
	writer messageWriter
	topic  string
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka: no topic configured")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}, nil
}

// PublishOrderSubmitted writes event keyed by order id, so every event of
// one order lands on the same partition.
func (p *Producer) PublishOrderSubmitted(ctx context.Context, event models.OrderSubmittedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.Event)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to topic %s: %w", p.topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
