// Package kafka publishes integration events to the message broker.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"forwarding/internal/core/ports"
)

// Producer implements EventPublisher on top of a kafka writer. Events are
// keyed by shipment id so status changes of one shipment stay ordered within
// a partition.
type Producer struct {
	w     *kafka.Writer
	topic string
}

// NewProducer creates a producer for the given brokers and topic.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		topic: topic,
	}
}

// PublishShipmentStatusChanged emits a shipment lifecycle event.
func (p *Producer) PublishShipmentStatusChanged(ctx context.Context, event ports.ShipmentStatusChanged) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal shipment status event: %w", err)
	}

	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.ShipmentID),
		Value: value,
	}); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

// Close releases the underlying writer.
func (p *Producer) Close() error {
	return p.w.Close()
}
