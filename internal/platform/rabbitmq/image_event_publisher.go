package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"artifai/internal/app"
)

// ImageEventPublisher writes image lifecycle events to a durable queue.
type ImageEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewImageEventPublisher(conn *amqp.Connection, queueName string) *ImageEventPublisher {
	return &ImageEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ImageEventPublisher) Publish(ctx context.Context, event app.ImageEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if _, err := declareQueue(ch, p.queueName); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal image event failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Event,
			Timestamp:    event.OccurredAt,
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish image event failed: %w", err)
	}
	return nil
}
