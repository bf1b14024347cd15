package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// EventType identifies a domain event on the orders topic.
type EventType string

const (
	EventTypeOrderPlaced     EventType = "order.placed"
	EventTypeUserRegistered  EventType = "user.registered"
	EventTypeContactReceived EventType = "contact.received"
)

// Event is the envelope written to Kafka.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// KafkaPublisher publishes domain events to the orders topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *logging.Logger
}

// NewKafkaPublisher creates a Kafka-backed event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *logging.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{writer: writer, logger: logger}
}

// PublishOrderPlaced emits an order.placed event keyed by order number.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, EventTypeOrderPlaced, order.Number, data)
}

// PublishUserRegistered emits a user.registered event keyed by email.
func (p *KafkaPublisher) PublishUserRegistered(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return p.publish(ctx, EventTypeUserRegistered, user.Email, data)
}

// PublishContactReceived emits a contact.received event keyed by sender.
func (p *KafkaPublisher) PublishContactReceived(ctx context.Context, msg *models.ContactMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.publish(ctx, EventTypeContactReceived, msg.Email, data)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType EventType, key string, data []byte) error {
	event := &Event{
		ID:        generateEventID(),
		Type:      eventType,
		Key:       key,
		Data:      data,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event", logging.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"error":      err.Error(),
		})
		return err
	}

	p.logger.Info("Event published", logging.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"key":        key,
	})
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func generateEventID() string {
	return "evt_" + time.Now().Format("20060102150405.000000")
}
