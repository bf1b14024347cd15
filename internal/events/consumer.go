package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/service"
)

// FulfillmentEventType represents the type of fulfillment event.
type FulfillmentEventType string

const (
	FulfillmentEventProcessing FulfillmentEventType = "fulfillment.processing"
	FulfillmentEventShipped    FulfillmentEventType = "fulfillment.shipped"
	FulfillmentEventDelivered  FulfillmentEventType = "fulfillment.delivered"
	FulfillmentEventCancelled  FulfillmentEventType = "fulfillment.cancelled"
)

// FulfillmentEvent is emitted by the warehouse system as an order moves
// through fulfillment.
type FulfillmentEvent struct {
	ID          string               `json:"id"`
	Type        FulfillmentEventType `json:"type"`
	OrderNumber string               `json:"order_number"`
	Data        json.RawMessage      `json:"data"`
	Timestamp   time.Time            `json:"timestamp"`
}

// KafkaConsumer consumes fulfillment events and applies the matching
// order status transitions.
type KafkaConsumer struct {
	reader       *kafka.Reader
	orderService *service.OrderService
	logger       *logging.Logger
	stopCh       chan struct{}
}

// NewKafkaConsumer creates a new Kafka-based fulfillment consumer.
func NewKafkaConsumer(cfg config.KafkaConfig, orderService *service.OrderService, logger *logging.Logger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.FulfillmentTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	return &KafkaConsumer{
		reader:       reader,
		orderService: orderService,
		logger:       logger,
		stopCh:       make(chan struct{}),
	}
}

// Start begins consuming events. It blocks until the context is
// cancelled or Stop is called.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting fulfillment consumer", nil)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("Fulfillment consumer stopped", nil)
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error("Failed to read message", logging.Fields{"error": err.Error()})
				continue
			}

			c.handleMessage(ctx, msg)
		}
	}
}

// Stop stops the consumer.
func (c *KafkaConsumer) Stop() {
	close(c.stopCh)
	c.reader.Close()
}

func (c *KafkaConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	c.logger.Debug("Received message", logging.Fields{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	var event FulfillmentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Failed to unmarshal event", logging.Fields{"error": err.Error()})
		return
	}

	status, ok := statusForEvent(event.Type)
	if !ok {
		c.logger.Debug("Ignoring unknown event type", logging.Fields{"type": event.Type})
		return
	}

	c.logger.Info("Handling fulfillment event", logging.Fields{
		"event_id":     event.ID,
		"event_type":   event.Type,
		"order_number": event.OrderNumber,
	})

	if err := c.orderService.TransitionOrderByNumber(ctx, event.OrderNumber, status); err != nil {
		c.logger.Error("Failed to transition order", logging.Fields{
			"order_number": event.OrderNumber,
			"status":       status,
			"error":        err.Error(),
		})
	}
}

func statusForEvent(t FulfillmentEventType) (models.OrderStatus, bool) {
	switch t {
	case FulfillmentEventProcessing:
		return models.OrderStatusProcessing, true
	case FulfillmentEventShipped:
		return models.OrderStatusShipped, true
	case FulfillmentEventDelivered:
		return models.OrderStatusDelivered, true
	case FulfillmentEventCancelled:
		return models.OrderStatusCancelled, true
	default:
		return "", false
	}
}
