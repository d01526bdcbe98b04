package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/config"
	"github.com/solemate-shop/solemate-api/internal/models"
)

// EventType labels order lifecycle events on the wire.
type EventType string

const (
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
	EventTypeOrderCancelled     EventType = "order.cancelled"
	EventTypePaymentReconciled  EventType = "order.payment_reconciled"
)

// OrderEvent is the envelope published for every lifecycle change.
type OrderEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	OrderID   string          `json:"order_id"`
	UserID    string          `json:"user_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Publisher publishes order lifecycle events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error
	PublishOrderCancelled(ctx context.Context, order *models.Order, reason string) error
	PublishPaymentReconciled(ctx context.Context, order *models.Order, outcome string) error
	Close() error
}

// KafkaPublisher publishes order events to one topic, keyed by order id so a
// single order's events stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a kafka-backed event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderCreated, order, data))
}

func (p *KafkaPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error {
	payload := struct {
		PreviousStatus models.OrderStatus   `json:"previous_status"`
		NewStatus      models.OrderStatus   `json:"new_status"`
		PaymentStatus  models.PaymentStatus `json:"payment_status"`
	}{previousStatus, order.Status, order.PaymentStatus}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderStatusChanged, order, data))
}

func (p *KafkaPublisher) PublishOrderCancelled(ctx context.Context, order *models.Order, reason string) error {
	payload := struct {
		Reason string `json:"reason"`
	}{reason}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderCancelled, order, data))
}

func (p *KafkaPublisher) PublishPaymentReconciled(ctx context.Context, order *models.Order, outcome string) error {
	payload := struct {
		Outcome       string               `json:"outcome"`
		PaymentStatus models.PaymentStatus `json:"payment_status"`
	}{outcome, order.PaymentStatus}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypePaymentReconciled, order, data))
}

func (p *KafkaPublisher) publish(ctx context.Context, event *OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("event_type", string(event.Type)),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
		return err
	}
	return nil
}

// Close closes the kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newEvent(t EventType, order *models.Order, data []byte) *OrderEvent {
	return &OrderEvent{
		ID:        uuid.NewString(),
		Type:      t,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NopPublisher drops all events; used when events are feature-flagged off.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(context.Context, *models.Order) error { return nil }
func (NopPublisher) PublishOrderStatusChanged(context.Context, *models.Order, models.OrderStatus) error {
	return nil
}
func (NopPublisher) PublishOrderCancelled(context.Context, *models.Order, string) error { return nil }
func (NopPublisher) PublishPaymentReconciled(context.Context, *models.Order, string) error {
	return nil
}
func (NopPublisher) Close() error { return nil }
