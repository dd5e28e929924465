// Package event publishes cart and order domain events. Publishing is
// best-effort everywhere: a broker outage must never fail a cart mutation
// or a checkout.
package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/jalmosquera/digitalletter/pkg/kafka"

	"github.com/jalmosquera/digitalletter/internal/domain"
)

// Kafka topics for menu domain events.
const (
	TopicCartUpdated = "digitalletter.cart.updated"
	TopicCartCleared = "digitalletter.cart.cleared"
	TopicOrderPlaced = "digitalletter.order.placed"
)

// Aggregate types.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifier for events originating from this service.
const Source = "digitalletter"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID  string `json:"session_id"`
	ItemCount  int    `json:"item_count"`
	LineCount  int    `json:"line_count"`
	TotalPrice string `json:"total_price"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID    int64              `json:"order_id"`
	SessionID  string             `json:"session_id"`
	Location   string             `json:"location"`
	Items      []domain.OrderItem `json:"items"`
	TotalPrice string             `json:"total_price"`
	Dispatched bool               `json:"dispatched"`
}

// Producer publishes menu domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new domain event producer. A nil Kafka producer
// disables publishing entirely.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated emits a cart.updated event keyed by session.
func (p *Producer) PublishCartUpdated(ctx context.Context, data CartUpdatedData) error {
	return p.publish(ctx, TopicCartUpdated, "cart.updated", data.SessionID, AggregateTypeCart, data)
}

// PublishCartCleared emits a cart.cleared event keyed by session.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	return p.publish(ctx, TopicCartCleared, "cart.cleared", sessionID, AggregateTypeCart, CartClearedData{SessionID: sessionID})
}

// PublishOrderPlaced emits an order.placed event keyed by order id.
func (p *Producer) PublishOrderPlaced(ctx context.Context, data OrderPlacedData) error {
	return p.publish(ctx, TopicOrderPlaced, "order.placed", fmt.Sprintf("%d", data.OrderID), AggregateTypeOrder, data)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) error {
	if p.kafka == nil {
		return nil
	}
	evt, err := pkgkafka.NewEvent(eventType, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("build %s event: %w", eventType, err)
	}
	return p.kafka.Publish(ctx, topic, evt)
}
