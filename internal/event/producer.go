package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ginaisthando/sound/internal/domain"
	pkgkafka "github.com/ginaisthando/sound/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated     = "sound.cart.updated"
	TopicCartCleared     = "sound.cart.cleared"
	TopicOrderCompleted  = "sound.order.completed"
	TopicCreatorSignedUp = "sound.creator.signed_up"
)

// Aggregate type constants.
const (
	AggregateTypeCart    = "cart"
	AggregateTypeOrder   = "order"
	AggregateTypeCreator = "creator"
)

// SourceStorefront identifies events originating from this service.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID   string            `json:"session_id"`
	Items       []domain.CartItem `json:"items"`
	ItemCount   int               `json:"item_count"`
	TotalAmount int64             `json:"total_amount"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// OrderCompletedData is the payload for an order.completed event.
type OrderCompletedData struct {
	OrderID     string    `json:"order_id"`
	SessionID   string    `json:"session_id"`
	ItemCount   int       `json:"item_count"`
	TotalAmount int64     `json:"total_amount"`
	Currency    string    `json:"currency"`
	CompletedAt time.Time `json:"completed_at"`
}

// CreatorSignedUpData is the payload for a creator.signed_up event.
type CreatorSignedUpData struct {
	CreatorID string `json:"creator_id"`
	Email     string `json:"email"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		SessionID:   cart.SessionID,
		Items:       cart.Items,
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.TotalAmount(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	event, err := pkgkafka.NewEvent(TopicCartCleared, sessionID, AggregateTypeCart, SourceStorefront, CartClearedData{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	return nil
}

// PublishOrderCompleted publishes an order.completed event.
func (p *Producer) PublishOrderCompleted(ctx context.Context, order *domain.Order) error {
	data := OrderCompletedData{
		OrderID:     order.ID,
		SessionID:   order.SessionID,
		ItemCount:   order.ItemCount,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		CompletedAt: order.CompletedAt,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCompleted, order.ID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCompleted, event); err != nil {
		return fmt.Errorf("publish order.completed event: %w", err)
	}

	return nil
}

// PublishCreatorSignedUp publishes a creator.signed_up event.
func (p *Producer) PublishCreatorSignedUp(ctx context.Context, creator *domain.Creator) error {
	data := CreatorSignedUpData{
		CreatorID: creator.ID,
		Email:     creator.Email,
	}

	event, err := pkgkafka.NewEvent(TopicCreatorSignedUp, creator.ID, AggregateTypeCreator, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create creator.signed_up event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCreatorSignedUp, event); err != nil {
		return fmt.Errorf("publish creator.signed_up event: %w", err)
	}

	return nil
}
