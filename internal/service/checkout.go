package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ginaisthando/sound/internal/domain"
	"github.com/ginaisthando/sound/internal/payment"
	apperrors "github.com/ginaisthando/sound/pkg/errors"
)

// OrderEvents publishes order lifecycle events. Satisfied by *event.Producer.
type OrderEvents interface {
	PublishOrderCompleted(ctx context.Context, order *domain.Order) error
}

// CheckoutInput is the billing and card detail submitted for an order.
type CheckoutInput struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`

	Country    string `json:"country" validate:"omitempty,max=100"`
	Address    string `json:"address" validate:"omitempty,max=200"`
	City       string `json:"city" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=20"`

	CardNumber string `json:"card_number" validate:"required"`
	ExpiryDate string `json:"expiry_date" validate:"required,len=5"`
	CVV        string `json:"cvv" validate:"required,numeric,min=3,max=4"`
	NameOnCard string `json:"name_on_card" validate:"required,max=100"`

	// IdempotencyKey is supplied by the caller to make resubmissions safe.
	// The service generates one when it is absent.
	IdempotencyKey string `json:"-"`
}

// CheckoutService turns a session's cart into a completed order by charging
// the payment processor. Checkout has exactly two outcomes: a completed
// order with the cart cleared, or a failure with the cart untouched.
type CheckoutService struct {
	cart      *CartService
	processor payment.Processor
	producer  OrderEvents
	logger    *slog.Logger
	currency  string
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(cart *CartService, processor payment.Processor, producer OrderEvents, logger *slog.Logger, currency string) *CheckoutService {
	return &CheckoutService{
		cart:      cart,
		processor: processor,
		producer:  producer,
		logger:    logger,
		currency:  currency,
	}
}

// Checkout charges the full cart total and, on success, clears the cart and
// returns the completed order. Any failure leaves the cart exactly as it was
// so the session can retry. A transient processor outage is retried once
// with the same idempotency key; the key also guards against double charges
// when the caller resubmits.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, input CheckoutInput) (*domain.Order, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.cart.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	key := input.IdempotencyKey
	if key == "" {
		key = uuid.New().String()
	}

	req := &payment.ChargeRequest{
		IdempotencyKey: key,
		Amount:         cart.TotalAmount(),
		Currency:       s.currency,
		Card: payment.Card{
			Number: input.CardNumber,
			Expiry: input.ExpiryDate,
			CVV:    input.CVV,
			Name:   input.NameOnCard,
		},
	}

	result, err := s.charge(ctx, req)
	if err != nil {
		s.logger.WarnContext(ctx, "checkout failed, cart retained",
			slog.String("session_id", sessionID),
			slog.String("idempotency_key", key),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	order := &domain.Order{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Items:       cart.Items,
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.TotalAmount(),
		Currency:    result.Currency,
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Billing: domain.BillingAddress{
			Country:    input.Country,
			Address:    input.Address,
			City:       input.City,
			PostalCode: input.PostalCode,
		},
		ChargeID:    result.ChargeID,
		CompletedAt: time.Now().UTC(),
	}

	if err := s.cart.ClearCart(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("session_id", sessionID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderCompleted(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.completed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("session_id", sessionID),
		slog.String("order_id", order.ID),
		slog.String("charge_id", order.ChargeID),
		slog.Int64("total_amount", order.TotalAmount),
	)

	return order, nil
}

// charge calls the processor, retrying once on a transient outage. The same
// idempotency key is reused so the retry can never produce a second charge.
func (s *CheckoutService) charge(ctx context.Context, req *payment.ChargeRequest) (*payment.ChargeResult, error) {
	result, err := s.processor.Charge(ctx, req)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, apperrors.ErrServiceUnavail) {
		return nil, err
	}

	s.logger.WarnContext(ctx, "payment processor unavailable, retrying",
		slog.String("idempotency_key", req.IdempotencyKey),
	)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(100 * time.Millisecond):
	}

	return s.processor.Charge(ctx, req)
}
