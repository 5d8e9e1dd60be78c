package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/ginaisthando/sound/pkg/errors"
)

// Card holds the card fields collected on the checkout form.
type Card struct {
	Number string
	Expiry string // MM/YY
	CVV    string
	Name   string
}

// ChargeRequest is a single payment attempt. Requests with the same
// idempotency key are charged at most once.
type ChargeRequest struct {
	IdempotencyKey string
	Amount         int64 // cents
	Currency       string
	Card           Card
}

// ChargeResult is the outcome of a successful charge.
type ChargeResult struct {
	ChargeID  string    `json:"charge_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	ChargedAt time.Time `json:"charged_at"`
}

// Processor executes payment charges.
type Processor interface {
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}

// Simulated is an in-process payment gateway stand-in. It validates the card
// (Luhn check and expiry), waits a configurable processing delay that honors
// context cancellation, and caches results by idempotency key so a retry of
// an already-settled charge never charges twice.
type Simulated struct {
	delay  time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	settled map[string]*ChargeResult
}

// NewSimulated creates a simulated payment processor.
func NewSimulated(delay time.Duration, logger *slog.Logger) *Simulated {
	return &Simulated{
		delay:   delay,
		logger:  logger,
		settled: make(map[string]*ChargeResult),
	}
}

// Charge validates and settles a payment. Declined cards return
// apperrors.ErrPaymentFailed; a cancelled context returns ctx.Err() without
// settling.
func (p *Simulated) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	if req.IdempotencyKey == "" {
		return nil, fmt.Errorf("charge: idempotency key is required")
	}
	if req.Amount < 0 {
		return nil, apperrors.InvalidInput("charge amount must not be negative")
	}

	p.mu.Lock()
	if result, ok := p.settled[req.IdempotencyKey]; ok {
		p.mu.Unlock()
		p.logger.DebugContext(ctx, "charge replayed from idempotency cache",
			slog.String("charge_id", result.ChargeID),
		)
		return result, nil
	}
	p.mu.Unlock()

	if err := validateCard(req.Card); err != nil {
		return nil, err
	}

	// Simulated gateway latency; a cancelled context aborts the charge.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.delay):
	}

	result := &ChargeResult{
		ChargeID:  "ch_" + uuid.New().String(),
		Amount:    req.Amount,
		Currency:  req.Currency,
		ChargedAt: time.Now().UTC(),
	}

	p.mu.Lock()
	p.settled[req.IdempotencyKey] = result
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "charge settled",
		slog.String("charge_id", result.ChargeID),
		slog.Int64("amount", result.Amount),
		slog.String("currency", result.Currency),
	)

	return result, nil
}

// validateCard runs the simulated issuer checks: Luhn on the number and a
// not-in-the-past MM/YY expiry.
func validateCard(card Card) error {
	number := strings.ReplaceAll(strings.ReplaceAll(card.Number, " ", ""), "-", "")
	if len(number) < 12 || len(number) > 19 || !luhnValid(number) {
		return apperrors.PaymentFailed("card declined: invalid card number")
	}

	expiry, err := time.Parse("01/06", card.Expiry)
	if err != nil {
		return apperrors.PaymentFailed("card declined: invalid expiry date")
	}
	// A card is valid through the end of its expiry month.
	if expiry.AddDate(0, 1, 0).Before(time.Now().UTC()) {
		return apperrors.PaymentFailed("card declined: card expired")
	}

	return nil
}

// luhnValid implements the Luhn checksum over a digit string.
func luhnValid(number string) bool {
	var sum int
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
