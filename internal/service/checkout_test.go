package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginaisthando/sound/internal/payment"
	apperrors "github.com/ginaisthando/sound/pkg/errors"
)

// scriptedProcessor returns the queued errors in order, then succeeds. It
// records the idempotency key of every attempt.
type scriptedProcessor struct {
	errs []error
	keys []string
}

func (p *scriptedProcessor) Charge(ctx context.Context, req *payment.ChargeRequest) (*payment.ChargeResult, error) {
	p.keys = append(p.keys, req.IdempotencyKey)
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &payment.ChargeResult{
		ChargeID:  "ch_test",
		Amount:    req.Amount,
		Currency:  req.Currency,
		ChargedAt: time.Now().UTC(),
	}, nil
}

func checkoutInput() CheckoutInput {
	return CheckoutInput{
		Email:      "Buyer@Example.com",
		FirstName:  "Thandi",
		LastName:   "M",
		CardNumber: "4242424242424242",
		ExpiryDate: "12/30",
		CVV:        "123",
		NameOnCard: "Thandi M",
	}
}

func newTestCheckout(processor payment.Processor) (*CheckoutService, *CartService, *stubEvents) {
	repo := freshSessionRepo("s1")
	cartSvc, _ := newTestCartService(repo)
	events := &stubEvents{}
	return NewCheckoutService(cartSvc, processor, events, testLogger(), "usd"), cartSvc, events
}

func TestCheckout_SuccessClearsCart(t *testing.T) {
	processor := &scriptedProcessor{}
	svc, cartSvc, events := newTestCheckout(processor)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "s1", packFixture("1", 53145))
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, "s1", packFixture("1", 53145))
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, "s1", checkoutInput())
	require.NoError(t, err)

	assert.Equal(t, "s1", order.SessionID)
	assert.Equal(t, int64(106290), order.TotalAmount)
	assert.Equal(t, 2, order.ItemCount)
	assert.Equal(t, "usd", order.Currency)
	assert.Equal(t, "ch_test", order.ChargeID)
	assert.Equal(t, "buyer@example.com", order.Email)
	require.Len(t, order.Items, 1)
	assert.False(t, order.CompletedAt.IsZero())

	cart, err := cartSvc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	assert.Equal(t, 1, events.completed)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, events := newTestCheckout(&scriptedProcessor{})

	_, err := svc.Checkout(context.Background(), "s1", checkoutInput())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Zero(t, events.completed)
}

func TestCheckout_DeclineLeavesCartIntact(t *testing.T) {
	processor := &scriptedProcessor{errs: []error{apperrors.PaymentFailed("card declined")}}
	svc, cartSvc, events := newTestCheckout(processor)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "s1", packFixture("1", 53145))
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "s1", checkoutInput())
	assert.ErrorIs(t, err, apperrors.ErrPaymentFailed)

	cart, err := cartSvc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.ItemCount())
	assert.Zero(t, events.completed)

	// No second charge happened behind the caller's back.
	assert.Len(t, processor.keys, 1)
}

func TestCheckout_RetriesOnceWhenGatewayUnavailable(t *testing.T) {
	processor := &scriptedProcessor{errs: []error{apperrors.ServiceUnavailable("gateway down")}}
	svc, cartSvc, _ := newTestCheckout(processor)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "s1", packFixture("1", 1000))
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, "s1", checkoutInput())
	require.NoError(t, err)
	assert.NotEmpty(t, order.ChargeID)

	// Both attempts carried the same idempotency key.
	require.Len(t, processor.keys, 2)
	assert.Equal(t, processor.keys[0], processor.keys[1])
}

func TestCheckout_GivesUpAfterSecondOutage(t *testing.T) {
	processor := &scriptedProcessor{errs: []error{
		apperrors.ServiceUnavailable("gateway down"),
		apperrors.ServiceUnavailable("still down"),
	}}
	svc, cartSvc, _ := newTestCheckout(processor)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "s1", packFixture("1", 1000))
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "s1", checkoutInput())
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)

	cart, err := cartSvc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.ItemCount())
}

func TestCheckout_CallerIdempotencyKeyIsUsed(t *testing.T) {
	processor := &scriptedProcessor{}
	svc, cartSvc, _ := newTestCheckout(processor)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "s1", packFixture("1", 1000))
	require.NoError(t, err)

	input := checkoutInput()
	input.IdempotencyKey = "client-key-42"

	_, err = svc.Checkout(ctx, "s1", input)
	require.NoError(t, err)

	require.Len(t, processor.keys, 1)
	assert.Equal(t, "client-key-42", processor.keys[0])
}

func TestCheckout_RequiresSessionID(t *testing.T) {
	svc, _, _ := newTestCheckout(&scriptedProcessor{})

	_, err := svc.Checkout(context.Background(), "", checkoutInput())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
