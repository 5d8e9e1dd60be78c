package payment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"

	apperrors "github.com/ginaisthando/sound/pkg/errors"
)

// ErrCircuitOpen is returned when the breaker rejects a charge outright.
var ErrCircuitOpen = gobreaker.ErrOpenState

// BreakerConfig holds circuit breaker tuning for the payment processor.
type BreakerConfig struct {
	// MaxRequests is the number of probe requests allowed while half-open.
	MaxRequests uint32

	// Interval is the cyclic period for clearing counts while closed.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// FailureRatio trips the breaker once MinRequests have been seen.
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreakerConfig returns sensible defaults for the payment breaker.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "payment_circuit_breaker_state",
		Help: "Current state of the payment circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// BreakerProcessor wraps a Processor with circuit breaker protection.
// Declined charges count as successes for the breaker: the gateway answered,
// the card was just refused. Only transport-level failures trip it.
type BreakerProcessor struct {
	inner   Processor
	breaker *gobreaker.CircuitBreaker[*ChargeResult]
	logger  *slog.Logger
}

// NewBreakerProcessor wraps a payment processor with a circuit breaker.
func NewBreakerProcessor(inner Processor, cfg BreakerConfig, logger *slog.Logger) *BreakerProcessor {
	const name = "payment"

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, apperrors.ErrPaymentFailed)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("payment circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}

	breakerState.WithLabelValues(name).Set(0)

	return &BreakerProcessor{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[*ChargeResult](settings),
		logger:  logger,
	}
}

// Charge executes the charge through the circuit breaker. When the circuit
// is open the call is rejected with a retryable SERVICE_UNAVAILABLE error.
func (p *BreakerProcessor) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	result, err := p.breaker.Execute(func() (*ChargeResult, error) {
		return p.inner.Charge(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, apperrors.ServiceUnavailable("payment gateway is temporarily unavailable, please retry shortly")
		}
		return nil, err
	}
	return result, nil
}
