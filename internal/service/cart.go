package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ginaisthando/sound/internal/domain"
	"github.com/ginaisthando/sound/internal/repository"
	apperrors "github.com/ginaisthando/sound/pkg/errors"
)

// CartEvents publishes cart lifecycle events. Satisfied by *event.Producer.
type CartEvents interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
	PublishCartCleared(ctx context.Context, sessionID string) error
}

// CartService owns the shopping cart aggregate for every active session.
// The in-memory cart is authoritative: each mutation is written through to
// the repository best-effort, and a failed save is logged without disturbing
// the session's state. Missing or corrupt persisted records rehydrate as an
// empty cart rather than surfacing an error.
type CartService struct {
	repo     repository.CartRepository
	producer CartEvents
	logger   *slog.Logger

	mu    sync.Mutex
	carts map[string]*domain.Cart
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer CartEvents, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
		carts:    make(map[string]*domain.Cart),
	}
}

// GetCart returns the cart for a session, rehydrating it from storage on
// first access.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot(s.loadLocked(ctx, sessionID)), nil
}

// AddItem adds one unit of the given pack to the session's cart. A line for
// the pack already in the cart has its quantity incremented; the price
// snapshot captured when the line was first added is kept.
func (s *CartService) AddItem(ctx context.Context, sessionID string, pack domain.Pack) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if pack.ID == "" {
		return nil, apperrors.InvalidInput("pack id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(ctx, sessionID)

	if idx := cart.FindItemIndex(pack.ID); idx >= 0 {
		cart.Items[idx].Quantity++
	} else {
		cart.Items = append(cart.Items, domain.CartItem{Pack: pack, Quantity: 1})
	}
	cart.UpdatedAt = time.Now().UTC()

	s.persistLocked(ctx, cart)
	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("pack_id", pack.ID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return snapshot(cart), nil
}

// RemoveItem deletes the line for the given pack. Removing an absent pack is
// a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, packID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(ctx, sessionID)

	idx := cart.FindItemIndex(packID)
	if idx < 0 {
		return snapshot(cart), nil
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.UpdatedAt = time.Now().UTC()

	s.persistLocked(ctx, cart)
	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.String("pack_id", packID),
	)

	return snapshot(cart), nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line. Updating an absent pack is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, packID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, packID)
	}
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(ctx, sessionID)

	idx := cart.FindItemIndex(packID)
	if idx < 0 {
		return snapshot(cart), nil
	}

	cart.Items[idx].Quantity = quantity
	cart.UpdatedAt = time.Now().UTC()

	s.persistLocked(ctx, cart)
	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.String("session_id", sessionID),
		slog.String("pack_id", packID),
		slog.Int("quantity", quantity),
	)

	return snapshot(cart), nil
}

// ClearCart empties the session's cart and persists the empty aggregate.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(ctx, sessionID)
	cart.Items = []domain.CartItem{}
	cart.UpdatedAt = time.Now().UTC()

	s.persistLocked(ctx, cart)

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

// IsInCart reports whether the session's cart has a line for the given pack.
func (s *CartService) IsInCart(ctx context.Context, sessionID, packID string) bool {
	if sessionID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx, sessionID).FindItemIndex(packID) >= 0
}

// loadLocked returns the session's authoritative cart, rehydrating from the
// repository on first access. A missing, corrupt, or version-incompatible
// record becomes an empty cart; storage failures never surface to callers.
// Callers must hold s.mu.
func (s *CartService) loadLocked(ctx context.Context, sessionID string) *domain.Cart {
	if cart, ok := s.carts[sessionID]; ok {
		return cart
	}

	cart, err := s.repo.Get(ctx, sessionID)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		cart = newEmptyCart(sessionID)
	default:
		s.logger.WarnContext(ctx, "failed to load persisted cart, starting empty",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		cart = newEmptyCart(sessionID)
	}

	s.carts[sessionID] = cart
	return cart
}

// persistLocked writes the full aggregate through to storage. A write failure
// is logged and swallowed: the in-memory cart stays authoritative for the
// session. Callers must hold s.mu.
func (s *CartService) persistLocked(ctx context.Context, cart *domain.Cart) {
	if err := s.repo.Save(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist cart",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CartService) publishUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

func newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// snapshot returns a copy of the cart whose line slice is detached from the
// authoritative aggregate, so callers cannot mutate store state.
func snapshot(cart *domain.Cart) *domain.Cart {
	cp := *cart
	cp.Items = append([]domain.CartItem(nil), cart.Items...)
	return &cp
}
