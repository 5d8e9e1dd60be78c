package repository

import (
	"context"

	"github.com/ginaisthando/sound/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
// The persisted record carries a schema version; implementations surface
// missing carts as apperrors.ErrNotFound and malformed or incompatible
// records as ordinary errors, which the cart store treats as an empty cart.
type CartRepository interface {
	// Get retrieves the cart for a storefront session.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists the full cart aggregate, overwriting any prior record.
	// Clearing a cart saves the empty aggregate rather than deleting the
	// record, so the schema version stays pinned for the session.
	Save(ctx context.Context, cart *domain.Cart) error
}

// CreatorRepository defines the interface for creator account persistence.
type CreatorRepository interface {
	// Create inserts a new creator account.
	Create(ctx context.Context, creator *domain.Creator) error

	// GetByEmail retrieves a creator by email address.
	GetByEmail(ctx context.Context, email string) (*domain.Creator, error)
}
