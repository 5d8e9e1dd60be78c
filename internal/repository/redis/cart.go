package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ginaisthando/sound/internal/domain"
	apperrors "github.com/ginaisthando/sound/pkg/errors"
)

const keyPrefix = "sound:cart:"

// cartRecord is the persisted cart payload. The explicit schema version lets
// the store reject records written by incompatible deployments instead of
// silently misreading them.
type cartRecord struct {
	SchemaVersion int               `json:"schema_version"`
	SessionID     string            `json:"session_id"`
	Items         []domain.CartItem `json:"items"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CartRepository implements repository.CartRepository using Redis.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the cart for a session. Returns apperrors.ErrNotFound when no
// record exists; a malformed record or unsupported schema version is an error
// for the caller to translate into an empty cart.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", sessionID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var rec cartRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	if rec.SchemaVersion != domain.CartSchemaVersion {
		return nil, fmt.Errorf("unsupported cart schema version %d", rec.SchemaVersion)
	}

	return &domain.Cart{
		SessionID: sessionID,
		Items:     rec.Items,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

// Save persists the full cart aggregate with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	rec := cartRecord{
		SchemaVersion: domain.CartSchemaVersion,
		SessionID:     cart.SessionID,
		Items:         cart.Items,
		CreatedAt:     cart.CreatedAt,
		UpdatedAt:     cart.UpdatedAt,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+cart.SessionID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}
