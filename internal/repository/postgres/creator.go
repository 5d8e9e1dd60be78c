package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ginaisthando/sound/internal/domain"
	"github.com/ginaisthando/sound/pkg/database"
	apperrors "github.com/ginaisthando/sound/pkg/errors"
)

// DB is the subset of pgxpool.Pool used by the repositories. pgxmock's pool
// interface satisfies it, which keeps the repositories testable without a
// live database.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreatorRepository implements repository.CreatorRepository using PostgreSQL.
type CreatorRepository struct {
	db DB
}

// NewCreatorRepository creates a new PostgreSQL-backed creator repository.
func NewCreatorRepository(db DB) *CreatorRepository {
	return &CreatorRepository{db: db}
}

// Create inserts a new creator account.
func (r *CreatorRepository) Create(ctx context.Context, c *domain.Creator) error {
	query := `
		INSERT INTO creators (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	ctx, end := database.TraceQuery(ctx, "CreateCreator", query)
	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.PasswordHash,
		c.CreatedAt,
	)
	end(err)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("creator", "email", c.Email)
		}
		return fmt.Errorf("insert creator: %w", err)
	}

	return nil
}

// GetByEmail retrieves a creator by email address.
func (r *CreatorRepository) GetByEmail(ctx context.Context, email string) (*domain.Creator, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM creators
		WHERE email = $1`

	ctx, end := database.TraceQuery(ctx, "GetCreatorByEmail", query)
	var c domain.Creator
	err := r.db.QueryRow(ctx, query, email).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.PasswordHash,
		&c.CreatedAt,
	)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("creator", email)
		}
		return nil, fmt.Errorf("select creator: %w", err)
	}

	return &c, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
