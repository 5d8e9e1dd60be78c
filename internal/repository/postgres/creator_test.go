package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginaisthando/sound/internal/domain"
	apperrors "github.com/ginaisthando/sound/pkg/errors"
)

func newTestRepo(t *testing.T) (*CreatorRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewCreatorRepository(mock), mock
}

func testCreator() *domain.Creator {
	return &domain.Creator{
		ID:           "c-1",
		Name:         "Thandi M",
		Email:        "thandi@example.com",
		PasswordHash: "$2a$12$hash",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestCreatorRepository_Create(t *testing.T) {
	repo, mock := newTestRepo(t)
	c := testCreator()

	mock.ExpectExec("INSERT INTO creators").
		WithArgs(c.ID, c.Name, c.Email, c.PasswordHash, c.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatorRepository_CreateDuplicateEmail(t *testing.T) {
	repo, mock := newTestRepo(t)
	c := testCreator()

	mock.ExpectExec("INSERT INTO creators").
		WithArgs(c.ID, c.Name, c.Email, c.PasswordHash, c.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "creators_email_key"})

	err := repo.Create(context.Background(), c)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatorRepository_GetByEmail(t *testing.T) {
	repo, mock := newTestRepo(t)
	c := testCreator()

	rows := pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
		AddRow(c.ID, c.Name, c.Email, c.PasswordHash, c.CreatedAt)

	mock.ExpectQuery("SELECT id, name, email, password_hash, created_at").
		WithArgs(c.Email).
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), c.Email)
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatorRepository_GetByEmailNotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT id, name, email, password_hash, created_at").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
