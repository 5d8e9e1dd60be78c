package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ginaisthando/sound/internal/domain"
	"github.com/ginaisthando/sound/internal/repository"
	apperrors "github.com/ginaisthando/sound/pkg/errors"
)

// CreatorEvents publishes creator lifecycle events. Satisfied by
// *event.Producer.
type CreatorEvents interface {
	PublishCreatorSignedUp(ctx context.Context, creator *domain.Creator) error
}

const bcryptCost = 12

// SignUpInput is the creator registration form.
type SignUpInput struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	AgreeToTerms    bool   `json:"agree_to_terms" validate:"required"`
}

// CreatorService registers sound pack creators.
type CreatorService struct {
	repo     repository.CreatorRepository
	producer CreatorEvents
	logger   *slog.Logger
}

// NewCreatorService creates a new creator service.
func NewCreatorService(repo repository.CreatorRepository, producer CreatorEvents, logger *slog.Logger) *CreatorService {
	return &CreatorService{repo: repo, producer: producer, logger: logger}
}

// SignUp registers a new creator account. The email is normalized to lower
// case and must not already be registered.
func (s *CreatorService) SignUp(ctx context.Context, input SignUpInput) (*domain.Creator, error) {
	if len(input.Password) < 8 {
		return nil, apperrors.InvalidInput("password must be at least 8 characters")
	}
	if input.Password != input.ConfirmPassword {
		return nil, apperrors.InvalidInput("passwords do not match")
	}
	if !input.AgreeToTerms {
		return nil, apperrors.InvalidInput("you must agree to the terms of service")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("hashing password: %w", err))
	}

	creator := &domain.Creator{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, creator); err != nil {
		return nil, err
	}

	if err := s.producer.PublishCreatorSignedUp(ctx, creator); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish creator.signed_up event",
			slog.String("creator_id", creator.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "creator signed up",
		slog.String("creator_id", creator.ID),
		slog.String("email", creator.Email),
	)

	return creator, nil
}
