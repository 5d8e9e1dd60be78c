package service

import (
	"context"
	"log/slog"

	"github.com/ginaisthando/sound/internal/catalog"
	"github.com/ginaisthando/sound/internal/domain"
	apperrors "github.com/ginaisthando/sound/pkg/errors"
)

// CatalogService exposes the pack catalog through the query engine.
type CatalogService struct {
	feed   *catalog.Feed
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service backed by the given feed.
func NewCatalogService(feed *catalog.Feed, logger *slog.Logger) *CatalogService {
	return &CatalogService{feed: feed, logger: logger}
}

// ListPacks runs the full query pipeline over the catalog.
func (s *CatalogService) ListPacks(ctx context.Context, params catalog.Params) []domain.Pack {
	results := catalog.Apply(s.feed.Packs(), params)

	s.logger.DebugContext(ctx, "catalog query executed",
		slog.String("query", params.Query),
		slog.String("sort_by", params.SortBy),
		slog.Bool("free_only", params.FreeOnly),
		slog.Int("results", len(results)),
	)

	return results
}

// ListFreePacks runs the pipeline restricted to free packs. Unless the caller
// asks for a specific order, free packs are ranked by popularity.
func (s *CatalogService) ListFreePacks(ctx context.Context, params catalog.Params) []domain.Pack {
	params.FreeOnly = true
	if params.SortBy == "" {
		params.SortBy = catalog.SortPopular
	}
	return s.ListPacks(ctx, params)
}

// GetPack returns a single pack with its track listing attached.
func (s *CatalogService) GetPack(ctx context.Context, id string) (*domain.Pack, error) {
	pack, ok := s.feed.PackByID(id)
	if !ok {
		return nil, apperrors.NotFound("pack", id)
	}

	pack.Tracks = s.feed.TracksFor(pack)
	return &pack, nil
}

// RelatedPacks returns up to limit packs from the same category, excluding
// the pack itself.
func (s *CatalogService) RelatedPacks(ctx context.Context, id string, limit int) ([]domain.Pack, error) {
	if _, ok := s.feed.PackByID(id); !ok {
		return nil, apperrors.NotFound("pack", id)
	}
	return s.feed.Related(id, limit), nil
}

// ListCategories returns all catalog categories.
func (s *CatalogService) ListCategories(ctx context.Context) []domain.Category {
	return s.feed.Categories()
}

// ListPlans returns the subscription plans.
func (s *CatalogService) ListPlans(ctx context.Context) []domain.Plan {
	return s.feed.Plans()
}
