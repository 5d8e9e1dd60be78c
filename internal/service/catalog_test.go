package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginaisthando/sound/internal/catalog"
	apperrors "github.com/ginaisthando/sound/pkg/errors"
)

func newTestCatalogService() *CatalogService {
	return NewCatalogService(catalog.Default(), testLogger())
}

func TestCatalogService_ListPacks(t *testing.T) {
	svc := newTestCatalogService()

	packs := svc.ListPacks(context.Background(), catalog.Params{})
	assert.Len(t, packs, 6)
}

func TestCatalogService_ListFreePacksForcesFilterAndPopularSort(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	// The free view ignores attempts to see paid packs.
	packs := svc.ListFreePacks(ctx, catalog.Params{FreeOnly: false})
	require.Len(t, packs, 1)
	assert.True(t, packs[0].IsFree)

	// An explicit sort still wins over the popular default.
	packs = svc.ListFreePacks(ctx, catalog.Params{SortBy: catalog.SortPriceHigh})
	require.Len(t, packs, 1)
}

func TestCatalogService_GetPackAttachesTracks(t *testing.T) {
	svc := newTestCatalogService()

	pack, err := svc.GetPack(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, "Urban Nightscape", pack.Title)
	require.Len(t, pack.Tracks, pack.TrackCount)
	assert.False(t, pack.Tracks[0].IsLocked)
}

func TestCatalogService_GetPackNotFound(t *testing.T) {
	svc := newTestCatalogService()

	_, err := svc.GetPack(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_RelatedPacksUnknownID(t *testing.T) {
	svc := newTestCatalogService()

	_, err := svc.RelatedPacks(context.Background(), "does-not-exist", 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_ReferenceData(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	assert.Len(t, svc.ListCategories(ctx), 8)
	assert.Len(t, svc.ListPlans(ctx), 3)
}
