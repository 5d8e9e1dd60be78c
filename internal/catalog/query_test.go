package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginaisthando/sound/internal/domain"
)

func ids(packs []domain.Pack) []string {
	out := make([]string, len(packs))
	for i, p := range packs {
		out[i] = p.ID
	}
	return out
}

func TestApply_ZeroParamsReturnsAllNewestFirst(t *testing.T) {
	results := Apply(seedPacks(), Params{})

	assert.Equal(t, []string{"6", "5", "4", "2", "3", "1"}, ids(results))
}

func TestApply_Search(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "matches tag", query: "epic", want: []string{"3"}},
		{name: "case insensitive title", query: "FOREST", want: []string{"2"}},
		{name: "matches description", query: "relaxation", want: []string{"2"}},
		{name: "surrounding whitespace trimmed", query: "  epic  ", want: []string{"3"}},
		{name: "no matches", query: "whalesong", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Apply(seedPacks(), Params{Query: tt.query})
			assert.Equal(t, tt.want, ids(results))
		})
	}
}

func TestApply_CategoriesAreUnioned(t *testing.T) {
	results := Apply(seedPacks(), Params{Categories: []string{"nature", "electronic"}})

	// Both categories pass the filter; newest-first ordering applies after.
	assert.Equal(t, []string{"4", "2"}, ids(results))
}

func TestApply_FreeOnly(t *testing.T) {
	results := Apply(seedPacks(), Params{FreeOnly: true})

	require.Len(t, results, 1)
	assert.Equal(t, "2", results[0].ID)
	assert.True(t, results[0].IsFree)
}

func TestApply_FiltersAreConjunctive(t *testing.T) {
	results := Apply(seedPacks(), Params{
		Categories: []string{"nature", "urban"},
		FreeOnly:   true,
	})

	assert.Equal(t, []string{"2"}, ids(results))
}

func TestApply_SortOrders(t *testing.T) {
	tests := []struct {
		sortBy string
		want   []string
	}{
		{sortBy: SortNewest, want: []string{"6", "5", "4", "2", "3", "1"}},
		{sortBy: SortPopular, want: []string{"2", "4", "5", "1", "3", "6"}},
		{sortBy: SortPriceLow, want: []string{"2", "5", "4", "1", "6", "3"}},
		{sortBy: SortPriceHigh, want: []string{"3", "6", "1", "4", "5", "2"}},
		{sortBy: SortRating, want: []string{"2", "1", "5", "3", "4", "6"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			results := Apply(seedPacks(), Params{SortBy: tt.sortBy})
			assert.Equal(t, tt.want, ids(results))
		})
	}
}

func TestApply_FreeFirstUnderPriceLow(t *testing.T) {
	results := Apply(seedPacks(), Params{SortBy: SortPriceLow})

	require.NotEmpty(t, results)
	assert.True(t, results[0].IsFree)
	assert.Zero(t, results[0].Price)
}

func TestApply_TiesKeepFeedOrder(t *testing.T) {
	packs := []domain.Pack{
		{ID: "a", Price: 1000},
		{ID: "b", Price: 1000},
		{ID: "c", Price: 500},
	}

	results := Apply(packs, Params{SortBy: SortPriceLow})

	assert.Equal(t, []string{"c", "a", "b"}, ids(results))
}

func TestApply_UnknownSortFallsBackToNewest(t *testing.T) {
	newest := Apply(seedPacks(), Params{SortBy: SortNewest})
	unknown := Apply(seedPacks(), Params{SortBy: "bestsellers"})

	assert.Equal(t, ids(newest), ids(unknown))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	packs := seedPacks()
	before := ids(packs)

	Apply(packs, Params{SortBy: SortPriceHigh})

	assert.Equal(t, before, ids(packs))
}

func TestValidSortKeys(t *testing.T) {
	assert.Equal(t, []string{SortNewest, SortPopular, SortPriceLow, SortPriceHigh, SortRating}, ValidSortKeys())
}
