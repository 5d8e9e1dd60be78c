package catalog

import (
	"sort"
	"strings"

	"github.com/ginaisthando/sound/internal/domain"
)

// Sort keys accepted by the query engine.
const (
	SortNewest    = "newest"
	SortPopular   = "popular"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
)

// ValidSortKeys returns the list of recognized sort keys.
func ValidSortKeys() []string {
	return []string{SortNewest, SortPopular, SortPriceLow, SortPriceHigh, SortRating}
}

// Params holds the browse filter and sort parameters. The zero value is the
// inactive state for every stage: no search, no category restriction, paid
// and free packs included, newest-first ordering.
type Params struct {
	Query      string   `json:"query"`
	Categories []string `json:"categories"`
	FreeOnly   bool     `json:"free_only"`
	SortBy     string   `json:"sort_by"`
}

// Apply runs the filter/sort pipeline over the given packs and returns a new
// ordered slice. The input is never mutated. Stages run in a fixed order:
// search, category, free-only, sort. Filters are conjunctive and each stage
// is skipped entirely when its parameter is inactive. Ties under the sort key
// keep their original feed order.
func Apply(packs []domain.Pack, p Params) []domain.Pack {
	query := strings.ToLower(strings.TrimSpace(p.Query))

	var catSet map[string]struct{}
	if len(p.Categories) > 0 {
		catSet = make(map[string]struct{}, len(p.Categories))
		for _, c := range p.Categories {
			catSet[c] = struct{}{}
		}
	}

	filtered := make([]domain.Pack, 0, len(packs))
	for _, pack := range packs {
		if query != "" && !matchesQuery(pack, query) {
			continue
		}
		if catSet != nil {
			if _, ok := catSet[pack.Category]; !ok {
				continue
			}
		}
		if p.FreeOnly && !pack.IsFree {
			continue
		}
		filtered = append(filtered, pack)
	}

	sortPacks(filtered, p.SortBy)
	return filtered
}

// matchesQuery reports whether the lowercased query is a substring of the
// pack title, description, or any tag.
func matchesQuery(pack domain.Pack, query string) bool {
	if strings.Contains(strings.ToLower(pack.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(pack.Description), query) {
		return true
	}
	for _, tag := range pack.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// sortPacks stable-sorts packs in place by the given key. An unknown or empty
// key sorts newest-first.
func sortPacks(packs []domain.Pack, sortBy string) {
	switch sortBy {
	case SortPopular:
		sort.SliceStable(packs, func(i, j int) bool {
			return packs[i].Downloads > packs[j].Downloads
		})
	case SortPriceLow:
		sort.SliceStable(packs, func(i, j int) bool {
			return packs[i].Price < packs[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(packs, func(i, j int) bool {
			return packs[i].Price > packs[j].Price
		})
	case SortRating:
		sort.SliceStable(packs, func(i, j int) bool {
			return packs[i].Rating > packs[j].Rating
		})
	default:
		sort.SliceStable(packs, func(i, j int) bool {
			return packs[i].CreatedAt.After(packs[j].CreatedAt)
		})
	}
}
