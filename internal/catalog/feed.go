package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ginaisthando/sound/internal/domain"
)

// Feed is the static, read-only catalog: packs, categories, and subscription
// plans. It is loaded once at startup and never mutated afterwards, so it is
// safe for concurrent reads without locking.
type Feed struct {
	packs      []domain.Pack
	categories []domain.Category
	plans      []domain.Plan
	byID       map[string]int
}

// feedFile is the JSON shape of an external catalog file.
type feedFile struct {
	Packs      []domain.Pack     `json:"packs"`
	Categories []domain.Category `json:"categories"`
	Plans      []domain.Plan     `json:"plans"`
}

// New builds a feed from the given reference data. The slices are copied so
// later mutation of the caller's slices cannot leak into the feed.
func New(packs []domain.Pack, categories []domain.Category, plans []domain.Plan) *Feed {
	f := &Feed{
		packs:      append([]domain.Pack(nil), packs...),
		categories: append([]domain.Category(nil), categories...),
		plans:      append([]domain.Plan(nil), plans...),
		byID:       make(map[string]int, len(packs)),
	}
	for i := range f.packs {
		f.byID[f.packs[i].ID] = i
	}
	return f
}

// Default returns the built-in seed catalog.
func Default() *Feed {
	return New(seedPacks(), seedCategories(), seedPlans())
}

// LoadFile reads a catalog feed from a JSON file. Sections absent from the
// file fall back to the built-in seed data.
func LoadFile(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file feedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	if file.Packs == nil {
		file.Packs = seedPacks()
	}
	if file.Categories == nil {
		file.Categories = seedCategories()
	}
	if file.Plans == nil {
		file.Plans = seedPlans()
	}

	return New(file.Packs, file.Categories, file.Plans), nil
}

// Packs returns the full pack collection in feed order. Callers must treat
// the returned slice as read-only; the query engine copies before sorting.
func (f *Feed) Packs() []domain.Pack {
	return f.packs
}

// PackByID looks up a single pack.
func (f *Feed) PackByID(id string) (domain.Pack, bool) {
	i, ok := f.byID[id]
	if !ok {
		return domain.Pack{}, false
	}
	return f.packs[i], true
}

// Categories returns the category list in feed order.
func (f *Feed) Categories() []domain.Category {
	return f.categories
}

// Plans returns the subscription plans in feed order.
func (f *Feed) Plans() []domain.Plan {
	return f.plans
}

// Related returns up to limit packs sharing the given pack's category,
// excluding the pack itself, in feed order.
func (f *Feed) Related(id string, limit int) []domain.Pack {
	pack, ok := f.PackByID(id)
	if !ok {
		return nil
	}

	related := make([]domain.Pack, 0, limit)
	for _, p := range f.packs {
		if p.ID == id || p.Category != pack.Category {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}
	return related
}

// TracksFor derives the demo track list for a pack: evenly split durations
// with everything after the first track locked until purchase.
func (f *Feed) TracksFor(pack domain.Pack) []domain.Track {
	if pack.TrackCount <= 0 {
		return nil
	}

	perTrack := pack.Duration / pack.TrackCount
	tracks := make([]domain.Track, pack.TrackCount)
	for i := range tracks {
		tracks[i] = domain.Track{
			ID:       fmt.Sprintf("%s-t%d", pack.ID, i+1),
			Title:    fmt.Sprintf("%s - Track %d", pack.Title, i+1),
			Duration: perTrack,
			IsLocked: i > 0 && !pack.IsFree,
		}
	}
	return tracks
}
