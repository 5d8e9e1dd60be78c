package domain

import "time"

// Pack represents a purchasable sound pack in the catalog.
// The catalog feed is read-only reference data: packs are loaded once at
// startup and never mutated for the lifetime of the process.
type Pack struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"` // cents
	IsFree      bool      `json:"is_free"`
	TrackCount  int       `json:"track_count"`
	Duration    int       `json:"duration"` // seconds
	PreviewURL  string    `json:"preview_url,omitempty"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	Downloads   int       `json:"downloads"`
	Rating      float64   `json:"rating"`
	Tracks      []Track   `json:"tracks,omitempty"`
}

// Track is a single audio track within a pack.
type Track struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"` // seconds
	IsLocked bool   `json:"is_locked"`
}

// Category is a catalog category with a display name and icon glyph.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Plan is a subscription tier shown on the subscription page.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PriceMonthly int64    `json:"price_monthly"` // cents
	PriceYearly  int64    `json:"price_yearly"`  // cents
	Features     []string `json:"features"`
	Popular      bool     `json:"popular"`
}
