package catalog

import (
	"time"

	"github.com/ginaisthando/sound/internal/domain"
)

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

// seedPacks returns the built-in sample catalog. Prices are in cents.
func seedPacks() []domain.Pack {
	return []domain.Pack{
		{
			ID:          "1",
			Title:       "Urban Nightscape",
			Description: "Atmospheric sounds from the city after dark",
			Category:    "urban",
			Price:       53145,
			TrackCount:  8,
			Duration:    240,
			Tags:        []string{"city", "night", "atmospheric"},
			CreatedAt:   day("2024-01-15"),
			Downloads:   1247,
			Rating:      4.8,
		},
		{
			ID:          "2",
			Title:       "Forest Ambience",
			Description: "Natural forest sounds for relaxation",
			Category:    "nature",
			Price:       0,
			IsFree:      true,
			TrackCount:  5,
			Duration:    180,
			Tags:        []string{"forest", "birds", "peaceful"},
			CreatedAt:   day("2024-01-20"),
			Downloads:   3421,
			Rating:      4.9,
		},
		{
			ID:          "3",
			Title:       "Cinematic Orchestra",
			Description: "Epic orchestral compositions for film and games",
			Category:    "orchestral",
			Price:       88622,
			TrackCount:  12,
			Duration:    480,
			Tags:        []string{"epic", "orchestral", "cinematic", "dramatic"},
			CreatedAt:   day("2024-01-18"),
			Downloads:   892,
			Rating:      4.7,
		},
		{
			ID:          "4",
			Title:       "Electronic Dreams",
			Description: "Futuristic electronic soundscapes",
			Category:    "electronic",
			Price:       44259,
			TrackCount:  10,
			Duration:    320,
			Tags:        []string{"electronic", "futuristic", "synth"},
			CreatedAt:   day("2024-01-22"),
			Downloads:   2156,
			Rating:      4.6,
		},
		{
			ID:          "5",
			Title:       "Retro Arcade",
			Description: "Classic 8-bit and 16-bit game sounds",
			Category:    "retro",
			Price:       35431,
			TrackCount:  15,
			Duration:    200,
			Tags:        []string{"8-bit", "16-bit", "arcade", "nostalgia"},
			CreatedAt:   day("2024-01-25"),
			Downloads:   1834,
			Rating:      4.8,
		},
		{
			ID:          "6",
			Title:       "Industrial Machinery",
			Description: "Heavy industrial and mechanical sounds",
			Category:    "industrial",
			Price:       62028,
			TrackCount:  20,
			Duration:    600,
			Tags:        []string{"industrial", "mechanical", "heavy"},
			CreatedAt:   day("2024-01-28"),
			Downloads:   567,
			Rating:      4.5,
		},
	}
}

func seedCategories() []domain.Category {
	return []domain.Category{
		{ID: "ambient", Name: "Ambient", Icon: "🌙"},
		{ID: "cinematic", Name: "Cinematic", Icon: "🎬"},
		{ID: "electronic", Name: "Electronic", Icon: "⚡"},
		{ID: "nature", Name: "Nature", Icon: "🌿"},
		{ID: "urban", Name: "Urban", Icon: "🏙️"},
		{ID: "industrial", Name: "Industrial", Icon: "⚙️"},
		{ID: "orchestral", Name: "Orchestral", Icon: "🎼"},
		{ID: "retro", Name: "Retro", Icon: "📻"},
	}
}

func seedPlans() []domain.Plan {
	return []domain.Plan{
		{
			ID:           "basic",
			Name:         "Basic",
			Description:  "For hobbyists and personal projects",
			PriceMonthly: 15900,
			PriceYearly:  159500,
			Features:     []string{"50 downloads per month", "MP3 files", "Commercial license"},
		},
		{
			ID:           "pro",
			Name:         "Pro",
			Description:  "For professional creators",
			PriceMonthly: 33700,
			PriceYearly:  336800,
			Features:     []string{"Unlimited downloads", "WAV and MP3 files", "Commercial license", "Stems and loops"},
			Popular:      true,
		},
		{
			ID:           "unlimited",
			Name:         "Unlimited",
			Description:  "For studios and teams",
			PriceMonthly: 69100,
			PriceYearly:  691200,
			Features:     []string{"Everything in Pro", "5 team seats", "Shared collections", "Priority support"},
		},
	}
}
