package app

import (
	"fmt"
	"math"
	"strings"
	"time"

	"lakeshore_hotel/internal/domain"
)

// OtherCategory collects amenities without a category.
const OtherCategory = "Other"

// AmenityGroup is one category section of the amenities page.
type AmenityGroup struct {
	Category string
	Items    []domain.Amenity
}

// GroupAmenitiesByCategory partitions amenities by category, keeping the
// order in which categories first appear.
func GroupAmenitiesByCategory(items []domain.Amenity) []AmenityGroup {
	var groups []AmenityGroup
	index := map[string]int{}
	for _, a := range items {
		cat := OtherCategory
		if a.Category != nil {
			cat = *a.Category
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, AmenityGroup{Category: cat})
		}
		groups[i].Items = append(groups[i].Items, a)
	}
	return groups
}

// RatingSummary aggregates a set of reviews. Every review lands in exactly
// one bucket: sum(Distribution[1..5]) + Unrated == Count.
type RatingSummary struct {
	Count   int
	Rated   int
	Average float64
	// Distribution[s] counts reviews whose rating rounds to s stars (1..5).
	Distribution [6]int
	Unrated      int
}

// SummarizeRatings averages over rated reviews only; zero reviews give 0.
func SummarizeRatings(reviews []domain.Review) RatingSummary {
	s := RatingSummary{Count: len(reviews)}
	var sum float64
	for _, r := range reviews {
		if r.Rating == nil {
			s.Unrated++
			continue
		}
		s.Rated++
		sum += *r.Rating
		s.Distribution[clampStar(*r.Rating)]++
	}
	if s.Rated > 0 {
		s.Average = sum / float64(s.Rated)
	}
	return s
}

func clampStar(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

// Percent is the share of rated reviews with the given star count.
func (s RatingSummary) Percent(star int) float64 {
	if star < 1 || star > 5 || s.Rated == 0 {
		return 0
	}
	return float64(s.Distribution[star]) / float64(s.Rated) * 100
}

func (s RatingSummary) AverageLabel() string { return fmt.Sprintf("%.1f", s.Average) }

// Stars is the average rounded to whole stars, 0 when nothing is rated.
func (s RatingSummary) Stars() int {
	if s.Rated == 0 {
		return 0
	}
	return clampStar(s.Average)
}

// StarsDescending lists 5..1 for the distribution chart.
func (RatingSummary) StarsDescending() []int { return []int{5, 4, 3, 2, 1} }

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("January 2, 2006")
}

func FormatTime(t *domain.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.Format("3:04 PM")
}

// Truncate cuts s to at most n runes, ending with an ellipsis when cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimRight(string(r[:n]), " ") + "…"
}

// Take returns at most the first n items.
func Take[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func Pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
