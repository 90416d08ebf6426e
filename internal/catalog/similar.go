package catalog

import (
	"context"
	"sort"

	"github.com/mandag122/WeeVora/internal/models"
)

const (
	DefaultSimilarLimit = 4
	MaxSimilarLimit     = 20

	similarAgeMin = 0
	similarAgeMax = 18
)

// ClampLimit bounds a requested similar-camps limit to [1, MaxSimilarLimit]
func ClampLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxSimilarLimit {
		return MaxSimilarLimit
	}
	return n
}

// GetSimilarCamps returns up to limit other camps sharing a category or an
// overlapping age range with camp. Camps with registration dates come first.
func (s *Service) GetSimilarCamps(ctx context.Context, camp models.Camp, limit int) ([]models.Camp, error) {
	camps, err := s.ListCamps(ctx)
	if err != nil {
		return nil, err
	}
	return Similar(camp, camps, limit), nil
}

// Similar is the pure ranking behind GetSimilarCamps
func Similar(camp models.Camp, camps []models.Camp, limit int) []models.Camp {
	limit = ClampLimit(limit)

	out := []models.Camp{}
	for _, c := range camps {
		if c.ID == camp.ID {
			continue
		}
		if sharesCategory(c, camp) || agesOverlap(c, camp) {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].HasRegistrationDates() && !out[j].HasRegistrationDates()
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sharesCategory(a, b models.Camp) bool {
	seen := make(map[string]bool, len(b.Categories))
	for _, cat := range b.Categories {
		seen[cat] = true
	}
	for _, cat := range a.Categories {
		if seen[cat] {
			return true
		}
	}
	return false
}

func agesOverlap(a, b models.Camp) bool {
	aMin, aMax := bounds(a)
	bMin, bMax := bounds(b)
	return aMin <= bMax && aMax >= bMin
}

func bounds(c models.Camp) (int, int) {
	lo, hi := similarAgeMin, similarAgeMax
	if c.AgeMin != nil {
		lo = *c.AgeMin
	}
	if c.AgeMax != nil {
		hi = *c.AgeMax
	}
	return lo, hi
}
