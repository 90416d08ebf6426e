// Package browse filters and sorts camp listings.
package browse

import (
	"strings"
	"time"

	"github.com/mandag122/WeeVora/internal/models"
)

// Age bounds assumed when either the filter or the camp leaves one out
const (
	DefaultAgeMin = 3
	DefaultAgeMax = 18
)

// Filter returns the camps that pass every active predicate of fs, in input
// order. now decides the registration status buckets.
func Filter(camps []models.Camp, fs models.FilterState, now time.Time) []models.Camp {
	out := make([]models.Camp, 0, len(camps))
	for _, c := range camps {
		if Matches(c, fs, now) {
			out = append(out, c)
		}
	}
	return out
}

// Matches reports whether a single camp passes the filter
func Matches(c models.Camp, fs models.FilterState, now time.Time) bool {
	return matchesSearch(c, fs.Search) &&
		matchesCategories(c, fs.Categories) &&
		matchesLocations(c, fs.Locations) &&
		matchesAge(c, fs.AgeMin, fs.AgeMax) &&
		matchesPrice(c, fs.PriceMin, fs.PriceMax) &&
		matchesDates(c, fs.DateStart, fs.DateEnd) &&
		(!fs.ExtendedHoursOnly || c.ExtendedHours) &&
		matchesSchedule(c, fs.CampSchedule) &&
		matchesStatus(c, fs.RegistrationStatus, now)
}

func matchesSearch(c models.Camp, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	for _, field := range []*string{c.Organization, c.Description} {
		if field != nil && strings.Contains(strings.ToLower(*field), q) {
			return true
		}
	}
	return false
}

func matchesCategories(c models.Camp, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	want := toSet(selected, nil)
	for _, cat := range c.Categories {
		if want[cat] {
			return true
		}
	}
	return false
}

func matchesLocations(c models.Camp, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	return c.LocationCity != nil && toSet(selected, nil)[*c.LocationCity]
}

func matchesAge(c models.Camp, lo, hi *int) bool {
	if lo == nil && hi == nil {
		return true
	}
	filterMin := valueOr(lo, DefaultAgeMin)
	filterMax := valueOr(hi, DefaultAgeMax)
	campMin := valueOr(c.AgeMin, DefaultAgeMin)
	campMax := valueOr(c.AgeMax, DefaultAgeMax)
	return campMax >= filterMin && campMin <= filterMax
}

// matchesPrice keeps camps without any known price
func matchesPrice(c models.Camp, lo, hi *float64) bool {
	if lo == nil && hi == nil {
		return true
	}
	campMin, campMax := c.PriceMin, c.PriceMax
	if campMin == nil && campMax == nil {
		return true
	}
	if campMin == nil {
		campMin = campMax
	}
	if campMax == nil {
		campMax = campMin
	}
	if lo != nil && *campMax < *lo {
		return false
	}
	if hi != nil && *campMin > *hi {
		return false
	}
	return true
}

// matchesDates applies only when both bounds parse. Once active, a camp
// without a full season fails.
func matchesDates(c models.Camp, start, end string) bool {
	from, ok1 := parseDateString(start)
	to, ok2 := parseDateString(end)
	if !ok1 || !ok2 {
		return true
	}
	seasonStart, ok1 := ParseDate(c.SeasonStart)
	seasonEnd, ok2 := ParseDate(c.SeasonEnd)
	if !ok1 || !ok2 {
		return false
	}
	return !seasonStart.After(to) && !seasonEnd.Before(from)
}

func matchesSchedule(c models.Camp, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	want := toSet(selected, NormalizeSchedule)
	for _, s := range c.CampSchedule {
		if want[NormalizeSchedule(s)] {
			return true
		}
	}
	return false
}

func matchesStatus(c models.Camp, status string, now time.Time) bool {
	switch status {
	case models.StatusOpen:
		opens, ok := ParseDate(c.RegistrationOpens)
		if !ok || opens.After(now) || c.WaitlistOnly {
			return false
		}
		closes, ok := ParseDate(c.RegistrationCloses)
		return !ok || closes.After(now)
	case models.StatusUpcoming:
		opens, ok := ParseDate(c.RegistrationOpens)
		return ok && opens.After(now)
	default:
		return true
	}
}

// NormalizeSchedule folds schedule labels so "Full-Week" matches "full week"
func NormalizeSchedule(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, strings.ToLower(s))
}

func toSet(values []string, norm func(string) string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if norm != nil {
			v = norm(v)
		}
		set[v] = true
	}
	return set
}

func valueOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
