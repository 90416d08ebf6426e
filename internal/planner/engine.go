// Package planner keeps a family's selected camp sessions and computes the
// calendar views over them.
package planner

import (
	"time"

	"github.com/mandag122/WeeVora/internal/models"
)

// ExtendedSuffix marks the extended-hours booking of a session
const ExtendedSuffix = "-ext"

// ExtendedSessionID is the selection id of the extended-hours variant
func ExtendedSessionID(sessionID string) string {
	return sessionID + ExtendedSuffix
}

// DefaultDateRange is June 1 through August 31 of year
func DefaultDateRange(year int) models.DateRange {
	return models.DateRange{
		Start: time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC).Format(time.DateOnly),
		End:   time.Date(year, time.August, 31, 0, 0, 0, 0, time.UTC).Format(time.DateOnly),
	}
}

// ParseDay parses an ISO date, or the date part of a timestamp written as
// "<date>T<time>", to midnight UTC. Anything else after the date is rejected.
func ParseDay(s string) (time.Time, bool) {
	if len(s) > len(time.DateOnly) {
		if s[len(time.DateOnly)] != 'T' {
			return time.Time{}, false
		}
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func interval(s models.SelectedSession) (start, end time.Time, ok bool) {
	start, ok1 := ParseDay(s.StartDate)
	end, ok2 := ParseDay(s.EndDate)
	if !ok1 || !ok2 || end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// SessionsOnDay returns the sessions whose inclusive interval contains day
func SessionsOnDay(sessions []models.SelectedSession, day time.Time) []models.SelectedSession {
	day = truncateDay(day)
	out := []models.SelectedSession{}
	for _, s := range sessions {
		start, end, ok := interval(s)
		if ok && !day.Before(start) && !day.After(end) {
			out = append(out, s)
		}
	}
	return out
}

// Overlaps reports each unordered pair of sessions whose inclusive intervals
// intersect, in selection order. Sessions sharing only an edge day overlap.
func Overlaps(sessions []models.SelectedSession) []models.Overlap {
	out := []models.Overlap{}
	for i := 0; i < len(sessions); i++ {
		aStart, aEnd, ok := interval(sessions[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(sessions); j++ {
			bStart, bEnd, ok := interval(sessions[j])
			if !ok {
				continue
			}
			if !aStart.After(bEnd) && !bStart.After(aEnd) {
				out = append(out, models.Overlap{First: sessions[i], Second: sessions[j]})
			}
		}
	}
	return out
}

// MonthsInRange lists the first day of every month from start's month
// through end's month.
func MonthsInRange(start, end time.Time) []time.Time {
	months := []time.Time{}
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(last) {
		months = append(months, cur)
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

// MonthGrid lists every day of month with the sessions occupying it
func MonthGrid(sessions []models.SelectedSession, month time.Time) []models.CalendarDay {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := []models.CalendarDay{}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, models.CalendarDay{
			Date:     d.Format(time.DateOnly),
			Sessions: SessionsOnDay(sessions, d),
		})
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
