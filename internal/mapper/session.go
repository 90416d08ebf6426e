package mapper

import (
	"fmt"
	"strings"

	"github.com/mandag122/WeeVora/internal/models"
)

// OptionName returns the trimmed option name of a registration record
func OptionName(rec models.Record) string {
	return Fields(rec.Fields).String(OptionNameFields...)
}

// CampIDsWithDetail collects the camps that have at least one linked
// registration option with a non-empty name.
func CampIDsWithDetail(records []models.Record) map[string]bool {
	ids := map[string]bool{}
	for _, rec := range records {
		f := Fields(rec.Fields)
		campID := f.CampLink()
		if campID != "" && OptionName(rec) != "" {
			ids[campID] = true
		}
	}
	return ids
}

// ExpandSessions turns one Registration_Options record into one session per
// entry of its comma-joined option name list. The date, price and extended
// price lists are zipped by position; a short list pads with nil and is
// reported as a diagnostic.
func ExpandSessions(rec models.Record) ([]models.Session, []models.Diagnostic) {
	f := Fields(rec.Fields)
	diags := []models.Diagnostic{}
	report := func(field, format string, args ...any) {
		diags = append(diags, models.Diagnostic{
			Table:    TableRegistrationOptions,
			RecordID: rec.ID,
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	names, ok := f.Positional(OptionNameFields...)
	if !ok || len(names) == 0 {
		names = []string{"Session"}
	}

	dates := optionalList(f, "dates_csv")
	prices := parsePriceList(optionalList(f, "price"), func(idx int, err error) {
		report("price", "entry %d: %v", idx+1, err)
	})
	extPrices := parsePriceList(optionalList(f, ExtendedPriceFields...), func(idx int, err error) {
		report("ex_hours_price", "entry %d: %v", idx+1, err)
	})

	checkLen := func(field string, n int) {
		if n > 0 && n != len(names) {
			report(field, "has %d entries but option_name has %d", n, len(names))
		}
	}
	checkLen("dates_csv", len(dates))
	checkLen("price", len(prices))
	checkLen("ex_hours_price", len(extPrices))

	campID := f.CampLink()
	ageMin := f.Int("age_min")
	ageMax := f.Int("age_max")
	opens := f.OptString("registration_opens")
	closes := f.OptString("registration_closes")
	waitlist := f.Bool("waitlist_only")
	color := f.OptString("color")

	sessions := make([]models.Session, 0, len(names))
	for idx, name := range names {
		if name == "" {
			name = fmt.Sprintf("Session %d", idx+1)
		}

		var start, end *string
		if idx < len(dates) && dates[idx] != "" {
			start, end = ParseDateRange(dates[idx])
			if start == nil || end == nil {
				report("dates_csv", "entry %d: cannot fully parse %q", idx+1, dates[idx])
			}
		}

		sessions = append(sessions, models.Session{
			ID:                 fmt.Sprintf("%s-%d", rec.ID, idx),
			CampID:             campID,
			SessionName:        name,
			StartDate:          start,
			EndDate:            end,
			Price:              at(prices, idx),
			ExtendedPrice:      at(extPrices, idx),
			AgeMin:             ageMin,
			AgeMax:             ageMax,
			RegistrationOpens:  opens,
			RegistrationCloses: closes,
			WaitlistOnly:       waitlist,
			Color:              color,
		})
	}
	return sessions, diags
}

// ExpandAllSessions expands every record in order
func ExpandAllSessions(records []models.Record) ([]models.Session, []models.Diagnostic) {
	sessions := []models.Session{}
	diags := []models.Diagnostic{}
	for _, rec := range records {
		s, d := ExpandSessions(rec)
		sessions = append(sessions, s...)
		diags = append(diags, d...)
	}
	return sessions, diags
}

func optionalList(f Fields, keys ...string) []string {
	raw := f.String(keys...)
	if raw == "" {
		return nil
	}
	return SplitList(raw)
}

// parsePriceList keeps positions: a bad entry becomes nil at its own index
func parsePriceList(entries []string, onErr func(int, error)) []*float64 {
	if entries == nil {
		return nil
	}
	out := make([]*float64, len(entries))
	for i, e := range entries {
		p, err := ParsePrice(strings.TrimSpace(e))
		if err != nil {
			onErr(i, err)
			continue
		}
		out[i] = p
	}
	return out
}

func at(list []*float64, idx int) *float64 {
	if idx < len(list) {
		return list[idx]
	}
	return nil
}
