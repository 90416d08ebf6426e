package planner

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mandag122/WeeVora/internal/models"
)

// ICSProductID identifies the calendar producer
const ICSProductID = "-//WeeVora//Camp Planner//EN"

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

// WriteICS writes the selections as all-day events. Sessions with bad dates
// are skipped.
func WriteICS(w io.Writer, plannerID string, state models.PlannerState, stamp time.Time) error {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:%s", ICSProductID)
	line("CALSCALE:GREGORIAN")
	line("X-WR-CALNAME:Summer camps")

	dtstamp := stamp.UTC().Format("20060102T150405Z")
	for _, s := range state.Sessions {
		start, end, ok := interval(s)
		if !ok {
			continue
		}
		summary := s.CampName
		if s.SessionName != "" {
			summary += " - " + s.SessionName
		}
		if s.IsExtended {
			summary += " (extended hours)"
		}

		line("BEGIN:VEVENT")
		line("UID:%s-%s@weevora", plannerID, s.SessionID)
		line("DTSTAMP:%s", dtstamp)
		line("DTSTART;VALUE=DATE:%s", start.Format("20060102"))
		// DTEND is exclusive for all-day events
		line("DTEND;VALUE=DATE:%s", end.AddDate(0, 0, 1).Format("20060102"))
		line("SUMMARY:%s", icsEscaper.Replace(summary))
		if s.Price != nil {
			line("DESCRIPTION:Price $%.2f", *s.Price)
		}
		line("END:VEVENT")
	}

	line("END:VCALENDAR")
	_, err := io.WriteString(w, b.String())
	return err
}
