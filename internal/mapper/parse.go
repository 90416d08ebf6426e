package mapper

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ageRangeRegex  = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
	ageSingleRegex = regexp.MustCompile(`(\d+)\+?`)

	slugStripRegex  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRegex  = regexp.MustCompile(`\s+`)
	slugHyphenRegex = regexp.MustCompile(`-+`)
)

// AgeRange is a parsed age group. Max is nil for open-ended groups ("12+").
type AgeRange struct {
	Min *int
	Max *int
}

// ParseAgeGroup parses free text like "5-12", "12+" or "4"
func ParseAgeGroup(text string) AgeRange {
	if strings.TrimSpace(text) == "" {
		return AgeRange{}
	}

	if m := ageRangeRegex.FindStringSubmatch(text); m != nil {
		lo, err1 := strconv.Atoi(m[1])
		hi, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			return AgeRange{Min: &lo, Max: &hi}
		}
	}

	if m := ageSingleRegex.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return AgeRange{Min: &n}
		}
	}

	return AgeRange{}
}

// Slugify turns a camp name into a URL-safe identifier, falling back to id
func Slugify(name, id string) string {
	s := strings.ToLower(name)
	s = slugStripRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugSpaceRegex.ReplaceAllString(s, "-")
	s = slugHyphenRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return id
	}
	return s
}

// ParseUSDate converts MM/DD/YYYY into YYYY-MM-DD. ok is false for anything
// that is not a real calendar date.
func ParseUSDate(text string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 3 {
		return "", false
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", false
	}
	yearText := strings.TrimSpace(parts[2])
	if len(yearText) != 4 {
		return "", false
	}
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return "", false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// ParseDateRange splits "MM/DD/YYYY - MM/DD/YYYY" into ISO start and end.
// Each bound is nil when missing or malformed.
func ParseDateRange(text string) (start, end *string) {
	pieces := strings.Split(text, "-")
	if len(pieces) > 0 {
		if d, ok := ParseUSDate(pieces[0]); ok {
			start = &d
		}
	}
	if len(pieces) > 1 {
		if d, ok := ParseUSDate(pieces[1]); ok {
			end = &d
		}
	}
	return start, end
}

// SplitList splits a comma-joined cell and trims every entry
func SplitList(text string) []string {
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ParsePrice parses one price entry. A leading "$" is allowed; thousands
// separators are not, since commas separate sessions.
func ParsePrice(text string) (*float64, error) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "$")
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("invalid price %q", text)
	}
	return &v, nil
}
