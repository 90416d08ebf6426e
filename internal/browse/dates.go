package browse

import (
	"strings"
	"time"
)

// ParseDate accepts YYYY-MM-DD or RFC 3339. Anything else is "no date".
func ParseDate(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	return parseDateString(*s)
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
