package mapper

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field aliases observed across the evolution of the record store tables,
// tried in order.
var (
	CampLinkFields      = []string{"Camps", "Camps 2", "Camp"}
	OptionNameFields    = []string{"option_name", "Option Name"}
	ExtendedPriceFields = []string{"ex_hours_price", "extended_price"}
	ExtendedHoursFields = []string{"ex_hours", "extended_hours"}
	HideFields          = []string{"hide", "Hide"}
	CampScheduleFields  = []string{"Camp schedule", "Schedule Availability"}
)

// Fields wraps a record's field map with tolerant typed getters
type Fields map[string]any

// Raw returns the first present, non-nil value among keys
func (f Fields) Raw(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := f[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String returns the trimmed text of the first present key, or ""
func (f Fields) String(keys ...string) string {
	for _, k := range keys {
		v, ok := f[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(stringify(v))
		if s != "" {
			return s
		}
	}
	return ""
}

// OptString is String but nil when empty
func (f Fields) OptString(keys ...string) *string {
	s := f.String(keys...)
	if s == "" {
		return nil
	}
	return &s
}

// Float accepts JSON numbers and numeric strings
func (f Fields) Float(keys ...string) *float64 {
	v, ok := f.Raw(keys...)
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case float32:
		x := float64(n)
		return &x
	case int:
		x := float64(n)
		return &x
	case int64:
		x := float64(n)
		return &x
	case string:
		p, err := ParsePrice(n)
		if err != nil {
			return nil
		}
		return p
	}
	return nil
}

// Int is Float truncated toward zero, nil when missing, unparseable or not
// finite
func (f Fields) Int(keys ...string) *int {
	x := f.Float(keys...)
	if x == nil || math.IsNaN(*x) || math.IsInf(*x, 0) {
		return nil
	}
	n := int(*x)
	return &n
}

// Bool accepts JSON booleans and truthy strings (sheet checkboxes export
// as "TRUE")
func (f Fields) Bool(keys ...string) bool {
	v, ok := f.Raw(keys...)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return NormalizeBool(b)
	case float64:
		return b != 0
	}
	return false
}

// StrictTrue is true only for a JSON true or a truthy string. Used for the
// hide flag where any other value must keep the camp visible.
func (f Fields) StrictTrue(keys ...string) bool {
	for _, k := range keys {
		switch b := f[k].(type) {
		case bool:
			if b {
				return true
			}
		case string:
			if NormalizeBool(b) {
				return true
			}
		}
	}
	return false
}

// List returns a string list from an array value or a comma-joined string.
// Empty entries are dropped and duplicates removed, keeping first order.
func (f Fields) List(keys ...string) []string {
	v, ok := f.Raw(keys...)
	if !ok {
		return []string{}
	}

	var raw []string
	switch items := v.(type) {
	case []any:
		for _, it := range items {
			raw = append(raw, stringify(it))
		}
	case []string:
		raw = items
	case string:
		raw = SplitList(items)
	default:
		raw = []string{stringify(items)}
	}

	out := []string{}
	seen := map[string]bool{}
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Positional returns the entries of an array value or a comma-joined string
// without dropping empty ones, so index i still lines up with the other
// parallel lists of the record.
func (f Fields) Positional(keys ...string) ([]string, bool) {
	v, ok := f.Raw(keys...)
	if !ok {
		return nil, false
	}
	switch items := v.(type) {
	case []any:
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = strings.TrimSpace(stringify(it))
		}
		return out, true
	case []string:
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = strings.TrimSpace(it)
		}
		return out, true
	}
	return SplitList(stringify(v)), true
}

// CampLink resolves which camp a registration option belongs to. Each alias
// may hold a list or a scalar; each element may be an id string or an
// object with an "id" field.
func (f Fields) CampLink() string {
	for _, k := range CampLinkFields {
		v, ok := f[k]
		if !ok || v == nil {
			continue
		}
		if items, ok := v.([]any); ok {
			if len(items) == 0 {
				continue
			}
			v = items[0]
		}
		if items, ok := v.([]string); ok {
			if len(items) == 0 {
				continue
			}
			v = items[0]
		}
		if id := linkID(v); id != "" {
			return id
		}
	}
	return ""
}

func linkID(v any) string {
	switch x := v.(type) {
	case string:
		// sheets store links as "recA, recB"
		return strings.TrimSpace(strings.Split(x, ",")[0])
	case map[string]any:
		if id, ok := x["id"].(string); ok {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

// NormalizeBool reads yes/no style text
func NormalizeBool(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "true", "yes", "y", "1", "x", "checked":
		return true
	default:
		return false
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
