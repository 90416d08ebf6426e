package browse

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mandag122/WeeVora/internal/models"
)

// Sort keys
const (
	SortRegistration = "registration"
	SortNameAsc      = "name-asc"
	SortNameDesc     = "name-desc"
)

// Sort returns a sorted copy. Camps with registration detail always come
// first; key orders within each group. Ties keep their input order.
func Sort(camps []models.Camp, key string) []models.Camp {
	out := make([]models.Camp, len(camps))
	copy(out, camps)

	col := collate.New(language.English)
	secondary := func(a, b models.Camp) int {
		switch key {
		case SortRegistration:
			return compareOpens(a, b)
		case SortNameAsc:
			return col.CompareString(a.Name, b.Name)
		case SortNameDesc:
			return col.CompareString(b.Name, a.Name)
		}
		return 0
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasRegistrationDetail != b.HasRegistrationDetail {
			return a.HasRegistrationDetail
		}
		return secondary(a, b) < 0
	})
	return out
}

// compareOpens orders by registration opening date, undated last
func compareOpens(a, b models.Camp) int {
	ta, okA := ParseDate(a.RegistrationOpens)
	tb, okB := ParseDate(b.RegistrationOpens)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	return ta.Compare(tb)
}

// Locations lists the distinct camp cities in collation order
func Locations(camps []models.Camp) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, c := range camps {
		if c.LocationCity == nil || *c.LocationCity == "" || seen[*c.LocationCity] {
			continue
		}
		seen[*c.LocationCity] = true
		out = append(out, *c.LocationCity)
	}
	collate.New(language.English).SortStrings(out)
	return out
}
