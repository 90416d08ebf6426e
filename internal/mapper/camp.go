package mapper

import (
	"fmt"
	"strings"

	"github.com/mandag122/WeeVora/internal/models"
)

// Table names in the record store
const (
	TableCamps               = "Camps"
	TableRegistrationOptions = "Registration_Options"
	TableFeedback            = "Feedback"
)

// IsHidden reports whether a camp record carries the hide flag
func IsHidden(rec models.Record) bool {
	return Fields(rec.Fields).StrictTrue(HideFields...)
}

// MapCamp converts one Camps record. Slug collisions are not resolved here;
// see MapCamps.
func MapCamp(rec models.Record) models.Camp {
	f := Fields(rec.Fields)

	name := f.String("Camp Name")
	if name == "" {
		name = "Unnamed Camp"
	}
	age := ParseAgeGroup(f.String("Age Group"))
	extended, extendedInfo := extendedHours(f)

	return models.Camp{
		ID:                  rec.ID,
		Slug:                Slugify(f.String("Camp Name"), rec.ID),
		Name:                name,
		Organization:        f.OptString("Organization"),
		Description:         f.OptString("Description"),
		Categories:          f.List("Interests"),
		AgeMin:              age.Min,
		AgeMax:              age.Max,
		LocationCity:        f.OptString("Location City"),
		LocationAddress:     f.OptString("Location"),
		PriceMin:            f.Float("Price Min"),
		PriceMax:            f.Float("Price Max"),
		RegistrationOpens:   f.OptString("Registration Opens"),
		RegistrationCloses:  f.OptString("Registration Closes"),
		SeasonStart:         f.OptString("Start Date"),
		SeasonEnd:           f.OptString("End Date"),
		CampHours:           f.OptString("camp_hours"),
		ExtendedHours:       extended,
		ExtendedHoursInfo:   extendedInfo,
		WaitlistOnly:        f.Bool("Waitlist Only"),
		SiblingDiscountNote: f.OptString("Sibling Discount"),
		WebsiteURL:          f.OptString("Website"),
		Color:               f.OptString("Color"),
		AdditionalInfo:      f.OptString("Additional Info"),
		PricingDetails:      f.OptString("pricing_details"),
		CampSchedule:        f.List(CampScheduleFields...),
	}
}

// MapCamps maps all visible camp records in source order, marks
// HasRegistrationDetail from detailIDs, and disambiguates colliding slugs by
// appending the slugified record id (and a counter if that is also taken)
// to every camp after the first.
func MapCamps(records []models.Record, detailIDs map[string]bool) ([]models.Camp, []models.Diagnostic) {
	camps := make([]models.Camp, 0, len(records))
	diags := []models.Diagnostic{}
	taken := map[string]string{}

	for _, rec := range records {
		if IsHidden(rec) {
			continue
		}
		camp := MapCamp(rec)
		camp.HasRegistrationDetail = detailIDs[rec.ID]

		if owner, ok := taken[camp.Slug]; ok {
			base := camp.Slug
			camp.Slug = freeSlug(taken, base, Slugify(rec.ID, ""))
			diags = append(diags, models.Diagnostic{
				Table:    TableCamps,
				RecordID: rec.ID,
				Field:    "Camp Name",
				Message:  fmt.Sprintf("slug %q already used by %s, using %q", base, owner, camp.Slug),
			})
		}
		taken[camp.Slug] = rec.ID

		if camp.AgeMin != nil && camp.AgeMax != nil && *camp.AgeMin > *camp.AgeMax {
			diags = append(diags, models.Diagnostic{
				Table:    TableCamps,
				RecordID: rec.ID,
				Field:    "Age Group",
				Message:  fmt.Sprintf("age min %d is greater than max %d", *camp.AgeMin, *camp.AgeMax),
			})
		}

		camps = append(camps, camp)
	}
	return camps, diags
}

// freeSlug appends the record id suffix to base, then a counter until the
// result is not taken. A suffix can itself collide with another camp's
// bare slug ("Foo r2" next to a second "Foo" from record r2).
func freeSlug(taken map[string]string, base, idSuffix string) string {
	stem := base
	if idSuffix != "" {
		stem = base + "-" + idSuffix
	}
	slug := stem
	for n := 2; ; n++ {
		if _, used := taken[slug]; !used {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", stem, n)
	}
}

// extendedHours reads the extended-hours field, which holds either a
// checkbox or a free-text description of the extended schedule.
func extendedHours(f Fields) (bool, *string) {
	raw, ok := f.Raw(ExtendedHoursFields...)
	if !ok {
		return false, nil
	}
	if b, isBool := raw.(bool); isBool {
		return b, nil
	}
	info := f.OptString(ExtendedHoursFields...)
	if info == nil {
		return false, nil
	}
	switch strings.ToLower(*info) {
	case "false", "no", "n", "0":
		return false, nil
	}
	return true, info
}
