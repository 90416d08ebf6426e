package models

// Camp represents a directory entry for one camp program
type Camp struct {
	ID                    string   `json:"id"`
	Slug                  string   `json:"slug"`
	Name                  string   `json:"name"`
	Organization          *string  `json:"organization"`
	Description           *string  `json:"description"`
	Categories            []string `json:"categories"`
	AgeMin                *int     `json:"ageMin"`
	AgeMax                *int     `json:"ageMax"` // nil means open-ended (N+)
	LocationCity          *string  `json:"locationCity"`
	LocationAddress       *string  `json:"locationAddress"`
	PriceMin              *float64 `json:"priceMin"`
	PriceMax              *float64 `json:"priceMax"`
	RegistrationOpens     *string  `json:"registrationOpens"`
	RegistrationCloses    *string  `json:"registrationCloses"`
	SeasonStart           *string  `json:"seasonStart"`
	SeasonEnd             *string  `json:"seasonEnd"`
	CampHours             *string  `json:"campHours"`
	ExtendedHours         bool     `json:"extendedHours"`
	ExtendedHoursInfo     *string  `json:"extendedHoursInfo"`
	WaitlistOnly          bool     `json:"waitlistOnly"`
	SiblingDiscountNote   *string  `json:"siblingDiscountNote"`
	WebsiteURL            *string  `json:"websiteUrl"`
	Color                 *string  `json:"color"`
	AdditionalInfo        *string  `json:"additionalInfo"`
	PricingDetails        *string  `json:"pricingDetails"`
	CampSchedule          []string `json:"campSchedule"`
	HasRegistrationDetail bool     `json:"hasRegistrationDetail"`
}

// HasRegistrationDates reports whether either registration date is present
func (c Camp) HasRegistrationDates() bool {
	return c.RegistrationOpens != nil || c.RegistrationCloses != nil
}
