package models

// Session is one bookable registration option within a camp.
// ID is "<record id>-<index>" because one record may encode several sessions.
type Session struct {
	ID                 string   `json:"id"`
	CampID             string   `json:"campId"`
	SessionName        string   `json:"sessionName"`
	StartDate          *string  `json:"startDate"`
	EndDate            *string  `json:"endDate"`
	Price              *float64 `json:"price"`
	ExtendedPrice      *float64 `json:"extendedPrice"`
	AgeMin             *int     `json:"ageMin"`
	AgeMax             *int     `json:"ageMax"`
	RegistrationOpens  *string  `json:"registrationOpens"`
	RegistrationCloses *string  `json:"registrationCloses"`
	WaitlistOnly       bool     `json:"waitlistOnly"`
	Color              *string  `json:"color"`
}
