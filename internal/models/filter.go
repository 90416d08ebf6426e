package models

// Registration status buckets
const (
	StatusAll      = "all"
	StatusOpen     = "open"
	StatusUpcoming = "upcoming"
	StatusClosed   = "closed"
	StatusWaitlist = "waitlist"
	StatusUnknown  = "unknown"
)

// FilterState is the listing view-model. Zero value means "no filters".
type FilterState struct {
	Search             string   `json:"search" form:"search"`
	Categories         []string `json:"categories" form:"category"`
	AgeMin             *int     `json:"ageMin" form:"ageMin"`
	AgeMax             *int     `json:"ageMax" form:"ageMax"`
	Locations          []string `json:"locations" form:"location"`
	PriceMin           *float64 `json:"priceMin" form:"priceMin"`
	PriceMax           *float64 `json:"priceMax" form:"priceMax"`
	RegistrationStatus string   `json:"registrationStatus" form:"status" binding:"omitempty,oneof=all open upcoming"`
	ExtendedHoursOnly  bool     `json:"extendedHoursOnly" form:"extendedHours"`
	CampSchedule       []string `json:"campSchedule" form:"schedule"`
	DateStart          string   `json:"dateStart" form:"dateStart"`
	DateEnd            string   `json:"dateEnd" form:"dateEnd"`
}

// CampListQuery is the query string accepted by GET /api/camps
type CampListQuery struct {
	FilterState
	Sort string `form:"sort" binding:"omitempty,oneof=registration name-asc name-desc"`
}
