package models

import "time"

// SelectedSession is a planner's saved intent to attend a session.
// Extended-hours bookings use a distinct SessionID ("<id>-ext").
type SelectedSession struct {
	CampID      string   `json:"campId" binding:"required"`
	CampName    string   `json:"campName"`
	SessionID   string   `json:"sessionId" binding:"required"`
	SessionName string   `json:"sessionName"`
	StartDate   string   `json:"startDate" binding:"required,isodate"`
	EndDate     string   `json:"endDate" binding:"required,isodate"`
	Color       string   `json:"color"`
	IsExtended  bool     `json:"isExtended"`
	Price       *float64 `json:"price"`
}

// DateRange is the visible calendar window (inclusive ISO dates)
type DateRange struct {
	Start string `json:"start" binding:"required,isodate"`
	End   string `json:"end" binding:"required,isodate"`
}

// PlannerState is everything persisted for one planner
type PlannerState struct {
	Sessions  []SelectedSession `json:"sessions"`
	DateRange DateRange         `json:"dateRange"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

// Overlap is a pair of selected sessions whose date ranges intersect
type Overlap struct {
	First  SelectedSession `json:"first"`
	Second SelectedSession `json:"second"`
}

// CalendarDay is the occupancy of a single day in a month grid
type CalendarDay struct {
	Date     string            `json:"date"`
	Sessions []SelectedSession `json:"sessions"`
}

// PlannerResponse is the API response for GET /api/planner
type PlannerResponse struct {
	PlannerState
	Overlaps   []Overlap `json:"overlaps"`
	HasOverlap bool      `json:"hasOverlap"`
}
