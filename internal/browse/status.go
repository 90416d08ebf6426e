package browse

import (
	"time"

	"github.com/mandag122/WeeVora/internal/models"
)

// RegistrationStatus buckets a session's registration window
func RegistrationStatus(opens, closes *string, waitlistOnly bool, now time.Time) string {
	if t, ok := ParseDate(closes); ok && t.Before(now) {
		return models.StatusClosed
	}
	if t, ok := ParseDate(opens); ok && t.After(now) {
		return models.StatusUpcoming
	}
	if waitlistOnly {
		return models.StatusWaitlist
	}
	return models.StatusOpen
}

// CampStatus is RegistrationStatus for a camp, which may carry no dates at all
func CampStatus(c models.Camp, now time.Time) string {
	_, hasOpens := ParseDate(c.RegistrationOpens)
	_, hasCloses := ParseDate(c.RegistrationCloses)
	if !hasOpens && !hasCloses && !c.WaitlistOnly {
		return models.StatusUnknown
	}
	return RegistrationStatus(c.RegistrationOpens, c.RegistrationCloses, c.WaitlistOnly, now)
}
