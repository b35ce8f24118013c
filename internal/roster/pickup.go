package roster

import (
	"time"

	"github.com/thusongfs/thusong-backend/pkg/db/models"
)

// pickupLead is how long before the funeral the vehicle is dispatched when
// no delivery slot is booked.
const pickupLead = 90 * time.Minute

// ResolvePickupTime derives the effective dispatch timestamp for a new
// assignment. Priority: booked delivery slot, then funeral time minus the
// pickup lead, then the caller-supplied time, then now. A parse failure at
// one rule falls through to the next.
func ResolvePickupTime(c *models.Case, requested *time.Time, now time.Time) time.Time {
	if ts, ok := combine(c.DeliveryDate, c.DeliveryTime); ok {
		return ts
	}
	if ts, ok := combine(c.FuneralDate, c.FuneralTime); ok {
		return ts.Add(-pickupLead)
	}
	if requested != nil {
		return *requested
	}
	return now
}

func combine(date *time.Time, clock *string) (time.Time, bool) {
	if date == nil {
		return time.Time{}, false
	}
	offset, ok := parseClock(clock)
	if !ok {
		return time.Time{}, false
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(offset), true
}
