package roster

import "time"

// BufferWindow is the exclusivity period applied around a funeral time when
// checking a vehicle for double-booking.
const BufferWindow = 2 * time.Hour

// ActiveUse is an existing active assignment of the vehicle on the candidate
// date, joined with its case's identifying fields. The candidate case itself
// is excluded before detection runs.
type ActiveUse struct {
	CaseNumber   string  `gorm:"column:case_number"`
	DeceasedName string  `gorm:"column:deceased_name"`
	FuneralTime  *string `gorm:"column:funeral_time"`
}

// Conflict identifies the assignment blocking a candidate.
type Conflict struct {
	CaseNumber   string
	DeceasedName string
	FuneralTime  string
}

// DetectConflict reports whether assigning the vehicle for the candidate time
// would overlap an existing use. Windows are [t, t+BufferWindow). An entry
// with no parseable time cannot be proven safe against same-day use, so any
// side missing a time blocks. The first hit is reported.
func DetectConflict(candidateTime *string, uses []ActiveUse) *Conflict {
	candidate, candidateKnown := parseClock(candidateTime)

	for _, use := range uses {
		other, otherKnown := parseClock(use.FuneralTime)

		if candidateKnown && otherKnown {
			if !overlaps(candidate, other) {
				continue
			}
		}

		hit := Conflict{
			CaseNumber:   use.CaseNumber,
			DeceasedName: use.DeceasedName,
		}
		if use.FuneralTime != nil {
			hit.FuneralTime = *use.FuneralTime
		}
		return &hit
	}

	return nil
}

func overlaps(a, b time.Duration) bool {
	return a < b+BufferWindow && b < a+BufferWindow
}

// parseClock reads an "HH:MM" wall-clock string as an offset from midnight.
// Unset or malformed values degrade to unknown rather than erroring.
func parseClock(value *string) (time.Duration, bool) {
	if value == nil || *value == "" {
		return 0, false
	}
	t, err := time.Parse("15:04", *value)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}
