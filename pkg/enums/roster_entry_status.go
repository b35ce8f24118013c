package enums

import "fmt"

// RosterEntryStatus tracks a transport duty from dispatch to completion.
type RosterEntryStatus string

const (
	RosterEntryStatusScheduled RosterEntryStatus = "scheduled"
	RosterEntryStatusOnRoute   RosterEntryStatus = "on_route"
	RosterEntryStatusCompleted RosterEntryStatus = "completed"
)

var validRosterEntryStatuses = []RosterEntryStatus{
	RosterEntryStatusScheduled,
	RosterEntryStatusOnRoute,
	RosterEntryStatusCompleted,
}

// String implements fmt.Stringer.
func (r RosterEntryStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RosterEntryStatus.
func (r RosterEntryStatus) IsValid() bool {
	for _, candidate := range validRosterEntryStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsActive reports whether the entry still occupies its vehicle. Completed
// entries are retired and no longer count toward duplicate or conflict checks.
func (r RosterEntryStatus) IsActive() bool {
	return r != RosterEntryStatusCompleted
}

// ParseRosterEntryStatus converts raw input into a RosterEntryStatus.
func ParseRosterEntryStatus(value string) (RosterEntryStatus, error) {
	for _, candidate := range validRosterEntryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid roster entry status %q", value)
}
