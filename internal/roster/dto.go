package roster

import (
	"time"

	"github.com/google/uuid"

	"github.com/thusongfs/thusong-backend/pkg/enums"
)

// AssignVehicleInput carries the fields required to put a vehicle on a
// case's roster.
type AssignVehicleInput struct {
	CaseID     uuid.UUID
	VehicleID  uuid.UUID
	DriverName string
	PickupTime *time.Time
	Role       *enums.AssignmentRole
}

// RosterEntryView exposes one roster entry with its vehicle summary.
type RosterEntryView struct {
	ID           uuid.UUID               `json:"id"`
	VehicleID    uuid.UUID               `json:"vehicle_id"`
	Registration string                  `json:"registration"`
	VehicleType  enums.VehicleType       `json:"vehicle_type"`
	DriverName   string                  `json:"driver_name"`
	PickupTime   time.Time               `json:"pickup_time"`
	Status       enums.RosterEntryStatus `json:"status"`
	Role         *enums.AssignmentRole   `json:"role,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

// RosterEntryList wraps the paginated entries plus the next page cursor.
type RosterEntryList struct {
	Entries    []RosterEntryView `json:"entries"`
	NextCursor string            `json:"next_cursor,omitempty"`
}
