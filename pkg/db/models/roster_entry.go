package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/thusongfs/thusong-backend/pkg/enums"
)

// RosterEntry links one case, one vehicle, and one driver for a single
// transport duty. Entries are never edited in place for time or vehicle;
// they are retired by moving status to completed and replaced with new rows.
type RosterEntry struct {
	ID         uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CaseID     uuid.UUID               `gorm:"column:case_id;type:uuid;not null;index"`
	VehicleID  uuid.UUID               `gorm:"column:vehicle_id;type:uuid;not null;index"`
	DriverName string                  `gorm:"column:driver_name;not null"`
	PickupTime time.Time               `gorm:"column:pickup_time;not null"`
	Status     enums.RosterEntryStatus `gorm:"column:status;type:roster_entry_status;not null;default:'scheduled'"`
	Role       *enums.AssignmentRole   `gorm:"column:assignment_role;type:assignment_role"`
	Case       *Case                   `gorm:"foreignKey:CaseID"`
	Vehicle    *Vehicle                `gorm:"foreignKey:VehicleID"`
	CreatedAt  time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
