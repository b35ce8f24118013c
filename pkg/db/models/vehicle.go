package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/thusongfs/thusong-backend/pkg/enums"
)

// Vehicle is one unit of the transport fleet. Available is recomputed from
// active roster entries whenever an entry is created or completed.
type Vehicle struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Registration string            `gorm:"column:registration;not null;uniqueIndex"`
	Type         enums.VehicleType `gorm:"column:type;type:vehicle_type;not null"`
	Available    bool              `gorm:"column:available;not null;default:true"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
