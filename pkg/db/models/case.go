package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/thusongfs/thusong-backend/pkg/enums"
)

// Case is a funeral-service case moving through intake to completion.
// FuneralTime and DeliveryTime are wall-clock strings ("15:04") paired with
// their date columns; either side may be unset until scheduling firms up.
type Case struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CaseNumber    string           `gorm:"column:case_number;not null;uniqueIndex"`
	DeceasedName  string           `gorm:"column:deceased_name;not null"`
	PlanName      string           `gorm:"column:plan_name;not null"`
	Status        enums.CaseStatus `gorm:"column:status;type:case_status;not null;default:'intake'"`
	FuneralDate   *time.Time       `gorm:"column:funeral_date;type:date"`
	FuneralTime   *string          `gorm:"column:funeral_time"`
	DeliveryDate  *time.Time       `gorm:"column:delivery_date;type:date"`
	DeliveryTime  *string          `gorm:"column:delivery_time"`
	CancelReason  *string          `gorm:"column:cancel_reason"`
	RosterEntries []RosterEntry    `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
