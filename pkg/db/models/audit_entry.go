package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/thusongfs/thusong-backend/pkg/enums"
)

// AuditEntry is an append-only record of a state change and who made it.
type AuditEntry struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CaseID      uuid.UUID         `gorm:"column:case_id;type:uuid;not null;index"`
	ActorUserID uuid.UUID         `gorm:"column:actor_user_id;type:uuid"`
	ActorEmail  string            `gorm:"column:actor_email"`
	ActorRole   string            `gorm:"column:actor_role"`
	Action      enums.AuditAction `gorm:"column:action;not null"`
	OldState    json.RawMessage   `gorm:"column:old_state;type:jsonb"`
	NewState    json.RawMessage   `gorm:"column:new_state;type:jsonb"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}
