package cases

import (
	"time"

	"github.com/google/uuid"

	"github.com/thusongfs/thusong-backend/internal/audit"
)

// UpdateStatusInput carries a requested lifecycle transition. Status arrives
// as the raw client value and is validated against the closed enum.
type UpdateStatusInput struct {
	CaseID uuid.UUID
	Status string
	Notes  string
	Actor  audit.ActorRef
}

// UpdateFuneralTimeInput carries a funeral schedule edit.
type UpdateFuneralTimeInput struct {
	CaseID      uuid.UUID
	FuneralTime string
	FuneralDate *time.Time
	Actor       audit.ActorRef
}
