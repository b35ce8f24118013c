package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/thusongfs/thusong-backend/pkg/enums"
)

// ActorRef identifies who performed a state change. It comes from the
// authenticated request context and is used only for attribution.
type ActorRef struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// Entry captures one state change for the append-only trail. Old and new
// state are arbitrary snapshots serialised as JSON.
type Entry struct {
	CaseID   uuid.UUID
	Actor    ActorRef
	Action   enums.AuditAction
	OldState any
	NewState any
}

// Recorder persists audit entries. Callers treat writes as best-effort:
// a failed write is logged and swallowed, never surfaced to the client.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}
