package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/thusongfs/thusong-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a Recorder writing to the audit_entries table.
func NewRepository(db *gorm.DB) Recorder {
	return &repository{db: db}
}

func (r *repository) Record(ctx context.Context, entry Entry) error {
	oldState, err := marshalState(entry.OldState)
	if err != nil {
		return fmt.Errorf("marshal old state: %w", err)
	}
	newState, err := marshalState(entry.NewState)
	if err != nil {
		return fmt.Errorf("marshal new state: %w", err)
	}

	record := models.AuditEntry{
		CaseID:      entry.CaseID,
		ActorUserID: entry.Actor.UserID,
		ActorEmail:  entry.Actor.Email,
		ActorRole:   entry.Actor.Role,
		Action:      entry.Action,
		OldState:    oldState,
		NewState:    newState,
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

func marshalState(state any) (json.RawMessage, error) {
	if state == nil {
		return nil, nil
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
