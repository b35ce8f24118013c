package audit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thusongfs/thusong-backend/pkg/db/models"
	"github.com/thusongfs/thusong-backend/pkg/enums"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	stmt := `
CREATE TABLE IF NOT EXISTS audit_entries (
  id TEXT PRIMARY KEY,
  case_id TEXT NOT NULL,
  actor_user_id TEXT,
  actor_email TEXT NOT NULL DEFAULT '',
  actor_role TEXT NOT NULL DEFAULT '',
  action TEXT NOT NULL,
  old_state TEXT,
  new_state TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(stmt).Error)
	return db
}

func TestRecordPersistsStateSnapshots(t *testing.T) {
	db := setupAuditTestDB(t)
	recorder := NewRepository(db)

	caseID := uuid.New()
	actor := ActorRef{UserID: uuid.New(), Email: "admin@thusongfs.co.za", Role: "admin"}
	err := recorder.Record(context.Background(), Entry{
		CaseID:   caseID,
		Actor:    actor,
		Action:   enums.AuditActionCaseStatusChanged,
		OldState: map[string]any{"status": "confirmed"},
		NewState: map[string]any{"status": "cancelled", "notes": "family request"},
	})
	require.NoError(t, err)

	var stored models.AuditEntry
	require.NoError(t, db.Where("case_id = ?", caseID).First(&stored).Error)
	assert.Equal(t, enums.AuditActionCaseStatusChanged, stored.Action)
	assert.Equal(t, actor.Email, stored.ActorEmail)

	var newState map[string]any
	require.NoError(t, json.Unmarshal(stored.NewState, &newState))
	assert.Equal(t, "cancelled", newState["status"])
	assert.Equal(t, "family request", newState["notes"])
}

func TestRecordAllowsNilStates(t *testing.T) {
	db := setupAuditTestDB(t)
	recorder := NewRepository(db)

	caseID := uuid.New()
	err := recorder.Record(context.Background(), Entry{
		CaseID: caseID,
		Actor:  ActorRef{UserID: uuid.New()},
		Action: enums.AuditActionFuneralTimeUpdated,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.AuditEntry{}).Where("case_id = ?", caseID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
