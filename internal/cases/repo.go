package cases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thusongfs/thusong-backend/pkg/db/models"
	"github.com/thusongfs/thusong-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cases repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, caseID uuid.UUID) (*models.Case, error) {
	var record models.Case
	err := r.db.WithContext(ctx).
		Where("id = ?", caseID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) CountActiveEntries(ctx context.Context, caseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RosterEntry{}).
		Where("case_id = ?", caseID).
		Where("status <> ?", enums.RosterEntryStatusCompleted).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) UpdateStatus(ctx context.Context, caseID uuid.UUID, status enums.CaseStatus, cancelReason *string) error {
	updates := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if cancelReason != nil {
		updates["cancel_reason"] = *cancelReason
	}
	return r.db.WithContext(ctx).
		Model(&models.Case{}).
		Where("id = ?", caseID).
		Updates(updates).Error
}

func (r *repository) UpdateFuneralTime(ctx context.Context, caseID uuid.UUID, funeralTime string, funeralDate *time.Time) error {
	updates := map[string]any{
		"funeral_time": funeralTime,
		"updated_at":   time.Now().UTC(),
	}
	if funeralDate != nil {
		updates["funeral_date"] = *funeralDate
	}
	return r.db.WithContext(ctx).
		Model(&models.Case{}).
		Where("id = ?", caseID).
		Updates(updates).Error
}
