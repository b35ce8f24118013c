package cases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thusongfs/thusong-backend/pkg/db/models"
	"github.com/thusongfs/thusong-backend/pkg/enums"
)

// Repository defines persistence operations for the case lifecycle.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, caseID uuid.UUID) (*models.Case, error)
	CountActiveEntries(ctx context.Context, caseID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, caseID uuid.UUID, status enums.CaseStatus, cancelReason *string) error
	UpdateFuneralTime(ctx context.Context, caseID uuid.UUID, funeralTime string, funeralDate *time.Time) error
}
