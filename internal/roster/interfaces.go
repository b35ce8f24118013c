package roster

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thusongfs/thusong-backend/pkg/db/models"
	"github.com/thusongfs/thusong-backend/pkg/enums"
	"github.com/thusongfs/thusong-backend/pkg/pagination"
)

// Repository defines persistence operations for roster assignment tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindCaseByID(ctx context.Context, caseID uuid.UUID) (*models.Case, error)
	FindVehicleForUpdate(ctx context.Context, vehicleID uuid.UUID) (*models.Vehicle, error)
	HasActiveEntryForVehicle(ctx context.Context, caseID, vehicleID uuid.UUID) (bool, error)
	HasActiveEntryForDriver(ctx context.Context, caseID uuid.UUID, driverName string) (bool, error)
	ListActiveUses(ctx context.Context, vehicleID uuid.UUID, funeralDate time.Time, excludeCaseID uuid.UUID) ([]ActiveUse, error)
	CreateEntry(ctx context.Context, entry *models.RosterEntry) (*models.RosterEntry, error)
	FindEntry(ctx context.Context, entryID uuid.UUID) (*models.RosterEntry, error)
	UpdateEntryStatus(ctx context.Context, entryID uuid.UUID, status enums.RosterEntryStatus) error
	RefreshVehicleAvailability(ctx context.Context, vehicleID uuid.UUID) error
	ListByCase(ctx context.Context, caseID uuid.UUID, params pagination.Params) (*RosterEntryList, error)
}
