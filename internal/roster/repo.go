package roster

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thusongfs/thusong-backend/pkg/db/models"
	"github.com/thusongfs/thusong-backend/pkg/enums"
	"github.com/thusongfs/thusong-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a roster repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindCaseByID(ctx context.Context, caseID uuid.UUID) (*models.Case, error) {
	var record models.Case
	err := r.db.WithContext(ctx).
		Where("id = ?", caseID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindVehicleForUpdate locks the vehicle row for the life of the surrounding
// transaction, serialising concurrent assignments of the same vehicle.
func (r *repository) FindVehicleForUpdate(ctx context.Context, vehicleID uuid.UUID) (*models.Vehicle, error) {
	var record models.Vehicle
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", vehicleID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) HasActiveEntryForVehicle(ctx context.Context, caseID, vehicleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RosterEntry{}).
		Where("case_id = ?", caseID).
		Where("vehicle_id = ?", vehicleID).
		Where("status <> ?", enums.RosterEntryStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) HasActiveEntryForDriver(ctx context.Context, caseID uuid.UUID, driverName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RosterEntry{}).
		Where("case_id = ?", caseID).
		Where("LOWER(driver_name) = ?", strings.ToLower(driverName)).
		Where("status <> ?", enums.RosterEntryStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) ListActiveUses(ctx context.Context, vehicleID uuid.UUID, funeralDate time.Time, excludeCaseID uuid.UUID) ([]ActiveUse, error) {
	var uses []ActiveUse
	err := r.db.WithContext(ctx).
		Table("roster_entries").
		Select("cases.case_number, cases.deceased_name, cases.funeral_time").
		Joins("JOIN cases ON cases.id = roster_entries.case_id").
		Where("roster_entries.vehicle_id = ?", vehicleID).
		Where("roster_entries.status <> ?", enums.RosterEntryStatusCompleted).
		Where("roster_entries.case_id <> ?", excludeCaseID).
		Where("cases.funeral_date = ?", funeralDate).
		Order("roster_entries.created_at ASC").
		Scan(&uses).Error
	if err != nil {
		return nil, err
	}
	return uses, nil
}

func (r *repository) CreateEntry(ctx context.Context, entry *models.RosterEntry) (*models.RosterEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *repository) FindEntry(ctx context.Context, entryID uuid.UUID) (*models.RosterEntry, error) {
	var record models.RosterEntry
	err := r.db.WithContext(ctx).
		Where("id = ?", entryID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) UpdateEntryStatus(ctx context.Context, entryID uuid.UUID, status enums.RosterEntryStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.RosterEntry{}).
		Where("id = ?", entryID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

// RefreshVehicleAvailability recomputes the stored available flag from the
// active entries referencing the vehicle, so it cannot drift from the roster.
func (r *repository) RefreshVehicleAvailability(ctx context.Context, vehicleID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE vehicles
		   SET available = NOT EXISTS (
		           SELECT 1
		             FROM roster_entries
		            WHERE roster_entries.vehicle_id = vehicles.id
		              AND roster_entries.status <> ?
		       ),
		       updated_at = CURRENT_TIMESTAMP
		 WHERE vehicles.id = ?`,
		enums.RosterEntryStatusCompleted, vehicleID).Error
}

func (r *repository) ListByCase(ctx context.Context, caseID uuid.UUID, params pagination.Params) (*RosterEntryList, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(params.Cursor))
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Table("roster_entries").
		Select(strings.Join([]string{
			"roster_entries.id",
			"roster_entries.vehicle_id",
			"vehicles.registration",
			"vehicles.type AS vehicle_type",
			"roster_entries.driver_name",
			"roster_entries.pickup_time",
			"roster_entries.status",
			"roster_entries.assignment_role AS role",
			"roster_entries.created_at",
		}, ", ")).
		Joins("JOIN vehicles ON vehicles.id = roster_entries.vehicle_id").
		Where("roster_entries.case_id = ?", caseID)

	if decodedCursor != nil {
		query = query.Where(
			"(roster_entries.created_at < ?) OR (roster_entries.created_at = ? AND roster_entries.id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}

	var records []RosterEntryView
	err = query.
		Order("roster_entries.created_at DESC").
		Order("roster_entries.id DESC").
		Limit(limitWithBuffer).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	list := &RosterEntryList{Entries: records}
	if len(records) > normalizedLimit {
		list.Entries = records[:normalizedLimit]
		last := list.Entries[len(list.Entries)-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}
