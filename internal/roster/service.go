package roster

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thusongfs/thusong-backend/pkg/db/models"
	"github.com/thusongfs/thusong-backend/pkg/enums"
	pkgerrors "github.com/thusongfs/thusong-backend/pkg/errors"
	"github.com/thusongfs/thusong-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines roster-level operations beyond repository reads.
type Service interface {
	AssignVehicle(ctx context.Context, input AssignVehicleInput) (*models.RosterEntry, error)
	ListRoster(ctx context.Context, caseID uuid.UUID, params pagination.Params) (*RosterEntryList, error)
	UpdateEntryStatus(ctx context.Context, entryID uuid.UUID, status enums.RosterEntryStatus) (*models.RosterEntry, error)
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds a roster service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("roster repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo: repo,
		tx:   tx,
		now:  time.Now,
	}, nil
}

// AssignVehicle puts a vehicle on a case's roster inside one transaction.
// Any failed check rolls back everything; no partial state is observable.
func (s *service) AssignVehicle(ctx context.Context, input AssignVehicleInput) (*models.RosterEntry, error) {
	if input.CaseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "case id required")
	}
	if input.VehicleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle id required")
	}
	if input.Role != nil && !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid assignment role")
	}

	var entry *models.RosterEntry
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.FindCaseByID(ctx, input.CaseID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "case not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load case")
		}

		vehicle, err := repo.FindVehicleForUpdate(ctx, input.VehicleID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock vehicle")
		}

		taken, err := repo.HasActiveEntryForVehicle(ctx, record.ID, vehicle.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vehicle duplicate")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "vehicle already assigned to this case").
				WithDetails(map[string]any{"conflict": "duplicate_vehicle"})
		}

		driver := strings.TrimSpace(input.DriverName)
		if !isPlaceholderDriver(driver) {
			taken, err := repo.HasActiveEntryForDriver(ctx, record.ID, driver)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check driver duplicate")
			}
			if taken {
				return pkgerrors.New(pkgerrors.CodeConflict, "driver already assigned to this case").
					WithDetails(map[string]any{"conflict": "duplicate_driver"})
			}
		}

		if record.FuneralDate != nil {
			uses, err := repo.ListActiveUses(ctx, vehicle.ID, *record.FuneralDate, record.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load same-day vehicle uses")
			}
			if hit := DetectConflict(record.FuneralTime, uses); hit != nil {
				return pkgerrors.New(pkgerrors.CodeConflict, "vehicle already booked in this time window").
					WithDetails(map[string]any{
						"conflict":                  "time_conflict",
						"conflicting_case_number":   hit.CaseNumber,
						"conflicting_deceased_name": hit.DeceasedName,
						"conflicting_funeral_time":  hit.FuneralTime,
					})
			}
		}

		created, err := repo.CreateEntry(ctx, &models.RosterEntry{
			CaseID:     record.ID,
			VehicleID:  vehicle.ID,
			DriverName: driver,
			PickupTime: ResolvePickupTime(record, input.PickupTime, s.now()),
			Status:     enums.RosterEntryStatusScheduled,
			Role:       input.Role,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert roster entry")
		}

		if err := repo.RefreshVehicleAvailability(ctx, vehicle.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh vehicle availability")
		}

		entry = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) ListRoster(ctx context.Context, caseID uuid.UUID, params pagination.Params) (*RosterEntryList, error) {
	if caseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "case id required")
	}

	if _, err := s.repo.FindCaseByID(ctx, caseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "case not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load case")
	}

	list, err := s.repo.ListByCase(ctx, caseID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list roster entries")
	}
	return list, nil
}

// UpdateEntryStatus progresses a roster entry along scheduled → on_route →
// completed. Completing an entry retires it and frees its vehicle.
func (s *service) UpdateEntryStatus(ctx context.Context, entryID uuid.UUID, status enums.RosterEntryStatus) (*models.RosterEntry, error) {
	if entryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "entry id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid roster entry status")
	}

	var updated *models.RosterEntry
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		entry, err := repo.FindEntry(ctx, entryID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "roster entry not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load roster entry")
		}

		if entry.Status == status {
			updated = entry
			return nil
		}
		if entryStatusRank(status) < entryStatusRank(entry.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move roster entry from %s back to %s", entry.Status, status))
		}

		if err := repo.UpdateEntryStatus(ctx, entry.ID, status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update roster entry status")
		}

		if status == enums.RosterEntryStatusCompleted {
			if err := repo.RefreshVehicleAvailability(ctx, entry.VehicleID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh vehicle availability")
			}
		}

		entry.Status = status
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// "TBD" or a blank name means the duty has no driver yet and is exempt from
// the duplicate-driver check.
func isPlaceholderDriver(name string) bool {
	return name == "" || strings.EqualFold(name, "TBD")
}

func entryStatusRank(status enums.RosterEntryStatus) int {
	switch status {
	case enums.RosterEntryStatusScheduled:
		return 0
	case enums.RosterEntryStatusOnRoute:
		return 1
	case enums.RosterEntryStatusCompleted:
		return 2
	default:
		return -1
	}
}
