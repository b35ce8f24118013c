package cases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thusongfs/thusong-backend/internal/audit"
	"github.com/thusongfs/thusong-backend/pkg/db/models"
	"github.com/thusongfs/thusong-backend/pkg/enums"
	pkgerrors "github.com/thusongfs/thusong-backend/pkg/errors"
	"github.com/thusongfs/thusong-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the case lifecycle operations.
type Service interface {
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Case, error)
	UpdateFuneralTime(ctx context.Context, input UpdateFuneralTimeInput) (*models.Case, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	recorder audit.Recorder
	logg     *logger.Logger
}

// NewService builds a case lifecycle service with the required dependencies.
func NewService(repo Repository, tx txRunner, recorder audit.Recorder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cases repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		recorder: recorder,
		logg:     logg,
	}, nil
}

// UpdateStatus moves a case through its lifecycle, enforcing the transition
// rules and resource gates, then records the change in the audit trail.
func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Case, error) {
	if input.CaseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "case id required")
	}
	target, err := enums.ParseCaseStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid case status").
			WithDetails(map[string]any{"status": input.Status})
	}

	notes := strings.TrimSpace(input.Notes)
	if target == enums.CaseStatusCancelled && notes == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cancellation requires a reason")
	}

	var (
		updated   *models.Case
		oldStatus enums.CaseStatus
		noop      bool
	)
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.FindByID(ctx, input.CaseID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "case not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load case")
		}

		oldStatus = record.Status
		if record.Status == target {
			updated = record
			noop = true
			return nil
		}
		if !CanTransition(record.Status, target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move case from %s to %s", record.Status, target))
		}

		if RequiresVehicleGate(target) {
			required := MinimumVehicles(record.PlanName)
			assigned, err := repo.CountActiveEntries(ctx, record.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active roster entries")
			}
			if assigned < int64(required) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "not enough vehicles assigned").
					WithDetails(map[string]any{
						"required_min_vehicles": required,
						"assigned_vehicles":     assigned,
					})
			}
		}

		var cancelReason *string
		if target == enums.CaseStatusCancelled {
			cancelReason = &notes
		}

		if err := repo.UpdateStatus(ctx, record.ID, target, cancelReason); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update case status")
		}

		record.Status = target
		if cancelReason != nil {
			record.CancelReason = cancelReason
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !noop {
		newState := map[string]any{"status": target}
		if notes != "" {
			newState["notes"] = notes
		}
		s.recordAudit(ctx, audit.Entry{
			CaseID:   updated.ID,
			Actor:    input.Actor,
			Action:   enums.AuditActionCaseStatusChanged,
			OldState: map[string]any{"status": oldStatus},
			NewState: newState,
		})
	}
	return updated, nil
}

// UpdateFuneralTime edits the funeral schedule. The schedule is only
// editable while the case is still in intake.
func (s *service) UpdateFuneralTime(ctx context.Context, input UpdateFuneralTimeInput) (*models.Case, error) {
	if input.CaseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "case id required")
	}
	funeralTime := strings.TrimSpace(input.FuneralTime)
	if funeralTime == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "funeral time required")
	}
	if _, err := time.Parse("15:04", funeralTime); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "funeral time must be HH:MM")
	}

	var (
		updated  *models.Case
		oldState map[string]any
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.FindByID(ctx, input.CaseID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "case not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load case")
		}

		if record.Status != enums.CaseStatusIntake {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("funeral time is locked while case is %s", record.Status))
		}

		oldState = map[string]any{
			"funeral_time": record.FuneralTime,
			"funeral_date": record.FuneralDate,
		}

		if err := repo.UpdateFuneralTime(ctx, record.ID, funeralTime, input.FuneralDate); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update funeral time")
		}

		record.FuneralTime = &funeralTime
		if input.FuneralDate != nil {
			record.FuneralDate = input.FuneralDate
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, audit.Entry{
		CaseID:   updated.ID,
		Actor:    input.Actor,
		Action:   enums.AuditActionFuneralTimeUpdated,
		OldState: oldState,
		NewState: map[string]any{
			"funeral_time": funeralTime,
			"funeral_date": updated.FuneralDate,
		},
	})
	return updated, nil
}

// recordAudit runs after the transaction commits. Audit durability is not
// required for correctness, so failures are logged and swallowed.
func (s *service) recordAudit(ctx context.Context, entry audit.Entry) {
	if err := s.recorder.Record(ctx, entry); err != nil {
		ctx = s.logg.WithCaseID(ctx, entry.CaseID.String())
		s.logg.Error(ctx, "audit write failed", err)
	}
}
