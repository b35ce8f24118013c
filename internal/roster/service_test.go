package roster

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thusongfs/thusong-backend/pkg/db/models"
	"github.com/thusongfs/thusong-backend/pkg/enums"
	pkgerrors "github.com/thusongfs/thusong-backend/pkg/errors"
	"github.com/thusongfs/thusong-backend/pkg/pagination"
)

type stubRosterRepo struct {
	caseRecord    *models.Case
	vehicle       *models.Vehicle
	entry         *models.RosterEntry
	vehicleTaken  bool
	driverTaken   bool
	activeUses    []ActiveUse
	createdEntry  *models.RosterEntry
	updatedStatus enums.RosterEntryStatus
	refreshCalls  int
}

func (s *stubRosterRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubRosterRepo) FindCaseByID(ctx context.Context, caseID uuid.UUID) (*models.Case, error) {
	if s.caseRecord == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.caseRecord, nil
}

func (s *stubRosterRepo) FindVehicleForUpdate(ctx context.Context, vehicleID uuid.UUID) (*models.Vehicle, error) {
	if s.vehicle == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.vehicle, nil
}

func (s *stubRosterRepo) HasActiveEntryForVehicle(ctx context.Context, caseID, vehicleID uuid.UUID) (bool, error) {
	return s.vehicleTaken, nil
}

func (s *stubRosterRepo) HasActiveEntryForDriver(ctx context.Context, caseID uuid.UUID, driverName string) (bool, error) {
	return s.driverTaken, nil
}

func (s *stubRosterRepo) ListActiveUses(ctx context.Context, vehicleID uuid.UUID, funeralDate time.Time, excludeCaseID uuid.UUID) ([]ActiveUse, error) {
	return s.activeUses, nil
}

func (s *stubRosterRepo) CreateEntry(ctx context.Context, entry *models.RosterEntry) (*models.RosterEntry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	s.createdEntry = entry
	return entry, nil
}

func (s *stubRosterRepo) FindEntry(ctx context.Context, entryID uuid.UUID) (*models.RosterEntry, error) {
	if s.entry == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.entry, nil
}

func (s *stubRosterRepo) UpdateEntryStatus(ctx context.Context, entryID uuid.UUID, status enums.RosterEntryStatus) error {
	s.updatedStatus = status
	return nil
}

func (s *stubRosterRepo) RefreshVehicleAvailability(ctx context.Context, vehicleID uuid.UUID) error {
	s.refreshCalls++
	return nil
}

func (s *stubRosterRepo) ListByCase(ctx context.Context, caseID uuid.UUID, params pagination.Params) (*RosterEntryList, error) {
	return &RosterEntryList{}, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func baseCase() *models.Case {
	funeralDate := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	funeralTime := "10:00"
	return &models.Case{
		ID:           uuid.New(),
		CaseNumber:   "THS-2025-001",
		DeceasedName: "A Dlamini",
		PlanName:     "Gold",
		Status:       enums.CaseStatusConfirmed,
		FuneralDate:  &funeralDate,
		FuneralTime:  &funeralTime,
	}
}

func TestAssignVehicleCaseNotFound(t *testing.T) {
	repo := &stubRosterRepo{vehicle: &models.Vehicle{ID: uuid.New()}}
	svc := newTestService(t, repo)

	_, err := svc.AssignVehicle(context.Background(), AssignVehicleInput{
		CaseID:    uuid.New(),
		VehicleID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAssignVehicleDuplicateVehicle(t *testing.T) {
	repo := &stubRosterRepo{
		caseRecord:   baseCase(),
		vehicle:      &models.Vehicle{ID: uuid.New(), Available: true},
		vehicleTaken: true,
	}
	svc := newTestService(t, repo)

	_, err := svc.AssignVehicle(context.Background(), AssignVehicleInput{
		CaseID:    repo.caseRecord.ID,
		VehicleID: repo.vehicle.ID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if repo.createdEntry != nil {
		t.Fatal("no entry may be persisted on a rejected assignment")
	}
	if repo.refreshCalls != 0 {
		t.Fatal("vehicle availability may not change on a rejected assignment")
	}
}

func TestAssignVehicleDuplicateDriver(t *testing.T) {
	repo := &stubRosterRepo{
		caseRecord:  baseCase(),
		vehicle:     &models.Vehicle{ID: uuid.New(), Available: true},
		driverTaken: true,
	}
	svc := newTestService(t, repo)

	_, err := svc.AssignVehicle(context.Background(), AssignVehicleInput{
		CaseID:     repo.caseRecord.ID,
		VehicleID:  repo.vehicle.ID,
		DriverName: "John Doe",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected duplicate driver conflict, got %v", err)
	}
}

func TestAssignVehiclePlaceholderDriverExempt(t *testing.T) {
	repo := &stubRosterRepo{
		caseRecord:  baseCase(),
		vehicle:     &models.Vehicle{ID: uuid.New(), Available: true},
		driverTaken: true, // would block any real driver name
	}
	svc := newTestService(t, repo)

	entry, err := svc.AssignVehicle(context.Background(), AssignVehicleInput{
		CaseID:     repo.caseRecord.ID,
		VehicleID:  repo.vehicle.ID,
		DriverName: "TBD",
	})
	if err != nil {
		t.Fatalf("expected success for placeholder driver, got %v", err)
	}
	if entry.Status != enums.RosterEntryStatusScheduled {
		t.Fatalf("expected scheduled entry, got %s", entry.Status)
	}
}

func TestAssignVehicleTimeConflict(t *testing.T) {
	repo := &stubRosterRepo{
		caseRecord: baseCase(),
		vehicle:    &models.Vehicle{ID: uuid.New(), Available: true},
		activeUses: []ActiveUse{
			{CaseNumber: "THS-2025-014", DeceasedName: "B Nkosi", FuneralTime: strPtr("09:00")},
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.AssignVehicle(context.Background(), AssignVehicleInput{
		CaseID:    repo.caseRecord.ID,
		VehicleID: repo.vehicle.ID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected time conflict, got %v", err)
	}

	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected structured details, got %T", typed.Details())
	}
	if details["conflicting_case_number"] != "THS-2025-014" {
		t.Fatalf("expected blocking case in details, got %v", details)
	}
	if repo.createdEntry != nil {
		t.Fatal("no entry may be persisted on a time conflict")
	}
}

func TestAssignVehicleSuccess(t *testing.T) {
	repo := &stubRosterRepo{
		caseRecord: baseCase(),
		vehicle:    &models.Vehicle{ID: uuid.New(), Available: true},
	}
	svc := newTestService(t, repo)

	role := enums.AssignmentRoleHearse
	entry, err := svc.AssignVehicle(context.Background(), AssignVehicleInput{
		CaseID:     repo.caseRecord.ID,
		VehicleID:  repo.vehicle.ID,
		DriverName: "John Doe",
		Role:       &role,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if entry.Status != enums.RosterEntryStatusScheduled {
		t.Fatalf("expected scheduled status, got %s", entry.Status)
	}
	// Funeral is 10:00; no delivery slot, so pickup is 90 minutes earlier.
	want := time.Date(2025, time.June, 10, 8, 30, 0, 0, time.UTC)
	if !entry.PickupTime.Equal(want) {
		t.Fatalf("expected pickup %v, got %v", want, entry.PickupTime)
	}
	if repo.refreshCalls != 1 {
		t.Fatalf("expected one availability refresh, got %d", repo.refreshCalls)
	}
}

func TestUpdateEntryStatusBackwardMoveRejected(t *testing.T) {
	repo := &stubRosterRepo{
		entry: &models.RosterEntry{
			ID:        uuid.New(),
			VehicleID: uuid.New(),
			Status:    enums.RosterEntryStatusOnRoute,
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.UpdateEntryStatus(context.Background(), repo.entry.ID, enums.RosterEntryStatusScheduled)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestUpdateEntryStatusCompletionFreesVehicle(t *testing.T) {
	repo := &stubRosterRepo{
		entry: &models.RosterEntry{
			ID:        uuid.New(),
			VehicleID: uuid.New(),
			Status:    enums.RosterEntryStatusOnRoute,
		},
	}
	svc := newTestService(t, repo)

	entry, err := svc.UpdateEntryStatus(context.Background(), repo.entry.ID, enums.RosterEntryStatusCompleted)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if entry.Status != enums.RosterEntryStatusCompleted {
		t.Fatalf("expected completed, got %s", entry.Status)
	}
	if repo.refreshCalls != 1 {
		t.Fatalf("expected availability refresh after completion, got %d", repo.refreshCalls)
	}
}

func TestUpdateEntryStatusSameStatusNoop(t *testing.T) {
	repo := &stubRosterRepo{
		entry: &models.RosterEntry{
			ID:     uuid.New(),
			Status: enums.RosterEntryStatusOnRoute,
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.UpdateEntryStatus(context.Background(), repo.entry.ID, enums.RosterEntryStatusOnRoute)
	if err != nil {
		t.Fatalf("expected idempotent no-op, got %v", err)
	}
	if repo.updatedStatus != "" {
		t.Fatal("no update may be written for a same-status request")
	}
}
