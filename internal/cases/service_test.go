package cases

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thusongfs/thusong-backend/internal/audit"
	"github.com/thusongfs/thusong-backend/pkg/db/models"
	"github.com/thusongfs/thusong-backend/pkg/enums"
	pkgerrors "github.com/thusongfs/thusong-backend/pkg/errors"
	"github.com/thusongfs/thusong-backend/pkg/logger"
)

type stubCasesRepo struct {
	caseRecord    *models.Case
	activeEntries int64
	updatedStatus enums.CaseStatus
	cancelReason  *string
	funeralTime   string
	funeralDate   *time.Time
}

func (s *stubCasesRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubCasesRepo) FindByID(ctx context.Context, caseID uuid.UUID) (*models.Case, error) {
	if s.caseRecord == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.caseRecord, nil
}

func (s *stubCasesRepo) CountActiveEntries(ctx context.Context, caseID uuid.UUID) (int64, error) {
	return s.activeEntries, nil
}

func (s *stubCasesRepo) UpdateStatus(ctx context.Context, caseID uuid.UUID, status enums.CaseStatus, cancelReason *string) error {
	s.updatedStatus = status
	s.cancelReason = cancelReason
	return nil
}

func (s *stubCasesRepo) UpdateFuneralTime(ctx context.Context, caseID uuid.UUID, funeralTime string, funeralDate *time.Time) error {
	s.funeralTime = funeralTime
	s.funeralDate = funeralDate
	return nil
}

type stubRecorder struct {
	entries []audit.Entry
	err     error
}

func (s *stubRecorder) Record(ctx context.Context, entry audit.Entry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository, recorder audit.Recorder) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, stubTxRunner{}, recorder, logg)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func testActor() audit.ActorRef {
	return audit.ActorRef{UserID: uuid.New(), Email: "admin@thusongfs.co.za", Role: "admin"}
}

func TestUpdateStatusVehicleGateBlocks(t *testing.T) {
	repo := &stubCasesRepo{
		caseRecord: &models.Case{
			ID:         uuid.New(),
			CaseNumber: "THS-2025-001",
			PlanName:   "Gold",
			Status:     enums.CaseStatusConfirmed,
		},
		activeEntries: 1,
	}
	svc := newTestService(t, repo, &stubRecorder{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		CaseID: repo.caseRecord.ID,
		Status: "scheduled",
		Actor:  testActor(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected structured details, got %T", typed.Details())
	}
	if details["required_min_vehicles"] != 2 {
		t.Fatalf("expected required_min_vehicles=2, got %v", details["required_min_vehicles"])
	}
	if details["assigned_vehicles"] != int64(1) {
		t.Fatalf("expected assigned_vehicles=1, got %v", details["assigned_vehicles"])
	}
}

func TestUpdateStatusPremiumPlanNeedsThree(t *testing.T) {
	repo := &stubCasesRepo{
		caseRecord: &models.Case{
			ID:       uuid.New(),
			PlanName: "Premium Plus",
			Status:   enums.CaseStatusPreparation,
		},
		activeEntries: 2,
	}
	svc := newTestService(t, repo, &stubRecorder{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		CaseID: repo.caseRecord.ID,
		Status: "scheduled",
		Actor:  testActor(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for premium plan with 2 vehicles, got %v", err)
	}
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	repo := &stubCasesRepo{caseRecord: &models.Case{ID: uuid.New(), Status: enums.CaseStatusIntake}}
	svc := newTestService(t, repo, &stubRecorder{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		CaseID: repo.caseRecord.ID,
		Status: "misplaced",
		Actor:  testActor(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusCancelRequiresReason(t *testing.T) {
	repo := &stubCasesRepo{caseRecord: &models.Case{ID: uuid.New(), Status: enums.CaseStatusConfirmed}}
	svc := newTestService(t, repo, &stubRecorder{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		CaseID: repo.caseRecord.ID,
		Status: "cancelled",
		Notes:  "   ",
		Actor:  testActor(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty reason, got %v", err)
	}
}

func TestUpdateStatusCancelRecordsAudit(t *testing.T) {
	repo := &stubCasesRepo{caseRecord: &models.Case{ID: uuid.New(), Status: enums.CaseStatusConfirmed}}
	recorder := &stubRecorder{}
	svc := newTestService(t, repo, recorder)

	updated, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		CaseID: repo.caseRecord.ID,
		Status: "cancelled",
		Notes:  "family request",
		Actor:  testActor(),
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if updated.Status != enums.CaseStatusCancelled {
		t.Fatalf("expected cancelled, got %s", updated.Status)
	}
	if repo.cancelReason == nil || *repo.cancelReason != "family request" {
		t.Fatalf("expected persisted cancel reason, got %v", repo.cancelReason)
	}

	if len(recorder.entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(recorder.entries))
	}
	entry := recorder.entries[0]
	if entry.Action != enums.AuditActionCaseStatusChanged {
		t.Fatalf("unexpected audit action %s", entry.Action)
	}
	oldState := entry.OldState.(map[string]any)
	if oldState["status"] != enums.CaseStatusConfirmed {
		t.Fatalf("expected old status confirmed, got %v", oldState["status"])
	}
	newState := entry.NewState.(map[string]any)
	if newState["status"] != enums.CaseStatusCancelled || newState["notes"] != "family request" {
		t.Fatalf("unexpected new state %v", newState)
	}
}

func TestUpdateStatusSameStatusIsNoop(t *testing.T) {
	repo := &stubCasesRepo{caseRecord: &models.Case{ID: uuid.New(), Status: enums.CaseStatusConfirmed}}
	recorder := &stubRecorder{}
	svc := newTestService(t, repo, recorder)

	updated, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		CaseID: repo.caseRecord.ID,
		Status: "confirmed",
		Actor:  testActor(),
	})
	if err != nil {
		t.Fatalf("expected idempotent no-op, got %v", err)
	}
	if updated.Status != enums.CaseStatusConfirmed {
		t.Fatalf("unexpected status %s", updated.Status)
	}
	if repo.updatedStatus != "" {
		t.Fatal("no write may happen for a same-status request")
	}
	if len(recorder.entries) != 0 {
		t.Fatal("no audit entry may be recorded for a no-op")
	}
}

func TestUpdateStatusAuditFailureIsSwallowed(t *testing.T) {
	repo := &stubCasesRepo{caseRecord: &models.Case{ID: uuid.New(), Status: enums.CaseStatusIntake}}
	recorder := &stubRecorder{err: errors.New("audit store down")}
	svc := newTestService(t, repo, recorder)

	updated, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		CaseID: repo.caseRecord.ID,
		Status: "confirmed",
		Actor:  testActor(),
	})
	if err != nil {
		t.Fatalf("audit failure must never fail the request, got %v", err)
	}
	if updated.Status != enums.CaseStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}
}

func TestUpdateFuneralTimeLockedOutsideIntake(t *testing.T) {
	repo := &stubCasesRepo{caseRecord: &models.Case{ID: uuid.New(), Status: enums.CaseStatusConfirmed}}
	svc := newTestService(t, repo, &stubRecorder{})

	_, err := svc.UpdateFuneralTime(context.Background(), UpdateFuneralTimeInput{
		CaseID:      repo.caseRecord.ID,
		FuneralTime: "11:00",
		Actor:       testActor(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if !strings.Contains(typed.Message(), "confirmed") {
		t.Fatalf("message must name the current status, got %q", typed.Message())
	}
}

func TestUpdateFuneralTimeRejectsBadClock(t *testing.T) {
	repo := &stubCasesRepo{caseRecord: &models.Case{ID: uuid.New(), Status: enums.CaseStatusIntake}}
	svc := newTestService(t, repo, &stubRecorder{})

	for _, value := range []string{"", "   ", "25:00", "noon"} {
		_, err := svc.UpdateFuneralTime(context.Background(), UpdateFuneralTimeInput{
			CaseID:      repo.caseRecord.ID,
			FuneralTime: value,
			Actor:       testActor(),
		})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %q, got %v", value, err)
		}
	}
}

func TestUpdateFuneralTimeSuccess(t *testing.T) {
	repo := &stubCasesRepo{caseRecord: &models.Case{ID: uuid.New(), Status: enums.CaseStatusIntake}}
	recorder := &stubRecorder{}
	svc := newTestService(t, repo, recorder)

	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateFuneralTime(context.Background(), UpdateFuneralTimeInput{
		CaseID:      repo.caseRecord.ID,
		FuneralTime: "11:00",
		FuneralDate: &date,
		Actor:       testActor(),
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if updated.FuneralTime == nil || *updated.FuneralTime != "11:00" {
		t.Fatalf("expected funeral time 11:00, got %v", updated.FuneralTime)
	}
	if repo.funeralDate == nil || !repo.funeralDate.Equal(date) {
		t.Fatalf("expected funeral date persisted, got %v", repo.funeralDate)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != enums.AuditActionFuneralTimeUpdated {
		t.Fatalf("expected one funeral time audit entry, got %+v", recorder.entries)
	}
}
