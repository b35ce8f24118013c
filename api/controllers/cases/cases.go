package cases

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/thusongfs/thusong-backend/api/middleware"
	"github.com/thusongfs/thusong-backend/api/responses"
	"github.com/thusongfs/thusong-backend/api/validators"
	"github.com/thusongfs/thusong-backend/internal/audit"
	internalcases "github.com/thusongfs/thusong-backend/internal/cases"
	pkgerrors "github.com/thusongfs/thusong-backend/pkg/errors"
	"github.com/thusongfs/thusong-backend/pkg/logger"
)

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes,omitempty"`
}

type updateFuneralTimeRequest struct {
	FuneralTime string  `json:"funeral_time" validate:"required"`
	FuneralDate *string `json:"funeral_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateStatus moves a case through its lifecycle state machine.
func UpdateStatus(svc internalcases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID, err := parseCaseID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateStatus(r.Context(), internalcases.UpdateStatusInput{
			CaseID: caseID,
			Status: req.Status,
			Notes:  req.Notes,
			Actor:  actorFromContext(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// UpdateFuneralTime edits the funeral schedule while the case is in intake.
func UpdateFuneralTime(svc internalcases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID, err := parseCaseID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateFuneralTimeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := internalcases.UpdateFuneralTimeInput{
			CaseID:      caseID,
			FuneralTime: req.FuneralTime,
			Actor:       actorFromContext(r),
		}
		if req.FuneralDate != nil {
			date, parseErr := time.Parse("2006-01-02", *req.FuneralDate)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid funeral date"))
				return
			}
			input.FuneralDate = &date
		}

		updated, err := svc.UpdateFuneralTime(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

func parseCaseID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "caseId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "case id is required")
	}
	caseID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid case id")
	}
	return caseID, nil
}

func actorFromContext(r *http.Request) audit.ActorRef {
	ctx := r.Context()
	actor := audit.ActorRef{
		Email: middleware.EmailFromContext(ctx),
		Role:  middleware.RoleFromContext(ctx),
	}
	if id, err := uuid.Parse(middleware.UserIDFromContext(ctx)); err == nil {
		actor.UserID = id
	}
	return actor
}
