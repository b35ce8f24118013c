package roster

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/thusongfs/thusong-backend/api/responses"
	"github.com/thusongfs/thusong-backend/api/validators"
	internalroster "github.com/thusongfs/thusong-backend/internal/roster"
	"github.com/thusongfs/thusong-backend/pkg/enums"
	pkgerrors "github.com/thusongfs/thusong-backend/pkg/errors"
	"github.com/thusongfs/thusong-backend/pkg/logger"
	"github.com/thusongfs/thusong-backend/pkg/pagination"
)

type assignRequest struct {
	VehicleID  string  `json:"vehicle_id" validate:"required,uuid"`
	DriverName string  `json:"driver_name,omitempty"`
	PickupTime *string `json:"pickup_time,omitempty"`
	Role       *string `json:"role,omitempty"`
}

type entryStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Assign puts a vehicle (and optionally a driver) on a case's roster.
func Assign(svc internalroster.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID, err := parseCaseID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req assignRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicleID, err := uuid.Parse(req.VehicleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle id"))
			return
		}

		input := internalroster.AssignVehicleInput{
			CaseID:     caseID,
			VehicleID:  vehicleID,
			DriverName: req.DriverName,
		}

		if req.PickupTime != nil {
			pickup, parseErr := time.Parse(time.RFC3339, *req.PickupTime)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid pickup time"))
				return
			}
			input.PickupTime = &pickup
		}

		if req.Role != nil && strings.TrimSpace(*req.Role) != "" {
			role, parseErr := enums.ParseAssignmentRole(strings.TrimSpace(*req.Role))
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid assignment role"))
				return
			}
			input.Role = &role
		}

		entry, err := svc.AssignVehicle(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// List returns the case's roster entries, newest first.
func List(svc internalroster.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID, err := parseCaseID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListRoster(r.Context(), caseID, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// UpdateEntryStatus progresses a roster entry towards completion.
func UpdateEntryStatus(svc internalroster.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawEntryID := strings.TrimSpace(chi.URLParam(r, "entryId"))
		if rawEntryID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "entry id is required"))
			return
		}
		entryID, err := uuid.Parse(rawEntryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid entry id"))
			return
		}

		var req entryStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseRosterEntryStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid roster entry status"))
			return
		}

		entry, err := svc.UpdateEntryStatus(r.Context(), entryID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entry)
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
