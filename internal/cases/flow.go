package cases

import (
	"regexp"

	"github.com/thusongfs/thusong-backend/pkg/enums"
)

// chainRank orders the main lifecycle chain. Archived and cancelled sit
// outside the chain as terminal branches.
var chainRank = map[enums.CaseStatus]int{
	enums.CaseStatusIntake:      0,
	enums.CaseStatusConfirmed:   1,
	enums.CaseStatusPreparation: 2,
	enums.CaseStatusScheduled:   3,
	enums.CaseStatusInProgress:  4,
	enums.CaseStatusCompleted:   5,
}

var premiumPlanRe = regexp.MustCompile(`(?i)premium`)

// CanTransition reports whether a case may move from one status to another.
// Forward moves along the chain are allowed, skipping intermediate states.
// Archived and cancelled are reachable from any non-completed state. Nothing
// leaves a terminal status. Same-status moves are handled by the caller as
// idempotent no-ops and are not legal transitions here.
func CanTransition(from, to enums.CaseStatus) bool {
	if from.IsTerminal() {
		return false
	}
	switch to {
	case enums.CaseStatusArchived, enums.CaseStatusCancelled:
		return true
	}

	fromRank, ok := chainRank[from]
	if !ok {
		return false
	}
	toRank, ok := chainRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// MinimumVehicles returns how many active roster entries a case needs before
// it may move to scheduled or in_progress.
func MinimumVehicles(planName string) int {
	if premiumPlanRe.MatchString(planName) {
		return 3
	}
	return 2
}

// RequiresVehicleGate reports whether a target status is gated on the
// minimum active roster count.
func RequiresVehicleGate(status enums.CaseStatus) bool {
	return status == enums.CaseStatusScheduled || status == enums.CaseStatusInProgress
}
