package cases

import (
	"testing"

	"github.com/thusongfs/thusong-backend/pkg/enums"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from enums.CaseStatus
		to   enums.CaseStatus
		want bool
	}{
		{name: "forward one step", from: enums.CaseStatusIntake, to: enums.CaseStatusConfirmed, want: true},
		{name: "forward skipping states", from: enums.CaseStatusIntake, to: enums.CaseStatusScheduled, want: true},
		{name: "backward move", from: enums.CaseStatusScheduled, to: enums.CaseStatusConfirmed, want: false},
		{name: "cancel from confirmed", from: enums.CaseStatusConfirmed, to: enums.CaseStatusCancelled, want: true},
		{name: "archive from in_progress", from: enums.CaseStatusInProgress, to: enums.CaseStatusArchived, want: true},
		{name: "nothing leaves completed", from: enums.CaseStatusCompleted, to: enums.CaseStatusArchived, want: false},
		{name: "nothing leaves cancelled", from: enums.CaseStatusCancelled, to: enums.CaseStatusConfirmed, want: false},
		{name: "nothing leaves archived", from: enums.CaseStatusArchived, to: enums.CaseStatusIntake, want: false},
		{name: "complete from in_progress", from: enums.CaseStatusInProgress, to: enums.CaseStatusCompleted, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestMinimumVehicles(t *testing.T) {
	tests := []struct {
		plan string
		want int
	}{
		{plan: "Gold", want: 2},
		{plan: "", want: 2},
		{plan: "Premium", want: 3},
		{plan: "premium plus", want: 3},
		{plan: "Family Premium Package", want: 3},
	}

	for _, tc := range tests {
		if got := MinimumVehicles(tc.plan); got != tc.want {
			t.Fatalf("MinimumVehicles(%q) = %d, want %d", tc.plan, got, tc.want)
		}
	}
}

func TestRequiresVehicleGate(t *testing.T) {
	if !RequiresVehicleGate(enums.CaseStatusScheduled) {
		t.Fatal("scheduled must be gated on vehicle count")
	}
	if !RequiresVehicleGate(enums.CaseStatusInProgress) {
		t.Fatal("in_progress must be gated on vehicle count")
	}
	if RequiresVehicleGate(enums.CaseStatusConfirmed) {
		t.Fatal("confirmed must not be gated")
	}
}
