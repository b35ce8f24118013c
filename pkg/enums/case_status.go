package enums

import "fmt"

// CaseStatus tracks the lifecycle of a funeral-service case.
type CaseStatus string

const (
	CaseStatusIntake      CaseStatus = "intake"
	CaseStatusConfirmed   CaseStatus = "confirmed"
	CaseStatusPreparation CaseStatus = "preparation"
	CaseStatusScheduled   CaseStatus = "scheduled"
	CaseStatusInProgress  CaseStatus = "in_progress"
	CaseStatusCompleted   CaseStatus = "completed"
	CaseStatusArchived    CaseStatus = "archived"
	CaseStatusCancelled   CaseStatus = "cancelled"
)

var validCaseStatuses = []CaseStatus{
	CaseStatusIntake,
	CaseStatusConfirmed,
	CaseStatusPreparation,
	CaseStatusScheduled,
	CaseStatusInProgress,
	CaseStatusCompleted,
	CaseStatusArchived,
	CaseStatusCancelled,
}

// String implements fmt.Stringer.
func (c CaseStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CaseStatus.
func (c CaseStatus) IsValid() bool {
	for _, candidate := range validCaseStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions leave this status.
func (c CaseStatus) IsTerminal() bool {
	switch c {
	case CaseStatusCompleted, CaseStatusArchived, CaseStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseCaseStatus converts raw input into a CaseStatus.
func ParseCaseStatus(value string) (CaseStatus, error) {
	for _, candidate := range validCaseStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid case status %q", value)
}
