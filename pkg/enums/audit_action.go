package enums

// AuditAction labels entries in the append-only audit trail.
type AuditAction string

const (
	AuditActionCaseStatusChanged  AuditAction = "case_status_changed"
	AuditActionFuneralTimeUpdated AuditAction = "funeral_time_updated"
)
