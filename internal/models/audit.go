package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions. The action column is free-form text; these cover every
// instrumented code path.
const (
	AuditCreate   = "CREATE"
	AuditUpdate   = "UPDATE"
	AuditDelete   = "DELETE"
	AuditAssign   = "ASSIGN"
	AuditUnassign = "UNASSIGN"
	AuditTransfer = "TRANSFER"
	AuditApprove  = "APPROVE"
	AuditReject   = "REJECT"
)

const (
	ResourceEquipment = "EQUIPMENT"
	ResourceFurniture = "FURNITURE"
	ResourceUser      = "USER"
)

// AuditEntry is an append-only record of an administrative action. Actor
// fields are value-copied at write time so the entry stays historically
// accurate if the account is later edited or deleted. No code path updates
// or deletes a row once written.
type AuditEntry struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string `gorm:"not null;index:idx_audit_user_ts,priority:1" json:"user_id"`
	UserEmail string `gorm:"not null" json:"user_email"`
	UserRole  string `gorm:"not null" json:"user_role"`

	Action       string  `gorm:"not null;index" json:"action"`
	ResourceType string  `gorm:"not null;index:idx_audit_resource,priority:1" json:"resource_type"`
	ResourceID   string  `gorm:"not null;index:idx_audit_resource,priority:2" json:"resource_id"`
	ResourceName *string `json:"resource_name,omitempty"`

	Changes   datatypes.JSONMap `json:"changes"`
	OldValues datatypes.JSONMap `json:"old_values,omitempty"`
	NewValues datatypes.JSONMap `json:"new_values,omitempty"`

	IPAddress *string `json:"ip_address,omitempty"`
	UserAgent *string `json:"user_agent,omitempty"`
	Notes     *string `json:"notes,omitempty"`

	Timestamp time.Time `gorm:"not null;index;index:idx_audit_user_ts,priority:2" json:"timestamp"`
}

func (AuditEntry) TableName() string { return "audit_logs" }
