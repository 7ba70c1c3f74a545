package models

import (
	"time"
)

// AuditLogEntry represents one append-only audit trail record
type AuditLogEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:50;not null;index" json:"action"` // SYSTEM_INIT, LOGIN, TRANSACTION_APPROVED, ...
	User      string    `gorm:"column:username;size:100;not null;index" json:"user"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	Timestamp time.Time `gorm:"column:logged_at;not null;index" json:"timestamp"`
	TxNo      string    `gorm:"size:20;index" json:"tx_no,omitempty"`
	OldValue  string    `gorm:"size:50" json:"old_value,omitempty"`
	NewValue  string    `gorm:"size:50" json:"new_value,omitempty"`
	Details   string    `gorm:"type:text" json:"details,omitempty"`
}

// TableName specifies the table name for AuditLogEntry
func (AuditLogEntry) TableName() string {
	return "audit_log_entries"
}

// Audit action constants
const (
	AuditActionSystemInit          = "SYSTEM_INIT"
	AuditActionLogin               = "LOGIN"
	AuditActionLogout              = "LOGOUT"
	AuditActionTransactionCreated  = "TRANSACTION_CREATED"
	AuditActionTransactionApproved = "TRANSACTION_APPROVED"
	AuditActionTransactionRejected = "TRANSACTION_REJECTED"
	AuditActionImportIndividuals   = "IMPORT_INDIVIDUALS"
	AuditActionImportOrganizations = "IMPORT_ORGANIZATIONS"
)
