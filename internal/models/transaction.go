package models

import (
	"time"
)

// Transaction is a proposed change to a list awaiting an approver's decision
type Transaction struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TxNo         string     `gorm:"size:20;not null;index" json:"tx_no"` // display code, not unique
	CustomerNo   string     `gorm:"size:50;index" json:"customer_no"`
	Name         string     `json:"name"`
	TxType       string     `gorm:"size:10;not null" json:"tx_type"`
	OriginSource string     `gorm:"size:20" json:"origin_source"`
	ListGroup    string     `gorm:"size:30" json:"list_group"`
	ListType     string     `gorm:"size:10;not null" json:"list_type"`
	Status       string     `gorm:"size:20;not null;index" json:"status"`
	CreatedDate  time.Time  `gorm:"not null" json:"created_date"`
	CreatedUser  string     `gorm:"size:100;not null;index" json:"created_user"`
	ApprovedDate *time.Time `json:"approved_date,omitempty"`
	ApprovedUser *string    `gorm:"size:100" json:"approved_user,omitempty"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "list_transactions"
}

// Transaction status constants. NEW is part of the domain but no transition reaches it.
const (
	TransactionStatusNew             = "NEW"
	TransactionStatusPendingApproval = "PENDING_APPROVAL"
	TransactionStatusApproved        = "APPROVED"
	TransactionStatusRejected        = "REJECTED"
)

// Transaction type constants
const (
	TxTypeInsert = "INSERT"
	TxTypeDelete = "DELETE"
	TxTypeSearch = "SEARCH"
)

// IsValidTxType reports whether t is INSERT, DELETE or SEARCH
func IsValidTxType(t string) bool {
	switch t {
	case TxTypeInsert, TxTypeDelete, TxTypeSearch:
		return true
	}
	return false
}

// MayApprove returns true if the transaction can be approved
func (t *Transaction) MayApprove() bool {
	return t.Status == TransactionStatusPendingApproval
}

// MayReject returns true if the transaction can be rejected
func (t *Transaction) MayReject() bool {
	return t.Status == TransactionStatusPendingApproval
}

// IsDecided returns true once an approver has approved or rejected the transaction
func (t *Transaction) IsDecided() bool {
	return t.Status == TransactionStatusApproved || t.Status == TransactionStatusRejected
}

// VisibleTo applies the queue visibility rule: makers see their own
// transactions, approvers see only the pending queue.
func (t *Transaction) VisibleTo(actor Actor) bool {
	switch actor.Role {
	case RoleMaker:
		return t.CreatedUser == actor.Username
	case RoleApprover:
		return t.Status == TransactionStatusPendingApproval
	}
	return false
}
