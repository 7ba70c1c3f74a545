package models

import (
	"time"
)

// ListEntry is a black-list or white-list record. Both lists share one shape;
// ListType decides which collection the entry belongs to.
type ListEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ListType     string    `gorm:"size:10;not null;index" json:"list_type"`
	CustomerNo   string    `gorm:"size:50;index" json:"customer_no"`
	Name         string    `gorm:"not null" json:"name"`
	SearchName   string    `gorm:"index" json:"search_name"`
	OriginSource string    `gorm:"size:20" json:"origin_source"`
	ListGroup    string    `gorm:"size:30" json:"list_group"`
	CreatedDate  time.Time `json:"created_date"`
	CreatedUser  string    `gorm:"size:100" json:"created_user"`
	Status       string    `gorm:"size:10;not null;index" json:"status"`
}

// TableName specifies the table name for ListEntry
func (ListEntry) TableName() string {
	return "list_entries"
}

// List type constants
const (
	ListTypeBlack = "BLACK"
	ListTypeWhite = "WHITE"
)

// List entry status constants
const (
	ListEntryStatusActive  = "Active"
	ListEntryStatusDeleted = "Deleted"
)

// IsValidListType reports whether t is BLACK or WHITE
func IsValidListType(t string) bool {
	return t == ListTypeBlack || t == ListTypeWhite
}

// IsActive returns true if the entry has not been soft-deleted
func (e *ListEntry) IsActive() bool {
	return e.Status == ListEntryStatusActive
}
