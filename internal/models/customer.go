package models

import (
	"time"
)

// Customer is read-only reference data used for name lookups
type Customer struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CustomerNo  string    `gorm:"size:50;uniqueIndex;not null" json:"customer_no"`
	Name        string    `gorm:"not null" json:"name"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	RiskLevel   string    `gorm:"size:10;not null;index" json:"risk_level"`
	Reason      string    `json:"reason,omitempty"`
	Source      string    `gorm:"size:20" json:"source,omitempty"`
	CreatedDate time.Time `json:"created_date"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// Customer type constants
const (
	CustomerTypeIndividual   = "individual"
	CustomerTypeOrganization = "organization"
)

// Risk level constants
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// IsValidRiskLevel reports whether level is low, medium or high
func IsValidRiskLevel(level string) bool {
	switch level {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return true
	}
	return false
}
