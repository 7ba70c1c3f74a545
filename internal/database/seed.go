package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"gorm.io/gorm"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedCustomers returns the fixed customer base
func SeedCustomers() []models.Customer {
	return []models.Customer{
		{CustomerNo: "12345678901234", Name: "IVANOV IVAN PETROVICH", Type: models.CustomerTypeIndividual, RiskLevel: models.RiskLevelLow, Source: "BANK", CreatedDate: date("2024-01-15")},
		{CustomerNo: "23456789012345", Name: "PETROV PETR IVANOVICH", Type: models.CustomerTypeIndividual, RiskLevel: models.RiskLevelMedium, Source: "BANK", CreatedDate: date("2024-02-20")},
		{CustomerNo: "34567890123456", Name: "SIDOROV SIDR SIDOROVICH", Type: models.CustomerTypeIndividual, RiskLevel: models.RiskLevelLow, Source: "BANK", CreatedDate: date("2024-03-10")},
		{CustomerNo: "45678901234567", Name: "KOZLOV KOZMA KOZIMOVICH", Type: models.CustomerTypeIndividual, RiskLevel: models.RiskLevelHigh, Reason: "PEP", Source: "FIU", CreatedDate: date("2024-04-05")},
		{CustomerNo: "56789012345678", Name: "SMIRNOV SMIRNOV SMIRNOVOVICH", Type: models.CustomerTypeIndividual, RiskLevel: models.RiskLevelLow, Source: "BANK", CreatedDate: date("2024-05-12")},
		{CustomerNo: "67890123456789", Name: "KUZNETSOV KUZMA KUZMICH", Type: models.CustomerTypeIndividual, RiskLevel: models.RiskLevelMedium, Source: "BANK", CreatedDate: date("2024-06-18")},
		{CustomerNo: "78901234567890", Name: "POPOV POPOV POPOVICH", Type: models.CustomerTypeIndividual, RiskLevel: models.RiskLevelLow, Source: "BANK", CreatedDate: date("2024-07-22")},
		{CustomerNo: "89012345678901", Name: "VASILEV VASIL VASILIEVICH", Type: models.CustomerTypeIndividual, RiskLevel: models.RiskLevelHigh, Reason: "Sanctions", Source: "NBKR", CreatedDate: date("2024-08-30")},
		{CustomerNo: "90123456789012", Name: "FEDOROV FEDOR FEDOROVICH", Type: models.CustomerTypeIndividual, RiskLevel: models.RiskLevelLow, Source: "BANK", CreatedDate: date("2024-09-14")},
		{CustomerNo: "01234567890123", Name: "MIKHAILOV MIKHAIL MIKHAILOVICH", Type: models.CustomerTypeIndividual, RiskLevel: models.RiskLevelMedium, Source: "BANK", CreatedDate: date("2024-10-25")},
		{CustomerNo: "BIN1234567890", Name: "OOO ALPHA COMPANY", Type: models.CustomerTypeOrganization, RiskLevel: models.RiskLevelLow, Source: "BANK", CreatedDate: date("2024-01-20")},
		{CustomerNo: "BIN2345678901", Name: "ZAO BETA HOLDINGS", Type: models.CustomerTypeOrganization, RiskLevel: models.RiskLevelMedium, Source: "BANK", CreatedDate: date("2024-02-15")},
		{CustomerNo: "BIN3456789012", Name: "TOO GAMMA TRADE", Type: models.CustomerTypeOrganization, RiskLevel: models.RiskLevelHigh, Reason: "Shell Company", Source: "FIU", CreatedDate: date("2024-03-28")},
	}
}

// SeedBlackList returns the initial black list. List groups are the seeded
// values and intentionally do not all follow the origin source mapping.
func SeedBlackList() []models.ListEntry {
	return []models.ListEntry{
		{ListType: models.ListTypeBlack, CustomerNo: "99999999999999", Name: "CRIMINAL IVAN IVANOVICH", SearchName: "CRIMINALIVANIVANOVICH", OriginSource: "FIU", ListGroup: "SANCTIONS", CreatedDate: date("2024-01-10"), CreatedUser: models.UserSystem, Status: models.ListEntryStatusActive},
		{ListType: models.ListTypeBlack, CustomerNo: "88888888888888", Name: "TERRORIST AHMED ALI", SearchName: "TERRORISTAHMEDALI", OriginSource: "NBKR", ListGroup: "TERRORISM", CreatedDate: date("2024-02-15"), CreatedUser: models.UserSystem, Status: models.ListEntryStatusActive},
		{ListType: models.ListTypeBlack, CustomerNo: "77777777777777", Name: "FRAUD FEDOR FEDOROVICH", SearchName: "FRAUDFEDORFEDOROVICH", OriginSource: "COURT", ListGroup: "FRAUD", CreatedDate: date("2024-03-20"), CreatedUser: models.UserMaker, Status: models.ListEntryStatusActive},
	}
}

// SeedWhiteList returns the initial white list
func SeedWhiteList() []models.ListEntry {
	return []models.ListEntry{
		{ListType: models.ListTypeWhite, CustomerNo: "11111111111111", Name: "VIP CLIENT PREMIUM", SearchName: "VIPCLIENTPREMIUM", OriginSource: "MANUAL", ListGroup: "VIP", CreatedDate: date("2024-01-05"), CreatedUser: models.UserApprover, Status: models.ListEntryStatusActive},
	}
}

// SeedAuditLog returns the single SYSTEM_INIT entry
func SeedAuditLog() []models.AuditLogEntry {
	return []models.AuditLogEntry{
		{
			Action:    models.AuditActionSystemInit,
			User:      models.UserSystem,
			Role:      models.RoleMaker,
			Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Details:   "System initialized with default data",
		},
	}
}

// SeedSummary reports which collections were written by InitializeIfEmpty
type SeedSummary struct {
	Customers bool `json:"customers"`
	BlackList bool `json:"black_list"`
	WhiteList bool `json:"white_list"`
	AuditLog  bool `json:"audit_log"`
}

// InitializeIfEmpty seeds each collection that holds no rows yet.
// Transactions start empty and are never seeded.
func InitializeIfEmpty(ctx context.Context, db *gorm.DB) (SeedSummary, error) {
	var summary SeedSummary

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if summary.Customers, err = seedIfEmpty(tx.Model(&models.Customer{}), SeedCustomers()); err != nil {
			return err
		}
		if summary.BlackList, err = seedIfEmpty(tx.Model(&models.ListEntry{}).Where("list_type = ?", models.ListTypeBlack), SeedBlackList()); err != nil {
			return err
		}
		if summary.WhiteList, err = seedIfEmpty(tx.Model(&models.ListEntry{}).Where("list_type = ?", models.ListTypeWhite), SeedWhiteList()); err != nil {
			return err
		}
		if summary.AuditLog, err = seedIfEmpty(tx.Model(&models.AuditLogEntry{}), SeedAuditLog()); err != nil {
			return err
		}
		return nil
	})

	return summary, err
}

func seedIfEmpty[T any](scope *gorm.DB, rows []T) (bool, error) {
	var count int64
	if err := scope.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count rows: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if err := scope.Session(&gorm.Session{NewDB: true}).Create(&rows).Error; err != nil {
		return false, fmt.Errorf("failed to seed rows: %w", err)
	}
	return true, nil
}

// Reset discards every row of every collection and restores the seed dataset
func Reset(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.AuditLogEntry{}, &models.Transaction{}, &models.ListEntry{}, &models.Customer{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}

		customers := SeedCustomers()
		lists := append(SeedBlackList(), SeedWhiteList()...)
		audit := SeedAuditLog()

		if err := tx.Create(&customers).Error; err != nil {
			return fmt.Errorf("failed to seed customers: %w", err)
		}
		if err := tx.Create(&lists).Error; err != nil {
			return fmt.Errorf("failed to seed lists: %w", err)
		}
		if err := tx.Create(&audit).Error; err != nil {
			return fmt.Errorf("failed to seed audit log: %w", err)
		}
		return nil
	})
}
