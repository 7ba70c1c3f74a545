package services

import (
	"context"

	"github.com/sjperalta/aml-lists-api/internal/database"
	"github.com/sjperalta/aml-lists-api/pkg/logger"
	"gorm.io/gorm"
)

// SeedService loads and restores the fixed demo dataset
type SeedService struct {
	db *gorm.DB
}

func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{db: db}
}

// InitializeIfEmpty seeds every collection that has no rows yet
func (s *SeedService) InitializeIfEmpty(ctx context.Context) error {
	summary, err := database.InitializeIfEmpty(ctx, s.db)
	if err != nil {
		return err
	}
	logger.Info("Seed check completed",
		"customers", summary.Customers,
		"black_list", summary.BlackList,
		"white_list", summary.WhiteList,
		"audit_log", summary.AuditLog,
	)
	return nil
}

// Reset discards all data, transactions and audit history included, and
// reloads the seed dataset
func (s *SeedService) Reset(ctx context.Context) error {
	if err := database.Reset(ctx, s.db); err != nil {
		return err
	}
	logger.Warn("Store reset to seed dataset")
	return nil
}
