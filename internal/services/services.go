package services

import (
	"time"

	"github.com/sjperalta/aml-lists-api/internal/config"
	"github.com/sjperalta/aml-lists-api/internal/jobs"
	"github.com/sjperalta/aml-lists-api/internal/repository"
	"github.com/sjperalta/aml-lists-api/internal/storage"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Auth        *AuthService
	Audit       *AuditService
	List        *ListService
	Transaction *TransactionService
	Screening   *ScreeningService
	Import      *ImportService
	Customer    *CustomerService
	Export      *ExportService
	Dashboard   *DashboardService
	Seed        *SeedService
	Job         *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, storage *storage.LocalStorage, cfg *config.Config, db *gorm.DB) *Services {
	auditSvc := NewAuditService(repos.Audit)
	listSvc := NewListService(repos.List)
	transactionSvc := NewTransactionService(repos)
	screeningSvc := NewScreeningService(repos.List)
	customerSvc := NewCustomerService(repos)

	return &Services{
		Auth:        NewAuthService(auditSvc, cfg),
		Audit:       auditSvc,
		List:        listSvc,
		Transaction: transactionSvc,
		Screening:   screeningSvc,
		Import:      NewImportService(repos.Customer, screeningSvc, storage),
		Customer:    customerSvc,
		Export:      NewExportService(listSvc, customerSvc, transactionSvc, auditSvc),
		Dashboard:   NewDashboardService(repos, auditSvc),
		Seed:        NewSeedService(db),
		Job:         NewJobService(worker, transactionSvc, time.Duration(cfg.StalePendingHours)*time.Hour),
	}
}
