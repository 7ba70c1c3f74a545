package services

import (
	"context"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/sjperalta/aml-lists-api/internal/repository"
)

// RecentActivityLimit is the number of audit entries shown on the dashboard
const RecentActivityLimit = 5

// DashboardStats is the overview shown after login
type DashboardStats struct {
	Customers            int64                  `json:"customers"`
	ActiveBlackList      int64                  `json:"active_black_list"`
	ActiveWhiteList      int64                  `json:"active_white_list"`
	PendingTransactions  int64                  `json:"pending_transactions"`
	ApprovedTransactions int64                  `json:"approved_transactions"`
	RejectedTransactions int64                  `json:"rejected_transactions"`
	RecentActivity       []models.AuditLogEntry `json:"recent_activity"`
}

type DashboardService struct {
	repos    *repository.Repositories
	auditSvc *AuditService
}

func NewDashboardService(repos *repository.Repositories, auditSvc *AuditService) *DashboardService {
	return &DashboardService{repos: repos, auditSvc: auditSvc}
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.Customers, err = s.repos.Customer.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveBlackList, err = s.repos.List.CountActive(ctx, models.ListTypeBlack); err != nil {
		return nil, err
	}
	if stats.ActiveWhiteList, err = s.repos.List.CountActive(ctx, models.ListTypeWhite); err != nil {
		return nil, err
	}

	counts, err := s.repos.Transaction.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.PendingTransactions = counts[models.TransactionStatusPendingApproval]
	stats.ApprovedTransactions = counts[models.TransactionStatusApproved]
	stats.RejectedTransactions = counts[models.TransactionStatusRejected]

	if stats.RecentActivity, err = s.auditSvc.Recent(ctx, RecentActivityLimit); err != nil {
		return nil, err
	}
	return stats, nil
}
