package services

import (
	"context"
	"time"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/sjperalta/aml-lists-api/internal/repository"
)

// AuditService appends to and reads the audit trail
type AuditService struct {
	repo repository.AuditRepository
	now  func() time.Time
}

func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo, now: time.Now}
}

// AuditInput carries the caller-supplied fields of an audit entry
type AuditInput struct {
	Action   string
	User     string
	Role     string
	Details  string
	TxNo     string
	OldValue string
	NewValue string
}

// Record stamps and appends an audit entry
func (s *AuditService) Record(ctx context.Context, in AuditInput) (*models.AuditLogEntry, error) {
	entry := &models.AuditLogEntry{
		Action:    in.Action,
		User:      in.User,
		Role:      in.Role,
		Timestamp: s.now(),
		TxNo:      in.TxNo,
		OldValue:  in.OldValue,
		NewValue:  in.NewValue,
		Details:   in.Details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List retrieves audit entries newest first
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLogEntry, int64, error) {
	return s.repo.List(ctx, query)
}

// Recent returns the n newest entries
func (s *AuditService) Recent(ctx context.Context, n int) ([]models.AuditLogEntry, error) {
	return s.repo.Recent(ctx, n)
}
