package repository

import (
	"context"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"gorm.io/gorm"
)

// AuditRepository defines the interface for the append-only audit log
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
	List(ctx context.Context, query *ListQuery) ([]models.AuditLogEntry, int64, error)
	Recent(ctx context.Context, limit int) ([]models.AuditLogEntry, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns entries newest first. Filters: action, user.
func (r *auditRepository) List(ctx context.Context, query *ListQuery) ([]models.AuditLogEntry, int64, error) {
	var entries []models.AuditLogEntry
	var total int64

	db := r.db.WithContext(ctx).Model(&models.AuditLogEntry{})

	if action := query.Filters["action"]; action != "" {
		db = db.Where("action = ?", action)
	}
	if user := query.Filters["user"]; user != "" {
		db = db.Where("username = ?", user)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.paginate(db.Order("logged_at DESC, id DESC")).Find(&entries).Error
	return entries, total, err
}

func (r *auditRepository) Recent(ctx context.Context, limit int) ([]models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	err := r.db.WithContext(ctx).
		Order("logged_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
