package repository

import (
	"context"
	"errors"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"gorm.io/gorm"
)

// ListRepository defines the interface for black/white list entries.
// Both lists share one table; listType selects the collection.
type ListRepository interface {
	Create(ctx context.Context, entry *models.ListEntry) error
	SoftDeleteFirstActive(ctx context.Context, listType, customerNo string) (*models.ListEntry, error)
	List(ctx context.Context, listType string, activeOnly bool) ([]models.ListEntry, error)
	CountActive(ctx context.Context, listType string) (int64, error)
}

type listRepository struct {
	db *gorm.DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) Create(ctx context.Context, entry *models.ListEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// SoftDeleteFirstActive marks the earliest Active entry with customerNo as
// Deleted. It returns nil, nil when there is no such entry.
func (r *listRepository) SoftDeleteFirstActive(ctx context.Context, listType, customerNo string) (*models.ListEntry, error) {
	var entry models.ListEntry
	err := r.db.WithContext(ctx).
		Where("list_type = ? AND customer_no = ? AND status = ?", listType, customerNo, models.ListEntryStatusActive).
		Order("id ASC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Model(&models.ListEntry{}).
		Where("id = ? AND status = ?", entry.ID, models.ListEntryStatusActive).
		Update("status", models.ListEntryStatusDeleted)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrStaleRecord
	}

	entry.Status = models.ListEntryStatusDeleted
	return &entry, nil
}

func (r *listRepository) List(ctx context.Context, listType string, activeOnly bool) ([]models.ListEntry, error) {
	var entries []models.ListEntry
	db := r.db.WithContext(ctx).Where("list_type = ?", listType)
	if activeOnly {
		db = db.Where("status = ?", models.ListEntryStatusActive)
	}
	err := db.Order("id ASC").Find(&entries).Error
	return entries, err
}

func (r *listRepository) CountActive(ctx context.Context, listType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ListEntry{}).
		Where("list_type = ? AND status = ?", listType, models.ListEntryStatusActive).
		Count(&count).Error
	return count, err
}
