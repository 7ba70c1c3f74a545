package repository

import (
	"context"
	"time"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"gorm.io/gorm"
)

// TransactionRepository defines the interface for list transactions
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	FindAll(ctx context.Context) ([]models.Transaction, error)
	FindByCreator(ctx context.Context, username string) ([]models.Transaction, error)
	FindByStatus(ctx context.Context, status string) ([]models.Transaction, error)
	FindPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Transaction, error)
	SaveDecision(ctx context.Context, tx *models.Transaction, fromStatus string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) FindAll(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).Order("id ASC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) FindByCreator(ctx context.Context, username string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("created_user = ?", username).
		Order("id ASC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) FindByStatus(ctx context.Context, status string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) FindPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_date < ?", models.TransactionStatusPendingApproval, cutoff).
		Order("id ASC").
		Find(&txs).Error
	return txs, err
}

// SaveDecision writes the decided status and approver fields, but only if the
// stored row still has fromStatus. ErrStaleRecord means another decision won.
func (r *transactionRepository) SaveDecision(ctx context.Context, tx *models.Transaction, fromStatus string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND status = ?", tx.ID, fromStatus).
		Updates(map[string]interface{}{
			"status":        tx.Status,
			"approved_user": tx.ApprovedUser,
			"approved_date": tx.ApprovedDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleRecord
	}
	return nil
}

func (r *transactionRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
