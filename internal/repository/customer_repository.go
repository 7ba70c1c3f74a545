package repository

import (
	"context"
	"fmt"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"gorm.io/gorm"
)

// CustomerRepository defines the interface for customer base access
type CustomerRepository interface {
	FindByNo(ctx context.Context, customerNo string) (*models.Customer, error)
	FindExisting(ctx context.Context, customerNos []string) (map[string]bool, error)
	List(ctx context.Context, riskLevel string) ([]models.Customer, error)
	CreateBatch(ctx context.Context, customers []models.Customer) error
	Count(ctx context.Context) (int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindByNo(ctx context.Context, customerNo string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("customer_no = ?", customerNo).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindExisting(ctx context.Context, customerNos []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(customerNos) == 0 {
		return existing, nil
	}

	var found []string
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("customer_no IN ?", customerNos).
		Pluck("customer_no", &found).Error
	if err != nil {
		return nil, err
	}
	for _, no := range found {
		existing[no] = true
	}
	return existing, nil
}

// List returns the customer base in insertion order, optionally filtered by risk level
func (r *customerRepository) List(ctx context.Context, riskLevel string) ([]models.Customer, error) {
	var customers []models.Customer
	db := r.db.WithContext(ctx)
	if riskLevel != "" {
		db = db.Where("risk_level = ?", riskLevel)
	}
	err := db.Order("id ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) CreateBatch(ctx context.Context, customers []models.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&customers).Error; err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("customer: %w", ErrDuplicateKey)
		}
		return err
	}
	return nil
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}
