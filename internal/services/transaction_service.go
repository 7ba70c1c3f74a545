package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
	"unicode/utf8"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/sjperalta/aml-lists-api/internal/repository"
	"github.com/sjperalta/aml-lists-api/internal/screening"
	"github.com/sjperalta/aml-lists-api/internal/statemachine"
	"github.com/sjperalta/aml-lists-api/pkg/logger"
	"gorm.io/gorm"
)

// TransactionService runs the maker/approver lifecycle of list transactions
type TransactionService struct {
	repos *repository.Repositories
	now   func() time.Time
}

func NewTransactionService(repos *repository.Repositories) *TransactionService {
	return &TransactionService{repos: repos, now: time.Now}
}

// CreateTransactionInput is one proposed change, typically a selected import row
type CreateTransactionInput struct {
	TxNo         string `json:"tx_no"`
	CustomerNo   string `json:"customer_no"`
	Name         string `json:"name"`
	TxType       string `json:"tx_type"`
	OriginSource string `json:"origin_source"`
	ListGroup    string `json:"list_group"`
	ListType     string `json:"list_type"`
}

// GenerateTxNo returns a display code of the form TX1234NNNN. Codes are not unique.
func GenerateTxNo() string {
	return fmt.Sprintf("TX1234%04d", rand.IntN(10000))
}

// Create submits a single transaction for approval
func (s *TransactionService) Create(ctx context.Context, actor models.Actor, in CreateTransactionInput) (*models.Transaction, error) {
	created, err := s.CreateBatch(ctx, actor, []CreateTransactionInput{in})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// CreateBatch submits every input for approval in one unit. Either all
// transactions and their TRANSACTION_CREATED entries are written, or none.
func (s *TransactionService) CreateBatch(ctx context.Context, actor models.Actor, inputs []CreateTransactionInput) ([]models.Transaction, error) {
	if actor.Role != models.RoleMaker {
		return nil, ErrForbidden
	}
	if len(inputs) == 0 {
		return nil, ErrNoRowsSelected
	}

	txs := make([]models.Transaction, 0, len(inputs))
	for i, in := range inputs {
		tx, err := s.build(actor, in)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txs = append(txs, *tx)
	}

	err := s.repos.WithinTransaction(ctx, func(r *repository.Repositories) error {
		audit := NewAuditService(r.Audit)
		for i := range txs {
			if err := r.Transaction.Create(ctx, &txs[i]); err != nil {
				return err
			}
			if _, err := audit.Record(ctx, AuditInput{
				Action:  models.AuditActionTransactionCreated,
				User:    actor.Username,
				Role:    actor.Role,
				TxNo:    txs[i].TxNo,
				Details: fmt.Sprintf("Created %s transaction for %s", txs[i].TxType, txs[i].CustomerNo),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transactions submitted for approval", "count", len(txs), "user", actor.Username)
	return txs, nil
}

func (s *TransactionService) build(actor models.Actor, in CreateTransactionInput) (*models.Transaction, error) {
	if !models.IsValidTxType(in.TxType) {
		return nil, fmt.Errorf("%w: unknown tx type %q", ErrValidation, in.TxType)
	}

	listType := in.ListType
	if listType == "" {
		listType = models.ListTypeBlack
	}
	if !models.IsValidListType(listType) {
		return nil, fmt.Errorf("%w: unknown list type %q", ErrValidation, listType)
	}

	if in.CustomerNo == "" && in.Name == "" {
		return nil, fmt.Errorf("%w: customer number or name is required", ErrValidation)
	}

	// Column sizes of list_transactions
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"tx_no", in.TxNo, 20},
		{"customer_no", in.CustomerNo, 50},
		{"origin_source", in.OriginSource, 20},
		{"list_group", in.ListGroup, 30},
	} {
		if utf8.RuneCountInString(f.value) > f.max {
			return nil, fmt.Errorf("%w: %s exceeds %d characters", ErrValidation, f.name, f.max)
		}
	}

	txNo := in.TxNo
	if txNo == "" {
		txNo = GenerateTxNo()
	}
	listGroup := in.ListGroup
	if listGroup == "" {
		listGroup = screening.ListGroupFor(in.OriginSource)
	}

	return &models.Transaction{
		TxNo:         txNo,
		CustomerNo:   in.CustomerNo,
		Name:         in.Name,
		TxType:       in.TxType,
		OriginSource: in.OriginSource,
		ListGroup:    listGroup,
		ListType:     listType,
		Status:       models.TransactionStatusPendingApproval,
		CreatedDate:  s.now(),
		CreatedUser:  actor.Username,
	}, nil
}

// FindByID gets a transaction by ID
func (s *TransactionService) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.repos.Transaction.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return tx, err
}

// Visible returns the actor's queue: a maker's own transactions in any
// status, or every pending transaction for an approver.
func (s *TransactionService) Visible(ctx context.Context, actor models.Actor) ([]models.Transaction, error) {
	switch actor.Role {
	case models.RoleMaker:
		return s.repos.Transaction.FindByCreator(ctx, actor.Username)
	case models.RoleApprover:
		return s.repos.Transaction.FindByStatus(ctx, models.TransactionStatusPendingApproval)
	}
	return nil, ErrForbidden
}

// All returns every transaction in creation order
func (s *TransactionService) All(ctx context.Context) ([]models.Transaction, error) {
	return s.repos.Transaction.FindAll(ctx)
}

// StalePending returns transactions still pending after olderThan
func (s *TransactionService) StalePending(ctx context.Context, olderThan time.Duration) ([]models.Transaction, error) {
	return s.repos.Transaction.FindPendingCreatedBefore(ctx, s.now().Add(-olderThan))
}

// Approve applies a pending transaction to its list and records the decision
func (s *TransactionService) Approve(ctx context.Context, actor models.Actor, id uint) (*models.Transaction, error) {
	return s.decide(ctx, actor, id, statemachine.EventApprove)
}

// Reject closes a pending transaction without touching any list
func (s *TransactionService) Reject(ctx context.Context, actor models.Actor, id uint) (*models.Transaction, error) {
	return s.decide(ctx, actor, id, statemachine.EventReject)
}

func (s *TransactionService) decide(ctx context.Context, actor models.Actor, id uint, event string) (*models.Transaction, error) {
	if actor.Role != models.RoleApprover {
		return nil, ErrForbidden
	}

	var decided *models.Transaction
	err := s.repos.WithinTransaction(ctx, func(r *repository.Repositories) error {
		tx, err := r.Transaction.FindByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		// Use FSM to validate and transition state
		machine := statemachine.NewTransactionFSM(tx)
		if event == statemachine.EventApprove {
			err = machine.Approve(ctx, actor.Username, s.now())
		} else {
			err = machine.Reject(ctx, actor.Username, s.now())
		}
		if err != nil {
			return err
		}

		if err := r.Transaction.SaveDecision(ctx, tx, models.TransactionStatusPendingApproval); err != nil {
			if errors.Is(err, repository.ErrStaleRecord) {
				return fmt.Errorf("%s was decided concurrently: %w", tx.TxNo, ErrInvalidState)
			}
			return err
		}

		action := models.AuditActionTransactionRejected
		details := fmt.Sprintf("Rejected %s for %s", tx.TxType, tx.CustomerNo)
		if event == statemachine.EventApprove {
			if err := s.apply(ctx, NewListService(r.List), tx); err != nil {
				return err
			}
			action = models.AuditActionTransactionApproved
			details = fmt.Sprintf("Approved %s for %s", tx.TxType, tx.CustomerNo)
		}

		if _, err := NewAuditService(r.Audit).Record(ctx, AuditInput{
			Action:   action,
			User:     actor.Username,
			Role:     actor.Role,
			TxNo:     tx.TxNo,
			OldValue: models.TransactionStatusPendingApproval,
			NewValue: tx.Status,
			Details:  details,
		}); err != nil {
			return err
		}

		decided = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction decided", "tx_no", decided.TxNo, "status", decided.Status, "approver", actor.Username)
	return decided, nil
}

// apply performs the list mutation an approved transaction stands for
func (s *TransactionService) apply(ctx context.Context, lists *ListService, tx *models.Transaction) error {
	switch tx.TxType {
	case models.TxTypeInsert:
		_, err := lists.AddEntry(ctx, tx.ListType, models.ListEntry{
			CustomerNo:   tx.CustomerNo,
			Name:         tx.Name,
			SearchName:   screening.Normalize(tx.Name),
			OriginSource: tx.OriginSource,
			ListGroup:    tx.ListGroup,
			CreatedUser:  tx.CreatedUser,
		})
		return err
	case models.TxTypeDelete:
		deleted, err := lists.SoftDelete(ctx, tx.ListType, tx.CustomerNo)
		if err != nil {
			return err
		}
		if !deleted {
			logger.Warn("Approved DELETE matched no active entry",
				"tx_no", tx.TxNo, "customer_no", tx.CustomerNo, "list_type", tx.ListType)
		}
	}
	// SEARCH changes no list
	return nil
}
