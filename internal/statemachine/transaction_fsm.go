package statemachine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"github.com/sjperalta/aml-lists-api/internal/models"
)

// Transaction lifecycle events
const (
	EventApprove = "approve"
	EventReject  = "reject"
)

// ErrNotPending is returned for any transition attempted outside PENDING_APPROVAL
var ErrNotPending = errors.New("transaction not in pending state")

// TransactionFSM wraps a list transaction with its state machine
type TransactionFSM struct {
	tx  *models.Transaction
	fsm *fsm.FSM
}

// NewTransactionFSM creates a new transaction state machine.
// NEW has no outgoing events; APPROVED and REJECTED are terminal.
func NewTransactionFSM(tx *models.Transaction) *TransactionFSM {
	tfsm := &TransactionFSM{
		tx: tx,
	}

	tfsm.fsm = fsm.NewFSM(
		tx.Status,
		fsm.Events{
			// pending → approved
			{Name: EventApprove, Src: []string{models.TransactionStatusPendingApproval}, Dst: models.TransactionStatusApproved},

			// pending → rejected
			{Name: EventReject, Src: []string{models.TransactionStatusPendingApproval}, Dst: models.TransactionStatusRejected},
		},
		fsm.Callbacks{},
	)

	return tfsm
}

// Approve transitions the transaction to approved and stamps the approver
func (t *TransactionFSM) Approve(ctx context.Context, approver string, at time.Time) error {
	if !t.tx.MayApprove() {
		return fmt.Errorf("cannot approve %s (%s): %w", t.tx.TxNo, t.tx.Status, ErrNotPending)
	}
	return t.decide(ctx, EventApprove, approver, at)
}

// Reject transitions the transaction to rejected and stamps the approver
func (t *TransactionFSM) Reject(ctx context.Context, approver string, at time.Time) error {
	if !t.tx.MayReject() {
		return fmt.Errorf("cannot reject %s (%s): %w", t.tx.TxNo, t.tx.Status, ErrNotPending)
	}
	return t.decide(ctx, EventReject, approver, at)
}

func (t *TransactionFSM) decide(ctx context.Context, event, approver string, at time.Time) error {
	if err := t.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("failed to %s transaction: %w", event, ErrNotPending)
	}

	t.tx.Status = t.fsm.Current()
	t.tx.ApprovedUser = &approver
	t.tx.ApprovedDate = &at
	return nil
}

// Current returns the current state
func (t *TransactionFSM) Current() string {
	return t.fsm.Current()
}

// Can checks if a transition is possible
func (t *TransactionFSM) Can(event string) bool {
	return t.fsm.Can(event)
}
