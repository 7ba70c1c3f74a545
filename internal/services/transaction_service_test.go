package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionService_CreateBatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	txs, err := env.svcs.Transaction.CreateBatch(ctx, maker, []CreateTransactionInput{
		{TxNo: "TX12340001", CustomerNo: "12345678901234", Name: "IVANOV IVAN PETROVICH", TxType: models.TxTypeInsert, OriginSource: "CUSTOMER"},
		{CustomerNo: "99999999999999", TxType: models.TxTypeDelete, OriginSource: "FIU"},
	})
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "TX12340001", txs[0].TxNo)
	assert.Equal(t, "INTERNAL", txs[0].ListGroup)
	assert.Equal(t, models.ListTypeBlack, txs[0].ListType)
	assert.Equal(t, models.TransactionStatusPendingApproval, txs[0].Status)
	assert.Equal(t, models.UserMaker, txs[0].CreatedUser)
	assert.Nil(t, txs[0].ApprovedUser)

	assert.Regexp(t, `^TX1234\d{4}$`, txs[1].TxNo)
	assert.Equal(t, "SANCTIONS", txs[1].ListGroup)

	recent, err := env.svcs.Audit.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	for _, entry := range recent {
		assert.Equal(t, models.AuditActionTransactionCreated, entry.Action)
		assert.Equal(t, models.RoleMaker, entry.Role)
	}
	details := []string{recent[0].Details, recent[1].Details}
	assert.Contains(t, details, "Created INSERT transaction for 12345678901234")
	assert.Contains(t, details, "Created DELETE transaction for 99999999999999")
}

func TestTransactionService_CreateBatchValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   models.Actor
		inputs  []CreateTransactionInput
		wantErr error
	}{
		{
			name:    "no rows selected",
			actor:   maker,
			inputs:  nil,
			wantErr: ErrNoRowsSelected,
		},
		{
			name:    "approver cannot create",
			actor:   approver,
			inputs:  []CreateTransactionInput{{CustomerNo: "1", TxType: models.TxTypeInsert}},
			wantErr: ErrForbidden,
		},
		{
			name:  "one invalid row rejects the batch",
			actor: maker,
			inputs: []CreateTransactionInput{
				{CustomerNo: "12345678901234", TxType: models.TxTypeInsert},
				{CustomerNo: "23456789012345", TxType: "UPDATE"},
			},
			wantErr: ErrValidation,
		},
		{
			name:    "missing tx type",
			actor:   maker,
			inputs:  []CreateTransactionInput{{CustomerNo: "1"}},
			wantErr: ErrValidation,
		},
		{
			name:    "tx number longer than its column",
			actor:   maker,
			inputs:  []CreateTransactionInput{{TxNo: strings.Repeat("9", 21), CustomerNo: "1", TxType: models.TxTypeInsert}},
			wantErr: ErrValidation,
		},
		{
			name:    "customer number longer than its column",
			actor:   maker,
			inputs:  []CreateTransactionInput{{CustomerNo: strings.Repeat("1", 51), TxType: models.TxTypeInsert}},
			wantErr: ErrValidation,
		},
		{
			name:    "unknown list type",
			actor:   maker,
			inputs:  []CreateTransactionInput{{CustomerNo: "1", TxType: models.TxTypeInsert, ListType: "GREY"}},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svcs.Transaction.CreateBatch(ctx, tt.actor, tt.inputs)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	all, err := env.svcs.Transaction.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTransactionService_ApproveInsert(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tx, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{
		CustomerNo: "45678901234567", Name: "KOZLOV KOZMA KOZIMOVICH", TxType: models.TxTypeInsert, OriginSource: "FIU",
	})
	require.NoError(t, err)

	approved, err := env.svcs.Transaction.Approve(ctx, approver, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedUser)
	assert.Equal(t, models.UserApprover, *approved.ApprovedUser)
	assert.NotNil(t, approved.ApprovedDate)

	active, err := env.svcs.List.ListActive(ctx, models.ListTypeBlack)
	require.NoError(t, err)
	require.Len(t, active, 4)
	added := active[3]
	assert.Equal(t, "45678901234567", added.CustomerNo)
	assert.Equal(t, "KOZLOVKOZMAKOZIMOVICH", added.SearchName)
	assert.Equal(t, "SANCTIONS", added.ListGroup)
	assert.Equal(t, models.UserMaker, added.CreatedUser)

	recent, err := env.svcs.Audit.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, models.AuditActionTransactionApproved, recent[0].Action)
	assert.Equal(t, models.TransactionStatusPendingApproval, recent[0].OldValue)
	assert.Equal(t, models.TransactionStatusApproved, recent[0].NewValue)
	assert.Equal(t, "Approved INSERT for 45678901234567", recent[0].Details)
	assert.Equal(t, tx.TxNo, recent[0].TxNo)

	// a decided transaction cannot be decided again
	_, err = env.svcs.Transaction.Approve(ctx, approver, tx.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 1, strings.Count(err.Error(), ErrInvalidState.Error()), err.Error())
	_, err = env.svcs.Transaction.Reject(ctx, approver, tx.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	active, err = env.svcs.List.ListActive(ctx, models.ListTypeBlack)
	require.NoError(t, err)
	assert.Len(t, active, 4)
}

func TestTransactionService_ApproveDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hit, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "88888888888888", TxType: models.TxTypeDelete, OriginSource: "NBKR"})
	require.NoError(t, err)
	miss, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "00000000000000", TxType: models.TxTypeDelete, OriginSource: "NBKR"})
	require.NoError(t, err)

	_, err = env.svcs.Transaction.Approve(ctx, approver, hit.ID)
	require.NoError(t, err)
	decided, err := env.svcs.Transaction.Approve(ctx, approver, miss.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusApproved, decided.Status)

	all, err := env.svcs.List.ListAll(ctx, models.ListTypeBlack)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, e := range all {
		if e.CustomerNo == "88888888888888" {
			assert.Equal(t, models.ListEntryStatusDeleted, e.Status)
		} else {
			assert.Equal(t, models.ListEntryStatusActive, e.Status)
		}
	}

	// no extra audit entry for the miss
	actions := env.auditActions(t)
	assert.Equal(t, 2, countOf(actions, models.AuditActionTransactionApproved))
}

func TestTransactionService_ApproveTargetsListType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	activeCount := func(listType string) int {
		t.Helper()
		entries, err := env.svcs.List.ListActive(ctx, listType)
		require.NoError(t, err)
		return len(entries)
	}

	// 11111111111111 is only on the white list
	blackDelete, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{
		CustomerNo: "11111111111111", TxType: models.TxTypeDelete, ListType: models.ListTypeBlack,
	})
	require.NoError(t, err)
	_, err = env.svcs.Transaction.Approve(ctx, approver, blackDelete.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, activeCount(models.ListTypeWhite))
	assert.Equal(t, 3, activeCount(models.ListTypeBlack))

	whiteInsert, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{
		CustomerNo: "99999999999999", Name: "CRIMINAL IVAN IVANOVICH", TxType: models.TxTypeInsert,
		OriginSource: "MANUAL", ListType: models.ListTypeWhite,
	})
	require.NoError(t, err)
	_, err = env.svcs.Transaction.Approve(ctx, approver, whiteInsert.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, activeCount(models.ListTypeWhite))
	assert.Equal(t, 3, activeCount(models.ListTypeBlack))

	// a WHITE delete removes the white entry and leaves the black one with the same number
	whiteDelete, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{
		CustomerNo: "99999999999999", TxType: models.TxTypeDelete, ListType: models.ListTypeWhite,
	})
	require.NoError(t, err)
	_, err = env.svcs.Transaction.Approve(ctx, approver, whiteDelete.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, activeCount(models.ListTypeWhite))
	assert.Equal(t, 3, activeCount(models.ListTypeBlack))

	white, err := env.svcs.List.ListAll(ctx, models.ListTypeWhite)
	require.NoError(t, err)
	require.Len(t, white, 2)
	assert.Equal(t, models.ListEntryStatusActive, white[0].Status)
	assert.Equal(t, models.ListEntryStatusDeleted, white[1].Status)
	assert.Equal(t, "MANUAL_ENTRY", white[1].ListGroup)
}

func TestTransactionService_RejectAndSearchLeaveListsAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rejected, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "12345678901234", Name: "IVANOV IVAN PETROVICH", TxType: models.TxTypeInsert})
	require.NoError(t, err)
	search, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "99999999999999", TxType: models.TxTypeSearch})
	require.NoError(t, err)

	tx, err := env.svcs.Transaction.Reject(ctx, approver, rejected.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusRejected, tx.Status)
	require.NotNil(t, tx.ApprovedUser)

	_, err = env.svcs.Transaction.Approve(ctx, approver, search.ID)
	require.NoError(t, err)

	all, err := env.svcs.List.ListAll(ctx, models.ListTypeBlack)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, e := range all {
		assert.True(t, e.IsActive())
	}

	recent, err := env.svcs.Audit.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Rejected INSERT for 12345678901234", recent[1].Details)
	assert.Equal(t, models.TransactionStatusRejected, recent[1].NewValue)
}

func TestTransactionService_DecideGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tx, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "1", TxType: models.TxTypeInsert})
	require.NoError(t, err)

	_, err = env.svcs.Transaction.Approve(ctx, maker, tx.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.svcs.Transaction.Approve(ctx, approver, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := env.svcs.Transaction.FindByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusPendingApproval, stored.Status)
}

func TestTransactionService_Visible(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	other := models.Actor{Username: "maker02", Role: models.RoleMaker}

	mine, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "1", TxType: models.TxTypeInsert})
	require.NoError(t, err)
	_, err = env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "2", TxType: models.TxTypeInsert})
	require.NoError(t, err)
	_, err = env.svcs.Transaction.Create(ctx, other, CreateTransactionInput{CustomerNo: "3", TxType: models.TxTypeInsert})
	require.NoError(t, err)

	_, err = env.svcs.Transaction.Reject(ctx, approver, mine.ID)
	require.NoError(t, err)

	makerView, err := env.svcs.Transaction.Visible(ctx, maker)
	require.NoError(t, err)
	assert.Len(t, makerView, 2)
	for _, tx := range makerView {
		assert.True(t, tx.VisibleTo(maker))
	}

	approverView, err := env.svcs.Transaction.Visible(ctx, approver)
	require.NoError(t, err)
	require.Len(t, approverView, 2)
	assert.Equal(t, "2", approverView[0].CustomerNo)
	assert.Equal(t, "3", approverView[1].CustomerNo)

	_, err = env.svcs.Transaction.Visible(ctx, models.Actor{Username: "x", Role: "Auditor"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTransactionService_StalePending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.svcs.Transaction.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	old, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "1", TxType: models.TxTypeInsert})
	require.NoError(t, err)
	env.svcs.Transaction.now = time.Now
	_, err = env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "2", TxType: models.TxTypeInsert})
	require.NoError(t, err)

	stale, err := env.svcs.Transaction.StalePending(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, old.ID, stale[0].ID)

	assert.NoError(t, env.svcs.Job.CheckStalePending(ctx))
}

func countOf(values []string, want string) int {
	n := 0
	for _, v := range values {
		if v == want {
			n++
		}
	}
	return n
}
