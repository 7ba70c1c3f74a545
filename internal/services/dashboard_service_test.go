package services

import (
	"context"
	"testing"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := env.svcs.Auth.Login(ctx, models.RoleMaker)
		require.NoError(t, err)
	}
	tx, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "99999999999999", TxType: models.TxTypeDelete})
	require.NoError(t, err)
	_, err = env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "1", TxType: models.TxTypeInsert})
	require.NoError(t, err)
	_, err = env.svcs.Transaction.Approve(ctx, approver, tx.ID)
	require.NoError(t, err)

	stats, err := env.svcs.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 13, stats.Customers)
	assert.EqualValues(t, 2, stats.ActiveBlackList)
	assert.EqualValues(t, 1, stats.ActiveWhiteList)
	assert.EqualValues(t, 1, stats.PendingTransactions)
	assert.EqualValues(t, 1, stats.ApprovedTransactions)
	assert.EqualValues(t, 0, stats.RejectedTransactions)

	require.Len(t, stats.RecentActivity, RecentActivityLimit)
	assert.Equal(t, models.AuditActionTransactionApproved, stats.RecentActivity[0].Action)
}

func TestSeedService_Reset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svcs.Transaction.Create(ctx, maker, CreateTransactionInput{CustomerNo: "1", TxType: models.TxTypeInsert})
	require.NoError(t, err)

	require.NoError(t, env.svcs.Seed.Reset(ctx))

	stats, err := env.svcs.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.PendingTransactions)
	assert.EqualValues(t, 3, stats.ActiveBlackList)
	require.Len(t, stats.RecentActivity, 1)
	assert.Equal(t, models.AuditActionSystemInit, stats.RecentActivity[0].Action)

	// seeding a populated store changes nothing
	require.NoError(t, env.svcs.Seed.InitializeIfEmpty(ctx))
	assert.Equal(t, []string{models.AuditActionSystemInit}, env.auditActions(t))
}
