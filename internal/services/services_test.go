package services

import (
	"context"
	"testing"

	"github.com/sjperalta/aml-lists-api/internal/config"
	"github.com/sjperalta/aml-lists-api/internal/database"
	"github.com/sjperalta/aml-lists-api/internal/jobs"
	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/sjperalta/aml-lists-api/internal/repository"
	"github.com/sjperalta/aml-lists-api/internal/storage"
	"github.com/stretchr/testify/require"
)

var (
	maker    = models.Actor{Username: models.UserMaker, Role: models.RoleMaker}
	approver = models.Actor{Username: models.UserApprover, Role: models.RoleApprover}
)

type testEnv struct {
	repos *repository.Repositories
	svcs  *Services
	store *storage.LocalStorage
}

// newTestEnv wires every service against a seeded in-memory database
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.ConnectInMemory(t.Name())
	require.NoError(t, err)
	_, err = database.InitializeIfEmpty(context.Background(), db)
	require.NoError(t, err)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		StalePendingHours:  24,
	}

	repos := repository.NewRepositories(db)
	return &testEnv{
		repos: repos,
		svcs:  NewServices(repos, worker, store, cfg, db),
		store: store,
	}
}

func (e *testEnv) auditActions(t *testing.T) []string {
	t.Helper()
	query := repository.NewListQuery()
	query.PerPage = 0
	entries, _, err := e.svcs.Audit.List(context.Background(), query)
	require.NoError(t, err)

	actions := make([]string, 0, len(entries))
	for _, entry := range entries {
		actions = append(actions, entry.Action)
	}
	return actions
}
