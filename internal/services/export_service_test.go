package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fixedExportClock(env *testEnv) {
	env.svcs.Export.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
}

func TestExportService_BlackListCSV(t *testing.T) {
	env := newTestEnv(t)
	fixedExportClock(env)

	file, err := env.svcs.Export.Export(context.Background(), CollectionBlackList, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "blacklist_2025-06-01.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	lines := strings.Split(string(file.Data), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Customer No,Name,Search Name,Origin Source,List Group,Created Date,Created User,Status", lines[0])
	assert.Equal(t, "99999999999999,CRIMINAL IVAN IVANOVICH,CRIMINALIVANIVANOVICH,FIU,SANCTIONS,2024-01-10 00:00:00,system,Active", lines[1])
	assert.False(t, strings.HasSuffix(string(file.Data), "\n"))
}

func TestExportService_CSVIsNotEscaped(t *testing.T) {
	env := newTestEnv(t)
	fixedExportClock(env)
	ctx := context.Background()

	_, err := env.svcs.List.AddEntry(ctx, models.ListTypeWhite, models.ListEntry{CustomerNo: "1", Name: "DOE, JOHN", OriginSource: "MANUAL"})
	require.NoError(t, err)

	file, err := env.svcs.Export.Export(ctx, CollectionWhiteList, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "whitelist_2025-06-01.csv", file.Filename)

	lines := strings.Split(string(file.Data), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2], "1,DOE, JOHN,DOEJOHN,MANUAL,MANUAL_ENTRY,"))
	assert.Len(t, strings.Split(lines[2], ","), 9)
}

func TestExportService_CollectionHeaders(t *testing.T) {
	env := newTestEnv(t)
	fixedExportClock(env)
	ctx := context.Background()

	tests := []struct {
		collection string
		filename   string
		header     string
	}{
		{CollectionCustomers, "customers_2025-06-01.csv", "Customer No/BIN,Name,Type,Risk Level,Reason,Source,Created Date"},
		{CollectionAudit, "audit_log_2025-06-01.csv", "Timestamp,Action,User,Role,Tx No,Old Value,New Value,Details"},
		{CollectionTransactions, "transactions_2025-06-01.csv", "Tx No,Customer No,Name,Tx Type,Origin Source,List Group,List Type,Status,Created Date,Created User,Approved Date,Approved User"},
	}

	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			file, err := env.svcs.Export.Export(ctx, tt.collection, FormatCSV)
			require.NoError(t, err)
			assert.Equal(t, tt.filename, file.Filename)
			assert.Equal(t, tt.header, strings.Split(string(file.Data), "\n")[0])
		})
	}

	audit, err := env.svcs.Export.Export(ctx, CollectionAudit, FormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(audit.Data), "2024-01-01 00:00:00,SYSTEM_INIT,system,Maker,,,,System initialized with default data")
}

func TestExportService_XLSX(t *testing.T) {
	env := newTestEnv(t)

	file, err := env.svcs.Export.Export(context.Background(), CollectionCustomers, FormatXLSX)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Customer Base")
	require.NoError(t, err)
	require.Len(t, rows, 14)
	assert.Equal(t, "Customer No/BIN", rows[0][0])
	assert.Equal(t, "12345678901234", rows[1][0])
}

func TestExportService_PDF(t *testing.T) {
	env := newTestEnv(t)

	file, err := env.svcs.Export.Export(context.Background(), CollectionAudit, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestExportService_Unknown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svcs.Export.Export(ctx, "users", FormatCSV)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.svcs.Export.Export(ctx, CollectionAudit, "json")
	assert.ErrorIs(t, err, ErrValidation)
}
