package services

import (
	"context"
	"testing"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestImportService_ParseText(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	data := []byte("12345678901234\r\n\n   criminal ivan ivanovich  \nABC123\n00000000000000\n")
	result, err := env.svcs.Import.ParseBlackListFile(ctx, maker, ImportOptions{TxType: models.TxTypeInsert, OriginSource: "CUSTOMER"}, "list.TXT", data)
	require.NoError(t, err)

	require.Len(t, result.Rows, 3)
	assert.Equal(t, "12345678901234", result.Rows[0].CustomerNo)
	assert.Equal(t, "IVANOV IVAN PETROVICH", result.Rows[0].Name)
	assert.Equal(t, "", result.Rows[1].CustomerNo)
	assert.Equal(t, "CRIMINAL IVAN IVANOVICH", result.Rows[1].Name)
	assert.Equal(t, UnknownCustomerName, result.Rows[2].Name)

	for _, row := range result.Rows {
		assert.NotEmpty(t, row.ID)
		assert.Regexp(t, `^TX1234\d{4}$`, row.TxNo)
		assert.Equal(t, models.TxTypeInsert, row.TxType)
		assert.Equal(t, models.UserMaker, row.CreateUser)
		assert.Equal(t, "CUSTOMER", row.OriginSource)
		assert.Equal(t, "INTERNAL", row.ListGroup)
		assert.Len(t, row.CreateDate, len(models.TimestampLayout))
	}

	assert.Equal(t, []string{`Invalid line: "ABC123" contains mixed characters`}, result.Errors)

	require.Len(t, result.Coincidences, 1)
	assert.Equal(t, "99999999999999", result.Coincidences[0].CustomerNo)
	assert.Equal(t, models.MatchTypeExact, result.Coincidences[0].MatchType)

	require.NotEmpty(t, result.ArchivePath)
	archived, err := env.svcs.Import.Archived(ctx, result.ArchivePath)
	require.NoError(t, err)
	assert.Equal(t, data, archived)

	_, err = env.svcs.Import.Archived(ctx, "imports/2020/01/missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.svcs.Import.Archived(ctx, "../"+result.ArchivePath)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImportService_DigitsWithoutLookup(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svcs.Import.ParseBlackListFile(context.Background(), maker, ImportOptions{TxType: models.TxTypeDelete, OriginSource: "FIU"}, "delete.txt", []byte("88888888888888\n12345678901234"))
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Empty(t, result.Rows[0].Name)
	assert.Equal(t, models.TxTypeDelete, result.Rows[0].TxType)
	assert.Equal(t, "SANCTIONS", result.Rows[0].ListGroup)

	// an empty name never matches every entry partially
	require.Len(t, result.Coincidences, 1)
	assert.Equal(t, "88888888888888", result.Coincidences[0].CustomerNo)
}

func TestImportService_ParseWorkbook(t *testing.T) {
	env := newTestEnv(t)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Customer No", "Name"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"77777777777777", "fraud fedor"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"", "Terrorist Ahmed Ali"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	result, err := env.svcs.Import.ParseBlackListFile(context.Background(), maker, ImportOptions{OriginSource: "COURT"}, "court.xlsx", buf.Bytes())
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "FRAUD FEDOR", result.Rows[0].Name)
	assert.Equal(t, models.TxTypeInsert, result.Rows[0].TxType)
	assert.Equal(t, "TERRORIST AHMED ALI", result.Rows[1].Name)

	require.Len(t, result.Coincidences, 2)
	assert.Equal(t, "77777777777777", result.Coincidences[0].CustomerNo)
	assert.Equal(t, models.MatchTypeExact, result.Coincidences[0].MatchType)
	assert.Equal(t, "88888888888888", result.Coincidences[1].CustomerNo)
	assert.Equal(t, models.MatchTypeExact, result.Coincidences[1].MatchType)
}

func TestImportService_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		opts     ImportOptions
		filename string
		wantErr  error
	}{
		{"origin source required", ImportOptions{TxType: models.TxTypeInsert}, "a.txt", ErrOriginSourceRequired},
		{"legacy xls", ImportOptions{OriginSource: "FIU"}, "a.xls", ErrUnsupportedFormat},
		{"csv", ImportOptions{OriginSource: "FIU"}, "a.csv", ErrUnsupportedFormat},
		{"search is not importable", ImportOptions{TxType: models.TxTypeSearch, OriginSource: "FIU"}, "a.txt", ErrValidation},
		{"broken workbook", ImportOptions{OriginSource: "FIU"}, "a.xlsx", ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svcs.Import.ParseBlackListFile(ctx, maker, tt.opts, tt.filename, []byte("not a workbook"))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
