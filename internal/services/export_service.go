package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/sjperalta/aml-lists-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

// Exportable collections
const (
	CollectionBlackList    = "black-list"
	CollectionWhiteList    = "white-list"
	CollectionCustomers    = "customers"
	CollectionTransactions = "transactions"
	CollectionAudit        = "audit"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// ExportFile is a rendered export ready to be downloaded
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type exportTable struct {
	title    string
	baseName string
	headers  []string
	rows     [][]string
}

type ExportService struct {
	listSvc        *ListService
	customerSvc    *CustomerService
	transactionSvc *TransactionService
	auditSvc       *AuditService
	now            func() time.Time
}

func NewExportService(listSvc *ListService, customerSvc *CustomerService, transactionSvc *TransactionService, auditSvc *AuditService) *ExportService {
	return &ExportService{
		listSvc:        listSvc,
		customerSvc:    customerSvc,
		transactionSvc: transactionSvc,
		auditSvc:       auditSvc,
		now:            time.Now,
	}
}

// Export renders a whole collection in the requested format
func (s *ExportService) Export(ctx context.Context, collection, format string) (*ExportFile, error) {
	table, err := s.table(ctx, collection)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s_%s.%s", table.baseName, s.now().Format("2006-01-02"), format)
	switch format {
	case FormatCSV:
		return &ExportFile{Filename: filename, ContentType: "text/csv", Data: renderCSV(table)}, nil
	case FormatXLSX:
		data, err := renderXLSX(table)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Filename: filename, ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Data: data}, nil
	case FormatPDF:
		data, err := renderPDF(table, s.now())
		if err != nil {
			return nil, err
		}
		return &ExportFile{Filename: filename, ContentType: "application/pdf", Data: data}, nil
	}
	return nil, fmt.Errorf("%w: unknown export format %q", ErrValidation, format)
}

func (s *ExportService) table(ctx context.Context, collection string) (*exportTable, error) {
	switch collection {
	case CollectionBlackList, CollectionWhiteList:
		listType, title, base := models.ListTypeBlack, "Black List", "blacklist"
		if collection == CollectionWhiteList {
			listType, title, base = models.ListTypeWhite, "White List", "whitelist"
		}
		entries, err := s.listSvc.ListAll(ctx, listType)
		if err != nil {
			return nil, err
		}
		t := &exportTable{
			title:    title,
			baseName: base,
			headers:  []string{"Customer No", "Name", "Search Name", "Origin Source", "List Group", "Created Date", "Created User", "Status"},
		}
		for _, e := range entries {
			t.rows = append(t.rows, []string{e.CustomerNo, e.Name, e.SearchName, e.OriginSource, e.ListGroup, models.FormatTimestamp(e.CreatedDate), e.CreatedUser, e.Status})
		}
		return t, nil

	case CollectionCustomers:
		customers, err := s.customerSvc.List(ctx, "")
		if err != nil {
			return nil, err
		}
		t := &exportTable{
			title:    "Customer Base",
			baseName: "customers",
			headers:  []string{"Customer No/BIN", "Name", "Type", "Risk Level", "Reason", "Source", "Created Date"},
		}
		for _, c := range customers {
			t.rows = append(t.rows, []string{c.CustomerNo, c.Name, c.Type, c.RiskLevel, c.Reason, c.Source, models.FormatTimestamp(c.CreatedDate)})
		}
		return t, nil

	case CollectionTransactions:
		txs, err := s.transactionSvc.All(ctx)
		if err != nil {
			return nil, err
		}
		t := &exportTable{
			title:    "Transactions",
			baseName: "transactions",
			headers:  []string{"Tx No", "Customer No", "Name", "Tx Type", "Origin Source", "List Group", "List Type", "Status", "Created Date", "Created User", "Approved Date", "Approved User"},
		}
		for _, tx := range txs {
			approvedDate, approvedUser := "", ""
			if tx.ApprovedDate != nil {
				approvedDate = models.FormatTimestamp(*tx.ApprovedDate)
			}
			if tx.ApprovedUser != nil {
				approvedUser = *tx.ApprovedUser
			}
			t.rows = append(t.rows, []string{tx.TxNo, tx.CustomerNo, tx.Name, tx.TxType, tx.OriginSource, tx.ListGroup, tx.ListType, tx.Status, models.FormatTimestamp(tx.CreatedDate), tx.CreatedUser, approvedDate, approvedUser})
		}
		return t, nil

	case CollectionAudit:
		query := repository.NewListQuery()
		query.PerPage = 0
		entries, _, err := s.auditSvc.List(ctx, query)
		if err != nil {
			return nil, err
		}
		t := &exportTable{
			title:    "Audit Log",
			baseName: "audit_log",
			headers:  []string{"Timestamp", "Action", "User", "Role", "Tx No", "Old Value", "New Value", "Details"},
		}
		for _, e := range entries {
			t.rows = append(t.rows, []string{models.FormatTimestamp(e.Timestamp), e.Action, e.User, e.Role, e.TxNo, e.OldValue, e.NewValue, e.Details})
		}
		return t, nil
	}

	return nil, fmt.Errorf("%w: unknown collection %q", ErrValidation, collection)
}

// renderCSV joins fields with commas and rows with newlines. Values are not
// quoted, so a comma inside a field shifts the columns; use XLSX when that matters.
func renderCSV(t *exportTable) []byte {
	lines := make([]string, 0, len(t.rows)+1)
	lines = append(lines, strings.Join(t.headers, ","))
	for _, row := range t.rows {
		lines = append(lines, strings.Join(row, ","))
	}
	return []byte(strings.Join(lines, "\n"))
}

func renderXLSX(t *exportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.title
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, h := range t.headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for r, row := range t.rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(t *exportTable, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr(t.title+" Report"))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 8, "Generated "+models.FormatTimestamp(generatedAt))
	pdf.Ln(10)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(t.headers))

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(224, 224, 224)
	for _, h := range t.headers {
		pdf.CellFormat(colWidth, 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for _, row := range t.rows {
		for _, value := range row {
			pdf.CellFormat(colWidth, 6, tr(truncate(value, 48)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(40, 6, fmt.Sprintf("%d records", len(t.rows)))

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
