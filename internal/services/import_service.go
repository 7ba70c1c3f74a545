package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/sjperalta/aml-lists-api/internal/repository"
	"github.com/sjperalta/aml-lists-api/internal/screening"
	"github.com/sjperalta/aml-lists-api/internal/storage"
	"github.com/sjperalta/aml-lists-api/pkg/logger"
	"gorm.io/gorm"
)

// UnknownCustomerName is used when a customer number is not in the customer base
const UnknownCustomerName = "UNKNOWN"

// ImportService turns uploaded black-list files into staging rows
type ImportService struct {
	customerRepo repository.CustomerRepository
	screeningSvc *ScreeningService
	storage      *storage.LocalStorage
	now          func() time.Time
}

func NewImportService(customerRepo repository.CustomerRepository, screeningSvc *ScreeningService, storage *storage.LocalStorage) *ImportService {
	return &ImportService{
		customerRepo: customerRepo,
		screeningSvc: screeningSvc,
		storage:      storage,
		now:          time.Now,
	}
}

// ImportOptions are the maker's selections made before uploading
type ImportOptions struct {
	TxType       string `form:"tx_type"`
	OriginSource string `form:"origin_source"`
}

// ImportResult holds the staging rows, the coincidences found for them and
// the lines that could not be used. Nothing here is persisted.
type ImportResult struct {
	Rows         []models.ImportedRow `json:"rows"`
	Coincidences []models.Coincidence `json:"coincidences"`
	Errors       []string             `json:"errors"`
	ArchivePath  string               `json:"archive_path,omitempty"`
}

// ParseBlackListFile parses a .txt or .xlsx upload into staging rows
func (s *ImportService) ParseBlackListFile(ctx context.Context, actor models.Actor, opts ImportOptions, filename string, data []byte) (*ImportResult, error) {
	if opts.OriginSource == "" {
		return nil, ErrOriginSourceRequired
	}
	if opts.TxType == "" {
		opts.TxType = models.TxTypeInsert
	}
	if opts.TxType != models.TxTypeInsert && opts.TxType != models.TxTypeDelete {
		return nil, fmt.Errorf("%w: import tx type must be INSERT or DELETE", ErrValidation)
	}

	result := &ImportResult{
		Rows:   make([]models.ImportedRow, 0),
		Errors: make([]string, 0),
	}

	var candidates []models.ImportedRow
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		candidates, err = s.parseText(ctx, opts, data, result)
	case ".xlsx":
		candidates, err = s.parseWorkbook(ctx, opts, data)
	default:
		return nil, fmt.Errorf("%w: use .txt or .xlsx", ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	createDate := models.FormatTimestamp(s.now().UTC())
	listGroup := screening.ListGroupFor(opts.OriginSource)
	for _, row := range candidates {
		row.ID = uuid.New().String()
		row.TxNo = GenerateTxNo()
		row.TxType = opts.TxType
		row.CreateDate = createDate
		row.CreateUser = actor.Username
		row.OriginSource = opts.OriginSource
		row.ListGroup = listGroup
		result.Rows = append(result.Rows, row)
	}

	result.Coincidences, err = s.screeningSvc.ScreenRows(ctx, result.Rows)
	if err != nil {
		return nil, err
	}

	if s.storage != nil {
		path, err := s.storage.Save(data, filename, ArchiveDir)
		if err != nil {
			return nil, err
		}
		result.ArchivePath = path
	}

	logger.Info("Black list file parsed",
		"file", filename,
		"rows", len(result.Rows),
		"coincidences", len(result.Coincidences),
		"rejected_lines", len(result.Errors),
		"user", actor.Username,
	)
	return result, nil
}

// parseText reads one identity per line. A line is either a customer number
// (digits only) or a name (letters and spaces only); anything else is reported.
func (s *ImportService) parseText(ctx context.Context, opts ImportOptions, data []byte, result *ImportResult) ([]models.ImportedRow, error) {
	var rows []models.ImportedRow

	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case screening.IsDigitsLine(trimmed):
			name, err := s.lookupName(ctx, opts, trimmed)
			if err != nil {
				return nil, err
			}
			rows = append(rows, models.ImportedRow{CustomerNo: trimmed, Name: name})
		case screening.IsNameLine(trimmed):
			rows = append(rows, models.ImportedRow{Name: strings.ToUpper(trimmed)})
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid line: %q contains mixed characters", trimmed))
		}
	}

	return rows, nil
}

// parseWorkbook reads column A as customer number and column B as name
func (s *ImportService) parseWorkbook(ctx context.Context, opts ImportOptions, data []byte) ([]models.ImportedRow, error) {
	sheetRows, err := readFirstSheet(data)
	if err != nil {
		return nil, err
	}

	var rows []models.ImportedRow
	for _, cells := range sheetRows {
		customerNo := cellAt(cells, 0)
		name := strings.ToUpper(cellAt(cells, 1))
		if customerNo == "" && name == "" {
			continue
		}
		if name == "" {
			if name, err = s.lookupName(ctx, opts, customerNo); err != nil {
				return nil, err
			}
		}
		rows = append(rows, models.ImportedRow{CustomerNo: customerNo, Name: name})
	}
	return rows, nil
}

// lookupName resolves a customer's name for INSERTs sourced from the
// customer base. Other combinations carry no name.
func (s *ImportService) lookupName(ctx context.Context, opts ImportOptions, customerNo string) (string, error) {
	if opts.TxType != models.TxTypeInsert || opts.OriginSource != screening.OriginSourceCustomer {
		return "", nil
	}

	customer, err := s.customerRepo.FindByNo(ctx, customerNo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UnknownCustomerName, nil
	}
	if err != nil {
		return "", err
	}
	return customer.Name, nil
}

// ArchiveDir is the storage directory holding archived uploads
const ArchiveDir = "imports"

// Archived returns the content of an upload previously archived by
// ParseBlackListFile
func (s *ImportService) Archived(ctx context.Context, archivePath string) ([]byte, error) {
	clean := filepath.Clean(archivePath)
	if !strings.HasPrefix(clean, ArchiveDir+string(filepath.Separator)) || !s.storage.Exists(clean) {
		return nil, ErrNotFound
	}
	return s.storage.Read(clean)
}
