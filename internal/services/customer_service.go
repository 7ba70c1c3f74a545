package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/sjperalta/aml-lists-api/internal/repository"
	"github.com/sjperalta/aml-lists-api/pkg/logger"
	"gorm.io/gorm"
)

// CustomerSourceImport marks customers added through a file import
const CustomerSourceImport = "IMPORT"

// CustomerService serves the customer base used for name lookups
type CustomerService struct {
	repos *repository.Repositories
	now   func() time.Time
}

func NewCustomerService(repos *repository.Repositories) *CustomerService {
	return &CustomerService{repos: repos, now: time.Now}
}

// List returns customers, optionally only those with the given risk level
func (s *CustomerService) List(ctx context.Context, riskLevel string) ([]models.Customer, error) {
	if riskLevel != "" && !models.IsValidRiskLevel(riskLevel) {
		return nil, fmt.Errorf("%w: unknown risk level %q", ErrValidation, riskLevel)
	}
	return s.repos.Customer.List(ctx, riskLevel)
}

// FindByNo gets a customer by customer number or BIN
func (s *CustomerService) FindByNo(ctx context.Context, customerNo string) (*models.Customer, error) {
	customer, err := s.repos.Customer.FindByNo(ctx, customerNo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return customer, err
}

// CustomerImportResult summarizes a customer import
type CustomerImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
	Errors   []string `json:"errors"`
}

// Import appends individuals or organizations read from a .csv/.txt or .xlsx
// file with columns customerNo, name, riskLevel, reason. Customers already in
// the base are skipped.
func (s *CustomerService) Import(ctx context.Context, actor models.Actor, kind, filename string, data []byte) (*CustomerImportResult, error) {
	var action, noun, defaultRisk string
	switch kind {
	case models.CustomerTypeIndividual:
		action, noun, defaultRisk = models.AuditActionImportIndividuals, "individual customers", models.RiskLevelLow
	case models.CustomerTypeOrganization:
		action, noun, defaultRisk = models.AuditActionImportOrganizations, "organizations", models.RiskLevelMedium
	default:
		return nil, fmt.Errorf("%w: unknown customer type %q", ErrValidation, kind)
	}

	var records [][]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		records, err = readDelimited(data)
	case ".xlsx":
		records, err = readFirstSheet(data)
	default:
		return nil, fmt.Errorf("%w: use .csv, .txt or .xlsx", ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	result := &CustomerImportResult{Skipped: make([]string, 0), Errors: make([]string, 0)}
	candidates := make([]models.Customer, 0, len(records))
	seen := make(map[string]bool)
	now := s.now()

	for i, rec := range records {
		customerNo, name := cellAt(rec, 0), strings.ToUpper(cellAt(rec, 1))
		if customerNo == "" && name == "" {
			continue
		}
		if customerNo == "" || name == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: customer number and name are required", i+1))
			continue
		}

		risk := strings.ToLower(cellAt(rec, 2))
		if risk == "" {
			risk = defaultRisk
		}
		if !models.IsValidRiskLevel(risk) {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: unknown risk level %q", i+1, risk))
			continue
		}

		if seen[customerNo] {
			result.Skipped = append(result.Skipped, customerNo)
			continue
		}
		seen[customerNo] = true

		candidates = append(candidates, models.Customer{
			CustomerNo:  customerNo,
			Name:        name,
			Type:        kind,
			RiskLevel:   risk,
			Reason:      cellAt(rec, 3),
			Source:      CustomerSourceImport,
			CreatedDate: now,
		})
	}

	err = s.repos.WithinTransaction(ctx, func(r *repository.Repositories) error {
		nos := make([]string, 0, len(candidates))
		for _, c := range candidates {
			nos = append(nos, c.CustomerNo)
		}
		existing, err := r.Customer.FindExisting(ctx, nos)
		if err != nil {
			return err
		}

		fresh := make([]models.Customer, 0, len(candidates))
		for _, c := range candidates {
			if existing[c.CustomerNo] {
				result.Skipped = append(result.Skipped, c.CustomerNo)
				continue
			}
			fresh = append(fresh, c)
		}

		if err := r.Customer.CreateBatch(ctx, fresh); err != nil {
			return err
		}
		result.Imported = len(fresh)

		_, err = NewAuditService(r.Audit).Record(ctx, AuditInput{
			Action:  action,
			User:    actor.Username,
			Role:    actor.Role,
			Details: fmt.Sprintf("Imported %d %s", result.Imported, noun),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Customers imported", "type", kind, "imported", result.Imported, "skipped", len(result.Skipped))
	return result, nil
}

// readDelimited parses comma separated records, dropping a leading header row
func readDelimited(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		records = append(records, rec)
	}

	if len(records) > 0 && isHeaderRecord(records[0]) {
		records = records[1:]
	}
	return records, nil
}

func isHeaderRecord(rec []string) bool {
	return strings.HasPrefix(strings.ToLower(cellAt(rec, 0)), "customer")
}
