package services

import (
	"context"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/sjperalta/aml-lists-api/internal/repository"
	"github.com/sjperalta/aml-lists-api/internal/screening"
)

// ScreeningService checks candidates against the Active black list
type ScreeningService struct {
	listRepo repository.ListRepository
}

func NewScreeningService(listRepo repository.ListRepository) *ScreeningService {
	return &ScreeningService{listRepo: listRepo}
}

// FindCoincidences screens one candidate
func (s *ScreeningService) FindCoincidences(ctx context.Context, customerNo, name string) ([]models.Coincidence, error) {
	entries, err := s.listRepo.List(ctx, models.ListTypeBlack, true)
	if err != nil {
		return nil, err
	}
	return screening.FindCoincidences(entries, customerNo, name), nil
}

// ScreenRows screens every row against one snapshot of the black list and
// merges the results by customer number.
func (s *ScreeningService) ScreenRows(ctx context.Context, rows []models.ImportedRow) ([]models.Coincidence, error) {
	entries, err := s.listRepo.List(ctx, models.ListTypeBlack, true)
	if err != nil {
		return nil, err
	}

	merged := make([]models.Coincidence, 0)
	for _, row := range rows {
		if row.CustomerNo == "" && row.Name == "" {
			continue
		}
		merged = screening.MergeCoincidences(merged, screening.FindCoincidences(entries, row.CustomerNo, row.Name))
	}
	return merged, nil
}
