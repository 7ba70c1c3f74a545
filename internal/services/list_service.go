package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sjperalta/aml-lists-api/internal/models"
	"github.com/sjperalta/aml-lists-api/internal/repository"
	"github.com/sjperalta/aml-lists-api/internal/screening"
)

// ListService maintains the black and white lists
type ListService struct {
	repo repository.ListRepository
	now  func() time.Time
}

func NewListService(repo repository.ListRepository) *ListService {
	return &ListService{repo: repo, now: time.Now}
}

// AddEntry appends an Active entry to the list. Search name and list group
// are derived when the caller leaves them empty.
func (s *ListService) AddEntry(ctx context.Context, listType string, entry models.ListEntry) (*models.ListEntry, error) {
	if !models.IsValidListType(listType) {
		return nil, fmt.Errorf("%w: unknown list type %q", ErrValidation, listType)
	}

	entry.ID = 0
	entry.ListType = listType
	entry.Status = models.ListEntryStatusActive
	entry.CreatedDate = s.now()
	if entry.SearchName == "" {
		entry.SearchName = screening.Normalize(entry.Name)
	}
	if entry.ListGroup == "" {
		entry.ListGroup = screening.ListGroupFor(entry.OriginSource)
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SoftDelete marks the first Active entry with customerNo as Deleted.
// Having nothing to delete is not an error; deleted reports what happened.
func (s *ListService) SoftDelete(ctx context.Context, listType, customerNo string) (bool, error) {
	if !models.IsValidListType(listType) {
		return false, fmt.Errorf("%w: unknown list type %q", ErrValidation, listType)
	}

	entry, err := s.repo.SoftDeleteFirstActive(ctx, listType, customerNo)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

// ListActive returns the Active entries in insertion order
func (s *ListService) ListActive(ctx context.Context, listType string) ([]models.ListEntry, error) {
	return s.repo.List(ctx, listType, true)
}

// ListAll returns every entry, Deleted included, in insertion order
func (s *ListService) ListAll(ctx context.Context, listType string) ([]models.ListEntry, error) {
	return s.repo.List(ctx, listType, false)
}
