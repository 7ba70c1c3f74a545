package screening

import (
	"strings"

	"github.com/sjperalta/aml-lists-api/internal/models"
)

// FindCoincidences scans entries in order and reports the ones that match the
// candidate. Rules are tried per entry and the first one that hits wins:
//
//  1. Exact:   non-empty customerNo equals the entry's customer number
//  2. Exact:   entry search name equals Normalize(name)
//  3. Partial: one search name contains the other
//
// Deleted entries are ignored. Name rules need both keys to be non-empty.
func FindCoincidences(entries []models.ListEntry, customerNo, name string) []models.Coincidence {
	key := Normalize(name)
	coincidences := make([]models.Coincidence, 0)

	for i := range entries {
		entry := &entries[i]
		if !entry.IsActive() {
			continue
		}

		matchType, ok := matchEntry(entry, customerNo, key)
		if !ok {
			continue
		}

		coincidences = append(coincidences, models.Coincidence{
			CustomerNo:   entry.CustomerNo,
			Name:         entry.Name,
			MatchType:    matchType,
			OriginSource: entry.OriginSource,
		})
	}

	return coincidences
}

func matchEntry(entry *models.ListEntry, customerNo, key string) (string, bool) {
	if customerNo != "" && entry.CustomerNo == customerNo {
		return models.MatchTypeExact, true
	}

	// An empty normalized name is a substring of every entry; with no name
	// to compare only the customer number rule applies.
	if key == "" || entry.SearchName == "" {
		return "", false
	}

	if entry.SearchName == key {
		return models.MatchTypeExact, true
	}

	if strings.Contains(entry.SearchName, key) || strings.Contains(key, entry.SearchName) {
		return models.MatchTypePartial, true
	}

	return "", false
}

// MergeCoincidences appends found to acc, skipping customer numbers already present
func MergeCoincidences(acc, found []models.Coincidence) []models.Coincidence {
	seen := make(map[string]struct{}, len(acc))
	for _, c := range acc {
		seen[c.CustomerNo] = struct{}{}
	}

	for _, c := range found {
		if _, dup := seen[c.CustomerNo]; dup {
			continue
		}
		seen[c.CustomerNo] = struct{}{}
		acc = append(acc, c)
	}
	return acc
}
