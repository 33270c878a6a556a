package usecase

import (
	"slices"
	"strings"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

// NoGroupLabel buckets documents without a value for the grouping key.
const NoGroupLabel = "none"

// GroupDocuments buckets one fetched page by enterprise, sector or both.
// Counts are page-local: a bucket never reflects documents of other pages.
// Labels are sorted lexicographically and documents keep their page order.
func GroupDocuments(docs []domain.DocumentSummary, by domain.GroupBy) []domain.DocumentGroup {
	if by == domain.GroupByNone {
		return nil
	}

	index := make(map[string]int)
	var groups []domain.DocumentGroup
	for _, doc := range docs {
		label := groupLabel(doc, by)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, domain.DocumentGroup{Label: label})
		}
		groups[i].Documents = append(groups[i].Documents, doc)
		groups[i].Count++
	}

	slices.SortStableFunc(groups, func(a, b domain.DocumentGroup) int {
		return strings.Compare(a.Label, b.Label)
	})
	return groups
}

func groupLabel(doc domain.DocumentSummary, by domain.GroupBy) string {
	switch by {
	case domain.GroupByEnterprise:
		return orNone(doc.Enterprise)
	case domain.GroupBySector:
		return orNone(doc.Sector)
	default:
		return orNone(doc.Enterprise) + " / " + orNone(doc.Sector)
	}
}

func orNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return NoGroupLabel
	}
	return value
}
