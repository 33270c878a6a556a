package usecase

import (
	"testing"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

func TestGroupByEnterpriseSortsLabels(t *testing.T) {
	docs := []domain.DocumentSummary{
		{ID: 1, Enterprise: "A", Sector: "X"},
		{ID: 2, Enterprise: "B", Sector: "Y"},
		{ID: 3, Enterprise: "A", Sector: "Z"},
	}

	groups := GroupDocuments(docs, domain.GroupByEnterprise)
	if len(groups) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(groups))
	}
	if groups[0].Label != "A" || groups[1].Label != "B" {
		t.Fatalf("expected A before B, got %q %q", groups[0].Label, groups[1].Label)
	}
	if groups[0].Count != 2 || groups[0].Documents[0].ID != 1 || groups[0].Documents[1].ID != 3 {
		t.Fatalf("unexpected bucket A %+v", groups[0])
	}
}

func TestGroupMissingValuesUnderNone(t *testing.T) {
	docs := []domain.DocumentSummary{
		{ID: 1, Sector: "Financeiro"},
		{ID: 2, Enterprise: "Acme"},
	}

	bySector := GroupDocuments(docs, domain.GroupBySector)
	if len(bySector) != 2 || bySector[0].Label != "Financeiro" || bySector[1].Label != NoGroupLabel {
		t.Fatalf("unexpected sector groups %+v", bySector)
	}

	both := GroupDocuments(docs, domain.GroupByBoth)
	if len(both) != 2 || both[0].Label != "Acme / none" || both[1].Label != "none / Financeiro" {
		t.Fatalf("unexpected combined groups %+v", both)
	}
}

func TestNoGroupingReturnsNil(t *testing.T) {
	if GroupDocuments([]domain.DocumentSummary{{ID: 1}}, domain.GroupByNone) != nil {
		t.Fatalf("expected nil groups without grouping")
	}
}
