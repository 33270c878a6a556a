package ports

import (
	"context"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

// SaveOutcome reports, per domain, what a classification save committed.
type SaveOutcome struct {
	ClassificationAttempted bool
	ClassificationSaved     bool
	CategoriesAttempted     bool
	CategoriesSaved         bool
}

// Committed reports whether at least one request reached the server successfully.
func (o SaveOutcome) Committed() bool {
	return o.ClassificationSaved || o.CategoriesSaved
}

// ClassificationEditing is the inbound contract of the persisted classification workflow.
type ClassificationEditing interface {
	Show(ctx context.Context, documentID int) (domain.EditorSnapshot, error)
	Stage(ctx context.Context, documentID int, edits []Edit) (domain.EditorSnapshot, error)
	Save(ctx context.Context, documentID int) (SaveOutcome, error)
	Discard(ctx context.Context, documentID int) error
	Drafts(ctx context.Context) ([]domain.Draft, error)
}

// Edit is one user intent applied to a classification editor, in order.
type Edit struct {
	Field string
	Value string
}

// DocumentBrowsing is the inbound contract of the document list screen.
type DocumentBrowsing interface {
	Browse(ctx context.Context, filters domain.DocumentFilters, page int) (BrowseResult, error)
}

// BrowseResult is one fetched page plus its page-local grouping.
type BrowseResult struct {
	Mode       string
	Page       int
	PageCount  int
	Total      int
	Annotation string
	Documents  []domain.DocumentSummary
	Groups     []domain.DocumentGroup
	Window     []domain.PageLink
}
