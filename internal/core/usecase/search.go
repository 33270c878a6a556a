package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/ports"
)

// Browser modes, also used as metric labels.
const (
	ModeListing   = "listing"
	ModeSearching = "searching"
)

// IsSearching reports whether filters select the search endpoint instead of
// the plain listing. It is recomputed on every load.
func IsSearching(filters domain.DocumentFilters) bool {
	return filters.Active()
}

// DocumentBrowser holds the filter and page state of the document list.
// It is not safe for concurrent use.
type DocumentBrowser struct {
	api      ports.DocumentSearchAPI
	recorder ports.BrowseRecorder
	pageSize int

	filters domain.DocumentFilters
	page    int
	loading bool
	result  ports.BrowseResult
	message string
}

func NewDocumentBrowser(api ports.DocumentSearchAPI, recorder ports.BrowseRecorder, pageSize int) *DocumentBrowser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &DocumentBrowser{
		api:      api,
		recorder: recorder,
		pageSize: pageSize,
		page:     1,
	}
}

func (b *DocumentBrowser) Filters() domain.DocumentFilters { return b.filters }
func (b *DocumentBrowser) Page() int { return b.page }
func (b *DocumentBrowser) Loading() bool { return b.loading }
func (b *DocumentBrowser) Result() ports.BrowseResult { return b.result }

// Message is the error message of the last failed load, empty after a success.
func (b *DocumentBrowser) Message() string { return b.message }

// SetFilters replaces the filter bag. Any change returns to the first page.
func (b *DocumentBrowser) SetFilters(filters domain.DocumentFilters) {
	if !b.filters.Equal(filters) {
		b.page = 1
	}
	b.filters = filters
}

// SetPage moves to page, leaving the filters untouched.
func (b *DocumentBrowser) SetPage(page int) {
	b.page = max(page, 1)
}

// Load fetches the current page. A failure clears the results and keeps the
// server message for display; nothing is retried here.
func (b *DocumentBrowser) Load(ctx context.Context) (ports.BrowseResult, error) {
	b.loading = true
	defer func() { b.loading = false }()

	mode := ModeListing
	var (
		page domain.SearchPage
		err  error
	)
	if IsSearching(b.filters) {
		mode = ModeSearching
		page, err = b.api.SearchDocuments(ctx, b.filters, b.page)
	} else {
		page, err = b.api.ListDocuments(ctx, b.page)
	}
	if b.recorder != nil {
		b.recorder.RecordBrowse(mode, err)
	}
	if err != nil {
		b.result = ports.BrowseResult{Mode: mode, Page: b.page}
		b.message = domain.UserMessage(err, "")
		slog.Warn("document_list_load_failed", "mode", mode, "page", b.page, "error", err)
		return b.result, fmt.Errorf("load documents page %d: %w", b.page, err)
	}

	pageCount := PageCount(page.Count, b.pageSize)
	result := ports.BrowseResult{
		Mode:      mode,
		Page:      b.page,
		PageCount: pageCount,
		Total:     page.Count,
		Documents: page.Results,
		Groups:    GroupDocuments(page.Results, b.filters.GroupBy),
		Window:    PageWindow(b.page, pageCount),
	}
	if mode == ModeSearching {
		result.Annotation = page.Mensagem
	}
	b.result = result
	b.message = ""
	return result, nil
}

// Browse implements ports.DocumentBrowsing for one-shot callers.
func (b *DocumentBrowser) Browse(ctx context.Context, filters domain.DocumentFilters, page int) (ports.BrowseResult, error) {
	b.SetFilters(filters)
	if page > 0 {
		b.SetPage(page)
	}
	return b.Load(ctx)
}
