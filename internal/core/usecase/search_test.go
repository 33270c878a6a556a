package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

type documentSearchAPIFake struct {
	browser     *DocumentBrowser
	listCalls   []int
	searchCalls []domain.DocumentFilters
	page        domain.SearchPage
	err         error
	sawLoading  bool
}

func (f *documentSearchAPIFake) ListDocuments(_ context.Context, page int) (domain.SearchPage, error) {
	f.listCalls = append(f.listCalls, page)
	f.observeLoading()
	return f.page, f.err
}

func (f *documentSearchAPIFake) SearchDocuments(_ context.Context, filters domain.DocumentFilters, _ int) (domain.SearchPage, error) {
	f.searchCalls = append(f.searchCalls, filters)
	f.observeLoading()
	return f.page, f.err
}

func (f *documentSearchAPIFake) observeLoading() {
	if f.browser != nil && f.browser.Loading() {
		f.sawLoading = true
	}
}

type browseRecorderFake struct {
	modes []string
}

func (f *browseRecorderFake) RecordBrowse(mode string, _ error) {
	f.modes = append(f.modes, mode)
}

func TestBrowserUsesListEndpointForEmptyFilters(t *testing.T) {
	raw := map[string]string{
		"searchTerm": "", "isReviewed": "", "statusId": "", "privacityId": "", "reviewer": "", "categories": "",
	}
	filters, err := domain.ParseDocumentFilters(raw)
	if err != nil {
		t.Fatalf("ParseDocumentFilters() error = %v", err)
	}
	api := &documentSearchAPIFake{}
	browser := NewDocumentBrowser(api, nil, 0)
	browser.SetFilters(filters)
	if _, err := browser.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(api.listCalls) != 1 || len(api.searchCalls) != 0 {
		t.Fatalf("expected list endpoint, got list=%d search=%d", len(api.listCalls), len(api.searchCalls))
	}
}

func TestBrowserSwitchesToSearchForAnySingleFilter(t *testing.T) {
	values := map[string]string{
		"searchTerm":  "contrato",
		"isReviewed":  "false",
		"statusId":    "2",
		"privacityId": "1",
		"reviewer":    "ana",
		"categories":  "RH",
	}
	for key, value := range values {
		raw := map[string]string{
			"searchTerm": "", "isReviewed": "", "statusId": "", "privacityId": "", "reviewer": "", "categories": "",
		}
		raw[key] = value
		filters, err := domain.ParseDocumentFilters(raw)
		if err != nil {
			t.Fatalf("%s: ParseDocumentFilters() error = %v", key, err)
		}
		api := &documentSearchAPIFake{}
		browser := NewDocumentBrowser(api, nil, 0)
		browser.SetFilters(filters)
		result, err := browser.Load(context.Background())
		if err != nil {
			t.Fatalf("%s: Load() error = %v", key, err)
		}
		if len(api.searchCalls) != 1 || len(api.listCalls) != 0 || result.Mode != ModeSearching {
			t.Fatalf("%s: expected search endpoint, got list=%d search=%d", key, len(api.listCalls), len(api.searchCalls))
		}
	}
}

func TestWhitespaceOnlyFiltersStayInListingMode(t *testing.T) {
	if IsSearching(domain.DocumentFilters{SearchTerm: "   ", Reviewer: " ", Categories: []string{" ", ""}}) {
		t.Fatalf("expected whitespace filters to keep listing mode")
	}
}

func TestFilterChangeResetsPageButPageChangeKeepsFilters(t *testing.T) {
	browser := NewDocumentBrowser(&documentSearchAPIFake{}, nil, 0)
	filters := domain.DocumentFilters{SearchTerm: "ata"}
	browser.SetFilters(filters)
	browser.SetPage(4)
	if browser.Page() != 4 || !browser.Filters().Equal(filters) {
		t.Fatalf("expected page 4 with untouched filters, got %d %+v", browser.Page(), browser.Filters())
	}

	browser.SetFilters(filters)
	if browser.Page() != 4 {
		t.Fatalf("expected unchanged filters to keep the page, got %d", browser.Page())
	}

	browser.SetFilters(domain.DocumentFilters{SearchTerm: "ata", GroupBy: domain.GroupBySector})
	if browser.Page() != 1 {
		t.Fatalf("expected filter change to reset page, got %d", browser.Page())
	}
}

func TestLoadCapturesAnnotationOnlyWhenSearching(t *testing.T) {
	api := &documentSearchAPIFake{page: domain.SearchPage{
		Page:     domain.Page[domain.DocumentSummary]{Count: 50, Results: []domain.DocumentSummary{{ID: 1}}},
		Mensagem: "1 resultado para ata",
	}}
	recorder := &browseRecorderFake{}
	browser := NewDocumentBrowser(api, recorder, 21)
	api.browser = browser

	result, err := browser.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Annotation != "" || result.PageCount != 3 {
		t.Fatalf("unexpected listing result %+v", result)
	}

	browser.SetFilters(domain.DocumentFilters{SearchTerm: "ata"})
	result, err = browser.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Annotation != "1 resultado para ata" {
		t.Fatalf("expected annotation, got %q", result.Annotation)
	}
	if !api.sawLoading || browser.Loading() {
		t.Fatalf("expected loading during fetch only")
	}
	if len(recorder.modes) != 2 || recorder.modes[0] != ModeListing || recorder.modes[1] != ModeSearching {
		t.Fatalf("unexpected recorded modes %v", recorder.modes)
	}
}

func TestFailedLoadClearsResultsAndResetsLoading(t *testing.T) {
	api := &documentSearchAPIFake{page: domain.SearchPage{
		Page: domain.Page[domain.DocumentSummary]{Count: 1, Results: []domain.DocumentSummary{{ID: 1}}},
	}}
	browser := NewDocumentBrowser(api, nil, 0)
	if _, err := browser.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	api.err = domain.WrapError(domain.ErrNetwork, "documents.list", errors.New("connection refused"))
	result, err := browser.Load(context.Background())
	if !domain.IsKind(err, domain.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if len(result.Documents) != 0 || len(browser.Result().Documents) != 0 {
		t.Fatalf("expected results cleared after failure")
	}
	if browser.Loading() {
		t.Fatalf("expected loading reset after failure")
	}
	if browser.Message() != domain.GenericFailureMessage {
		t.Fatalf("expected generic message, got %q", browser.Message())
	}
	if len(api.listCalls) != 2 {
		t.Fatalf("expected no automatic retry, got %d calls", len(api.listCalls))
	}
}

func TestBrowseGroupsFetchedPage(t *testing.T) {
	api := &documentSearchAPIFake{page: domain.SearchPage{
		Page: domain.Page[domain.DocumentSummary]{Count: 3, Results: []domain.DocumentSummary{
			{ID: 1, Enterprise: "B"}, {ID: 2, Enterprise: "A"},
		}},
	}}
	browser := NewDocumentBrowser(api, nil, 0)

	result, err := browser.Browse(context.Background(), domain.DocumentFilters{GroupBy: domain.GroupByEnterprise}, 1)
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if result.Mode != ModeListing {
		t.Fatalf("expected grouping alone to keep listing mode, got %s", result.Mode)
	}
	if len(result.Groups) != 2 || result.Groups[0].Label != "A" {
		t.Fatalf("unexpected groups %+v", result.Groups)
	}
}
