package domain

import (
	"strconv"
	"strings"
)

// Envelope is the response wrapper used by every non-list endpoint.
type Envelope[T any] struct {
	Sucesso  bool   `json:"sucesso"`
	Mensagem string `json:"mensagem"`
	Data     T      `json:"data"`
}

// Page is the paginated response of list endpoints.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// SearchPage is a page of documents together with the server annotation
// (for example "3 resultados para X").
type SearchPage struct {
	Page[DocumentSummary]
	Mensagem string `json:"mensagem,omitempty"`
}

type GroupBy string

const (
	GroupByNone       GroupBy = ""
	GroupByEnterprise GroupBy = "enterprise"
	GroupBySector     GroupBy = "sector"
	GroupByBoth       GroupBy = "both"
)

func ParseGroupBy(raw string) (GroupBy, error) {
	switch GroupBy(strings.ToLower(strings.TrimSpace(raw))) {
	case GroupByNone, "none":
		return GroupByNone, nil
	case GroupByEnterprise:
		return GroupByEnterprise, nil
	case GroupBySector:
		return GroupBySector, nil
	case GroupByBoth:
		return GroupByBoth, nil
	default:
		return GroupByNone, &ValidationError{Field: "groupBy", Message: "agrupamento inválido: " + raw}
	}
}

// DocumentFilters is the client-side filter bag of the document list.
// Page is kept separately by the browser; changing any field here returns to page one.
type DocumentFilters struct {
	SearchTerm  string
	IsReviewed  *bool
	StatusID    *ClassificationStatus
	PrivacityID *Privacity
	Reviewer    string
	Categories  []string
	GroupBy     GroupBy
}

// Active reports whether any filter narrows the listing, which selects the search endpoint.
// Grouping is applied after the fetch and does not count.
func (f DocumentFilters) Active() bool {
	return strings.TrimSpace(f.SearchTerm) != "" ||
		f.IsReviewed != nil ||
		f.StatusID != nil ||
		f.PrivacityID != nil ||
		strings.TrimSpace(f.Reviewer) != "" ||
		strings.TrimSpace(f.CategoriesParam()) != ""
}

// CategoriesParam joins category names the way the search endpoint expects.
func (f DocumentFilters) CategoriesParam() string {
	names := make([]string, 0, len(f.Categories))
	for _, name := range f.Categories {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ";")
}

func (f DocumentFilters) Equal(other DocumentFilters) bool {
	return f.SearchTerm == other.SearchTerm &&
		equalPtr(f.IsReviewed, other.IsReviewed) &&
		equalPtr(f.StatusID, other.StatusID) &&
		equalPtr(f.PrivacityID, other.PrivacityID) &&
		f.Reviewer == other.Reviewer &&
		f.CategoriesParam() == other.CategoriesParam() &&
		f.GroupBy == other.GroupBy
}

// ParseDocumentFilters converts raw form values (keys as sent by the search form:
// searchTerm, isReviewed, statusId, privacityId, reviewer, categories, groupBy)
// into typed filters. Empty values and the "null" sentinel leave a filter unset.
func ParseDocumentFilters(raw map[string]string) (DocumentFilters, error) {
	var f DocumentFilters
	f.SearchTerm = raw["searchTerm"]
	if v := strings.TrimSpace(raw["isReviewed"]); v != "" && !strings.EqualFold(v, "null") {
		reviewed, err := strconv.ParseBool(v)
		if err != nil {
			return DocumentFilters{}, &ValidationError{Field: "isReviewed", Message: "valor inválido: " + v}
		}
		f.IsReviewed = &reviewed
	}
	f.StatusID = ParseStatus(raw["statusId"])
	f.PrivacityID = ParsePrivacity(raw["privacityId"])
	f.Reviewer = raw["reviewer"]
	if v := strings.TrimSpace(raw["categories"]); v != "" {
		f.Categories = strings.Split(v, ";")
	}
	groupBy, err := ParseGroupBy(raw["groupBy"])
	if err != nil {
		return DocumentFilters{}, err
	}
	f.GroupBy = groupBy
	return f, nil
}

// DocumentGroup is a page-local bucket of results. Count only reflects the
// documents of the fetched page, never a cross-page total.
type DocumentGroup struct {
	Label     string            `json:"label"`
	Count     int               `json:"count"`
	Documents []DocumentSummary `json:"documents"`
}

// PageLink is one entry of the pagination bar; Ellipsis entries carry no number.
type PageLink struct {
	Number   int  `json:"number,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}
