package usecase

import "github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"

// DefaultPageSize matches the page size served by the document endpoints.
const DefaultPageSize = 21

// maxPlainPages is the largest page count rendered without ellipses:
// five visible pages plus the two anchors.
const maxPlainPages = 7

// PageCount returns ceil(total/pageSize).
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// PageWindow lays out the pagination bar. Up to maxPlainPages every page is
// listed; beyond that it shows the first page, the neighbours of current and
// the last page, with ellipses over the gaps.
func PageWindow(current, pageCount int) []domain.PageLink {
	if pageCount <= 0 {
		return nil
	}
	current = min(max(current, 1), pageCount)

	if pageCount <= maxPlainPages {
		links := make([]domain.PageLink, 0, pageCount)
		for n := 1; n <= pageCount; n++ {
			links = append(links, domain.PageLink{Number: n, Current: n == current})
		}
		return links
	}

	links := []domain.PageLink{{Number: 1, Current: current == 1}}
	start := max(2, current-1)
	end := min(pageCount-1, current+1)
	if start > 2 {
		links = append(links, domain.PageLink{Ellipsis: true})
	}
	for n := start; n <= end; n++ {
		links = append(links, domain.PageLink{Number: n, Current: n == current})
	}
	if end < pageCount-1 {
		links = append(links, domain.PageLink{Ellipsis: true})
	}
	return append(links, domain.PageLink{Number: pageCount, Current: current == pageCount})
}
