package usecase

import (
	"strconv"
	"testing"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

func windowString(links []domain.PageLink) string {
	out := ""
	for i, link := range links {
		if i > 0 {
			out += " "
		}
		switch {
		case link.Ellipsis:
			out += "..."
		case link.Current:
			out += "[" + strconv.Itoa(link.Number) + "]"
		default:
			out += strconv.Itoa(link.Number)
		}
	}
	return out
}

func TestPageCount(t *testing.T) {
	cases := []struct{ total, size, want int }{
		{0, 21, 0},
		{1, 21, 1},
		{21, 21, 1},
		{22, 21, 2},
		{100, 21, 5},
		{10, 0, 0},
	}
	for _, tc := range cases {
		if got := PageCount(tc.total, tc.size); got != tc.want {
			t.Fatalf("PageCount(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		current, pages int
		want           string
	}{
		{1, 1, "[1]"},
		{3, 7, "1 2 [3] 4 5 6 7"},
		{1, 12, "[1] 2 ... 12"},
		{3, 12, "1 2 [3] 4 ... 12"},
		{6, 12, "1 ... 5 [6] 7 ... 12"},
		{11, 12, "1 ... 10 [11] 12"},
		{12, 12, "1 ... 11 [12]"},
		{40, 12, "1 ... 11 [12]"},
	}
	for _, tc := range cases {
		if got := windowString(PageWindow(tc.current, tc.pages)); got != tc.want {
			t.Fatalf("PageWindow(%d, %d) = %q, want %q", tc.current, tc.pages, got, tc.want)
		}
	}
	if PageWindow(1, 0) != nil {
		t.Fatalf("expected no window without pages")
	}
}
