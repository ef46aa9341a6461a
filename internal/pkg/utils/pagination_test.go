package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 10, wantOffset: 0},
		{name: "explicit", query: "?page=3&limit=10", wantPage: 3, wantLimit: 10, wantOffset: 20},
		{name: "non numeric", query: "?page=abc&limit=xyz", wantPage: 1, wantLimit: 10, wantOffset: 0},
		{name: "zero clamps to one", query: "?page=0&limit=0", wantPage: 1, wantLimit: 1, wantOffset: 0},
		{name: "negative clamps to one", query: "?page=-4&limit=-2", wantPage: 1, wantLimit: 1, wantOffset: 0},
		{name: "limit capped", query: "?page=2&limit=1000", wantPage: 2, wantLimit: MaxPageSize, wantOffset: MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/history"+tt.query, nil)
			got := ParsePaginationParams(r)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("ParsePaginationParams() = %+v, want page=%d limit=%d offset=%d",
					got, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestNewPagination_PagesIsCeiling(t *testing.T) {
	if p := NewPagination(1, 10, 25); p.Pages != 3 {
		t.Errorf("NewPagination(25, 10).Pages = %d, want 3", p.Pages)
	}
	if p := NewPagination(1, 10, 0); p.Pages != 0 {
		t.Errorf("NewPagination(0, 10).Pages = %d, want 0", p.Pages)
	}

	for total := int64(1); total <= 60; total++ {
		for limit := 1; limit <= 12; limit++ {
			p := NewPagination(1, limit, total)
			want := int((total + int64(limit) - 1) / int64(limit))
			if p.Pages != want {
				t.Fatalf("NewPagination(total=%d, limit=%d).Pages = %d, want %d", total, limit, p.Pages, want)
			}
		}
	}
}

func TestParsePaginationParams_HugePage(t *testing.T) {
	queries := []string{
		"?page=9223372036854775807&limit=10",
		"?page=922337203685477581&limit=100",
		"?page=9223372036854775807&limit=1",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			got := ParsePaginationParams(httptest.NewRequest("GET", "/history"+q, nil))
			if got.Page < 1 || got.Offset < 0 {
				t.Fatalf("ParsePaginationParams() = %+v, want positive page and non-negative offset", got)
			}
			if got.Offset != (got.Page-1)*got.Limit {
				t.Errorf("offset %d does not match page %d and limit %d", got.Offset, got.Page, got.Limit)
			}
		})
	}
}
