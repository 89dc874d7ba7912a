package query

import (
	"errors"
	"math"
	"testing"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

func TestListParams_Parse_Defaults(t *testing.T) {
	filter, page, err := ListParams{Search: "  al  "}.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 || page.PerPage != 5 {
		t.Fatalf("expected defaults 1/5, got %d/%d", page.Page, page.PerPage)
	}
	if filter.Search != "al" {
		t.Fatalf("expected trimmed search, got %q", filter.Search)
	}
}

func TestListParams_Parse_NonInteger(t *testing.T) {
	cases := []ListParams{
		{Page: "one"},
		{PerPage: "5x"},
		{Page: "1.5"},
	}
	for _, p := range cases {
		if _, _, err := p.Parse(); !errors.Is(err, domain.ErrInvalidPagination) {
			t.Errorf("%+v: expected ErrInvalidPagination, got %v", p, err)
		}
	}
}

func TestNewPageRequest_Clamps(t *testing.T) {
	if r := NewPageRequest(0, 0); r.Page != 1 || r.PerPage != DefaultPerPage {
		t.Fatalf("unexpected clamp result: %+v", r)
	}
	if r := NewPageRequest(3, 1000); r.PerPage != MaxPerPage {
		t.Fatalf("expected per_page capped at %d, got %d", MaxPerPage, r.PerPage)
	}
	if r := NewPageRequest(3, 10); r.Offset() != 20 {
		t.Fatalf("expected offset 20, got %d", r.Offset())
	}
}

func TestTotalPages_IsCeiling(t *testing.T) {
	for total := int64(0); total <= 40; total++ {
		for perPage := 1; perPage <= 12; perPage++ {
			want := 0
			for covered := int64(0); covered < total; covered += int64(perPage) {
				want++
			}
			if got := TotalPages(total, perPage); got != want {
				t.Fatalf("TotalPages(%d, %d) = %d, want %d", total, perPage, got, want)
			}
		}
	}
}

func TestSlice_BeyondLastPageIsEmpty(t *testing.T) {
	all := []int{1, 2, 3, 4, 5, 6, 7}

	if got := Slice(all, NewPageRequest(2, 5)); len(got) != 2 || got[0] != 6 {
		t.Fatalf("unexpected second page: %v", got)
	}
	got := Slice(all, NewPageRequest(9, 5))
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestNewPage_EmptyItems(t *testing.T) {
	p := NewPage[int](NewPageRequest(4, 5), 12, nil)
	if p.Items == nil || len(p.Items) != 0 {
		t.Fatalf("expected empty items")
	}
	if p.TotalPages != 3 || p.TotalItems != 12 || p.Page != 4 {
		t.Fatalf("unexpected page: %+v", p)
	}
}

func TestOffset_SaturatesOnHugePage(t *testing.T) {
	_, req, err := ListParams{Page: "4611686018427387904", PerPage: "3"}.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := req.Offset(); got != math.MaxInt {
		t.Fatalf("expected saturated offset, got %d", got)
	}
	if got := Slice([]int{1, 2, 3, 4}, req); len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}

	if got := (PageRequest{Page: 3, PerPage: 5}).Offset(); got != 10 {
		t.Fatalf("expected offset 10, got %d", got)
	}
}

func TestSlice_LastPartialPage(t *testing.T) {
	got := Slice([]int{1, 2, 3, 4, 5, 6, 7}, NewPageRequest(2, 5))
	if len(got) != 2 || got[0] != 6 || got[1] != 7 {
		t.Fatalf("unexpected page: %v", got)
	}
}
