// Package query builds filtered, paginated listings over Data records.
package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 5
	MaxPerPage     = 100
)

// ListParams holds listing parameters exactly as the client sent them.
type ListParams struct {
	Page    string
	PerPage string
	Search  string
}

// Parse converts raw parameters into a filter and a page request.
// Empty values take their defaults; any non-integer value fails the whole
// request with domain.ErrInvalidPagination.
func (p ListParams) Parse() (DataFilter, PageRequest, error) {
	page, err := parseInt(p.Page, DefaultPage)
	if err != nil {
		return DataFilter{}, PageRequest{}, err
	}
	perPage, err := parseInt(p.PerPage, DefaultPerPage)
	if err != nil {
		return DataFilter{}, PageRequest{}, err
	}
	return NewDataFilter(p.Search), NewPageRequest(page, perPage), nil
}

func parseInt(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrInvalidPagination
	}
	return n, nil
}

// PageRequest is a normalised 1-based page selection.
type PageRequest struct {
	Page    int
	PerPage int
}

// NewPageRequest clamps page to >= 1 and perPage to [1, MaxPerPage],
// substituting DefaultPerPage for non-positive sizes.
func NewPageRequest(page, perPage int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return PageRequest{Page: page, PerPage: perPage}
}

// Offset is the number of matching rows that precede this page. It
// saturates at math.MaxInt for pages too large to address.
func (r PageRequest) Offset() int {
	if r.Page <= 1 || r.PerPage <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PerPage {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PerPage
}

// Page is one slice of an ordered listing.
type Page[T any] struct {
	Page       int
	PerPage    int
	TotalItems int64
	TotalPages int
	Items      []T
}

// NewPage assembles a page result. A page beyond the last one is valid and empty.
func NewPage[T any](req PageRequest, total int64, items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Page:       req.Page,
		PerPage:    req.PerPage,
		TotalItems: total,
		TotalPages: TotalPages(total, req.PerPage),
		Items:      items,
	}
}

// TotalPages is ceil(total / perPage).
func TotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Slice returns the part of an already filtered and ordered list that falls on req.
func Slice[T any](all []T, req PageRequest) []T {
	start := req.Offset()
	if start < 0 || start >= len(all) {
		return []T{}
	}
	end := len(all)
	if end-start > req.PerPage {
		end = start + req.PerPage
	}
	return all[start:end]
}
