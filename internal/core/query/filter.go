package query

import (
	"strconv"
	"strings"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// DataFilter selects Data records by free-text search.
//
// A record matches when its name contains Search case-insensitively, or when
// its age rendered in decimal contains Search ("5" matches 5, 15, 50, 51).
type DataFilter struct {
	Search string
}

func NewDataFilter(search string) DataFilter {
	return DataFilter{Search: strings.TrimSpace(search)}
}

// Active reports whether the filter restricts anything.
func (f DataFilter) Active() bool {
	return f.Search != ""
}

// Matches evaluates the filter against one record.
func (f DataFilter) Matches(d domain.Data) bool {
	if !f.Active() {
		return true
	}
	if strings.Contains(strings.ToLower(d.Name), strings.ToLower(f.Search)) {
		return true
	}
	return strings.Contains(strconv.Itoa(d.Age), f.Search)
}
