// Package table computes the searchable, paginated table view. All
// filtering and pagination is local to the last fetched record set; nothing
// here ever triggers a fetch.
package table

import (
	"strings"

	"github.com/urmhq/urm/internal/store"
)

// PageSize is the fixed number of rows per page.
const PageSize = 10

// View is one computed page of the filtered record set.
type View struct {
	Rows     []store.Record
	Filtered int // records matching the query
	Total    int // records in the full set
	Page     int // 1-based current page, clamped into range
	Pages    int // total pages over the filtered set, at least 1
	Query    string
}

// Filter returns the records whose lowercase string form of any field value
// contains the lowercase query as a substring. An empty query returns the
// full set. Extra runtime fields participate in matching.
func Filter(records []store.Record, query string) []store.Record {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)
	var out []store.Record
	for _, rec := range records {
		for _, v := range rec {
			if strings.Contains(strings.ToLower(store.FormatValue(v)), q) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// Compute filters and paginates the record set. page is 1-based; values out
// of range clamp to the nearest valid page.
func Compute(records []store.Record, query string, page int) View {
	filtered := Filter(records, query)

	pages := (len(filtered) + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	lo := (page - 1) * PageSize
	hi := lo + PageSize
	if lo > len(filtered) {
		lo = len(filtered)
	}
	if hi > len(filtered) {
		hi = len(filtered)
	}

	return View{
		Rows:     filtered[lo:hi],
		Filtered: len(filtered),
		Total:    len(records),
		Page:     page,
		Pages:    pages,
		Query:    query,
	}
}

// HasPrev reports whether an earlier page exists.
func (v View) HasPrev() bool { return v.Page > 1 }

// HasNext reports whether a later page exists.
func (v View) HasNext() bool { return v.Page < v.Pages }
