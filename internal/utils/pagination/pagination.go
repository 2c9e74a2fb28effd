// Package pagination implements fixed-size page-number pagination for
// repository listings.
package pagination

// DefaultPageSize is the fixed page size used by ledger listings.
const DefaultPageSize = 10

// Page describes one window of a paginated listing.
type Page struct {
	Number     int // 1-based, clamped into the valid range
	Size       int
	Offset     int // Row offset for the store query
	TotalPages int
	TotalCount int
}

// ClampPage normalizes a requested page number against a total row count.
// The result is always in [1, ceil(totalCount/pageSize)]; an empty listing
// still has one (empty) page.
func ClampPage(requested, totalCount, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return Page{
		Number:     number,
		Size:       pageSize,
		Offset:     (number - 1) * pageSize,
		TotalPages: totalPages,
		TotalCount: totalCount,
	}
}
