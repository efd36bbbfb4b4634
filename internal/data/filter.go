package data

import "time"

// DefaultPageSize is used when a Filter asks for a page without a limit.
const DefaultPageSize = 10

// Filter narrows list and count queries. Zero values mean "no constraint".
type Filter struct {
	// Offset and Limit page the result. Limit 0 returns every row.
	Offset int
	Limit  int
	// Summary matches records whose summary contains the text, case-insensitively.
	Summary string
	// From and To bound the record date, inclusive.
	From time.Time
	To   time.Time
}

// Page returns a filter for the zero-based page of the given size.
func (f Filter) Page(page, size int) Filter {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	f.Offset = page * size
	f.Limit = size
	return f
}

// PageIndex returns the zero-based page the filter currently points at.
func (f Filter) PageIndex() int {
	if f.Limit <= 0 {
		return 0
	}
	return f.Offset / f.Limit
}

// PageCount returns how many pages of size Limit cover total rows.
func (f Filter) PageCount(total int) int {
	if f.Limit <= 0 || total <= 0 {
		return 1
	}
	return (total + f.Limit - 1) / f.Limit
}
