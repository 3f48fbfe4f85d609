// Package paginator slices ordered collections into fixed-size pages.
package paginator

// PerPage is the number of posts shown on every list page.
const PerPage = 10

// A Page is one fixed-size window over an ordered collection.
type Page[T any] struct {
	Items       []T
	Number      int
	Count       int
	HasNext     bool
	HasPrevious bool
}

// Paginate returns the requested page of items. Items are consumed in their
// given order; callers supply them newest-first. Page numbers beyond the
// last page clamp to the last page, numbers below 1 clamp to the first. An
// empty collection yields a single empty page.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	count := (len(items) + pageSize - 1) / pageSize
	if count < 1 {
		count = 1
	}
	if page < 1 {
		page = 1
	}
	if page > count {
		page = count
	}
	lo := (page - 1) * pageSize
	hi := lo + pageSize
	if lo > len(items) {
		lo = len(items)
	}
	if hi > len(items) {
		hi = len(items)
	}
	return Page[T]{
		Items:       items[lo:hi],
		Number:      page,
		Count:       count,
		HasNext:     page < count,
		HasPrevious: page > 1,
	}
}
