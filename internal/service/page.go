package service

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page is one slice of a larger ordered result set, together with the total
// row count ignoring pagination.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}

// normalizePage clamps the requested page index and size: negative pages
// become 0, a size of zero or less falls back to the default, and oversized
// requests are capped.
func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	} else if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
