package repository

import "gorm.io/gorm"

// Query is a filtered, ordered result set. Count and Page run independently
// against the same filter, so a caller can fetch one slice and the total row
// count without rebuilding the search.
type Query[T any] struct {
	tx *gorm.DB
}

func newQuery[T any](tx *gorm.DB) Query[T] {
	// Session makes the scope reusable across Count and Find.
	return Query[T]{tx: tx.Session(&gorm.Session{})}
}

// Count returns the total number of rows matching the filter, ignoring
// pagination.
func (q Query[T]) Count() (int64, error) {
	var n int64
	err := q.tx.Count(&n).Error
	return n, err
}

// Page returns the slice of rows at [offset, offset+limit).
func (q Query[T]) Page(offset, limit int) ([]T, error) {
	var out []T
	err := q.tx.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}
