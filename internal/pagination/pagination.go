// Package pagination slices ordered result lists into fixed-size pages.
package pagination

// PageSize is the number of items returned per page.
const PageSize = 10

// Paginate returns the items on the given 0-based page together with the
// index of the last page that holds any items. A page past the end, or a
// negative page, yields an empty (non-nil) slice.
func Paginate[T any](items []T, page int) ([]T, int) {
	lastPage := LastPage(len(items))

	if page < 0 || page > lastPage || len(items) == 0 {
		return []T{}, lastPage
	}

	start := page * PageSize
	end := min(start+PageSize, len(items))

	return items[start:end], lastPage
}

// LastPage returns ceil(total/PageSize)-1, or 0 when there is nothing to page.
func LastPage(total int) int {
	if total <= 0 {
		return 0
	}
	return (total+PageSize-1)/PageSize - 1
}
