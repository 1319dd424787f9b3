package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeItems(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		page     int
		wantLen  int
		wantLast int
		first    int
	}{
		{name: "empty", total: 0, page: 0, wantLen: 0, wantLast: 0},
		{name: "partial first page", total: 4, page: 0, wantLen: 4, wantLast: 0, first: 0},
		{name: "exact page", total: 10, page: 0, wantLen: 10, wantLast: 0, first: 0},
		{name: "one over", total: 11, page: 1, wantLen: 1, wantLast: 1, first: 10},
		{name: "middle page", total: 35, page: 2, wantLen: 10, wantLast: 3, first: 20},
		{name: "last partial page", total: 35, page: 3, wantLen: 5, wantLast: 3, first: 30},
		{name: "past the end", total: 35, page: 4, wantLen: 0, wantLast: 3},
		{name: "far past the end", total: 4, page: 1000, wantLen: 0, wantLast: 0},
		{name: "page times size overflows", total: 25, page: 1844674407370955162, wantLen: 0, wantLast: 2},
		{name: "max int page", total: 25, page: math.MaxInt, wantLen: 0, wantLast: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, last := Paginate(makeItems(tt.total), tt.page)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantLast, last)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.first, got[0])
			}
		})
	}
}

func TestPaginateOutOfRangeKeepsLastPage(t *testing.T) {
	items := makeItems(23)

	_, lastFirst := Paginate(items, 0)
	got, lastBeyond := Paginate(items, 7)

	assert.Empty(t, got)
	assert.Equal(t, lastFirst, lastBeyond)
}

func TestPaginateNegativePage(t *testing.T) {
	got, last := Paginate(makeItems(12), -1)
	assert.Empty(t, got)
	assert.Equal(t, 1, last)
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, 0, LastPage(0))
	assert.Equal(t, 0, LastPage(1))
	assert.Equal(t, 0, LastPage(10))
	assert.Equal(t, 1, LastPage(11))
	assert.Equal(t, 9, LastPage(100))
}
