package paginator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginateSplitsThirteenIntoTenAndThree(t *testing.T) {
	assert := assert.New(t)
	items := seq(13)

	first := Paginate(items, PerPage, 1)
	assert.Len(first.Items, 10)
	assert.Equal(1, first.Number)
	assert.Equal(2, first.Count)
	assert.True(first.HasNext)
	assert.False(first.HasPrevious)
	assert.Equal(0, first.Items[0])

	second := Paginate(items, PerPage, 2)
	assert.Len(second.Items, 3)
	assert.Equal(2, second.Number)
	assert.False(second.HasNext)
	assert.True(second.HasPrevious)
	assert.Equal(10, second.Items[0])
}

func TestPaginatePageCountAndCoverage(t *testing.T) {
	assert := assert.New(t)
	for _, pageSize := range []int{1, 3, 10} {
		for n := 0; n <= 25; n++ {
			items := seq(n)
			wantCount := (n + pageSize - 1) / pageSize
			if wantCount < 1 {
				wantCount = 1
			}
			total := 0
			page := Paginate(items, pageSize, 1)
			assert.Equal(wantCount, page.Count, "n=%d pageSize=%d", n, pageSize)
			for i := 1; i <= page.Count; i++ {
				total += len(Paginate(items, pageSize, i).Items)
			}
			assert.Equal(n, total, "n=%d pageSize=%d", n, pageSize)
		}
	}
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	assert := assert.New(t)
	items := seq(13)

	last := Paginate(items, PerPage, 99)
	assert.Equal(2, last.Number)
	assert.Len(last.Items, 3)

	first := Paginate(items, PerPage, -4)
	assert.Equal(1, first.Number)
	assert.Len(first.Items, 10)
}

func TestPaginateEmpty(t *testing.T) {
	assert := assert.New(t)
	page := Paginate([]int(nil), PerPage, 1)
	assert.Empty(page.Items)
	assert.Equal(1, page.Number)
	assert.Equal(1, page.Count)
	assert.False(page.HasNext)
	assert.False(page.HasPrevious)
}
