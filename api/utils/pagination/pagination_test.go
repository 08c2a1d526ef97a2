package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateSplitsItemsAcrossPages(t *testing.T) {
	page := Paginate(12, 10, 1)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, 10, page.Limit)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrev)

	page = Paginate(12, 10, 2)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 10, page.Offset)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestPaginateClampsOutOfRangePages(t *testing.T) {
	// Past the end falls back to the last page, not an error.
	page := Paginate(12, 10, 3)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 10, page.Offset)

	page = Paginate(12, 10, 0)
	assert.Equal(t, 1, page.Number)

	page = Paginate(12, 10, -5)
	assert.Equal(t, 1, page.Number)
}

func TestPaginateEmptyListingHasOnePage(t *testing.T) {
	page := Paginate(0, 10, 1)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)

	page = Paginate(0, 10, 7)
	assert.Equal(t, 1, page.Number)
}

func TestPaginateExactMultiple(t *testing.T) {
	page := Paginate(20, 10, 2)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNext)
}
