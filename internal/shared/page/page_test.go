package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name       string
		number     int
		total      int64
		size       int
		wantPage   int
		wantPages  int
		wantOffset int
	}{
		{"first page", 1, 20, 8, 1, 3, 0},
		{"middle page", 2, 20, 8, 2, 3, 8},
		{"last partial page", 3, 20, 8, 3, 3, 16},
		{"beyond the end clamps to last", 99, 20, 8, 3, 3, 16},
		{"zero clamps to first", 0, 20, 8, 1, 3, 0},
		{"negative clamps to first", -5, 20, 8, 1, 3, 0},
		{"empty collection", 1, 0, 8, 1, 1, 0},
		{"exact multiple", 2, 16, 8, 2, 2, 8},
		{"manage page size", 2, 25, 10, 2, 3, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page, pages, offset := Clamp(c.number, c.total, c.size)
			assert.Equal(t, c.wantPage, page)
			assert.Equal(t, c.wantPages, pages)
			assert.Equal(t, c.wantOffset, offset)
		})
	}
}

func TestBuildWindowFlags(t *testing.T) {
	w := Build([]int{17, 18, 19, 20}, 3, 3, 20)
	assert.Equal(t, 4, len(w.Items))
	assert.False(t, w.HasNext, "last page reports no next page")
	assert.True(t, w.HasPrev)
	assert.Equal(t, int64(20), w.Total)

	first := Build([]int{1, 2}, 1, 3, 20)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)
}

func TestBuildNeverReturnsNilItems(t *testing.T) {
	w := Build[string](nil, 1, 1, 0)
	assert.NotNil(t, w.Items)
	assert.Empty(t, w.Items)
}
