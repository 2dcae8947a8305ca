package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		total int
		want  int
	}{
		{"empty list stays on first page", 3, 0, 1},
		{"negative page", -2, 25, 1},
		{"inside range", 2, 25, 2},
		{"past the end", 9, 25, 3},
		{"exact multiple", 3, 30, 3},
		{"one past exact multiple", 4, 30, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.page, tt.total, PageSize))
		})
	}
}

func TestSliceLastPageLength(t *testing.T) {
	for _, n := range []int{1, 9, 10, 11, 25, 40} {
		items := seq(n)
		last := TotalPages(n, PageSize)

		res := Slice(items, last, PageSize)

		want := n % PageSize
		if want == 0 {
			want = PageSize
		}
		assert.Len(t, res.Items, want, "n=%d", n)
		assert.Equal(t, last, res.Pagination.CurrentPage)
		assert.False(t, res.Pagination.HasNext)
	}
}

func TestSliceNeverExceedsPageSize(t *testing.T) {
	items := seq(57)
	for page := -1; page <= 8; page++ {
		res := Slice(items, page, PageSize)
		assert.LessOrEqual(t, len(res.Items), PageSize)
		assert.NotEmpty(t, res.Items)
	}
}

func TestSliceMiddlePage(t *testing.T) {
	res := Slice(seq(25), 2, PageSize)

	assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, res.Items)
	assert.Equal(t, int64(25), res.Pagination.Total)
	assert.Equal(t, 3, res.Pagination.TotalPages)
	assert.True(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)
}

func TestSliceEmpty(t *testing.T) {
	res := Slice([]string{}, 4, PageSize)

	assert.Empty(t, res.Items)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
	assert.Equal(t, 1, res.Pagination.TotalPages)
}

func TestPaginationParamsValidate(t *testing.T) {
	p := DefaultPagination()
	assert.Equal(t, 1, p.Page)

	for in, want := range map[int]int{-4: 1, 0: 1, 1: 1, 7: 7} {
		p := &PaginationParams{Page: in}
		p.Validate()
		assert.Equal(t, want, p.Page, "page %d", in)
	}
}
