package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	p := PaginationOptions{}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)

	p = PaginationOptions{Page: -3, PageSize: 500}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)

	p = PaginationOptions{Page: 4, PageSize: 25}.Normalize()
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, 25, p.PageSize)
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, PaginationOptions{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 60, PaginationOptions{Page: 4, PageSize: 20}.Offset())
}

func TestNewPaginated(t *testing.T) {
	page := NewPaginated([]string{"a", "b"}, 2, 2, 5)
	assert.Equal(t, 2, page.Page.Number)
	assert.Equal(t, 5, page.Page.Total)
	assert.Equal(t, 3, page.Page.Pages)
	assert.False(t, page.Empty)

	empty := NewPaginated([]string{}, 1, 20, 0)
	assert.True(t, empty.Empty)
	assert.Equal(t, 0, empty.Page.Pages)
}
