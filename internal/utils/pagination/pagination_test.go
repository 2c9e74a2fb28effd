package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage_Defaults(t *testing.T) {
	p := ClampPage(1, 25, DefaultPageSize)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 25, p.TotalCount)
}

func TestClampPage_BelowRange(t *testing.T) {
	p := ClampPage(0, 25, DefaultPageSize)
	assert.Equal(t, 1, p.Number)

	p = ClampPage(-3, 25, DefaultPageSize)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 0, p.Offset)
}

func TestClampPage_AboveRange(t *testing.T) {
	p := ClampPage(99, 25, DefaultPageSize)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, 20, p.Offset)
}

func TestClampPage_EmptyListing(t *testing.T) {
	p := ClampPage(5, 0, DefaultPageSize)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 0, p.Offset)
}

func TestClampPage_ExactBoundary(t *testing.T) {
	p := ClampPage(2, 20, DefaultPageSize)
	assert.Equal(t, 2, p.Number)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 10, p.Offset)
}

func TestClampPage_BadPageSize(t *testing.T) {
	p := ClampPage(1, 5, 0)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Equal(t, 1, p.TotalPages)
}
