package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{name: "defaults", query: "", want: Params{Page: 1, PerPage: 20, Offset: 0}},
		{name: "explicit", query: "?page=3&per_page=10", want: Params{Page: 3, PerPage: 10, Offset: 20}},
		{name: "invalid values ignored", query: "?page=0&per_page=-2", want: Params{Page: 1, PerPage: 20, Offset: 0}},
		{name: "per_page capped", query: "?per_page=500", want: Params{Page: 1, PerPage: 20, Offset: 0}},
		{name: "garbage ignored", query: "?page=abc", want: Params{Page: 1, PerPage: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/packs"+tt.query, nil)
			assert.Equal(t, tt.want, FromRequest(r))
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2, 3}, Slice(items, Params{Page: 1, PerPage: 3, Offset: 0}))
	assert.Equal(t, []int{4, 5}, Slice(items, Params{Page: 2, PerPage: 3, Offset: 3}))
	assert.Empty(t, Slice(items, Params{Page: 3, PerPage: 3, Offset: 6}))
}

func TestNewResult(t *testing.T) {
	result := NewResult([]string{"a", "b"}, 7, Params{Page: 2, PerPage: 2})

	assert.Equal(t, 7, result.TotalCount)
	assert.Equal(t, 4, result.TotalPages)
	assert.True(t, result.HasNext)
	assert.True(t, result.HasPrev)

	last := NewResult([]string{"g"}, 7, Params{Page: 4, PerPage: 2})
	assert.False(t, last.HasNext)

	empty := NewResult[string](nil, 0, Params{Page: 1, PerPage: 2})
	assert.NotNil(t, empty.Data)
	assert.Zero(t, empty.TotalPages)
}
