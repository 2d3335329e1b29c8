package impl

import (
	"testing"

	"cafefinder/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	cafes := []entity.Cafe{
		{ID: "1", Name: "Indian Coffee House", Area: "MP Nagar"},
		{ID: "2", Name: "Brew Lab", Area: "New Market"},
		{ID: "3", Name: "Chai Point", Area: "Arera Colony", Address: "Coffee Lane"},
		{ID: "4", Name: "Roastery", Area: "Coffee Hills"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "substring of name", query: "coffee", want: []string{"1", "4"}},
		{name: "case insensitive", query: "BREW", want: []string{"2"}},
		{name: "matches area", query: "market", want: []string{"2"}},
		{name: "trims whitespace", query: "  chai ", want: []string{"3"}},
		{name: "address is not searched", query: "lane", want: []string{}},
		{name: "no match", query: "tea house", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Filter(cafes, tt.query)
			ids := make([]string, 0, len(got))
			for _, cafe := range got {
				ids = append(ids, cafe.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_EmptyQueryIsIdentity(t *testing.T) {
	t.Parallel()

	cafes := []entity.Cafe{{ID: "b"}, {ID: "a"}, {ID: "c"}}

	for _, query := range []string{"", "   ", "\t"} {
		got := Filter(cafes, query)
		assert.Equal(t, cafes, got)
		assert.Same(t, &cafes[0], &got[0], "identity must not copy")
	}
}
