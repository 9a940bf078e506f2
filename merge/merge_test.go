package merge

import (
	"testing"

	"search-coordinator/domain"

	"github.com/stretchr/testify/assert"
)

func TestStringLists(t *testing.T) {
	tests := []struct {
		name      string
		primary   []string
		secondary []string
		limit     int
		want      []string
	}{
		{
			name:      "primary casing wins on normalized conflict",
			primary:   []string{"shoes", "bags"},
			secondary: []string{"Shoes", "hats"},
			limit:     10,
			want:      []string{"shoes", "bags", "hats"},
		},
		{
			name:      "entries trimmed and empties dropped",
			primary:   []string{"  shoes  ", "", "   "},
			secondary: []string{"bags"},
			limit:     10,
			want:      []string{"shoes", "bags"},
		},
		{
			name:      "truncated to limit",
			primary:   []string{"a", "b", "c"},
			secondary: []string{"d"},
			limit:     2,
			want:      []string{"a", "b"},
		},
		{
			name:      "zero limit is unbounded",
			primary:   []string{"a", "b"},
			secondary: []string{"c"},
			limit:     0,
			want:      []string{"a", "b", "c"},
		},
		{
			name:      "diacritic duplicates collapse",
			primary:   []string{"Café"},
			secondary: []string{"cafe", "latte"},
			limit:     10,
			want:      []string{"Café", "latte"},
		},
		{
			name:      "both empty",
			primary:   nil,
			secondary: nil,
			limit:     10,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StringLists(tt.primary, tt.secondary, tt.limit))
		})
	}
}

func TestStringListsIdempotent(t *testing.T) {
	list := []string{"shoes", "Shoes", "bags", "shoes "}

	once := StringLists(list, nil, 10)
	selfMerged := StringLists(list, list, 10)

	assert.Equal(t, once, selfMerged)
	assert.Equal(t, []string{"shoes", "bags"}, selfMerged)
}

func TestStringListsDoesNotMutateInputs(t *testing.T) {
	primary := []string{"  a  ", "b"}
	secondary := []string{"B", "c"}

	StringLists(primary, secondary, 10)

	assert.Equal(t, []string{"  a  ", "b"}, primary)
	assert.Equal(t, []string{"B", "c"}, secondary)
}

func TestByID(t *testing.T) {
	products := []domain.Product{
		{ID: 3, Name: "first three"},
		{ID: 1, Name: "one"},
		{ID: 3, Name: "second three"},
		{ID: 2, Name: "two"},
		{ID: 1, Name: "second one"},
	}

	got := ByID(products)

	assert.Len(t, got, 3)
	assert.Equal(t, "first three", got[0].Name)
	assert.Equal(t, "one", got[1].Name)
	assert.Equal(t, "two", got[2].Name)
}

func TestByIDEmpty(t *testing.T) {
	assert.Empty(t, ByID([]domain.Product{}))
}
