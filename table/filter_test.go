package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	rows := Normalize(people())

	tests := []struct {
		name  string
		text  string
		names []string
	}{
		{"empty matches all", "", []string{"Alice", "Bob"}},
		{"substring", "ali", []string{"Alice"}},
		{"case insensitive", "BOB", []string{"Bob"}},
		{"number field", "25", []string{"Bob"}},
		{"shared letter", "b", []string{"Bob"}},
		{"no match", "carol", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.text, rows)
			assert.Equal(t, tt.names, keysOf(got, "name"))
		})
	}
}

func TestFilterExample(t *testing.T) {
	rows := Normalize(people())
	got := Filter("ali", rows)
	assert.Equal(t, []Row{{"name": StringCell("Alice"), "age": NumberCell(30)}}, got)
}

func TestFilterEmptyReturnsSameView(t *testing.T) {
	rows := Normalize(people())
	got := Filter("", rows)
	assert.Len(t, got, len(rows))
	assert.Same(t, &rows[0], &got[0])
}

func TestFilterDoesNotMutate(t *testing.T) {
	rows := Normalize(people())
	_ = Filter("bob", rows)
	assert.Equal(t, []string{"Alice", "Bob"}, keysOf(rows, "name"))
}

func TestMatchSerializedValues(t *testing.T) {
	row := Normalize([]map[string]any{{"tags": []string{"Red", "Green"}}})[0]
	assert.True(t, Match("green", row))
	assert.True(t, Match(`"red"`, row))
	assert.False(t, Match("blue", row))
}
