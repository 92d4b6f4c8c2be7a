package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinOrDefault(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		def   string
		want  string
	}{
		{name: "nil slice returns default", items: nil, def: "(none)", want: "(none)"},
		{name: "empty slice with empty default", items: []string{}, def: "", want: ""},
		{name: "single item", items: []string{"apple"}, def: "-", want: "apple"},
		{name: "multiple items joined with comma", items: []string{"apple", "fig"}, def: "-", want: "apple, fig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinOrDefault(tt.items, tt.def))
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{count: 0, want: "rows"},
		{count: 1, want: "row"},
		{count: 2, want: "rows"},
		{count: -1, want: "rows"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Pluralize(tt.count, "row", "rows"), "count %d", tt.count)
	}
}

func TestCountNoun(t *testing.T) {
	assert.Equal(t, "0 rows", CountNoun(0, "row", "rows"))
	assert.Equal(t, "1 row", CountNoun(1, "row", "rows"))
	assert.Equal(t, "25 rows", CountNoun(25, "row", "rows"))
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"menu", "menu", 0},
		{"tabel", "table", 2},       // transposition (2 edits)
		{"menu", "menus", 1},        // insertion
		{"menus", "menu", 1},        // deletion
		{"menu", "Menu", 1},         // case difference
		{"kitten", "sitting", 3},    // classic example
		{"flaw", "lawn", 2},         // substitution + deletion
		{"über", "uber", 1},         // runes, not bytes
	}

	for _, tt := range tests {
		t.Run(tt.a+"->"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.a, tt.b))
		})
	}
}

func TestSuggestSimilar(t *testing.T) {
	candidates := []string{"dropdown", "select", "menu", "popover", "notify", "table"}

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "missing char", input: "dropdwn", expected: []string{"dropdown"}},
		{name: "transposed chars", input: "tabel", expected: []string{"table"}},
		{name: "extra char", input: "menus", expected: []string{"menu"}},
		{name: "case insensitive", input: "POPOVER", expected: []string{"popover"}},
		{name: "exact match returns it", input: "select", expected: []string{"select"}},
		{name: "no close match returns nil", input: "carousel", expected: nil},
		{name: "empty input returns nil", input: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SuggestSimilar(tt.input, candidates, 3))
		})
	}
}

func TestSuggestSimilar_ClosestFirst(t *testing.T) {
	got := SuggestSimilar("fog", []string{"frog", "fig", "fog"}, 3)
	assert.Equal(t, []string{"fog", "frog", "fig"}, got)
}

func TestSuggestSimilar_EmptyCandidates(t *testing.T) {
	assert.Nil(t, SuggestSimilar("menu", nil, 3))
	assert.Nil(t, SuggestSimilar("menu", []string{}, 3))
}
