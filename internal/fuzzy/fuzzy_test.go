package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ACTIVE", "active"},
		{"Café", "cafe"},
		{"not_applicable", "notapplicable"},
		{"Ｆｕｌｌ-Width É", "fullwidthe"},
		{"  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestMatch(t *testing.T) {
	idx := NewIndex([]string{"ACTIVE", "INACTIVE", "UNKNOWN"})

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"exact", "ACTIVE", "ACTIVE"},
		{"case insensitive", "inactive", "INACTIVE"},
		{"typo", "actve", "ACTIVE"},
		{"punctuation ignored", "un-known", "UNKNOWN"},
		{"no shared trigram", "zzzz", "UNKNOWN"},
		{"empty query", "", "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.Match(tt.query, "UNKNOWN", DefaultMinSimilarity))
		})
	}
}

func TestMatch_Diacritics(t *testing.T) {
	idx := NewIndex([]string{"CAFE", "TEA"})
	assert.Equal(t, "CAFE", idx.Match("café", "", DefaultMinSimilarity))
}

func TestMatch_ThresholdFallsBack(t *testing.T) {
	idx := NewIndex([]string{"ACTIVE"})
	assert.Equal(t, "none", idx.Match("actve", "none", 0.999))
}

func TestMatch_TieBreaksByDeclarationOrder(t *testing.T) {
	idx := NewIndex([]string{"AB_C", "ABC"})
	assert.Equal(t, "AB_C", idx.Match("abc", "", DefaultMinSimilarity))

	idx = NewIndex([]string{"ABC", "AB_C"})
	assert.Equal(t, "ABC", idx.Match("abc", "", DefaultMinSimilarity))
}

func TestIndex_SymbolsCopied(t *testing.T) {
	in := []string{"A", "B"}
	idx := NewIndex(in)
	in[0] = "Z"
	assert.Equal(t, []string{"A", "B"}, idx.Symbols())
}
