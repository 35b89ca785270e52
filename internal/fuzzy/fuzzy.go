// Package fuzzy maps free-form strings onto a closed set of symbols.
package fuzzy

import (
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinSimilarity is the Jaro-Winkler score below which Match falls
// back.
const DefaultMinSimilarity = 0.8

// Index is a trigram index over an ordered symbol list. It is immutable
// once built and safe for concurrent use.
type Index struct {
	symbols    []string
	normalized []string
	trigrams   map[string][]int
	metric     *metrics.JaroWinkler
}

// NewIndex indexes symbols. Declaration order is kept for tie-breaking.
func NewIndex(symbols []string) *Index {
	idx := &Index{
		symbols:    append([]string(nil), symbols...),
		normalized: make([]string, len(symbols)),
		trigrams:   make(map[string][]int),
		metric:     metrics.NewJaroWinkler(),
	}
	for i, sym := range symbols {
		n := Normalize(sym)
		idx.normalized[i] = n
		for _, tg := range trigrams(n) {
			if ids := idx.trigrams[tg]; len(ids) == 0 || ids[len(ids)-1] != i {
				idx.trigrams[tg] = append(ids, i)
			}
		}
	}
	return idx
}

// Symbols returns the indexed symbols in declaration order.
func (idx *Index) Symbols() []string {
	return append([]string(nil), idx.symbols...)
}

// Match returns the symbol most similar to query, or fallback when no
// candidate scores at least minSimilarity. Candidates must share a trigram
// with the query.
func (idx *Index) Match(query, fallback string, minSimilarity float64) string {
	q := Normalize(query)
	if q == "" {
		return fallback
	}

	candidates := make(map[int]struct{})
	for _, tg := range trigrams(q) {
		for _, i := range idx.trigrams[tg] {
			candidates[i] = struct{}{}
		}
	}

	best, bestScore := -1, 0.0
	for i := range idx.symbols {
		if _, ok := candidates[i]; !ok {
			continue
		}
		score := strutil.Similarity(q, idx.normalized[i], idx.metric)
		// strict comparison keeps the earliest declared symbol on ties
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < minSimilarity {
		return fallback
	}
	return idx.symbols[best]
}

// Normalize decomposes s, drops combining marks, folds case and keeps only
// letters and digits.
func Normalize(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	// a Caser is stateful, so each call gets its own
	folded := cases.Fold().String(b.String())

	b.Reset()
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// trigrams returns the space-padded trigrams of s.
func trigrams(s string) []string {
	if s == "" {
		return nil
	}
	runes := []rune(" " + s + " ")
	out := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		out = append(out, string(runes[i:i+3]))
	}
	return out
}
