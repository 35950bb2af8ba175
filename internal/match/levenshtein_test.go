package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"Text", "Text", 0},
		{"Text", "Txt", 1},
		{"Txt", "Text", 1},
		{"Titel", "Title", 2},
		{"kitten", "sitting", 3},
		{"Text", "text", 1},
		{"größe", "grösse", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("width", "width"), 1e-9)
	assert.InDelta(t, 0.8, Similarity("titl", "title"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, Similarity("a", "ab"), Similarity("ab", "a"), 1e-9)
}
