package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenOverlapScore(t *testing.T) {
	q := toTokenSet("gopher burrows rivers")
	assert.Equal(t, 2, tokenOverlapScore(q, "Gopher tunnels run beside rivers."))
	assert.Equal(t, 0, tokenOverlapScore(q, "Completely unrelated sentence."))
	// Repeated matches in one sentence count once.
	assert.Equal(t, 1, tokenOverlapScore(q, "rivers rivers rivers"))
}

func TestHighlightBestSentence(t *testing.T) {
	text := "Weather varies a lot. Gophers dig burrows near rivers. Nothing else matters."
	out := highlightBestSentence(text, "gopher burrows rivers")
	assert.Contains(t, out, "Gophers dig burrows near rivers.")
	assert.Contains(t, out, "Weather varies a lot.")
}

func TestHighlightBestSentenceNoQueryTokens(t *testing.T) {
	text := "One sentence. Another sentence."
	assert.Equal(t, "One sentence. Another sentence.", highlightBestSentence(text, "1234"))
}

func TestHighlightBestSentenceEmptyText(t *testing.T) {
	assert.Equal(t, "   ", highlightBestSentence("   ", "query"))
}
