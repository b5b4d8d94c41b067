package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webrag/internal/domain"
)

func makeWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%c%c%c", 'a'+i/676%26, 'a'+i/26%26, 'a'+i%26)
	}
	return words
}

func testDoc(words []string) domain.Document {
	return domain.Document{ID: "doc1", URL: "https://example.com/a", Text: strings.Join(words, " ")}
}

func TestChunkWindowCount(t *testing.T) {
	// ceil((L-O)/(W-O)) windows for L words
	cases := []struct {
		words, window, overlap, want int
	}{
		{600, 500, 50, 2},
		{500, 500, 50, 1},
		{499, 500, 50, 1},
		{501, 500, 50, 2},
		{950, 500, 50, 2},
		{951, 500, 50, 3},
		{100, 500, 50, 1},
		{10, 4, 2, 4},
	}
	for _, tc := range cases {
		c := NewWordChunker(tc.window, tc.overlap)
		chunks, err := c.Chunk(testDoc(makeWords(tc.words)))
		require.NoError(t, err)
		assert.Equalf(t, tc.want, len(chunks), "L=%d W=%d O=%d", tc.words, tc.window, tc.overlap)
	}
}

func TestChunkOverlapAndReconstruction(t *testing.T) {
	words := makeWords(600)
	c := NewWordChunker(500, 50)
	chunks, err := c.Chunk(testDoc(words))
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	first := strings.Fields(chunks[0].Text)
	second := strings.Fields(chunks[1].Text)
	assert.Len(t, first, 500)
	assert.Len(t, second, 150)

	// Consecutive windows share the last 50 words of the previous window.
	assert.Equal(t, first[450:], second[:50])

	// Concatenating non-overlapping suffixes reconstructs the text.
	rebuilt := append([]string{}, first...)
	rebuilt = append(rebuilt, second[50:]...)
	assert.Equal(t, words, rebuilt)
}

func TestChunkShortTextSingleWindow(t *testing.T) {
	c := NewWordChunker(500, 50)
	chunks, err := c.Chunk(testDoc(makeWords(30)))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "doc1:0", chunks[0].ChunkID)
}

func TestChunkEmptyText(t *testing.T) {
	c := NewWordChunker(500, 50)
	chunks, err := c.Chunk(domain.Document{ID: "doc1", Text: "   \n  "})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkCarriesDocumentIdentity(t *testing.T) {
	doc := domain.Document{ID: "abc123", URL: "https://example.com/p", Title: "P", Text: strings.Join(makeWords(600), " ")}
	c := NewWordChunker(500, 50)
	chunks, err := c.Chunk(doc)
	require.NoError(t, err)
	for i, ch := range chunks {
		assert.Equal(t, doc.ID, ch.DocumentID)
		assert.Equal(t, doc.URL, ch.URL)
		assert.Equal(t, doc.Title, ch.Title)
		assert.Equal(t, i, ch.Index)
		assert.Equal(t, fmt.Sprintf("abc123:%d", i), ch.ChunkID)
	}
}

func TestNewWordChunkerDefaults(t *testing.T) {
	// Invalid parameters fall back to usable values instead of failing.
	c := NewWordChunker(0, -1)
	chunks, err := c.Chunk(testDoc(makeWords(600)))
	require.NoError(t, err)
	assert.Equal(t, 2, len(chunks))

	// Overlap >= window would never advance; it is reset.
	c = NewWordChunker(10, 10)
	chunks, err = c.Chunk(testDoc(makeWords(25)))
	require.NoError(t, err)
	assert.NotEmpty(t, chunks)
}
