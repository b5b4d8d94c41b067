package chunker

import (
	"strconv"
	"strings"

	"webrag/internal/domain"
)

// WordChunker splits text into fixed-size word windows. Consecutive
// windows share the last overlapWords words of the previous window; the
// final window may be shorter and is kept as-is.
type WordChunker struct {
	wordsPerChunk int
	overlapWords  int
}

// NewWordChunker creates a chunker with the given window size and overlap.
// Out-of-range values fall back to the 500/50 defaults.
func NewWordChunker(wordsPerChunk, overlapWords int) *WordChunker {
	if wordsPerChunk <= 0 {
		wordsPerChunk = 500
	}
	if overlapWords < 0 || overlapWords >= wordsPerChunk {
		overlapWords = 50
		if overlapWords >= wordsPerChunk {
			overlapWords = 0
		}
	}
	return &WordChunker{wordsPerChunk: wordsPerChunk, overlapWords: overlapWords}
}

// Chunk cuts the document text into overlapping word windows in document
// order. A text of L words yields ceil((L-O)/(W-O)) windows.
func (c *WordChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	words := strings.Fields(document.Text)
	if len(words) == 0 {
		return nil, nil
	}
	step := c.wordsPerChunk - c.overlapWords
	var chunks []domain.Chunk
	for start, idx := 0, 0; start < len(words); start, idx = start+step, idx+1 {
		end := start + c.wordsPerChunk
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			ChunkID:    document.ID + ":" + strconv.Itoa(idx),
			URL:        document.URL,
			Title:      document.Title,
			Text:       strings.Join(words[start:end], " "),
			Index:      idx,
		})
		if end == len(words) {
			break
		}
	}
	return chunks, nil
}
