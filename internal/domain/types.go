package domain

import "time"

// Document is one fetched and cleaned web page, persisted as a JSON record.
type Document struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Chunk is a fixed-size word window cut from a document's text. Chunks are
// the unit of embedding and retrieval; they are persisted only as part of
// the chunk table that parallels the vector index.
type Chunk struct {
	DocumentID string `json:"document_id"`
	ChunkID    string `json:"chunk_id"`
	URL        string `json:"url"`
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	Index      int    `json:"index"`
}

// SearchResult is a matching chunk with its similarity score.
type SearchResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// StatefulEmbedder is an Embedder whose fitted model must travel with the
// index artifacts so that indexing and retrieval, which run in separate
// processes, embed into the same vector space.
type StatefulEmbedder interface {
	Embedder
	ExportState() ([]byte, error)
	RestoreState(data []byte) error
}

// Chunker splits a document into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
