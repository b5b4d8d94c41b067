package vectorstore

import "webrag/internal/domain"

// Storage holds embedding vectors and supports similarity search.
// Init resets the store to an empty state with the given dimension.
type Storage interface {
	Init(dimension int) error
	Upsert(chunks []domain.Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.SearchResult, error)
	Count() int
}
