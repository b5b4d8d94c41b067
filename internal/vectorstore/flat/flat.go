package flat

import (
	"errors"
	"fmt"
	"sort"

	"webrag/internal/domain"
)

// Store is a flat exact-search index: brute-force cosine similarity over
// L2-normalized vectors. Vectors and their chunks are kept in parallel
// slices in insertion order, which is also the persisted index order.
type Store struct {
	dimension int
	vectors   [][]float64
	chunks    []domain.Chunk
}

// NewStore creates an empty flat index.
func NewStore() *Store { return &Store{} }

// Init resets the store for vectors of the given dimension.
func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	s.vectors = nil
	s.chunks = nil
	return nil
}

// Upsert appends chunks and their vectors, preserving order.
func (s *Store) Upsert(chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d chunks but %d vectors", domain.ErrLoad, len(chunks), len(vectors))
	}
	for i, v := range vectors {
		if len(v) != s.dimension {
			return fmt.Errorf("%w: vector %d has dimension %d, index expects %d",
				domain.ErrDimensionMismatch, i, len(v), s.dimension)
		}
	}
	s.chunks = append(s.chunks, chunks...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Search returns up to topK chunks ordered by non-increasing cosine
// similarity to the query vector. Since stored vectors and queries are
// L2-normalized, the dot product is the cosine similarity.
func (s *Store) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrDimensionMismatch, len(vector), s.dimension)
	}
	if topK <= 0 {
		topK = 5
	}
	results := make([]domain.SearchResult, len(s.vectors))
	for i := range s.vectors {
		results[i] = domain.SearchResult{Chunk: s.chunks[i], Score: dot(s.vectors[i], vector)}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

// Count returns the number of indexed vectors.
func (s *Store) Count() int { return len(s.vectors) }

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
