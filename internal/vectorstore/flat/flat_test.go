package flat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webrag/internal/domain"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Init(3))
	chunks := []domain.Chunk{
		{ChunkID: "d:0", Text: "alpha"},
		{ChunkID: "d:1", Text: "beta"},
		{ChunkID: "d:2", Text: "gamma"},
	}
	vectors := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0.6, 0.8, 0},
	}
	require.NoError(t, s.Upsert(chunks, vectors))
	return s
}

func TestSearchOrdering(t *testing.T) {
	s := seeded(t)
	results, err := s.Search([]float64{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "d:0", results[0].Chunk.ChunkID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearchTopKCaps(t *testing.T) {
	s := seeded(t)

	results, err := s.Search([]float64{0, 1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = s.Search([]float64{0, 1, 0}, 50)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearchDefaultTopK(t *testing.T) {
	s := seeded(t)
	results, err := s.Search([]float64{0, 0, 1}, 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearchDimensionMismatch(t *testing.T) {
	s := seeded(t)
	_, err := s.Search([]float64{1, 0}, 3)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestUpsertLengthMismatch(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(2))
	err := s.Upsert([]domain.Chunk{{ChunkID: "d:0"}}, nil)
	assert.ErrorIs(t, err, domain.ErrLoad)
}

func TestUpsertDimensionMismatch(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(2))
	err := s.Upsert([]domain.Chunk{{ChunkID: "d:0"}}, [][]float64{{1, 0, 0}})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestInitResets(t *testing.T) {
	s := seeded(t)
	assert.Equal(t, 3, s.Count())
	require.NoError(t, s.Init(4))
	assert.Equal(t, 0, s.Count())
}

func TestInitInvalidDimension(t *testing.T) {
	assert.Error(t, NewStore().Init(0))
}
