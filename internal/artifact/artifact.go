// Package artifact persists the index artifacts produced by the indexing
// stage and consumed by retrieval: a binary vector index and a JSON chunk
// table whose positions parallel the index. Both carry enough of a
// manifest to detect incompatible or inconsistent artifacts at load time
// instead of producing silently meaningless similarity scores.
package artifact

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"webrag/internal/domain"
)

// Well-known artifact file names inside the index directory.
const (
	IndexFile      = "index.gob"
	ChunkTableFile = "chunks.json"
)

// Manifest stamps the artifacts with the identity of the embedding model
// that built them. EmbedderState carries the fitted model for embedders
// that are trained on the corpus (TF-IDF); it is empty for pretrained
// remote models.
type Manifest struct {
	Model         string          `json:"model"`
	Dimension     int             `json:"dimension"`
	Chunks        int             `json:"chunks"`
	BuiltAt       time.Time       `json:"built_at"`
	Summary       string          `json:"summary,omitempty"`
	EmbedderState json.RawMessage `json:"embedder_state,omitempty"`
}

// ChunkTable is the persisted metadata table: ordered chunk records
// parallel to the index's vector positions, plus the build manifest.
type ChunkTable struct {
	Manifest Manifest       `json:"manifest"`
	Chunks   []domain.Chunk `json:"chunks"`
}

// indexFile is the gob-encoded binary index payload.
type indexFile struct {
	Dimension int
	Vectors   [][]float64
}

// SaveChunkTable writes the chunk table atomically to its well-known name.
func SaveChunkTable(dir string, table *ChunkTable) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(dir, ChunkTableFile), data)
}

// LoadChunkTable reads the chunk table. A missing file maps to
// domain.ErrNotFound, a corrupt one to domain.ErrLoad.
func LoadChunkTable(dir string) (*ChunkTable, error) {
	path := filepath.Join(dir, ChunkTableFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run the index stage first)", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrLoad, path, err)
	}
	var table ChunkTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrLoad, path, err)
	}
	if len(table.Chunks) != table.Manifest.Chunks {
		return nil, fmt.Errorf("%w: %s: manifest records %d chunks, table holds %d",
			domain.ErrLoad, path, table.Manifest.Chunks, len(table.Chunks))
	}
	return &table, nil
}

// SaveIndex writes the binary vector index atomically to its well-known name.
func SaveIndex(dir string, dimension int, vectors [][]float64) error {
	tmp, err := os.CreateTemp(dir, ".tmp-index-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	enc := gob.NewEncoder(tmp)
	if err := enc.Encode(indexFile{Dimension: dimension, Vectors: vectors}); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, IndexFile))
}

// LoadIndex reads the binary vector index. A missing file maps to
// domain.ErrNotFound, a corrupt one to domain.ErrLoad.
func LoadIndex(dir string) (int, [][]float64, error) {
	path := filepath.Join(dir, IndexFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil, fmt.Errorf("%w: %s (run the index stage first)", domain.ErrNotFound, path)
		}
		return 0, nil, fmt.Errorf("%w: %s: %v", domain.ErrLoad, path, err)
	}
	defer f.Close()
	var idx indexFile
	if err := gob.NewDecoder(f).Decode(&idx); err != nil {
		return 0, nil, fmt.Errorf("%w: %s: %v", domain.ErrLoad, path, err)
	}
	for i, v := range idx.Vectors {
		if len(v) != idx.Dimension {
			return 0, nil, fmt.Errorf("%w: %s: vector %d has dimension %d, index declares %d",
				domain.ErrLoad, path, i, len(v), idx.Dimension)
		}
	}
	return idx.Dimension, idx.Vectors, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
