package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "data_dir: /tmp/pages\nretrieval:\n  top_k: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pages", cfg.DataDir)
	assert.Equal(t, 3, cfg.Retrieval.TopK)

	// Everything absent from the file falls back to defaults.
	assert.Equal(t, ".", cfg.IndexDir)
	assert.Equal(t, 500, cfg.Chunker.WordsPerChunk)
	assert.Equal(t, 50, cfg.Chunker.OverlapWords)
	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, "file", cfg.VectorStore.Type)
	assert.Equal(t, 20, cfg.Scraper.TimeoutSecs)
	assert.NotEmpty(t, cfg.Scraper.UserAgent)
	assert.Equal(t, 5, cfg.Summary.MaxSentences)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.DataDir = "/var/webrag/pages"
	cfg.Embedder.Type = "openai"
	cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{Model: "text-embedding-3-small"}
	cfg.VectorStore.Type = "qdrant"
	cfg.VectorStore.Qdrant = &QdrantConfig{URL: "http://localhost:6333", Collection: "webrag"}

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.DataDir, got.DataDir)
	assert.Equal(t, "openai", got.Embedder.Type)
	require.NotNil(t, got.Embedder.OpenAI)
	assert.Equal(t, "text-embedding-3-small", got.Embedder.OpenAI.Model)
	// Defaults for optional openai fields are applied on load.
	assert.Equal(t, "https://api.openai.com/v1", got.Embedder.OpenAI.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", got.Embedder.OpenAI.APIKeyEnv)
	require.NotNil(t, got.VectorStore.Qdrant)
	assert.Equal(t, "webrag", got.VectorStore.Qdrant.Collection)
}

func TestDefaultMatchesDocumentedPipeline(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 500, cfg.Chunker.WordsPerChunk)
	assert.Equal(t, 50, cfg.Chunker.OverlapWords)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
}
