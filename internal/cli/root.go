// Package cli wires the pipeline components from configuration and
// exposes them as the ingest, index and query subcommands.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"webrag/internal/chunker"
	"webrag/internal/config"
	"webrag/internal/docstore"
	"webrag/internal/domain"
	"webrag/internal/embedding/openai"
	"webrag/internal/embedding/tfidf"
	"webrag/internal/scraper"
	"webrag/internal/service"
	"webrag/internal/summarizer"
	"webrag/internal/vectorstore"
	"webrag/internal/vectorstore/flat"
	"webrag/internal/vectorstore/qdrant"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "webrag",
	Short:        "Fetch web pages, index them and search them by meaning",
	Long:         "webrag is a small local retrieval pipeline: ingest fetches a page into a JSON record, index chunks and embeds all records into a similarity index, and query searches that index.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config (default ./config.yaml, then ~/.config/webrag/config.yaml)")
}

// Execute runs the root command and exits non-zero on any stage failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}

// buildPipeline assembles components from configuration.
func buildPipeline(cfg *config.AppConfig) (*service.Pipeline, error) {
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			return nil, fmt.Errorf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("openai embedder init failed: %w", err)
		}
		emb = client
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var st vectorstore.Storage
	persistVectors := false
	switch cfg.VectorStore.Type {
	case "file", "":
		st = flat.NewStore()
		persistVectors = true
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		st = qdrant.NewStorage(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	return service.NewPipeline(service.Options{
		Scraper:          scraper.New(time.Duration(cfg.Scraper.TimeoutSecs)*time.Second, cfg.Scraper.UserAgent),
		Docs:             docstore.New(cfg.DataDir),
		Chunker:          chunker.NewWordChunker(cfg.Chunker.WordsPerChunk, cfg.Chunker.OverlapWords),
		Embedder:         emb,
		Store:            st,
		Summarizer:       summarizer.NewFrequencySummarizer(),
		IndexDir:         cfg.IndexDir,
		PersistVectors:   persistVectors,
		SummarySentences: cfg.Summary.MaxSentences,
	}), nil
}
