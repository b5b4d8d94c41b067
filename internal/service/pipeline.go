package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"webrag/internal/artifact"
	"webrag/internal/docstore"
	"webrag/internal/domain"
	"webrag/internal/scraper"
	"webrag/internal/vectorstore"
)

// Pipeline orchestrates the three stages: ingest a URL into a document
// record, build the index artifacts from all records, and answer queries
// against a loaded index. Stages hand data to each other only through
// files, so each runs as its own process invocation.
type Pipeline struct {
	scraper    *scraper.Scraper
	docs       *docstore.Store
	chunker    domain.Chunker
	embedder   domain.Embedder
	store      vectorstore.Storage
	summarizer domain.Summarizer

	indexDir         string
	persistVectors   bool
	summarySentences int

	summary string
}

// Options wires the pipeline's components together. PersistVectors is true
// for the local file-backed index and false when the vector store itself
// owns persistence (qdrant).
type Options struct {
	Scraper          *scraper.Scraper
	Docs             *docstore.Store
	Chunker          domain.Chunker
	Embedder         domain.Embedder
	Store            vectorstore.Storage
	Summarizer       domain.Summarizer
	IndexDir         string
	PersistVectors   bool
	SummarySentences int
}

// NewPipeline creates a pipeline from the assembled components.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{
		scraper:          opts.Scraper,
		docs:             opts.Docs,
		chunker:          opts.Chunker,
		embedder:         opts.Embedder,
		store:            opts.Store,
		summarizer:       opts.Summarizer,
		indexDir:         opts.IndexDir,
		persistVectors:   opts.PersistVectors,
		summarySentences: opts.SummarySentences,
	}
}

// IngestURL fetches one page and persists its document record, returning
// the record and the path it was written to.
func (p *Pipeline) IngestURL(ctx context.Context, url string) (*domain.Document, string, error) {
	doc, err := p.scraper.Fetch(ctx, url)
	if err != nil {
		return nil, "", err
	}
	path, err := p.docs.Save(doc)
	if err != nil {
		return nil, "", err
	}
	return doc, path, nil
}

// BuildResult reports what an indexing run produced.
type BuildResult struct {
	Documents int
	Chunks    int
	Dimension int
	Summary   string
}

// BuildIndex reads all document records, chunks and embeds them, loads the
// vectors into the store and persists the index artifacts, fully replacing
// any previous ones. All computation happens before any file is written;
// a failed run leaves the previous artifacts untouched.
func (p *Pipeline) BuildIndex(ctx context.Context) (*BuildResult, error) {
	docs, err := p.docs.LoadAll()
	if err != nil {
		return nil, err
	}

	var allChunks []domain.Chunk
	var texts []string
	var corpus strings.Builder
	for _, d := range docs {
		chunks, err := p.chunker.Chunk(d)
		if err != nil {
			return nil, err
		}
		for _, ch := range chunks {
			allChunks = append(allChunks, ch)
			texts = append(texts, ch.Text)
		}
		corpus.WriteString(d.Text)
		corpus.WriteString("\n")
	}
	if len(allChunks) == 0 {
		return nil, fmt.Errorf("%w: document records contain no text", domain.ErrNotFound)
	}

	if err := p.embedder.Prepare(texts); err != nil {
		return nil, err
	}
	vectors := make([][]float64, len(allChunks))
	for i := range allChunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := p.embedder.Embed(allChunks[i].Text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	// The dimension is known only after the first embed for lazily sized
	// remote embedders.
	dim := p.embedder.Dimension()
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: chunk %d embedded to dimension %d, model reports %d",
				domain.ErrDimensionMismatch, i, len(v), dim)
		}
	}

	if err := p.store.Init(dim); err != nil {
		return nil, err
	}
	if err := p.store.Upsert(allChunks, vectors); err != nil {
		return nil, err
	}

	summary, err := p.summarizer.Summarize(corpus.String(), p.summarySentences)
	if err != nil {
		return nil, err
	}

	manifest := artifact.Manifest{
		Model:     p.embedder.Name(),
		Dimension: dim,
		Chunks:    len(allChunks),
		BuiltAt:   time.Now().UTC(),
		Summary:   summary,
	}
	if se, ok := p.embedder.(domain.StatefulEmbedder); ok {
		state, err := se.ExportState()
		if err != nil {
			return nil, err
		}
		manifest.EmbedderState = state
	}

	if p.persistVectors {
		if err := artifact.SaveIndex(p.indexDir, dim, vectors); err != nil {
			return nil, err
		}
	}
	if err := artifact.SaveChunkTable(p.indexDir, &artifact.ChunkTable{Manifest: manifest, Chunks: allChunks}); err != nil {
		return nil, err
	}

	p.summary = summary
	return &BuildResult{
		Documents: len(docs),
		Chunks:    len(allChunks),
		Dimension: dim,
		Summary:   summary,
	}, nil
}

// OpenIndex loads the persisted artifacts for querying. It verifies that
// the configured embedder matches the one the index was built with,
// restores fitted embedder state, and checks index/chunk-table parity.
func (p *Pipeline) OpenIndex() error {
	table, err := artifact.LoadChunkTable(p.indexDir)
	if err != nil {
		return err
	}
	if table.Manifest.Model != p.embedder.Name() {
		return fmt.Errorf("%w: index built with embedder %q, configured embedder is %q",
			domain.ErrLoad, table.Manifest.Model, p.embedder.Name())
	}
	if se, ok := p.embedder.(domain.StatefulEmbedder); ok {
		if len(table.Manifest.EmbedderState) == 0 {
			return fmt.Errorf("%w: index manifest is missing the %s model state",
				domain.ErrLoad, p.embedder.Name())
		}
		if err := se.RestoreState(table.Manifest.EmbedderState); err != nil {
			return fmt.Errorf("%w: restoring %s state: %v", domain.ErrLoad, p.embedder.Name(), err)
		}
	}

	if p.persistVectors {
		dim, vectors, err := artifact.LoadIndex(p.indexDir)
		if err != nil {
			return err
		}
		if dim != table.Manifest.Dimension {
			return fmt.Errorf("%w: index dimension %d does not match manifest dimension %d",
				domain.ErrLoad, dim, table.Manifest.Dimension)
		}
		if len(vectors) != len(table.Chunks) {
			return fmt.Errorf("%w: index holds %d vectors but chunk table holds %d entries",
				domain.ErrLoad, len(vectors), len(table.Chunks))
		}
		if err := p.store.Init(dim); err != nil {
			return err
		}
		if err := p.store.Upsert(table.Chunks, vectors); err != nil {
			return err
		}
	} else if opener, ok := p.store.(interface{ Open(dimension int) error }); ok {
		if err := opener.Open(table.Manifest.Dimension); err != nil {
			return err
		}
	}

	p.summary = table.Manifest.Summary
	return nil
}

// Query embeds the query text and returns up to topK chunks ordered by
// non-increasing similarity. OpenIndex (or BuildIndex) must have run first.
func (p *Pipeline) Query(query string, topK int) ([]domain.SearchResult, error) {
	vec, err := p.embedder.Embed(query)
	if err != nil {
		return nil, err
	}
	return p.store.Search(vec, topK)
}

// Summary returns the corpus summary from the last build or open.
func (p *Pipeline) Summary() string { return p.summary }

// Count returns the number of indexed chunks.
func (p *Pipeline) Count() int { return p.store.Count() }
