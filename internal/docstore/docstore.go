package docstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"webrag/internal/domain"
)

// recordPattern matches persisted document records in the data directory.
const recordPattern = "page_*.json"

// Store persists document records as one JSON file per source URL.
// Re-ingesting a URL overwrites its record.
type Store struct {
	dir string
}

// New creates a document store rooted at dir.
func New(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir}
}

// Save writes the document record, replacing any previous record for the
// same URL. The write goes to a temp file first and is renamed into place
// so an interrupted run never leaves a partial record. Returns the path of
// the written file.
func (s *Store) Save(doc *domain.Document) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, FileName(doc.URL))
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// LoadAll reads every document record in the data directory, sorted by
// file name for a stable chunk order. Returns domain.ErrNotFound when no
// records exist and domain.ErrLoad when a record cannot be decoded.
func (s *Store) LoadAll() ([]domain.Document, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, recordPattern))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no document records in %s", domain.ErrNotFound, s.dir)
	}
	sort.Strings(matches)
	docs := make([]domain.Document, 0, len(matches))
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrLoad, m, err)
		}
		var doc domain.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrLoad, m, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// FileName derives the record file name deterministically from the URL's
// host and path, so the same URL always maps to the same file.
func FileName(rawURL string) string {
	name := rawURL
	if i := strings.Index(name, "://"); i >= 0 {
		name = name[i+3:]
	}
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "untitled"
	}
	return "page_" + name + ".json"
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
