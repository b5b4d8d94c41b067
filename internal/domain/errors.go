package domain

import "errors"

// Pipeline errors. Stage failures wrap one of these so callers can
// classify them with errors.Is.
var (
	// ErrFetch indicates the remote page could not be retrieved
	// (transport failure, DNS failure or a non-2xx status).
	ErrFetch = errors.New("fetch failed")

	// ErrParse indicates retrieved content could not be interpreted as a
	// text document.
	ErrParse = errors.New("unparseable content")

	// ErrNotFound indicates required input artifacts do not exist: no
	// document records for indexing, or no index artifacts for retrieval.
	ErrNotFound = errors.New("not found")

	// ErrLoad indicates persisted artifacts are corrupt or inconsistent,
	// for example an index and chunk table of different lengths or an
	// index built with a different embedding model.
	ErrLoad = errors.New("artifact load failed")

	// ErrDimensionMismatch indicates a query vector whose dimension
	// differs from the index dimension. Similarity against such a vector
	// would be silently meaningless, so it is rejected instead.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
