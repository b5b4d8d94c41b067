package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webrag/internal/domain"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>  Gopher   Habitats </title>
  <style>body { color: red; }</style>
  <script>console.log("ignore me");</script>
</head>
<body>
  <!-- navigation -->
  <h1>Gopher Habitats</h1>
  <p>Gophers dig extensive burrows.</p>
  <ul><li>Grasslands</li><li>Prairies</li></ul>
  <p>They eat roots &amp; tubers.</p>
  <noscript>Enable JS</noscript>
</body>
</html>`

func newScraper() *Scraper {
	return New(5*time.Second, "webrag-test/1.0")
}

func TestFetchCleansHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "webrag-test/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	doc, err := newScraper().Fetch(context.Background(), srv.URL+"/gophers")
	require.NoError(t, err)

	assert.Equal(t, "Gopher Habitats", doc.Title)
	assert.Equal(t, srv.URL+"/gophers", doc.URL)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.FetchedAt.IsZero())

	assert.Contains(t, doc.Text, "Gophers dig extensive burrows.")
	assert.Contains(t, doc.Text, "roots & tubers")
	assert.Contains(t, doc.Text, "Grasslands")
	assert.NotContains(t, doc.Text, "console.log")
	assert.NotContains(t, doc.Text, "color: red")
	assert.NotContains(t, doc.Text, "Enable JS")
	assert.NotContains(t, doc.Text, "<")
	assert.NotContains(t, doc.Text, "navigation")
	assert.NotContains(t, doc.Text, "\n")
}

func TestFetchTitleFallsBackToPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>Some body text here.</p></body></html>"))
	}))
	defer srv.Close()

	doc, err := newScraper().Fetch(context.Background(), srv.URL+"/Artificial_intelligence")
	require.NoError(t, err)
	assert.Equal(t, "Artificial intelligence", doc.Title)
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newScraper().Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestFetchUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // guaranteed connection refused

	_, err := newScraper().Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestFetchInvalidURL(t *testing.T) {
	_, err := newScraper().Fetch(context.Background(), "not-a-url")
	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestFetchRejectsBinaryContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	_, err := newScraper().Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestFetchRejectsEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><script>var x;</script></head><body></body></html>"))
	}))
	defer srv.Close()

	_, err := newScraper().Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestFetchDeterministicID(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>stable text</p></body></html>"))
	})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	a, err := newScraper().Fetch(context.Background(), srv.URL+"/page")
	require.NoError(t, err)
	b, err := newScraper().Fetch(context.Background(), srv.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
}
