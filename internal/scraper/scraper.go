package scraper

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"webrag/internal/domain"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

// Scraper fetches a single remote page and reduces it to clean text.
type Scraper struct {
	client    *http.Client
	userAgent string
}

// New creates a scraper with the given request timeout and user agent.
func New(timeout time.Duration, userAgent string) *Scraper {
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Scraper{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch retrieves rawURL in a single attempt and returns a document record
// with markup stripped and whitespace collapsed. Transport failures and
// non-2xx statuses wrap domain.ErrFetch; content that cannot be reduced to
// visible text wraps domain.ErrParse.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*domain.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid url %q", domain.ErrFetch, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrFetch, u.Host, resp.Status)
	}

	if ct := resp.Header.Get("Content-Type"); !textualContentType(ct) {
		return nil, fmt.Errorf("%w: unsupported content type %q", domain.ErrParse, ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrFetch, err)
	}

	raw := string(body)
	text := stripHTML(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: no visible text at %s", domain.ErrParse, rawURL)
	}

	return &domain.Document{
		ID:        hashURL(u.String()),
		URL:       u.String(),
		Title:     extractTitle(raw, u),
		Text:      text,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func textualContentType(ct string) bool {
	if ct == "" {
		// Servers that omit the header still mostly serve HTML; try to parse.
		return true
	}
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") ||
		strings.Contains(ct, "application/xhtml") ||
		strings.Contains(ct, "text/plain")
}

// Pre-compiled regular expressions for HTML stripping.
var (
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag   = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag       = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag        = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockBoundary = regexp.MustCompile(`(?i)</?(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article|ul|ol)[^>]*>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// stripHTML removes markup and returns the visible text with whitespace
// collapsed to single spaces.
func stripHTML(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Block boundaries become spaces so words from adjacent elements do
	// not fuse together.
	content = blockBoundary.ReplaceAllString(content, " ")
	content = allTags.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)
	content = whitespaceRun.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// extractTitle takes the <title> tag content, falling back to the last URL
// path segment with separators replaced by spaces.
func extractTitle(content string, u *url.URL) string {
	if m := titleTag.FindStringSubmatch(content); len(m) > 1 {
		title := strings.TrimSpace(html.UnescapeString(m[1]))
		if title != "" {
			return whitespaceRun.ReplaceAllString(title, " ")
		}
	}
	seg := path.Base(u.Path)
	if seg == "." || seg == "/" || seg == "" {
		return u.Host
	}
	seg = strings.TrimSuffix(seg, path.Ext(seg))
	seg = strings.ReplaceAll(seg, "_", " ")
	seg = strings.ReplaceAll(seg, "-", " ")
	return seg
}

func hashURL(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
