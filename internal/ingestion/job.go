package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jonathan/resume-screener/internal/fetch"
)

var (
	// ErrNoJobSource is returned when none or more than one of path, URL and text is given
	ErrNoJobSource = errors.New("exactly one of file, URL or text is required")
	// ErrEmptyJobDescription is returned when the loaded job description has no text
	ErrEmptyJobDescription = errors.New("job description is empty")
	// ErrHTTPRequestFailed is returned when the job page cannot be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted from the job page
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// Source says where a job description came from.
type Source string

const (
	SourceFile Source = "file"
	SourceURL  Source = "url"
	SourceText Source = "text"
)

// Metadata records the provenance of a loaded job description.
type Metadata struct {
	Source    Source `json:"source"`
	Location  string `json:"location,omitempty"` // file path or URL
	Platform  string `json:"platform,omitempty"`
	Rendered  bool   `json:"rendered,omitempty"` // text came from the headless browser
	Timestamp string `json:"timestamp"`          // RFC3339
	Hash      string `json:"hash"`               // SHA256 of Text
}

// JobDescription is the query text for one match.
type JobDescription struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// JobInput names one job description source. Exactly one field must be set.
type JobInput struct {
	Path string
	URL  string
	Text string
}

// Loader loads job descriptions.
type Loader struct {
	Fetch *fetch.Options
	// Renderer is used when a plain fetch yields too little text. Nil disables the fallback.
	Renderer fetch.Renderer
	Verbose  bool
}

// NewLoader returns a loader with default fetch options, optionally falling back to headless Chrome.
func NewLoader(useBrowser, verbose bool) *Loader {
	l := &Loader{Fetch: fetch.DefaultOptions(), Verbose: verbose}
	if useBrowser {
		l.Renderer = fetch.NewChromeRenderer(verbose)
	}
	return l
}

// Load dispatches on whichever field of in is set.
func (l *Loader) Load(ctx context.Context, in JobInput) (*JobDescription, error) {
	set := 0
	for _, v := range []string{in.Path, in.URL, in.Text} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set != 1 {
		return nil, ErrNoJobSource
	}

	switch {
	case strings.TrimSpace(in.Path) != "":
		return l.LoadFile(in.Path)
	case strings.TrimSpace(in.URL) != "":
		return l.LoadURL(ctx, strings.TrimSpace(in.URL))
	default:
		return LoadText(in.Text)
	}
}

// LoadFile reads a plain-text job description.
func (l *Loader) LoadFile(path string) (*JobDescription, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("job description file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read job description file: %w", err)
	}
	return newJobDescription(string(content), Metadata{Source: SourceFile, Location: path})
}

// LoadText wraps literal text as a job description.
func LoadText(text string) (*JobDescription, error) {
	return newJobDescription(text, Metadata{Source: SourceText})
}

// LoadURL fetches a job posting and extracts its text with platform-specific
// selectors, re-rendering in a browser when the static page is too thin.
func (l *Loader) LoadURL(ctx context.Context, urlStr string) (*JobDescription, error) {
	platform := fetch.DetectPlatform(urlStr)
	if l.Verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected platform: %s", platform)
	}

	result, err := fetch.URL(ctx, urlStr, l.Fetch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if l.Verbose {
		log.Printf("[VERBOSE] Fetched %d bytes (%s)", len(result.HTML), result.ContentType)
	}

	meta := Metadata{Source: SourceURL, Location: urlStr, Platform: string(platform)}
	if !result.IsHTML() {
		return newJobDescription(result.HTML, meta)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if l.Verbose {
		log.Printf("[VERBOSE] Extracted text: %d chars", len(text))
	}

	if l.Renderer != nil && fetch.ShouldUseBrowser(text) {
		if l.Verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
				len(text), fetch.MinContentLength)
		}
		if rendered, ok := l.render(ctx, urlStr, contentSelectors, noiseSelectors); ok && len(rendered) > len(text) {
			text = rendered
			meta.Rendered = true
		}
	}

	return newJobDescription(text, meta)
}

// render returns the browser-extracted text. Failures are logged and reported
// as !ok so the caller keeps the static text.
func (l *Loader) render(ctx context.Context, urlStr string, contentSelectors, noiseSelectors []string) (string, bool) {
	html, err := l.Renderer.Render(ctx, urlStr)
	if err != nil {
		log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", err)
		return "", false
	}
	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		log.Printf("[VERBOSE] Browser content extraction failed: %v", err)
		return "", false
	}
	if l.Verbose {
		log.Printf("[VERBOSE] Browser extracted text: %d chars", len(text))
	}
	return text, true
}

func newJobDescription(text string, meta Metadata) (*JobDescription, error) {
	text = NormalizeLayout(text)
	if text == "" {
		return nil, ErrEmptyJobDescription
	}
	meta.Timestamp = time.Now().UTC().Format(time.RFC3339)
	meta.Hash = computeHash(text)
	return &JobDescription{Text: text, Metadata: meta}, nil
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
