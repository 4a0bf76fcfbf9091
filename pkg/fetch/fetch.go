package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds connect and read time for one fetch.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxBody caps how much of a response body is read (10 MiB);
	// Gutenberg HTML editions of long novels stay well under this.
	DefaultMaxBody = 10 * 1024 * 1024

	userAgent = "booksearch-cli"
)

// ErrInvalidURL is returned by ValidateURL for URLs that are not
// http/https Project Gutenberg addresses.
var ErrInvalidURL = errors.New("not a valid Project Gutenberg URL")

// HTTPError reports a response with a non-success status code.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s", e.Status)
}

// NetworkError reports a transport-level failure: connect/read errors,
// timeouts, or an oversized body.
type NetworkError struct {
	Reason string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("network error: %s", e.Reason)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidateURL accepts only http/https URLs whose host contains gutenberg.org.
// Callers run this before fetching; nothing that fails it is fetched.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	if !strings.Contains(u.Host, "gutenberg.org") {
		return fmt.Errorf("%w: host %q", ErrInvalidURL, u.Host)
	}
	return nil
}

// Fetcher downloads document bodies over HTTP with a bounded timeout and
// body size. One request per call, no retries.
type Fetcher struct {
	client  *http.Client
	maxBody int64
	log     *zap.Logger
}

// New creates a Fetcher. Non-positive timeout or maxBody fall back to the
// defaults; a nil logger is replaced with a no-op one.
func New(timeout time.Duration, maxBody int64, log *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		maxBody: maxBody,
		log:     log,
	}
}

// Fetch downloads the raw response body for the given URL. Transport
// failures return *NetworkError, non-2xx responses *HTTPError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &NetworkError{Reason: "build request", Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	f.log.Debug("fetching", zap.String("url", rawURL))
	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if resp.ContentLength > f.maxBody {
		return nil, &NetworkError{
			Reason: fmt.Sprintf("content length %d exceeds limit of %d bytes", resp.ContentLength, f.maxBody),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return nil, &NetworkError{Reason: "read body", Err: err}
	}
	// Hitting the limit exactly means the body was likely truncated.
	if int64(len(body)) >= f.maxBody {
		return nil, &NetworkError{
			Reason: fmt.Sprintf("response body exceeded limit of %d bytes", f.maxBody),
		}
	}

	f.log.Debug("fetched",
		zap.String("url", rawURL),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return body, nil
}

// FetchText downloads the URL and decodes the body to UTF-8 text using
// best-effort charset detection. Markup is not stripped here.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	body, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return DecodeText(body), nil
}

// SuggestTitle extracts a document title from fetched HTML via readability.
// Returns "" when extraction fails or the page carries no title; the caller
// decides whether that is an error.
func (f *Fetcher) SuggestTitle(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		f.log.Debug("title extraction failed", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(article.Title)
}
