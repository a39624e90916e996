// Package http provides the HTTP implementation of vivian.Fetcher and the
// sitemap-based URL discovery used for batch fetches.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/leocbehe/vivian"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default budget for each HTTP call.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxBodySize is the largest response body the fetcher accepts.
const DefaultMaxBodySize = 50 << 20

// MaxRedirects is the number of redirect hops followed before giving up.
const MaxRedirects = 10

// Ensure Fetcher implements vivian.Fetcher at compile time.
var _ vivian.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves web resources with plain HTTP requests. It does not
// execute JavaScript.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	headers     http.Header
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the budget for each HTTP call.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHeaders adds request headers, replacing defaults with the same name.
func WithHeaders(h http.Header) Option {
	return func(f *Fetcher) {
		for k, v := range h {
			f.headers[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
		}
	}
}

// WithClient sets the HTTP client used for requests. The client's own
// redirect policy is kept.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithMaxBodySize sets the largest accepted response body in bytes.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// DefaultHeaders returns the browser-like request headers sent with every
// request.
func DefaultHeaders() http.Header {
	return http.Header{
		"User-Agent":                {"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"},
		"Accept":                    {"text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8"},
		"Accept-Language":           {"en-US,en;q=0.9"},
		"Accept-Encoding":           {"gzip, deflate"},
		"Dnt":                       {"1"},
		"Upgrade-Insecure-Requests": {"1"},
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		headers:     DefaultHeaders(),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{CheckRedirect: checkRedirect}
	}

	return f
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= MaxRedirects {
		return fmt.Errorf("stopped after %d redirects", MaxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("redirect to unsupported scheme %q", req.URL.Scheme)
	}
	return nil
}

// Fetch sends a HEAD request to learn the content type, then a GET for the
// body. The response is classified with vivian.Classify; HTML bodies are
// transcoded to UTF-8. Fetch never retries.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*vivian.FetchResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, vivian.Errorf(vivian.EINVALID, "invalid URL %q", rawURL)
	}

	contentType := f.head(ctx, rawURL)

	resp, body, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = resp.Header.Get("Content-Type")
	}

	category, ext := vivian.Classify(contentType, rawURL)
	isHTML := category == vivian.CategoryHTML

	if isHTML {
		body, err = toUTF8(body, contentType)
		if err != nil {
			return nil, vivian.WrapError(vivian.ENETWORK, err, "cannot decode %s", rawURL)
		}
	}

	return &vivian.FetchResult{
		SourceURL:   rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Category:    category,
		Extension:   ext,
		Body:        body,
		IsHTML:      isHTML,
		Header:      resp.Header,
	}, nil
}

// head returns the Content-Type reported by a HEAD request, or "" when the
// request fails or the server does not say.
func (f *Fetcher) head(ctx context.Context, rawURL string) string {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := f.newRequest(ctx, http.MethodHead, rawURL)
	if err != nil {
		return ""
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ""
	}
	return resp.Header.Get("Content-Type")
}

// get performs the GET request and returns the response with its decoded
// body. The response body is already closed.
func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := f.newRequest(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, nil, vivian.WrapError(vivian.EINVALID, err, "invalid request for %s", rawURL)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, nil, vivian.WrapError(vivian.ENETWORK, err, "cannot fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, vivian.Errorf(vivian.ENETWORK, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := f.readBody(resp)
	if err != nil {
		if vivian.ErrorCode(err) == vivian.ENETWORK {
			return nil, nil, err
		}
		return nil, nil, vivian.WrapError(vivian.ENETWORK, err, "cannot read %s", rawURL)
	}

	return resp, body, nil
}

func (f *Fetcher) newRequest(ctx context.Context, method, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range f.headers {
		req.Header[k] = v
	}
	return req, nil
}

// readBody decodes the response content encoding and enforces the body
// size limit.
func (f *Fetcher) readBody(resp *http.Response) ([]byte, error) {
	r, err := decodeBody(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	body, err := io.ReadAll(io.LimitReader(r, f.maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, vivian.Errorf(vivian.ENETWORK, "body too large: over %d bytes", f.maxBodySize)
	}
	return body, nil
}

// decodeBody wraps r with a decoder for the given Content-Encoding.
func decodeBody(encoding string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return io.NopCloser(r), nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case "deflate":
		// Servers disagree on whether deflate means zlib-wrapped or raw.
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			return zr, nil
		}
		return flate.NewReader(bytes.NewReader(raw)), nil
	default:
		return nil, vivian.Errorf(vivian.ENETWORK, "unsupported content encoding %q", encoding)
	}
}

// toUTF8 transcodes an HTML body to UTF-8 using the charset declared in the
// Content-Type header or sniffed from the document.
func toUTF8(body []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		// Unknown charset labels keep the raw bytes.
		return body, nil
	}
	return io.ReadAll(r)
}
