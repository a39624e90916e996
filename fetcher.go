package vivian

import (
	"context"
	"net/http"
)

// FetchResult is the response to a single fetch. It is not modified after
// the fetcher returns it.
type FetchResult struct {
	// SourceURL is the URL that was requested.
	SourceURL string

	// FinalURL is the URL after redirects.
	FinalURL string

	// StatusCode is the HTTP status of the final response.
	StatusCode int

	// ContentType is the resolved Content-Type header value.
	ContentType string

	// Category and Extension come from Classify.
	Category  ContentCategory
	Extension string

	// Body is the decoded response body. HTML bodies are UTF-8.
	Body []byte

	// IsHTML reports whether the resource takes the HTML extraction path.
	IsHTML bool

	// Header holds the final response headers.
	Header http.Header
}

// Fetcher retrieves web resources over HTTP.
type Fetcher interface {
	// Fetch requests the URL and returns the classified response.
	// The context controls timeout and cancellation.
	// Network failures and non-2xx responses return ENETWORK.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// ResultWriter persists fetched resources.
type ResultWriter interface {
	// WriteResult stores the body of r and returns the path it was written
	// to. Failures return EIO.
	WriteResult(r *FetchResult) (string, error)
}
