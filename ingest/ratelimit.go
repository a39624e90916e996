package ingest

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/leocbehe/vivian"
	"golang.org/x/time/rate"
)

var _ vivian.HostLimiter = (*HostLimiter)(nil)

// HostLimiter spaces out the requests of a batch per host. Hosts are
// compared case-insensitively and without default HTTP ports, so
// "Example.com:443" and "example.com" share one bucket.
type HostLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host with a burst of 1. A non-positive rps disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &HostLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	return h.bucket(hostKey(host)).Wait(ctx)
}

func (h *HostLimiter) bucket(key string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.buckets[key]
	if !ok {
		b = rate.NewLimiter(h.limit, 1)
		h.buckets[key] = b
	}
	return b
}

// hostKey lower-cases host and drops a default HTTP or HTTPS port.
func hostKey(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if name, port, err := net.SplitHostPort(host); err == nil && (port == "80" || port == "443") {
		if strings.Contains(name, ":") {
			return "[" + name + "]"
		}
		return name
	}
	return host
}
