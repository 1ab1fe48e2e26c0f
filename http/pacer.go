package http

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Pacer spaces out requests per host using a token bucket with a burst of
// one. It does not inspect responses or react to server throttling.
type Pacer struct {
	rps      float64
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewPacer returns a pacer allowing rps requests per second to each host.
// A non-positive rps disables pacing.
func NewPacer(rps float64) *Pacer {
	return &Pacer{
		rps:      rps,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to urlStr may proceed or ctx is done.
func (p *Pacer) Wait(ctx context.Context, urlStr string) error {
	limiter := p.limiter(urlStr)
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

// Enabled reports whether the pacer limits anything.
func (p *Pacer) Enabled() bool {
	return p != nil && p.rps > 0
}

func (p *Pacer) limiter(urlStr string) *rate.Limiter {
	if !p.Enabled() {
		return nil
	}

	host := extractHost(urlStr)

	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, ok := p.limiters[host]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rate.Limit(p.rps), 1)
	p.limiters[host] = limiter
	return limiter
}

// extractHost returns the host of urlStr without port, or "unknown".
func extractHost(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return u.Hostname()
}
