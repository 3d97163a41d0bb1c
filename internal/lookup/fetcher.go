package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/foundyear/internal/cache"
	"github.com/ppiankov/foundyear/internal/util"
)

// FetcherConfig configures a Fetcher
type FetcherConfig struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
	Transport    http.RoundTripper
	Limiter      *util.Limiter
	Cache        cache.Cache // Entries use the cache's own default TTL
	Observer     RequestObserver
}

// Fetcher performs rate-limited, size-capped GET requests
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *util.Limiter
	cache      cache.Cache
	observer   RequestObserver
}

// NewFetcher creates a Fetcher
func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 5_000_000
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		limiter:   cfg.Limiter,
		cache:     cfg.Cache,
		observer:  cfg.Observer,
	}
}

// Client returns the underlying HTTP client
func (f *Fetcher) Client() *http.Client {
	return f.httpClient
}

// Limiter returns the per-host limiter, or nil
func (f *Fetcher) Limiter() *util.Limiter {
	return f.limiter
}

// Response is a fetched body and where it came from
type Response struct {
	Body      []byte
	FinalURL  string
	FromCache bool
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

// Get fetches rawURL. kind labels the request for caching and observation.
func (f *Fetcher) Get(ctx context.Context, kind string, rawURL string) (*Response, error) {
	key := cache.Key(kind, rawURL)
	if f.cache != nil {
		if body, ok := f.cache.Get(key); ok {
			f.observe(kind, http.StatusOK, true)
			return &Response{Body: body, FinalURL: rawURL, FromCache: true}, nil
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	f.observe(kind, resp.StatusCode, false)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if f.cache != nil {
		_ = f.cache.Set(key, body, 0)
	}

	return &Response{
		Body:     body,
		FinalURL: resp.Request.URL.String(),
	}, nil
}

func (f *Fetcher) observe(kind string, status int, cached bool) {
	if f.observer != nil {
		f.observer(kind, status, cached)
	}
}
