package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/foundyear/internal/cache"
	"github.com/ppiankov/foundyear/internal/model"
	"github.com/ppiankov/foundyear/internal/util"
)

var (
	// ErrNoMatch means no article could be found for a name
	ErrNoMatch = errors.New("no matching article")

	// ErrAmbiguous means the best hit is a disambiguation page
	ErrAmbiguous = errors.New("ambiguous article match")
)

// Lookup resolves a company name to an article
type Lookup interface {
	// Name returns the backend name
	Name() string

	// Lookup returns the article for name. Misses and ambiguous hits are
	// reported as *Error wrapping ErrNoMatch or ErrAmbiguous.
	Lookup(ctx context.Context, name string) (*model.Article, error)
}

// Error describes a failed lookup for one company
type Error struct {
	Name  string // Company name searched for
	Title string // Search hit title, if the search got that far
	Err   error
}

func (e *Error) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("lookup %q (title %q): %v", e.Name, e.Title, e.Err)
	}
	return fmt.Sprintf("lookup %q: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify maps a lookup error to a record outcome
func Classify(err error) model.Outcome {
	switch {
	case err == nil:
		return model.OutcomeMatched
	case errors.Is(err, ErrAmbiguous):
		return model.OutcomeAmbiguous
	case errors.Is(err, ErrNoMatch):
		return model.OutcomeMiss
	default:
		return model.OutcomeError
	}
}

// TitleOf returns the search title carried by a lookup error, if any
func TitleOf(err error) string {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Title
	}
	return ""
}

// RequestObserver is notified after every request; cached responses report
// status 200 with cached set
type RequestObserver func(kind string, status int, cached bool)

type options struct {
	cache    cache.Cache
	observer RequestObserver
}

// Option configures New
type Option func(*options)

// WithCache caches successful responses in c
func WithCache(c cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithObserver reports every request to fn
func WithObserver(fn RequestObserver) Option {
	return func(o *options) { o.observer = fn }
}

// New creates the lookup backend selected by cfg.Lookup.Backend
func New(cfg *model.Config, opts ...Option) (Lookup, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	fetcher := NewFetcher(FetcherConfig{
		Timeout:      cfg.HTTP.Timeout,
		UserAgent:    cfg.HTTP.UserAgent,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		Transport:    util.NewTransport(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
		Limiter:      util.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		Cache:        o.cache,
		Observer:     o.observer,
	})

	baseURL := BaseURL(cfg.Lookup)
	api := NewAPIClient(fetcher, baseURL)

	switch strings.ToLower(cfg.Lookup.Backend) {
	case "api", "":
		return api, nil

	case "html":
		var robots *util.RobotsChecker
		if cfg.HTTP.RespectRobots {
			robots = util.NewRobotsChecker(fetcher.Client(), cfg.HTTP.UserAgent)
		}
		return NewPageLookup(api, fetcher, robots, baseURL), nil

	default:
		return nil, fmt.Errorf("unknown lookup backend: %s (supported: api, html)", cfg.Lookup.Backend)
	}
}

// BaseURL returns the wiki root URL for a lookup configuration
func BaseURL(cfg model.LookupConfig) string {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/")
	}
	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}
	return fmt.Sprintf("https://%s.wikipedia.org", lang)
}
