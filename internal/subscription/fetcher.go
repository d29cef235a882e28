package subscription

import (
	"fmt"
	"net/url"

	"github.com/saniyar-dev/subxray/internal/config"
)

// Fetcher retrieves the raw subscription document.
type Fetcher interface {
	Fetch(rawURL string) ([]byte, error)
}

// FetchError is fatal to a run: without the document there are no links.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Factory func(cfg config.FetchConfig) Fetcher

var registry = make(map[string]Factory)

func Register(scheme string, factory Factory) {
	registry[scheme] = factory
}

// FetcherFor picks a fetcher by URL scheme. Plain paths without a scheme are
// treated as local files.
func FetcherFor(rawURL string, cfg config.FetchConfig) (Fetcher, error) {
	scheme := "file"
	if u, err := url.Parse(rawURL); err == nil && u.Scheme != "" {
		scheme = u.Scheme
	}

	factory, ok := registry[scheme]
	if !ok {
		return nil, fmt.Errorf("no fetcher registered for scheme %q", scheme)
	}
	return factory(cfg), nil
}
