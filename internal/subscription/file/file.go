package file

import (
	"os"
	"strings"

	"github.com/saniyar-dev/subxray/internal/config"
	"github.com/saniyar-dev/subxray/internal/subscription"
)

// Fetcher reads a subscription document from disk, for offline use and
// testing against saved snapshots.
type Fetcher struct{}

func (f *Fetcher) Fetch(rawURL string) ([]byte, error) {
	path := strings.TrimPrefix(rawURL, "file://")
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, &subscription.FetchError{URL: rawURL, Err: err}
	}
	return body, nil
}

func init() {
	subscription.Register("file", func(config.FetchConfig) subscription.Fetcher {
		return &Fetcher{}
	})
}
