package http

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"

	"github.com/saniyar-dev/subxray/internal/config"
	"github.com/saniyar-dev/subxray/internal/logger"
	"github.com/saniyar-dev/subxray/internal/subscription"
)

type Fetcher struct {
	cfg config.FetchConfig
}

func (f *Fetcher) Fetch(rawURL string) ([]byte, error) {
	client := &http.Client{Timeout: f.cfg.Timeout}

	if f.cfg.Proxy != "" {
		transport, err := proxyTransport(f.cfg.Proxy)
		if err != nil {
			return nil, &subscription.FetchError{URL: rawURL, Err: err}
		}
		client.Transport = transport
		logger.Log.Debugf("Fetching through proxy: %s", f.cfg.Proxy)
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &subscription.FetchError{URL: rawURL, Err: err}
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	logger.Log.Debugf("Fetching URL: %s", rawURL)
	resp, err := client.Do(req)
	if err != nil {
		return nil, &subscription.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &subscription.FetchError{URL: rawURL, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &subscription.FetchError{URL: rawURL, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return body, nil
}

func proxyTransport(proxyURL string) (*http.Transport, error) {
	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url: %w", err)
	}
	dialer, err := proxy.FromURL(u, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("proxy dialer: %w", err)
	}

	transport := &http.Transport{}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		transport.DialContext = cd.DialContext
	} else {
		transport.Dial = dialer.Dial
	}
	return transport, nil
}

func init() {
	factory := func(cfg config.FetchConfig) subscription.Fetcher {
		return &Fetcher{cfg: cfg}
	}
	subscription.Register("http", factory)
	subscription.Register("https", factory)
}
