// Package fetch implements the core.Fetcher interface.
// It performs HTTP GET requests, follows redirects and reports the final URL,
// which the Google Maps extractor relies on to resolve share links.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gaurav-prasanna/pinpipe/core"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
)

// Options configures the HTTP fetcher.
type Options struct {
	Timeout time.Duration
	// RequestsPerSecond spaces consecutive requests; zero disables limiting.
	RequestsPerSecond float64
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// New creates an HTTPFetcher with a sensible timeout.
func New(opts Options) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	f := &HTTPFetcher{
		client: &http.Client{Timeout: opts.Timeout},
	}
	if opts.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return f
}

// Fetch retrieves the HTML content of the given URL.
// Transport errors and non-2xx responses wrap core.ErrFetchFailed.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (*core.FetchResult, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "fetch: rate limiter wait")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrapf(core.ErrFetchFailed, "fetch: create request for %s: %v", url, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(core.ErrFetchFailed, "fetch: %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, eris.Wrapf(core.ErrFetchFailed, "fetch: status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrapf(core.ErrFetchFailed, "fetch: read body of %s: %v", url, err)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	zap.L().Debug("fetched page",
		zap.String("url", url),
		zap.String("final_url", finalURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	return &core.FetchResult{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
