package extract

import (
	"context"
	"sync"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// fakeFetcher serves canned pages and records every call.
type fakeFetcher struct {
	mu       sync.Mutex
	finalURL string
	html     string
	err      error
	calls    []string
	headers  []map[string]string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, headers map[string]string) (*core.FetchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	f.headers = append(f.headers, headers)
	if f.err != nil {
		return nil, f.err
	}
	final := f.finalURL
	if final == "" {
		final = url
	}
	return &core.FetchResult{URL: final, StatusCode: 200, HTML: f.html}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
