// Package extract: Apple Maps extractor.
// Reads the share link's query string; the page is a last resort.
package extract

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/pinpipe/core"
	"github.com/gaurav-prasanna/pinpipe/core/fetch"
)

// AppleExtractor reads Apple Maps links from their query string.
// The page is fetched only when the link carries no coordinates.
type AppleExtractor struct {
	fetcher   core.Fetcher
	userAgent string
}

// NewApple creates an AppleExtractor.
func NewApple(fetcher core.Fetcher, userAgent string) *AppleExtractor {
	return &AppleExtractor{fetcher: fetcher, userAgent: userAgent}
}

// Service reports core.ServiceApple.
func (e *AppleExtractor) Service() core.Service { return core.ServiceApple }

// Extract never fails: a failed supplementary fetch leaves coordinates unset.
func (e *AppleExtractor) Extract(ctx context.Context, rawURL string) (*core.PinCandidate, error) {
	c := appleFromQuery(rawURL)
	if c.Coordinates != nil {
		return c, nil
	}

	res, err := e.fetcher.Fetch(ctx, rawURL, fetch.MinimalHeaders(e.userAgent))
	if err != nil {
		zap.L().Warn("apple: could not fetch additional data",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return c, nil
	}
	if coords, ok := matchPair(applePagePattern, res.HTML); ok {
		c.Coordinates = coords
	}
	return c, nil
}

// appleFromQuery builds a candidate from the link's query parameters alone.
func appleFromQuery(rawURL string) *core.PinCandidate {
	c := &core.PinCandidate{SourceURL: rawURL}

	u, err := url.Parse(rawURL)
	if err != nil {
		zap.L().Debug("apple: unparseable url", zap.String("url", rawURL), zap.Error(err))
		return c
	}
	params := u.Query()

	for _, key := range []string{"ll", "coordinate"} {
		if coords, ok := matchPair(pairPattern{key, appleParamPattern}, params.Get(key)); ok {
			c.Coordinates = coords
			break
		}
	}

	for _, key := range []string{"q", "name"} {
		if v := strings.TrimSpace(params.Get(key)); v != "" {
			c.Name = v
			c.Description = v
			break
		}
	}

	if addr := strings.TrimSpace(params.Get("address")); addr != "" {
		if c.Name == "" {
			c.Name = addr
		}
		if c.Description == "" {
			c.Description = addr
		}
	}
	return c
}
