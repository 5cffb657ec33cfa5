// Package extract: Google Maps extractor.
// Follows share-link redirects and reads coordinates from the resolved URL,
// then from the page.
package extract

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/pinpipe/core"
	"github.com/gaurav-prasanna/pinpipe/core/fetch"
)

// GoogleExtractor resolves Google Maps links by following redirects.
// Short share links land on a canonical URL that embeds the place
// coordinates, so the final URL is read before the page markup.
type GoogleExtractor struct {
	fetcher   core.Fetcher
	userAgent string
}

// NewGoogle creates a GoogleExtractor.
func NewGoogle(fetcher core.Fetcher, userAgent string) *GoogleExtractor {
	return &GoogleExtractor{fetcher: fetcher, userAgent: userAgent}
}

// Service reports core.ServiceGoogle.
func (e *GoogleExtractor) Service() core.Service { return core.ServiceGoogle }

// Extract fetches the link and builds a candidate from the resolved URL and page.
// A fetch failure is returned: without the page nothing can be recovered.
func (e *GoogleExtractor) Extract(ctx context.Context, rawURL string) (*core.PinCandidate, error) {
	res, err := e.fetcher.Fetch(ctx, rawURL, fetch.MinimalHeaders(e.userAgent))
	if err != nil {
		return nil, eris.Wrap(err, "google: fetch")
	}

	coords, source := googleCoordinates(res.URL, res.HTML)
	if coords != nil {
		zap.L().Debug("google: coordinates resolved",
			zap.String("url", rawURL),
			zap.String("pattern", source),
		)
	}

	md := MetadataFromHTML(res.HTML)

	sourceURL := rawURL
	if strings.Contains(res.URL, "://") {
		sourceURL = res.URL
	}

	return &core.PinCandidate{
		Name:        md.Title,
		Coordinates: coords,
		Description: md.Description,
		SourceURL:   sourceURL,
	}, nil
}

// googleCoordinates applies the coordinate precedence: the place marker,
// then the viewport center and the q= parameter of the resolved URL, and
// finally the view-state center embedded in the page.
func googleCoordinates(finalURL, page string) (*core.Coordinates, string) {
	if c, name := firstPair([]pairPattern{googlePlacePattern, googleViewportPattern, googleQueryPattern}, finalURL); c != nil {
		return c, name
	}
	if c, ok := matchPair(googleViewState, page); ok {
		return c, googleViewState.name
	}
	return nil, ""
}
