// Package pipeline runs a URL through detection, extraction and category
// inference, and composes the result into a place ready for a store.
package pipeline

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/pinpipe/core"
	"github.com/gaurav-prasanna/pinpipe/core/detect"
	"github.com/gaurav-prasanna/pinpipe/core/extract"
	"github.com/gaurav-prasanna/pinpipe/core/infer"
)

// CategorySource lists the category names a place may be filed under, in
// display order.
type CategorySource interface {
	Names(ctx context.Context) ([]string, error)
}

// Pipeline holds the collaborators shared by every URL of a run.
type Pipeline struct {
	registry   *extract.Registry
	categories CategorySource
}

// New creates a Pipeline.
func New(registry *extract.Registry, categories CategorySource) *Pipeline {
	return &Pipeline{registry: registry, categories: categories}
}

// Result is the outcome of extracting one URL.
type Result struct {
	Service   core.Service
	InputURL  string
	Candidate *core.PinCandidate
	// Suggested is the inferred category for maps services, empty when none matched.
	Suggested string
	// Categories is the store's category list; empty for AllTrails.
	Categories []string
}

// Process detects the service of rawURL, runs its extractor and, for maps
// services, infers a category. A candidate without coordinates is an error.
func (p *Pipeline) Process(ctx context.Context, rawURL string) (*Result, error) {
	rawURL = strings.TrimSpace(rawURL)
	service := detect.Detect(rawURL)
	if service == core.ServiceUnknown {
		return nil, eris.Wrapf(core.ErrUnrecognizedURL, "pipeline: %s", rawURL)
	}

	extractor, err := p.registry.For(service)
	if err != nil {
		return nil, err
	}

	zap.L().Info("pipeline: extracting",
		zap.String("url", rawURL),
		zap.String("service", string(service)),
	)
	candidate, err := extractor.Extract(ctx, rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: extract %s", rawURL)
	}
	if candidate.Coordinates == nil {
		return nil, eris.Wrapf(core.ErrMissingCoordinates, "pipeline: %s", rawURL)
	}

	res := &Result{Service: service, InputURL: rawURL, Candidate: candidate}
	if service == core.ServiceAllTrails {
		return res, nil
	}

	names, err := p.categories.Names(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load categories")
	}
	res.Categories = names
	if suggested, ok := infer.Infer(candidate.Name, candidate.Description, names); ok {
		res.Suggested = suggested
	}
	return res, nil
}
