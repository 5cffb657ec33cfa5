// Package extract: service to extractor lookup.
package extract

import (
	"github.com/rotisserie/eris"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// Registry maps each service to its extractor.
type Registry struct {
	extractors map[core.Service]core.Extractor
}

// NewRegistry builds a registry; a later extractor for the same service wins.
func NewRegistry(extractors ...core.Extractor) *Registry {
	r := &Registry{extractors: make(map[core.Service]core.Extractor, len(extractors))}
	for _, e := range extractors {
		r.extractors[e.Service()] = e
	}
	return r
}

// For returns the extractor registered for service.
func (r *Registry) For(service core.Service) (core.Extractor, error) {
	e, ok := r.extractors[service]
	if !ok {
		return nil, eris.Wrapf(core.ErrUnrecognizedURL, "extract: no extractor for %s", service)
	}
	return e, nil
}
