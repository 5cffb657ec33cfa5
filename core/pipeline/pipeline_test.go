package pipeline

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pinpipe/core"
	"github.com/gaurav-prasanna/pinpipe/core/extract"
)

type stubExtractor struct {
	service   core.Service
	candidate *core.PinCandidate
	err       error
	calls     int
}

func (s *stubExtractor) Service() core.Service { return s.service }

func (s *stubExtractor) Extract(_ context.Context, rawURL string) (*core.PinCandidate, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	c := *s.candidate
	if c.SourceURL == "" {
		c.SourceURL = rawURL
	}
	return &c, nil
}

type stubCategories struct {
	names []string
	err   error
	calls int
}

func (s *stubCategories) Names(context.Context) ([]string, error) {
	s.calls++
	return s.names, s.err
}

var defaultNames = []string{"Eat/Drink", "Hike", "City", "Landmark", "Point of Interest"}

func TestProcess_UnrecognizedURL(t *testing.T) {
	ex := &stubExtractor{service: core.ServiceGoogle}
	p := New(extract.NewRegistry(ex), &stubCategories{})

	_, err := p.Process(context.Background(), "https://example.com/place")
	require.Error(t, err)
	assert.True(t, eris.Is(err, core.ErrUnrecognizedURL))
	assert.Zero(t, ex.calls, "no extractor runs for an unknown url")
}

func TestProcess_GoogleInfersCategory(t *testing.T) {
	ex := &stubExtractor{
		service: core.ServiceGoogle,
		candidate: &core.PinCandidate{
			Name:        "Best Burrito Cafe",
			Coordinates: &core.Coordinates{Lat: 61.2, Lng: -149.9},
		},
	}
	cats := &stubCategories{names: defaultNames}
	p := New(extract.NewRegistry(ex), cats)

	res, err := p.Process(context.Background(), "  https://maps.app.goo.gl/abc  ")
	require.NoError(t, err)
	assert.Equal(t, core.ServiceGoogle, res.Service)
	assert.Equal(t, "https://maps.app.goo.gl/abc", res.InputURL)
	assert.Equal(t, "Eat/Drink", res.Suggested)
	assert.Equal(t, defaultNames, res.Categories)
	assert.Equal(t, 1, cats.calls)
}

func TestProcess_AllTrailsSkipsInference(t *testing.T) {
	ex := &stubExtractor{
		service: core.ServiceAllTrails,
		candidate: &core.PinCandidate{
			Name:        "Best Burrito Cafe Trail",
			Coordinates: &core.Coordinates{Lat: 61.1, Lng: -149.7},
			Category:    core.HikeCategory,
		},
	}
	cats := &stubCategories{names: defaultNames}
	p := New(extract.NewRegistry(ex), cats)

	res, err := p.Process(context.Background(), "https://www.alltrails.com/trail/us/alaska/x")
	require.NoError(t, err)
	assert.Empty(t, res.Suggested)
	assert.Zero(t, cats.calls)
}

func TestProcess_MissingCoordinates(t *testing.T) {
	ex := &stubExtractor{service: core.ServiceApple, candidate: &core.PinCandidate{Name: "Nowhere"}}
	p := New(extract.NewRegistry(ex), &stubCategories{names: defaultNames})

	_, err := p.Process(context.Background(), "https://maps.apple.com/?q=Nowhere")
	require.Error(t, err)
	assert.True(t, eris.Is(err, core.ErrMissingCoordinates))
}

func TestProcess_ExtractorError(t *testing.T) {
	ex := &stubExtractor{service: core.ServiceGoogle, err: eris.Wrap(core.ErrFetchFailed, "fetch: status 500")}
	p := New(extract.NewRegistry(ex), &stubCategories{})

	_, err := p.Process(context.Background(), "https://maps.google.com/?cid=1")
	require.Error(t, err)
	assert.True(t, eris.Is(err, core.ErrFetchFailed))
}

func TestProcess_CategoryLoadError(t *testing.T) {
	ex := &stubExtractor{
		service:   core.ServiceApple,
		candidate: &core.PinCandidate{Coordinates: &core.Coordinates{Lat: 1.5, Lng: 2.5}},
	}
	p := New(extract.NewRegistry(ex), &stubCategories{err: eris.New("db down")})

	_, err := p.Process(context.Background(), "https://maps.apple.com/?ll=1.5,2.5")
	require.Error(t, err)
}
