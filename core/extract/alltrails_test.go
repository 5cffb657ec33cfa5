package extract

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pinpipe/core"
)

const flattopURL = "https://www.alltrails.com/trail/us/alaska/flattop-mountain-trail"

func TestWidgetURL(t *testing.T) {
	assert.Equal(t, "https://www.alltrails.com/widget/trail/us/alaska/flattop-mountain-trail", WidgetURL(flattopURL))
	assert.Equal(t, "https://www.alltrails.com/widget/trail/us/x", WidgetURL("https://www.alltrails.com/widget/trail/us/x"))
	assert.Equal(t, "https://www.alltrails.com/explore/us/alaska", WidgetURL("https://www.alltrails.com/explore/us/alaska"))
}

func TestAllTrailsExtract_FetchesWidgetWithBrowserHeaders(t *testing.T) {
	f := &fakeFetcher{html: `<meta property="og:title" content="Flattop Mountain - Alaska | AllTrails">
<script>var trail = {"lat":61.0894,"lng":-149.6842,"length":4.8,"elevationGain":1466};</script>`}
	e := NewAllTrails(f, "", nil, nil)

	c, err := e.Extract(context.Background(), flattopURL)
	require.NoError(t, err)

	require.Equal(t, 1, f.callCount())
	assert.Equal(t, WidgetURL(flattopURL), f.calls[0])
	assert.Equal(t, "https://www.alltrails.com/", f.headers[0]["Referer"])
	assert.NotEmpty(t, f.headers[0]["Accept-Language"])

	assert.Equal(t, "Flattop Mountain", c.Name)
	require.NotNil(t, c.Coordinates)
	assert.Equal(t, core.Coordinates{Lat: 61.0894, Lng: -149.6842}, *c.Coordinates)
	assert.Equal(t, "4.8 mi • +1466 ft elevation", c.Description)
	assert.Equal(t, core.HikeCategory, c.Category)
	assert.Equal(t, flattopURL, c.SourceURL)
	require.NotNil(t, c.DistanceMiles)
	assert.InDelta(t, 4.8, *c.DistanceMiles, 1e-9)
	require.NotNil(t, c.ElevationGainFeet)
	assert.Equal(t, 1466, *c.ElevationGainFeet)
}

func TestAllTrailsExtract_MetricValues(t *testing.T) {
	f := &fakeFetcher{html: `<div data-length="8047" data-elevation="12000"></div>`}
	c, err := NewAllTrails(f, "", nil, nil).Extract(context.Background(), flattopURL)
	require.NoError(t, err)
	assert.Equal(t, "5.0 mi • +39370 ft elevation", c.Description)
}

func TestAllTrailsExtract_LabelledValues(t *testing.T) {
	f := &fakeFetcher{html: `<body><p>Length: 4.5 mi</p><p>Elev. Gain: 1,350 ft</p></body>`}
	c, err := NewAllTrails(f, "", nil, nil).Extract(context.Background(), flattopURL)
	require.NoError(t, err)
	assert.Equal(t, "4.5 mi • +1350 ft elevation", c.Description)
	require.NotNil(t, c.ElevationGainFeet)
	assert.Equal(t, 1350, *c.ElevationGainFeet)
}

func TestAllTrailsExtract_NoData(t *testing.T) {
	f := &fakeFetcher{html: `<html><body></body></html>`}
	c, err := NewAllTrails(f, "", nil, nil).Extract(context.Background(), flattopURL)
	require.NoError(t, err)
	assert.Equal(t, "Flattop Mountain Trail", c.Name)
	assert.Nil(t, c.Coordinates)
	assert.Equal(t, "Hiking trail", c.Description)
	assert.Equal(t, core.HikeCategory, c.Category)
	assert.Nil(t, c.DistanceMiles)
	assert.Nil(t, c.ElevationGainFeet)
}

func TestTrailName(t *testing.T) {
	tests := []struct {
		name string
		md   Metadata
		want string
	}{
		{"og title", Metadata{Title: "Bird Ridge | AllTrails", PageTitle: "Other"}, "Bird Ridge"},
		{"page title", Metadata{PageTitle: "Bird Ridge - Alaska | AllTrails"}, "Bird Ridge"},
		{"site name replaced by data-name", Metadata{Title: "AllTrails", DataName: "Bird Ridge"}, "Bird Ridge"},
		{"site name replaced by slug", Metadata{Title: "AllTrails"}, "Flattop Mountain Trail"},
		{"data-name", Metadata{DataName: "Bird Ridge"}, "Bird Ridge"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trailName(flattopURL, tt.md))
		})
	}
}

func TestAllTrailsCoordinates_Order(t *testing.T) {
	tests := []struct {
		name string
		page string
		want core.Coordinates
	}{
		{
			name: "lat/lng beats latitude/longitude",
			page: `<script>var a = {"latitude":10.5,"longitude":20.5}; var b = {"lat":1.5,"lng":2.5};</script>`,
			want: core.Coordinates{Lat: 1.5, Lng: 2.5},
		},
		{
			name: "lat/lng beats data attributes",
			page: `<div data-lat="60.9" data-lng="-149.1"></div><script>{"lat":61.1,"lng":-149.8}</script>`,
			want: core.Coordinates{Lat: 61.1, Lng: -149.8},
		},
		{
			name: "latitude/longitude beats data attributes",
			page: `<div data-lat="60.9" data-lng="-149.1"></div><script>{"latitude":61.5,"longitude":-149.5}</script>`,
			want: core.Coordinates{Lat: 61.5, Lng: -149.5},
		},
		{
			name: "latitude/longitude beats center array",
			page: `<script>map({center: [1.5, 2.5]}); var t = {"latitude":61.6,"longitude":-149.6};</script>`,
			want: core.Coordinates{Lat: 61.6, Lng: -149.6},
		},
		{
			name: "structural match beats json-ld",
			page: `<script type="application/ld+json">{"geo":{"latitude": 1.0, "longitude": 2.0}}</script>
<div data-lat="60.9" data-lng="-149.1"></div>`,
			want: core.Coordinates{Lat: 60.9, Lng: -149.1},
		},
		{
			name: "data attributes beat center array",
			page: `<div data-lat="60.9" data-lng="-149.1"></div><script>map({center: [1.5, 2.5]})</script>`,
			want: core.Coordinates{Lat: 60.9, Lng: -149.1},
		},
		{
			name: "center array alone",
			page: `<script>map({center: [61.2, -149.7]})</script>`,
			want: core.Coordinates{Lat: 61.2, Lng: -149.7},
		},
		{
			name: "json-ld list with string coordinates",
			page: `<script type="application/ld+json">[{"@type":"Place","geo":{"latitude": "61.3","longitude": -149.2}}]</script>`,
			want: core.Coordinates{Lat: 61.3, Lng: -149.2},
		},
		{
			name: "malformed json-ld is skipped",
			page: `<script type="application/ld+json">{not json</script>
<script type="application/ld+json">{"geo":{"latitude": 61.4, "longitude": -149.3}}</script>`,
			want: core.Coordinates{Lat: 61.4, Lng: -149.3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{html: tt.page}
			c, err := NewAllTrails(f, "", nil, nil).Extract(context.Background(), flattopURL)
			require.NoError(t, err)
			require.NotNil(t, c.Coordinates)
			assert.Equal(t, tt.want, *c.Coordinates)
		})
	}
}

func TestAllTrailsMeasurements_Order(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		miles     *float64
		feet      *int
		wantDescr string
	}{
		{
			name:      "length field beats attribute",
			page:      `<div data-length="4.0"></div><script>{"length":3.1}</script>`,
			miles:     floatPtr(3.1),
			wantDescr: "3.1 mi",
		},
		{
			name:      "length attribute beats label",
			page:      `<div data-length="4.0"></div><p>Length: 3.2 mi</p>`,
			miles:     floatPtr(4.0),
			wantDescr: "4.0 mi",
		},
		{
			name:      "length label alone",
			page:      `<p>Length: 3.2 mi</p>`,
			miles:     floatPtr(3.2),
			wantDescr: "3.2 mi",
		},
		{
			name:      "elevation field beats attribute",
			page:      `<div data-elevation="900"></div><script>{"elevationGain":1200}</script>`,
			feet:      intPtr(1200),
			wantDescr: "+1200 ft elevation",
		},
		{
			name:      "elevation attribute beats label",
			page:      `<div data-elevation="900"></div><p>Elev. Gain: 1,500 ft</p>`,
			feet:      intPtr(900),
			wantDescr: "+900 ft elevation",
		},
		{
			name:      "out of range elevation falls through to label",
			page:      `<div data-elevation="99999999999999999999"></div><p>Elev. Gain: 1,500 ft</p>`,
			feet:      intPtr(1500),
			wantDescr: "+1500 ft elevation",
		},
		{
			name:      "out of range values are no signal",
			page:      `<div data-length="99999999999999999999999" data-elevation="99999999999999999999"></div>`,
			wantDescr: "Hiking trail",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{html: tt.page}
			c, err := NewAllTrails(f, "", nil, nil).Extract(context.Background(), flattopURL)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDescr, c.Description)
			if tt.miles == nil {
				assert.Nil(t, c.DistanceMiles)
			} else {
				require.NotNil(t, c.DistanceMiles)
				assert.InDelta(t, *tt.miles, *c.DistanceMiles, 1e-9)
			}
			if tt.feet == nil {
				assert.Nil(t, c.ElevationGainFeet)
			} else {
				require.NotNil(t, c.ElevationGainFeet)
				assert.Equal(t, *tt.feet, *c.ElevationGainFeet)
			}
		})
	}
}

func TestManualCandidate_OutOfRangeNumbers(t *testing.T) {
	c := manualCandidate(flattopURL, &core.ManualEntry{
		Name:      "Flattop",
		Lat:       61.1,
		Lng:       -149.7,
		Distance:  "1e30",
		Elevation: "99999999999999999999",
	})
	assert.Nil(t, c.DistanceMiles)
	assert.Nil(t, c.ElevationGainFeet)
	assert.Equal(t, "1e30 mi • +99999999999999999999 ft elevation", c.Description)
}

func TestAllTrailsExtract_ExtendedDescription(t *testing.T) {
	f := &fakeFetcher{html: `<meta property="og:description" content="Fallback text">
<script type="application/ld+json">{"description":"<p>Great <strong>views</strong></p>"}</script>`}
	c, err := NewAllTrails(f, "", nil, nil).Extract(context.Background(), flattopURL)
	require.NoError(t, err)
	assert.Equal(t, "Great **views**", c.ExtendedDescription)

	f = &fakeFetcher{html: `<meta property="og:description" content="Fallback text">`}
	c, err = NewAllTrails(f, "", nil, nil).Extract(context.Background(), flattopURL)
	require.NoError(t, err)
	assert.Equal(t, "Fallback text", c.ExtendedDescription)
}

func TestAllTrailsExtract_ManualFallbackCalledOnce(t *testing.T) {
	f := &fakeFetcher{err: eris.Wrap(core.ErrFetchFailed, "fetch: status 403")}
	var requests []core.ManualRequest
	manual := func(_ context.Context, req core.ManualRequest) (*core.ManualEntry, error) {
		requests = append(requests, req)
		return &core.ManualEntry{Name: "Crow Pass", Lat: 60.99, Lng: -149.11, Distance: "4", Elevation: "2,000"}, nil
	}

	c, err := NewAllTrails(f, "", manual, nil).Extract(context.Background(), flattopURL)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, flattopURL, requests[0].URL)
	assert.True(t, eris.Is(requests[0].Reason, core.ErrFetchFailed))
	assert.Equal(t, 1, f.callCount(), "no retry")

	assert.Equal(t, "Crow Pass", c.Name)
	assert.Equal(t, core.Coordinates{Lat: 60.99, Lng: -149.11}, *c.Coordinates)
	assert.Equal(t, "4 mi • +2,000 ft elevation", c.Description)
	assert.Equal(t, core.HikeCategory, c.Category)
	require.NotNil(t, c.DistanceMiles)
	assert.InDelta(t, 4.0, *c.DistanceMiles, 1e-9)
	require.NotNil(t, c.ElevationGainFeet)
	assert.Equal(t, 2000, *c.ElevationGainFeet)
}

func TestManualCandidate_Blank(t *testing.T) {
	c := manualCandidate(flattopURL, &core.ManualEntry{Lat: 61, Lng: -149})
	assert.Equal(t, "Flattop Mountain Trail", c.Name)
	assert.Equal(t, "Hiking trail", c.Description)
	assert.Nil(t, c.DistanceMiles)
	assert.Nil(t, c.ElevationGainFeet)
}

func TestAllTrailsExtract_NonInteractive(t *testing.T) {
	f := &fakeFetcher{err: eris.Wrap(core.ErrFetchFailed, "fetch: status 403")}
	_, err := NewAllTrails(f, "", nil, nil).Extract(context.Background(), flattopURL)
	require.Error(t, err)
	assert.True(t, eris.Is(err, core.ErrManualUnavailable))
}

func TestAllTrailsExtract_ManualError(t *testing.T) {
	f := &fakeFetcher{err: eris.New("offline")}
	manual := func(context.Context, core.ManualRequest) (*core.ManualEntry, error) {
		return nil, context.Canceled
	}
	_, err := NewAllTrails(f, "", manual, nil).Extract(context.Background(), flattopURL)
	require.Error(t, err)
	assert.True(t, eris.Is(err, context.Canceled))
}
