// Package extract: coordinate and measurement patterns.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/pinpipe/core"
	"github.com/gaurav-prasanna/pinpipe/core/normalize"
)

// pairPattern locates a latitude/longitude pair; group 1 is lat, group 2 is lng.
type pairPattern struct {
	name string
	re   *regexp.Regexp
}

// valuePattern locates a single numeric measurement in group 1.
type valuePattern struct {
	name string
	re   *regexp.Regexp
	// unit is UnitUnknown unless the pattern carries its own unit label.
	unit normalize.Unit
	// onText matches against the visible page text instead of the raw markup.
	onText bool
}

// Google Maps coordinate sources, in precedence order.
var (
	googlePlacePattern    = pairPattern{"place", regexp.MustCompile(`!3d(-?\d+\.\d+)!4d(-?\d+\.\d+)`)}
	googleViewportPattern = pairPattern{"viewport", regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)}
	googleQueryPattern    = pairPattern{"query", regexp.MustCompile(`[?&]q=(-?\d+\.\d+)(?:,|%2C)(-?\d+\.\d+)`)}
	googleViewState       = pairPattern{"view_state", regexp.MustCompile(`"center":\{"lat":(-?\d+\.\d+),"lng":(-?\d+\.\d+)\}`)}
)

// Apple Maps coordinate sources.
var (
	appleParamPattern = regexp.MustCompile(`^(-?\d+\.\d+),(-?\d+\.\d+)`)
	applePagePattern  = pairPattern{"page_json", regexp.MustCompile(`"latitude":(-?\d+\.\d+),"longitude":(-?\d+\.\d+)`)}
)

// trailCoordinatePatterns are tried in order against the trail page markup.
// The center-array form is last; it also matches map widgets unrelated to the trail.
var trailCoordinatePatterns = []pairPattern{
	{"lat_lng", regexp.MustCompile(`"lat":([0-9.-]+),"lng":([0-9.-]+)`)},
	{"latitude_longitude", regexp.MustCompile(`"latitude":([0-9.-]+),"longitude":([0-9.-]+)`)},
	{"data_attributes", regexp.MustCompile(`data-lat="([0-9.-]+)"\s+data-lng="([0-9.-]+)"`)},
	{"center_array", regexp.MustCompile(`center:\s*\[([0-9.-]+),\s*([0-9.-]+)\]`)},
}

var trailDistancePatterns = []valuePattern{
	{name: "length_field", re: regexp.MustCompile(`"length":([0-9.]+)`)},
	{name: "length_attribute", re: regexp.MustCompile(`data-length="([0-9.]+)"`)},
	{name: "length_label", re: regexp.MustCompile(`Length:\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*mi(?:les)?\b`), unit: normalize.UnitImperial, onText: true},
}

var trailElevationPatterns = []valuePattern{
	{name: "elevation_field", re: regexp.MustCompile(`"elevationGain":([0-9.]+)`)},
	{name: "elevation_attribute", re: regexp.MustCompile(`data-elevation="([0-9.]+)"`)},
	{name: "elevation_label", re: regexp.MustCompile(`Elev(?:\.|ation)?\s*Gain:\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:ft|feet)\b`), unit: normalize.UnitImperial, onText: true},
}

// siteSuffix matches a trailing " | Site" or " - Region" branding suffix.
var siteSuffix = regexp.MustCompile(`\s*\|.*$|\s+[-–—]\s.*$`)

// matchPair applies a pair pattern; both axes must parse or there is no match.
func matchPair(p pairPattern, s string) (*core.Coordinates, bool) {
	m := p.re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, false
	}
	lng, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil, false
	}
	return &core.Coordinates{Lat: lat, Lng: lng}, true
}

// firstPair returns the first pattern that yields a full pair, and its name.
func firstPair(patterns []pairPattern, s string) (*core.Coordinates, string) {
	for _, p := range patterns {
		if c, ok := matchPair(p, s); ok {
			return c, p.name
		}
	}
	return nil, ""
}

// firstValue feeds each pattern's match to accept and returns the name of
// the first pattern whose value accept takes.
func firstValue(patterns []valuePattern, markup, text string, accept func(float64, normalize.Unit) bool) (string, bool) {
	for _, p := range patterns {
		src := markup
		if p.onText {
			src = text
		}
		m := p.re.FindStringSubmatch(src)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil || !accept(v, p.unit) {
			continue
		}
		return p.name, true
	}
	return "", false
}

// firstDistance returns the first in-range trail length, in miles.
func firstDistance(markup, text string) (normalize.Distance, string, bool) {
	var d normalize.Distance
	source, ok := firstValue(trailDistancePatterns, markup, text, func(v float64, unit normalize.Unit) bool {
		var ok bool
		d, ok = normalize.NormalizeDistance(v, unit)
		return ok
	})
	return d, source, ok
}

// firstElevation returns the first in-range elevation gain, in feet.
func firstElevation(markup, text string) (normalize.Elevation, string, bool) {
	var el normalize.Elevation
	source, ok := firstValue(trailElevationPatterns, markup, text, func(v float64, unit normalize.Unit) bool {
		var ok bool
		el, ok = normalize.NormalizeElevation(v, unit)
		return ok
	})
	return el, source, ok
}

// trimSiteSuffix drops a trailing branding suffix from a page title.
func trimSiteSuffix(title string) string {
	return strings.TrimSpace(siteSuffix.ReplaceAllString(title, ""))
}
