// Package extract: AllTrails extractor.
// Fetches the widget rendering of a trail page and walks per-field fallback
// chains, with an injected manual-entry path when the fetch fails.
package extract

import (
	"context"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gaurav-prasanna/pinpipe/core"
	"github.com/gaurav-prasanna/pinpipe/core/fetch"
	"github.com/gaurav-prasanna/pinpipe/core/normalize"
)

const (
	allTrailsSite     = "AllTrails"
	allTrailsReferer  = "https://www.alltrails.com/"
	descSeparator     = " • "
	defaultTrailBlurb = "Hiking trail"
)

// AllTrailsExtractor scrapes trail pages through the widget rendering,
// which is served to clients the full page blocks. When the fetch fails it
// hands over to an operator via the injected manual entry function.
type AllTrailsExtractor struct {
	fetcher    core.Fetcher
	userAgent  string
	manual     core.ManualEntryFunc
	normalizer core.Normalizer
}

// NewAllTrails creates an AllTrailsExtractor. manual may be nil, in which
// case a failed fetch is returned as core.ErrManualUnavailable.
func NewAllTrails(fetcher core.Fetcher, userAgent string, manual core.ManualEntryFunc, normalizer core.Normalizer) *AllTrailsExtractor {
	if normalizer == nil {
		normalizer = normalize.New()
	}
	return &AllTrailsExtractor{
		fetcher:    fetcher,
		userAgent:  userAgent,
		manual:     manual,
		normalizer: normalizer,
	}
}

// Service reports core.ServiceAllTrails.
func (e *AllTrailsExtractor) Service() core.Service { return core.ServiceAllTrails }

// Extract fetches the widget page and builds a trail candidate.
func (e *AllTrailsExtractor) Extract(ctx context.Context, rawURL string) (*core.PinCandidate, error) {
	target := WidgetURL(rawURL)
	res, err := e.fetcher.Fetch(ctx, target, fetch.BrowserHeaders(e.userAgent, allTrailsReferer))
	if err != nil {
		zap.L().Warn("alltrails: could not auto-fetch trail page",
			zap.String("url", target),
			zap.Error(err),
		)
		return e.fromManual(ctx, rawURL, err)
	}
	return e.fromPage(rawURL, res.HTML), nil
}

// WidgetURL rewrites a trail URL to its widget variant. URLs that already
// target the widget, or that are not trail pages, are returned unchanged.
func WidgetURL(rawURL string) string {
	widget := strings.Replace(rawURL, "alltrails.com/trail/", "alltrails.com/widget/trail/", 1)
	if !strings.Contains(widget, "widget") {
		return rawURL
	}
	return widget
}

// fromManual asks the operator for the trail details.
func (e *AllTrailsExtractor) fromManual(ctx context.Context, rawURL string, cause error) (*core.PinCandidate, error) {
	if e.manual == nil {
		return nil, eris.Wrapf(core.ErrManualUnavailable, "alltrails: %v", cause)
	}
	entry, err := e.manual(ctx, core.ManualRequest{URL: rawURL, Reason: cause})
	if err != nil {
		return nil, eris.Wrap(err, "alltrails: manual entry")
	}
	return manualCandidate(rawURL, entry), nil
}

// manualCandidate builds a candidate from operator input. The description
// uses the values as typed; numeric fields are set only when they parse.
func manualCandidate(rawURL string, entry *core.ManualEntry) *core.PinCandidate {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		name = nameFromURL(rawURL)
	}
	c := &core.PinCandidate{
		Name:        name,
		Coordinates: &core.Coordinates{Lat: entry.Lat, Lng: entry.Lng},
		SourceURL:   rawURL,
		Category:    core.HikeCategory,
	}

	distance := strings.TrimSpace(entry.Distance)
	elevation := strings.TrimSpace(entry.Elevation)
	var parts []string
	if distance != "" {
		parts = append(parts, distance+" mi")
		if v, err := strconv.ParseFloat(distance, 64); err == nil {
			if d, ok := normalize.NormalizeDistance(v, normalize.UnitImperial); ok {
				c.DistanceMiles = &d.Miles
			}
		}
	}
	if elevation != "" {
		parts = append(parts, "+"+elevation+" ft elevation")
		if v, err := strconv.ParseFloat(strings.ReplaceAll(elevation, ",", ""), 64); err == nil {
			if el, ok := normalize.NormalizeElevation(v, normalize.UnitImperial); ok {
				c.ElevationGainFeet = &el.Feet
			}
		}
	}
	c.Description = joinDescription(parts)
	return c
}

// fromPage runs the field fallback chains over a fetched trail page.
func (e *AllTrailsExtractor) fromPage(rawURL, page string) *core.PinCandidate {
	doc, err := ParseDocument(page)
	var md Metadata
	var text string
	if err == nil {
		md = ReadMetadata(doc)
		text = VisibleText(doc)
	}

	c := &core.PinCandidate{
		Name:      trailName(rawURL, md),
		SourceURL: rawURL,
		Category:  core.HikeCategory,
	}

	if coords, source := firstPair(trailCoordinatePatterns, page); coords != nil {
		c.Coordinates = coords
		zap.L().Debug("alltrails: coordinates matched", zap.String("pattern", source))
	} else {
		c.Coordinates = linkedDataGeo(md.LinkedData)
	}

	var parts []string
	if d, source, ok := firstDistance(page, text); ok {
		c.DistanceMiles = &d.Miles
		parts = append(parts, d.Display)
		zap.L().Debug("alltrails: distance matched", zap.String("pattern", source))
	}
	if el, source, ok := firstElevation(page, text); ok {
		c.ElevationGainFeet = &el.Feet
		parts = append(parts, "+"+el.Display+" elevation")
		zap.L().Debug("alltrails: elevation matched", zap.String("pattern", source))
	}
	c.Description = joinDescription(parts)
	c.ExtendedDescription = e.extendedDescription(md)
	return c
}

// trailName walks the name chain: og:title, <title>, data-name, URL slug.
// A name equal to the bare site name counts as not found.
func trailName(rawURL string, md Metadata) string {
	name := trimSiteSuffix(md.Title)
	if name == "" {
		name = trimSiteSuffix(md.PageTitle)
	}
	if name == "" || name == allTrailsSite {
		if md.DataName != "" {
			name = md.DataName
		}
	}
	if name == "" || name == allTrailsSite {
		name = nameFromURL(rawURL)
	}
	return name
}

// nameFromURL title-cases the last path segment of a URL.
func nameFromURL(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	slug := path.Base(strings.TrimRight(p, "/"))
	if slug == "." || slug == "/" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

// linkedDataGeo returns the geo position of the first JSON-LD payload that has one.
// Payloads may be an object or a list whose first element is the object.
func linkedDataGeo(payloads []string) *core.Coordinates {
	for _, payload := range payloads {
		item, ok := linkedDataItem(payload)
		if !ok {
			continue
		}
		geo := item.Get("geo")
		if !geo.IsObject() {
			continue
		}
		lat, okLat := jsonNumber(geo.Get("latitude"))
		lng, okLng := jsonNumber(geo.Get("longitude"))
		if okLat && okLng {
			return &core.Coordinates{Lat: lat, Lng: lng}
		}
	}
	return nil
}

// linkedDataItem unwraps a JSON-LD payload; malformed payloads are skipped.
func linkedDataItem(payload string) (gjson.Result, bool) {
	if !gjson.Valid(payload) {
		zap.L().Debug("alltrails: ignoring malformed json-ld")
		return gjson.Result{}, false
	}
	r := gjson.Parse(payload)
	if r.IsArray() {
		items := r.Array()
		if len(items) == 0 {
			return gjson.Result{}, false
		}
		r = items[0]
	}
	return r, r.IsObject()
}

// jsonNumber reads a number that may be encoded as a JSON number or string.
func jsonNumber(v gjson.Result) (float64, bool) {
	if !v.Exists() {
		return 0, false
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// extendedDescription prefers the JSON-LD description, then og:description.
func (e *AllTrailsExtractor) extendedDescription(md Metadata) string {
	raw := md.Description
	for _, payload := range md.LinkedData {
		if item, ok := linkedDataItem(payload); ok {
			if d := strings.TrimSpace(item.Get("description").String()); d != "" {
				raw = d
				break
			}
		}
	}
	text, err := e.normalizer.Normalize(raw)
	if err != nil {
		zap.L().Debug("alltrails: keeping raw description", zap.Error(err))
		return raw
	}
	return text
}

func joinDescription(parts []string) string {
	if len(parts) == 0 {
		return defaultTrailBlurb
	}
	return strings.Join(parts, descSeparator)
}
