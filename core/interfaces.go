// Package core defines the pipeline types and interfaces for pinpipe.
// Each stage of the pipeline is a clean, testable interface: a URL goes
// through detection, per-service extraction, inference and composition
// before a Place is handed to a store.
package core

import "context"

// Service identifies which mapping service a URL belongs to.
type Service string

const (
	ServiceUnknown   Service = "unknown"
	ServiceGoogle    Service = "google"
	ServiceApple     Service = "apple"
	ServiceAllTrails Service = "alltrails"
)

// Label returns the human-facing name of the service.
func (s Service) Label() string {
	switch s {
	case ServiceGoogle:
		return "Google Maps"
	case ServiceApple:
		return "Apple Maps"
	case ServiceAllTrails:
		return "AllTrails"
	default:
		return "unknown"
	}
}

// HikeCategory is the category every AllTrails place is filed under.
const HikeCategory = "Hike"

// Coordinates is a latitude/longitude pair in signed decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// PinCandidate is an extracted, not yet persisted place record.
// Coordinates is nil when no strategy located a position; a candidate
// never carries a single axis.
type PinCandidate struct {
	Name                string       `json:"name"`
	Coordinates         *Coordinates `json:"coordinates,omitempty"`
	Description         string       `json:"description"`
	ExtendedDescription string       `json:"extended_description,omitempty"`
	SourceURL           string       `json:"source_url"`
	Category            string       `json:"category,omitempty"`
	DistanceMiles       *float64     `json:"distance_miles,omitempty"`
	ElevationGainFeet   *int         `json:"elevation_gain_feet,omitempty"`
}

// Place is the composed record handed to a store.
type Place struct {
	ID                  string      `json:"id,omitempty" yaml:"id"`
	Name                string      `json:"name" yaml:"name"`
	Coordinates         Coordinates `json:"coordinates" yaml:"coordinates"`
	Description         string      `json:"description" yaml:"description"`
	ExtendedDescription string      `json:"extended_description,omitempty" yaml:"extended_description,omitempty"`
	Category            string      `json:"category" yaml:"category"`
	Link                string      `json:"link,omitempty" yaml:"link,omitempty"`
	MapsLink            string      `json:"maps_link,omitempty" yaml:"maps_link,omitempty"`
	Distance            *float64    `json:"distance,omitempty" yaml:"distance,omitempty"`
	ElevationGain       *int        `json:"elevation_gain,omitempty" yaml:"elevation_gain,omitempty"`
	Region              string      `json:"region,omitempty" yaml:"region,omitempty"`
}

// Category is a named place category owned by the store.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// FetchResult holds the raw HTML and response metadata from a fetch.
// URL is the final URL after redirects.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Fetcher retrieves raw HTML from a URL, sending the given headers.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) (*FetchResult, error)
}

// Extractor produces a candidate from a raw URL of one service.
type Extractor interface {
	Service() Service
	Extract(ctx context.Context, rawURL string) (*PinCandidate, error)
}

// ManualRequest describes why operator input is needed.
type ManualRequest struct {
	URL    string
	Reason error
}

// ManualEntry holds operator-supplied values for a place that could not be fetched.
// Distance and Elevation are free text and may be empty.
type ManualEntry struct {
	Name      string
	Lat       float64
	Lng       float64
	Distance  string
	Elevation string
}

// ManualEntryFunc asks an operator for place details.
type ManualEntryFunc func(ctx context.Context, req ManualRequest) (*ManualEntry, error)

// Normalizer converts an HTML fragment into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts a composed place into a final output format.
type Renderer interface {
	Render(place *Place) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
