// Package render provides output renderers for composed places.
// The Markdown card is the canonical layout; the PDF renderer draws the
// same card line by line.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// MarkdownRenderer writes a place as a Markdown card.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown card for place.
func (r *MarkdownRenderer) Render(place *core.Place) ([]byte, error) {
	return []byte(Card(place)), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// Card lays a place out as Markdown: a heading, a field list, the short
// description, and the extended description under its own heading.
func Card(place *core.Place) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", place.Name)

	fmt.Fprintf(&b, "- **Category:** %s\n", place.Category)
	fmt.Fprintf(&b, "- **Coordinates:** %.6f, %.6f\n", place.Coordinates.Lat, place.Coordinates.Lng)
	if place.Region != "" {
		fmt.Fprintf(&b, "- **Region:** %s\n", place.Region)
	}
	if place.Distance != nil {
		fmt.Fprintf(&b, "- **Distance:** %.1f mi\n", *place.Distance)
	}
	if place.ElevationGain != nil {
		fmt.Fprintf(&b, "- **Elevation gain:** %d ft\n", *place.ElevationGain)
	}
	if place.MapsLink != "" {
		fmt.Fprintf(&b, "- **Map:** [%s](%s)\n", "Open in maps", place.MapsLink)
	}
	if place.Link != "" {
		fmt.Fprintf(&b, "- **Learn more:** [%s](%s)\n", place.Link, place.Link)
	}

	if place.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", place.Description)
	}
	if place.ExtendedDescription != "" {
		fmt.Fprintf(&b, "\n## About\n\n%s\n", place.ExtendedDescription)
	}
	return b.String()
}
