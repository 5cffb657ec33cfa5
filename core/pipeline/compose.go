package pipeline

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// Decision carries the operator's choices for a result. Every field is
// optional; an empty Category falls back to the inferred one.
type Decision struct {
	Category    string
	Description string
	Link        string
}

// Compose builds the place to persist from an extraction result.
func Compose(res *Result, d Decision) (*core.Place, error) {
	c := res.Candidate
	if c == nil || c.Coordinates == nil {
		return nil, eris.Wrapf(core.ErrMissingCoordinates, "compose: %s", res.InputURL)
	}

	place := &core.Place{
		Name:                c.Name,
		Coordinates:         *c.Coordinates,
		Description:         pickDescription(c, d.Description),
		ExtendedDescription: c.ExtendedDescription,
	}

	if res.Service == core.ServiceAllTrails {
		place.Category = c.Category
		if place.Category == "" {
			place.Category = core.HikeCategory
		}
		place.Link = res.InputURL
		place.Distance = c.DistanceMiles
		place.ElevationGain = c.ElevationGainFeet
		return place, nil
	}

	place.Category = strings.TrimSpace(d.Category)
	if place.Category == "" {
		place.Category = res.Suggested
	}
	if place.Category == "" {
		return nil, eris.Wrapf(core.ErrNoCategory, "compose: %s", res.InputURL)
	}
	place.MapsLink = c.SourceURL
	place.Link = strings.TrimSpace(d.Link)
	return place, nil
}

func pickDescription(c *core.PinCandidate, custom string) string {
	if s := strings.TrimSpace(custom); s != "" {
		return s
	}
	if c.Description != "" {
		return c.Description
	}
	return c.Name
}
