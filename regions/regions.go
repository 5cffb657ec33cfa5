// Package regions groups places into named areas by coordinate thresholds.
package regions

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// Rule names a region and the thresholds a place must strictly exceed to
// fall in it. A nil threshold is not checked; a rule with none is a catch-all.
type Rule struct {
	Name     string   `mapstructure:"name" yaml:"name"`
	LatAbove *float64 `mapstructure:"lat_above" yaml:"lat_above,omitempty"`
	LngAbove *float64 `mapstructure:"lng_above" yaml:"lng_above,omitempty"`
}

func (r Rule) matches(c core.Coordinates) bool {
	if r.LatAbove != nil && !(c.Lat > *r.LatAbove) {
		return false
	}
	if r.LngAbove != nil && !(c.Lng > *r.LngAbove) {
		return false
	}
	return true
}

func threshold(v float64) *float64 { return &v }

// DefaultRules are the Southcentral Alaska regions.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "North of Anchorage", LatAbove: threshold(61.45)},
		{Name: "Anchorage Area", LatAbove: threshold(60.7)},
		{Name: "Seward Area", LngAbove: threshold(-150.3)},
		{Name: "Kenai Peninsula"},
	}
}

// Classifier assigns the first matching rule, in order.
type Classifier struct {
	rules []Rule
}

// New validates rules and returns a Classifier. An empty rule list falls
// back to DefaultRules.
func New(rules []Rule) (*Classifier, error) {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	for i, r := range rules {
		if r.Name == "" {
			return nil, eris.Errorf("regions: rule %d has no name", i)
		}
	}
	return &Classifier{rules: rules}, nil
}

// Determine returns the region for c. When no rule matches, the last rule wins.
func (c *Classifier) Determine(coords core.Coordinates) string {
	for _, r := range c.rules {
		if r.matches(coords) {
			return r.Name
		}
	}
	return c.rules[len(c.rules)-1].Name
}

// Names returns the region names in rule order.
func (c *Classifier) Names() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}

// Assignment is the region chosen for one place.
type Assignment struct {
	ID      string
	Name    string
	Region  string
	Changed bool
}

// Plan is the outcome of classifying a set of places.
type Plan struct {
	Assignments []Assignment
	Counts      map[string]int
}

// Changed returns the assignments whose region differs from the stored one.
func (p Plan) Changed() []Assignment {
	var out []Assignment
	for _, a := range p.Assignments {
		if a.Changed {
			out = append(out, a)
		}
	}
	return out
}

// RegionNames returns the counted region names, sorted.
func (p Plan) RegionNames() []string {
	names := make([]string, 0, len(p.Counts))
	for name := range p.Counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classify assigns a region to every place.
func (c *Classifier) Classify(places []core.Place) Plan {
	plan := Plan{Counts: make(map[string]int, len(c.rules))}
	for _, name := range c.Names() {
		plan.Counts[name] = 0
	}
	for _, p := range places {
		region := c.Determine(p.Coordinates)
		plan.Counts[region]++
		plan.Assignments = append(plan.Assignments, Assignment{
			ID:      p.ID,
			Name:    p.Name,
			Region:  region,
			Changed: p.Region != region,
		})
	}
	return plan
}
