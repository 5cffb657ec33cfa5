package normalize

import (
	"fmt"
	"math"
)

const (
	// DistanceThreshold is the magnitude below which a length is taken as miles.
	DistanceThreshold = 100.0
	// ElevationThreshold is the magnitude below which a gain is taken as feet.
	ElevationThreshold = 10000.0

	// MaxMiles and MaxFeet bound a plausible normalized value; anything
	// larger is treated as no signal.
	MaxMiles = 100000.0
	MaxFeet  = math.MaxInt32

	milesPerMeter = 0.000621371
	feetPerMeter  = 3.28084
)

// Unit is the unit system a raw value was read in.
type Unit int

const (
	// UnitUnknown lets the magnitude threshold decide.
	UnitUnknown Unit = iota
	UnitMetric
	UnitImperial
)

// Distance is a trail length in miles.
type Distance struct {
	Miles   float64
	Display string
}

// Elevation is an elevation gain in whole feet.
type Elevation struct {
	Feet    int
	Display string
}

// NormalizeDistance converts a raw length into miles, rounded to one decimal.
// With UnitUnknown the source unit is decided by magnitude: values under
// DistanceThreshold are already miles, anything else is meters.
// ok is false for non-positive raw values and results above MaxMiles.
func NormalizeDistance(raw float64, unit Unit) (d Distance, ok bool) {
	if !(raw > 0) || math.IsInf(raw, 0) {
		return Distance{}, false
	}
	miles := raw
	if unit == UnitMetric || (unit == UnitUnknown && raw >= DistanceThreshold) {
		miles = raw * milesPerMeter
	}
	miles = math.Round(miles*10) / 10
	if miles > MaxMiles {
		return Distance{}, false
	}
	return Distance{Miles: miles, Display: fmt.Sprintf("%.1f mi", miles)}, true
}

// NormalizeElevation converts a raw gain into feet, truncated to an integer.
// With UnitUnknown, values under ElevationThreshold are already feet and
// anything else is meters.
// ok is false for non-positive raw values and results above MaxFeet.
func NormalizeElevation(raw float64, unit Unit) (e Elevation, ok bool) {
	if !(raw > 0) || math.IsInf(raw, 0) {
		return Elevation{}, false
	}
	feet := raw
	if unit == UnitMetric || (unit == UnitUnknown && raw >= ElevationThreshold) {
		feet = raw * feetPerMeter
	}
	if feet > MaxFeet {
		return Elevation{}, false
	}
	ft := int(feet)
	return Elevation{Feet: ft, Display: fmt.Sprintf("%d ft", ft)}, true
}
