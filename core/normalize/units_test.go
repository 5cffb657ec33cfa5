package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDistance(t *testing.T) {
	tests := []struct {
		name    string
		raw     float64
		unit    Unit
		miles   float64
		display string
	}{
		{"already miles", 80, UnitUnknown, 80.0, "80.0 mi"},
		{"meters converted", 8047, UnitUnknown, 5.0, "5.0 mi"},
		{"small miles rounded", 3.46, UnitUnknown, 3.5, "3.5 mi"},
		{"threshold is meters", 100, UnitUnknown, 0.1, "0.1 mi"},
		{"just under threshold", 99.9, UnitUnknown, 99.9, "99.9 mi"},
		{"explicit imperial skips heuristic", 150, UnitImperial, 150.0, "150.0 mi"},
		{"explicit metric", 50, UnitMetric, 0.0, "0.0 mi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := NormalizeDistance(tt.raw, tt.unit)
			assert.True(t, ok)
			assert.InDelta(t, tt.miles, d.Miles, 1e-9)
			assert.Equal(t, tt.display, d.Display)
		})
	}
}

func TestNormalizeElevation(t *testing.T) {
	tests := []struct {
		name    string
		raw     float64
		unit    Unit
		feet    int
		display string
	}{
		{"already feet", 500, UnitUnknown, 500, "500 ft"},
		{"fraction truncated", 1350.9, UnitUnknown, 1350, "1350 ft"},
		{"large value treated as meters", 20000, UnitUnknown, 65616, "65616 ft"},
		{"threshold is meters", 10000, UnitUnknown, 32808, "32808 ft"},
		{"explicit imperial", 12000, UnitImperial, 12000, "12000 ft"},
		{"explicit metric", 411.5, UnitMetric, 1350, "1350 ft"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := NormalizeElevation(tt.raw, tt.unit)
			assert.True(t, ok)
			assert.Equal(t, tt.feet, e.Feet)
			assert.Equal(t, tt.display, e.Display)
		})
	}
}

func TestNormalizeElevation_OutOfRangeStillMeters(t *testing.T) {
	e, ok := NormalizeElevation(500000, UnitUnknown)
	assert.True(t, ok)
	assert.InDelta(t, 1640420, e.Feet, 1)
}

func TestNormalize_RejectsImplausibleValues(t *testing.T) {
	for _, raw := range []float64{0, -3, 1e20, math.Inf(1), math.NaN()} {
		_, ok := NormalizeDistance(raw, UnitUnknown)
		assert.False(t, ok, "distance %v", raw)

		_, ok = NormalizeElevation(raw, UnitUnknown)
		assert.False(t, ok, "elevation %v", raw)
	}

	_, ok := NormalizeElevation(99999999999999999999, UnitUnknown)
	assert.False(t, ok)
	_, ok = NormalizeElevation(float64(math.MaxInt32)+1, UnitImperial)
	assert.False(t, ok)
	e, ok := NormalizeElevation(float64(math.MaxInt32), UnitImperial)
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt32, e.Feet)
}
