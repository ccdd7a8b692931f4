package voxeltrace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSunDirectionIsUnit(t *testing.T) {
	dn := NewDayNight()
	for t0 := -300.0; t0 <= 300; t0 += 0.37 {
		assert.InDelta(t, 1.0, dn.SunDirection(t0).Len(), 1e-9, "t=%v", t0)
	}
}

func TestSunDirectionYFloor(t *testing.T) {
	dn := NewDayNight()
	// midnight: sin(phase) = -1, so Y sits on the floor
	d := dn.SunDirection(dn.Cycle * 0.75)
	assert.InDelta(t, dn.MinElev/math.Hypot(dn.MinElev, dn.Tilt), d.Y, 1e-9)
	assert.Less(t, dn.Elevation(dn.Cycle*0.75), 0.0)
}

func TestNightHasNoSun(t *testing.T) {
	dn := NewDayNight()
	nights := 0
	for t0 := 0.0; t0 < 2*dn.Cycle; t0 += 0.5 {
		if dn.Elevation(t0) > 0 {
			continue
		}
		nights++
		assert.Equal(t, Color{}, dn.SunColor(t0), "t=%v", t0)
		assert.Equal(t, 0.0, dn.SunIntensity(t0), "t=%v", t0)
	}
	require.Greater(t, nights, 0, "the cycle must contain a night")
}

func TestNoonIsBrightest(t *testing.T) {
	dn := NewDayNight()
	noon := dn.Cycle / 4
	assert.InDelta(t, dn.Ceiling*math.Pow(dn.Elevation(noon), dn.IntensExp), dn.SunIntensity(noon), 1e-12)
	assert.Greater(t, dn.SunIntensity(noon), dn.SunIntensity(noon/4))
	c := dn.SunColor(noon)
	assert.InDelta(t, 1.0, c.X, 1e-12)
	assert.Greater(t, c.Z, sunWarm.Z)
}

func TestSkyColorNightAndDay(t *testing.T) {
	dn := NewDayNight()
	night := dn.SkyColor(dn.Cycle * 0.75)
	assert.Equal(t, zenithNight.Mul(0.7).Add(horizonTw.Mul(0.3)), night)
	day := dn.SkyColor(dn.Cycle / 4)
	assert.Greater(t, day.Z, night.Z)
}

func TestAmbientMonotoneWithinRegions(t *testing.T) {
	dn := NewDayNight()
	region := func(e Real) int {
		switch {
		case e < -0.2:
			return 0
		case e < 0:
			return 1
		default:
			return 2
		}
	}
	// from midnight (-Cycle/4) to noon (+Cycle/4) the elevation rises monotonically
	prevE := math.Inf(-1)
	prevA := 0.0
	prevR := -1
	for t0 := -dn.Cycle / 4; t0 <= dn.Cycle/4; t0 += 0.05 {
		e := dn.Elevation(t0)
		a := dn.AmbientLevel(t0)
		require.GreaterOrEqual(t, e, prevE-1e-12)
		if r := region(e); r == prevR {
			assert.GreaterOrEqual(t, a, prevA-1e-12, "t=%v elev=%v", t0, e)
		} else {
			prevR = r
		}
		prevE, prevA = e, a
	}
}

func TestAmbientPieces(t *testing.T) {
	dn := NewDayNight()
	assert.Equal(t, 0.05, dn.AmbientLevel(dn.Cycle*0.75))
	noon := dn.Cycle / 4
	assert.InDelta(t, 0.12+dn.Elevation(noon)*0.06, dn.AmbientLevel(noon), 1e-12)
}

func TestLightingAtMatchesParts(t *testing.T) {
	dn := NewDayNight()
	l := dn.LightingAt(17)
	assert.Equal(t, dn.SunDirection(17), l.SunDir)
	assert.Equal(t, dn.SunIntensity(17), l.SunIntensity)
	assert.Equal(t, dn.SunColor(17), l.SunColor)
	assert.Equal(t, dn.SkyColor(17), l.SkyColor)
	assert.Equal(t, dn.AmbientLevel(17), l.Ambient)
}
