package voxeltrace

import "math"

// DayNight derives the lighting of the scene from a scalar time.
// All methods are pure; a DayNight value is safe for concurrent use.
type DayNight struct {
	Cycle     Real // duration of one full day in time units
	Tilt      Real // constant lateral (Z) component of the sun direction
	MinElev   Real // floor for the Y component of SunDirection
	Ceiling   Real // sun intensity at zenith
	IntensExp Real // sub-linear exponent applied to the elevation
}

// NewDayNight returns the tuned default model.
func NewDayNight() DayNight {
	return DayNight{
		Cycle:     DefaultDayCycle,
		Tilt:      0.20,
		MinElev:   0.02,
		Ceiling:   0.45,
		IntensExp: 0.8,
	}
}

var (
	sunWarm     = Color{1.00, 0.72, 0.40}
	sunNoon     = Color{1.00, 0.95, 0.88}
	zenithDay   = Color{0.55, 0.75, 1.00}
	horizonDay  = Color{0.90, 0.95, 1.00}
	zenithNight = Color{0.06, 0.08, 0.12}
	horizonTw   = Color{0.68, 0.50, 0.72}
	warmTint    = Color{1.00, 0.70, 0.55}
)

func (dn DayNight) phase(t Real) Real {
	cycle := dn.Cycle
	if cycle <= 0 {
		cycle = DefaultDayCycle
	}
	return t / cycle * 2 * math.Pi
}

// SunDirection returns the unit direction toward the sun. Its Y component
// never drops below the floor, so the sun never grazes the horizon.
func (dn DayNight) SunDirection(t Real) Vec3 {
	p := dn.phase(t)
	return Vec3{math.Cos(p), math.Max(math.Sin(p), dn.MinElev), dn.Tilt}.Norm()
}

// Elevation is the Y component of the unfloored sun direction; it goes negative at night.
func (dn DayNight) Elevation(t Real) Real {
	p := dn.phase(t)
	return Vec3{math.Cos(p), math.Sin(p), dn.Tilt}.Norm().Y
}

// SunIntensity is zero below the horizon, elevation^IntensExp * Ceiling above it.
func (dn DayNight) SunIntensity(t Real) Real {
	elev := dn.Elevation(t)
	if elev <= 0 {
		return 0
	}
	return dn.Ceiling * math.Pow(elev, dn.IntensExp)
}

// SunColor blends golden low sun into near-white noon sun; black below the horizon.
func (dn DayNight) SunColor(t Real) Color {
	elev := dn.Elevation(t)
	if elev <= 0 {
		return Color{}
	}
	return Lerp(sunWarm, sunNoon, saturate(elev))
}

// SkyColor returns the base sky tint for the given time.
func (dn DayNight) SkyColor(t Real) Color {
	elev := dn.Elevation(t)
	if elev <= -0.03 {
		return zenithNight.Mul(0.7).Add(horizonTw.Mul(0.3))
	}
	base := zenithDay.Mul(0.55).Add(horizonDay.Mul(0.45))
	horizonMix := clamp(0.5-elev, 0, 0.5) / 0.5
	return base.Mul(1 - 0.15*horizonMix).Add(warmTint.Mul(0.10 * horizonMix))
}

// AmbientLevel is a night floor, a ramp through twilight and a day term.
func (dn DayNight) AmbientLevel(t Real) Real {
	elev := dn.Elevation(t)
	switch {
	case elev < -0.2:
		return 0.05
	case elev < 0:
		return 0.05 + (elev+0.2)/0.2*0.06
	default:
		return 0.12 + elev*0.06
	}
}

// Lighting is the per-frame snapshot of the day/night outputs.
type Lighting struct {
	SunDir       Vec3
	SunIntensity Real
	SunColor     Color
	SkyColor     Color
	Ambient      Real
}

// LightingAt evaluates every output of the model at time t.
func (dn DayNight) LightingAt(t Real) Lighting {
	return Lighting{
		SunDir:       dn.SunDirection(t),
		SunIntensity: dn.SunIntensity(t),
		SunColor:     dn.SunColor(t),
		SkyColor:     dn.SkyColor(t),
		Ambient:      dn.AmbientLevel(t),
	}
}
