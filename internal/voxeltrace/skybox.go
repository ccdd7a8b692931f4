package voxeltrace

import (
	"log/slog"
	"math"
)

// dirToCubeUV maps a direction to a cube face (+X,-X,+Y,-Y,+Z,-Z) and face UV in [0,1].
func dirToCubeUV(d Vec3) (face int, u, v Real) {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)
	var sc, tc, ma Real
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if d.X > 0 {
			face, sc, tc = 0, -d.Z, -d.Y
		} else {
			face, sc, tc = 1, d.Z, -d.Y
		}
	case ay >= ax && ay >= az:
		ma = ay
		if d.Y > 0 {
			face, sc, tc = 2, d.X, d.Z
		} else {
			face, sc, tc = 3, d.X, -d.Z
		}
	default:
		ma = az
		if d.Z > 0 {
			face, sc, tc = 4, d.X, -d.Y
		} else {
			face, sc, tc = 5, -d.X, -d.Y
		}
	}
	if ma == 0 {
		return face, 0.5, 0.5
	}
	return face, 0.5 * (sc/ma + 1), 0.5 * (tc/ma + 1)
}

// skyGradient is the flat fallback sky: the pixel row darkens red and green toward the bottom.
func skyGradient(sky Color, y, h int) Color {
	v := Real(y) / Real(max(h-1, 1))
	return Color{sky.X * (1 - 0.3*v), sky.Y * (1 - 0.3*v), sky.Z}
}

// proceduralSky shades a miss: zenith/horizon blend plus a sun disk and glow.
func proceduralSky(d Vec3, l *Lighting) Color {
	up := clamp(d.Y, -1, 1)
	base := l.SkyColor
	th := saturate((up + 1) * 0.5)
	horizon := base.Mul(1.05)
	zenith := Color{base.X * 0.85, base.Y * 0.90, base.Z * 1.05}
	sky := zenith.Mul(th).Add(horizon.Mul(1 - th))

	ang := math.Acos(clamp(d.Dot(l.SunDir), -1, 1))
	disk := math.Max(skyDiskAngle-ang, 0) * skyDiskGain
	glow := math.Max(skyGlowAngle-ang, 0) * skyGlowGain
	return sky.Add(l.SunColor.Mul((disk + glow) * l.SunIntensity))
}

// loadSkybox loads every non-empty face; a failing face stays nil.
func loadSkybox(sb Skybox) [6]*Texture {
	var faces [6]*Texture
	for i, path := range sb.Faces() {
		if path == "" {
			continue
		}
		tex, err := LoadTexture(path)
		if err != nil {
			slog.Info("skybox face not loaded, using gradient", "face", i, "path", path, "err", err)
			continue
		}
		faces[i] = tex
	}
	return faces
}
