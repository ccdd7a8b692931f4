package voxeltrace

import "math"

// CameraPose fully determines the view of one frame.
type CameraPose struct {
	Eye    Vec3
	Target Vec3
	Up     Vec3
	FovDeg Real
}

// CameraOrbit circles Center at a fixed Height while the radius breathes by ZoomAmp.
type CameraOrbit struct {
	Center     Vec3 `json:"center" toml:"center" yaml:"center"`
	BaseRadius Real `json:"radius" toml:"radius" yaml:"radius"`
	ZoomAmp    Real `json:"zoomAmp" toml:"zoomAmp" yaml:"zoomAmp"`
	Height     Real `json:"height" toml:"height" yaml:"height"`
	Period     Real `json:"period" toml:"period" yaml:"period"` // seconds per revolution
	FovDeg     Real `json:"fovDeg" toml:"fovDeg" yaml:"fovDeg"`
}

// NewCameraOrbit returns the default orbit around center.
func NewCameraOrbit(center Vec3) CameraOrbit {
	return CameraOrbit{
		Center:     center,
		BaseRadius: 18,
		ZoomAmp:    2,
		Height:     8,
		Period:     10,
		FovDeg:     60,
	}
}

// PoseAt returns the pose t seconds into the orbit.
func (o CameraOrbit) PoseAt(t Real) CameraPose {
	period := o.Period
	if period <= 0 {
		period = 10
	}
	phase := t / period * 2 * math.Pi
	radius := o.BaseRadius + o.ZoomAmp*math.Sin(2*phase)
	return CameraPose{
		Eye:    Vec3{o.Center.X + radius*math.Cos(phase), o.Height, o.Center.Z + radius*math.Sin(phase)},
		Target: o.Center,
		Up:     Vec3{0, 1, 0},
		FovDeg: o.FovDeg,
	}
}

// cameraBasis caches what every primary ray of a frame shares.
type cameraBasis struct {
	eye                Vec3
	forward, right, up Vec3
	tanHalf, aspect    Real
	w, h               int
}

func newCameraBasis(p CameraPose, w, h int) cameraBasis {
	forward := p.Target.Sub(p.Eye).Norm()
	right := forward.Cross(p.Up).Norm()
	up := right.Cross(forward).Norm()
	return cameraBasis{
		eye:     p.Eye,
		forward: forward,
		right:   right,
		up:      up,
		tanHalf: math.Tan(p.FovDeg * math.Pi / 180 * 0.5),
		aspect:  Real(w) / Real(h),
		w:       w,
		h:       h,
	}
}

// primaryRay maps the point (x+jx, y+jy) in pixel space (jx, jy in [0,1]) to a world ray.
func (c *cameraBasis) primaryRay(x, y int, jx, jy Real) Ray {
	px := (Real(x)+jx)/Real(c.w)*2 - 1
	py := 1 - (Real(y)+jy)/Real(c.h)*2
	dir := c.forward.
		Add(c.right.Mul(px * c.aspect * c.tanHalf)).
		Add(c.up.Mul(py * c.tanHalf))
	return NewRay(c.eye, dir)
}
