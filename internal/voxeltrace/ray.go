package voxeltrace

// Ray is a half-line with a valid parametric interval [TMin, TMax].
type Ray struct {
	O    Vec3
	D    Vec3 // unit
	TMin Real
	TMax Real
}

// NewRay normalizes d and uses the default interval.
func NewRay(o, d Vec3) Ray {
	return Ray{O: o, D: d.Norm(), TMin: rayTMin, TMax: rayTMax}
}

// At returns the point at parameter t.
func (r Ray) At(t Real) Vec3 { return r.O.Add(r.D.Mul(t)) }

// Bounded returns a copy with TMax narrowed to tMax (shadow/AO probes).
func (r Ray) Bounded(tMax Real) Ray {
	r.TMax = tMax
	return r
}
