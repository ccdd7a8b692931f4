package voxeltrace

import "math"

// rayRecips caches the per-axis reciprocal direction of a ray.
// Near-zero components get a huge reciprocal of the same sign instead of a division by zero,
// so the slab test degenerates to an inside/outside check on that axis.
type rayRecips struct {
	inv [3]Real
}

func computeRayRecips(d Vec3) rayRecips {
	var rr rayRecips
	for i := 0; i < 3; i++ {
		c := d.Axis(i)
		switch {
		case math.Abs(c) >= parallelEps:
			rr.inv[i] = 1 / c
		case math.Signbit(c):
			rr.inv[i] = -bigRecip
		default:
			rr.inv[i] = bigRecip
		}
	}
	return rr
}

// slab clips [tmin, tmax] against the box along all three axes.
func slab(o Vec3, rr *rayRecips, min, max Vec3, tmin, tmax Real) (Real, Real, bool) {
	for i := 0; i < 3; i++ {
		oi := o.Axis(i)
		t1 := (min.Axis(i) - oi) * rr.inv[i]
		t2 := (max.Axis(i) - oi) * rr.inv[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, 0, false
		}
	}
	return tmin, tmax, true
}

// intersectAABB returns the entry and exit distances of r through [min,max],
// clipped to the ray's valid interval [TMin, TMax].
func intersectAABB(r Ray, min, max Vec3) (t0, t1 Real, ok bool) {
	rr := computeRayRecips(r.D)
	return slab(r.O, &rr, min, max, r.TMin, r.TMax)
}

func aabbUnion(aMin, aMax, bMin, bMax Vec3) (Vec3, Vec3) {
	return Vec3{
			math.Min(aMin.X, bMin.X),
			math.Min(aMin.Y, bMin.Y),
			math.Min(aMin.Z, bMin.Z),
		}, Vec3{
			math.Max(aMax.X, bMax.X),
			math.Max(aMax.Y, bMax.Y),
			math.Max(aMax.Z, bMax.Z),
		}
}
