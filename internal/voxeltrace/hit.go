package voxeltrace

import "math"

type hitInfo struct {
	t     Real
	p     Vec3
	n     Vec3
	matID int
	index int // voxel index in the scene
	vmin  Vec3
	vmax  Vec3
}

// tracer answers closest-hit and any-hit queries against the voxel list,
// either by a flat scan or through the optional BVH.
type tracer struct {
	voxels []Voxel
	root   *bvhNode // nil => flat scan
}

// nearest returns the closest voxel whose entry distance lies in (TMin, TMax).
// Equal distances resolve to the lowest voxel index.
func (tr *tracer) nearest(r Ray) (hitInfo, bool) {
	rr := computeRayRecips(r.D)
	best, closest := -1, r.TMax
	if tr.root != nil {
		best, closest = tr.nearestBVH(r, &rr)
	} else {
		for i := range tr.voxels {
			v := &tr.voxels[i]
			t0, _, ok := slab(r.O, &rr, v.Min, v.Max, r.TMin, r.TMax)
			if ok && t0 > r.TMin && t0 < closest {
				closest = t0
				best = i
			}
		}
	}
	if best < 0 {
		return hitInfo{}, false
	}
	v := &tr.voxels[best]
	p := r.At(closest)
	return hitInfo{
		t:     closest,
		p:     p,
		n:     voxelNormalAt(p, v.Min, v.Max),
		matID: v.MatID,
		index: best,
		vmin:  v.Min,
		vmax:  v.Max,
	}, true
}

// blocked reports whether any voxel other than skip is entered inside (TMin, TMax).
// skip < 0 tests every voxel.
func (tr *tracer) blocked(r Ray, skip int) bool {
	rr := computeRayRecips(r.D)
	if tr.root != nil {
		return tr.blockedBVH(r, &rr, skip)
	}
	for i := range tr.voxels {
		if i == skip {
			continue
		}
		v := &tr.voxels[i]
		if t0, _, ok := slab(r.O, &rr, v.Min, v.Max, r.TMin, r.TMax); ok && t0 > r.TMin && t0 < r.TMax {
			return true
		}
	}
	return false
}

// voxelNormalAt picks the box face closest to p. Only valid on the surface.
func voxelNormalAt(p, min, max Vec3) Vec3 {
	faces := [6]struct {
		d Real
		n Vec3
	}{
		{math.Abs(p.X - min.X), Vec3{-1, 0, 0}},
		{math.Abs(p.X - max.X), Vec3{1, 0, 0}},
		{math.Abs(p.Y - min.Y), Vec3{0, -1, 0}},
		{math.Abs(p.Y - max.Y), Vec3{0, 1, 0}},
		{math.Abs(p.Z - min.Z), Vec3{0, 0, -1}},
		{math.Abs(p.Z - max.Z), Vec3{0, 0, 1}},
	}
	best := 0
	for i := 1; i < len(faces); i++ {
		if faces[i].d < faces[best].d {
			best = i
		}
	}
	return faces[best].n
}

// voxelUV projects p onto the plane orthogonal to the dominant normal axis,
// relative to the box's min corner.
func voxelUV(min, p, n Vec3) (u, v Real) {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax >= ay && ax >= az:
		return p.Z - min.Z, p.Y - min.Y
	case ay >= ax && ay >= az:
		return p.X - min.X, p.Z - min.Z
	default:
		return p.X - min.X, p.Y - min.Y
	}
}
