package voxeltrace

import "sort"

type bvhNode struct {
	min, max Vec3
	left     *bvhNode
	right    *bvhNode
	leaf     []int // voxel indices; non-nil => leaf
}

// buildBVH builds a median-split tree over all voxels; nil for an empty list.
func buildBVH(voxels []Voxel) *bvhNode {
	if len(voxels) == 0 {
		return nil
	}
	idx := make([]int, len(voxels))
	for i := range idx {
		idx[i] = i
	}
	return buildBVHRec(voxels, idx)
}

func buildBVHRec(voxels []Voxel, idx []int) *bvhNode {
	n := len(idx)
	minP, maxP := voxels[idx[0]].Min, voxels[idx[0]].Max
	for _, i := range idx[1:] {
		minP, maxP = aabbUnion(minP, maxP, voxels[i].Min, voxels[i].Max)
	}
	if n <= AABBBVHMaxLeafSize {
		return &bvhNode{min: minP, max: maxP, leaf: idx}
	}

	// centroid spread decides the split axis
	c0 := voxels[idx[0]].Center()
	cmin, cmax := c0, c0
	for _, i := range idx[1:] {
		cmin, cmax = aabbUnion(cmin, cmax, voxels[i].Center(), voxels[i].Center())
	}
	spread := cmax.Sub(cmin)
	axis := widestAxis(spread)

	// If all centroids coincide (degenerate), fall back to longest box extent axis.
	if spread.Axis(axis) <= 1e-18 {
		axis = widestAxis(maxP.Sub(minP))
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return voxels[idx[a]].Center().Axis(axis) < voxels[idx[b]].Center().Axis(axis)
	})
	mid := n / 2
	return &bvhNode{
		min:   minP,
		max:   maxP,
		left:  buildBVHRec(voxels, idx[:mid]),
		right: buildBVHRec(voxels, idx[mid:]),
	}
}

func widestAxis(e Vec3) int {
	axis := 0
	if e.Y > e.Axis(axis) {
		axis = 1
	}
	if e.Z > e.Axis(axis) {
		axis = 2
	}
	return axis
}

// nearestBVH walks the tree near-to-far. A node is pruned only when its entry lies beyond
// the current best, so equal-distance voxels are still visited and the lowest index wins.
func (tr *tracer) nearestBVH(r Ray, rr *rayRecips) (int, Real) {
	best, bestT := -1, r.TMax
	stack := make([]*bvhNode, 0, 64)
	stack = append(stack, tr.root)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, _, ok := slab(r.O, rr, n.min, n.max, r.TMin, bestT); !ok {
			continue
		}
		if n.leaf != nil {
			for _, i := range n.leaf {
				v := &tr.voxels[i]
				t0, _, ok := slab(r.O, rr, v.Min, v.Max, r.TMin, r.TMax)
				if !ok || t0 <= r.TMin {
					continue
				}
				if t0 < bestT || (t0 == bestT && best >= 0 && i < best) {
					bestT = t0
					best = i
				}
			}
			continue
		}

		// order children near→far (push far first so near is processed next)
		lT, lOK := nodeEntry(r, rr, n.left, bestT)
		rT, rOK := nodeEntry(r, rr, n.right, bestT)
		switch {
		case lOK && rOK:
			if lT <= rT {
				stack = append(stack, n.right, n.left)
			} else {
				stack = append(stack, n.left, n.right)
			}
		case lOK:
			stack = append(stack, n.left)
		case rOK:
			stack = append(stack, n.right)
		}
	}
	return best, bestT
}

func nodeEntry(r Ray, rr *rayRecips, n *bvhNode, tMax Real) (Real, bool) {
	if n == nil {
		return 0, false
	}
	t0, _, ok := slab(r.O, rr, n.min, n.max, r.TMin, tMax)
	return t0, ok
}

func (tr *tracer) blockedBVH(r Ray, rr *rayRecips, skip int) bool {
	stack := make([]*bvhNode, 0, 64)
	stack = append(stack, tr.root)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, _, ok := slab(r.O, rr, n.min, n.max, r.TMin, r.TMax); !ok {
			continue
		}
		if n.leaf != nil {
			for _, i := range n.leaf {
				if i == skip {
					continue
				}
				v := &tr.voxels[i]
				if t0, _, ok := slab(r.O, rr, v.Min, v.Max, r.TMin, r.TMax); ok && t0 > r.TMin && t0 < r.TMax {
					return true
				}
			}
			continue
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
		if n.right != nil {
			stack = append(stack, n.right)
		}
	}
	return false
}
