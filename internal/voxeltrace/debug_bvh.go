package voxeltrace

import (
	"fmt"
	"io"
	"strings"
)

// DumpBVH prints the renderer's BVH with one tab per level: subtree counts
// (nodes, leaves, voxels) and the AABB of each node. Returns false when no tree is built.
func (r *Renderer) DumpBVH(w io.Writer) bool {
	root := r.tracer.root
	if root == nil {
		fmt.Fprintln(w, "[BVH] <empty>")
		return false
	}
	memo := make(map[*bvhNode]bvhCounts, 1024)
	totals := bvhCount(root, memo)
	fmt.Fprintf(w, "[BVH] root: nodes=%d leaves=%d voxels=%d\n", totals.nodes, totals.leaves, totals.voxels)
	bvhPrint(w, root, 0, memo)
	return true
}

type bvhCounts struct {
	nodes  int
	leaves int
	voxels int
}

func bvhCount(n *bvhNode, memo map[*bvhNode]bvhCounts) bvhCounts {
	if n == nil {
		return bvhCounts{}
	}
	if c, ok := memo[n]; ok {
		return c
	}
	if n.leaf != nil {
		c := bvhCounts{nodes: 1, leaves: 1, voxels: len(n.leaf)}
		memo[n] = c
		return c
	}
	lc := bvhCount(n.left, memo)
	rc := bvhCount(n.right, memo)
	c := bvhCounts{
		nodes:  1 + lc.nodes + rc.nodes,
		leaves: lc.leaves + rc.leaves,
		voxels: lc.voxels + rc.voxels,
	}
	memo[n] = c
	return c
}

func bvhPrint(w io.Writer, n *bvhNode, depth int, memo map[*bvhNode]bvhCounts) {
	if n == nil {
		return
	}
	ind := strings.Repeat("\t", depth)
	if n.leaf != nil {
		fmt.Fprintf(w, "%sLEAF  voxels=%v | min=(%.5g,%.5g,%.5g) max=(%.5g,%.5g,%.5g)\n",
			ind, n.leaf,
			n.min.X, n.min.Y, n.min.Z,
			n.max.X, n.max.Y, n.max.Z,
		)
		return
	}
	c := memo[n]
	fmt.Fprintf(w, "%sNODE  nodes=%d leaves=%d voxels=%d | min=(%.5g,%.5g,%.5g) max=(%.5g,%.5g,%.5g)\n",
		ind, c.nodes, c.leaves, c.voxels,
		n.min.X, n.min.Y, n.min.Z,
		n.max.X, n.max.Y, n.max.Z,
	)
	bvhPrint(w, n.left, depth+1, memo)
	bvhPrint(w, n.right, depth+1, memo)
}
