package voxeltrace

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomVoxels scatters boxes over a 20^3 region; every fifth one is a duplicate
// of an earlier box so ties get exercised.
func randomVoxels(n int, seed uint64) []Voxel {
	rng := NewRng(seed)
	vs := make([]Voxel, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 && i%5 == 0 {
			dup := vs[int(rng.NextF64()*Real(len(vs)-1))]
			dup.MatID = i
			vs = append(vs, dup)
			continue
		}
		mn := Vec3{rng.NextF64()*20 - 10, rng.NextF64()*20 - 10, rng.NextF64()*20 - 10}
		sz := Vec3{0.2 + rng.NextF64()*2, 0.2 + rng.NextF64()*2, 0.2 + rng.NextF64()*2}
		vs = append(vs, Voxel{Min: mn, Max: mn.Add(sz), MatID: i})
	}
	return vs
}

func randomRay(rng *Rng) Ray {
	o := Vec3{rng.NextF64()*30 - 15, rng.NextF64()*30 - 15, rng.NextF64()*30 - 15}
	d := Vec3{rng.NextF64()*2 - 1, rng.NextF64()*2 - 1, rng.NextF64()*2 - 1}
	if d.IsZero() {
		d = Vec3{0, 0, 1}
	}
	return NewRay(o, d)
}

func TestBVHLeavesCoverAllVoxels(t *testing.T) {
	vs := randomVoxels(101, 3)
	root := buildBVH(vs)
	require.NotNil(t, root)
	seen := make([]int, len(vs))
	var walk func(n *bvhNode)
	walk = func(n *bvhNode) {
		if n == nil {
			return
		}
		if n.leaf != nil {
			assert.LessOrEqual(t, len(n.leaf), AABBBVHMaxLeafSize)
			for _, i := range n.leaf {
				seen[i]++
				// leaf bounds contain the voxel
				assert.LessOrEqual(t, n.min.X, vs[i].Min.X)
				assert.GreaterOrEqual(t, n.max.Z, vs[i].Max.Z)
			}
			return
		}
		walk(n.left)
		walk(n.right)
	}
	walk(root)
	for i, c := range seen {
		assert.Equal(t, 1, c, "voxel %d", i)
	}
	assert.Nil(t, buildBVH(nil))
}

func TestBVHMatchesFlatScan(t *testing.T) {
	vs := randomVoxels(300, 11)
	flat := &tracer{voxels: vs}
	fast := &tracer{voxels: vs, root: buildBVH(vs)}
	rng := NewRng(99)
	hits := 0
	for i := 0; i < 5000; i++ {
		r := randomRay(rng)
		hf, okf := flat.nearest(r)
		hb, okb := fast.nearest(r)
		require.Equal(t, okf, okb, "ray %d", i)
		if okf {
			hits++
			require.Equal(t, hf, hb, "ray %d", i)
		}
		bounded := r.Bounded(rng.NextF64() * 10)
		skip := -1
		if okf {
			skip = hf.index
		}
		require.Equal(t, flat.blocked(bounded, skip), fast.blocked(bounded, skip), "ray %d", i)
		require.Equal(t, flat.blocked(bounded, -1), fast.blocked(bounded, -1), "ray %d", i)
	}
	assert.Greater(t, hits, 100)
}

func TestBVHTieLowestIndex(t *testing.T) {
	box := Voxel{Min: Vec3{-1, -1, 2}, Max: Vec3{1, 1, 3}}
	vs := make([]Voxel, 0, 12)
	for i := 0; i < 12; i++ {
		v := box
		v.MatID = i
		vs = append(vs, v)
	}
	// identical copies: only the index tells them apart
	tr := &tracer{voxels: vs, root: buildBVH(vs)}
	h, ok := tr.nearest(NewRay(Vec3{}, Vec3{0, 0, 1}))
	require.True(t, ok)
	assert.Equal(t, 0, h.index)
}

func TestDumpBVH(t *testing.T) {
	r := New(8, 8, 1)
	var buf bytes.Buffer
	assert.False(t, r.DumpBVH(&buf))
	assert.Contains(t, buf.String(), "<empty>")

	s := NewScene()
	s.AddMaterial(NewMaterial("m", Color{1, 1, 1}, ""))
	for _, v := range randomVoxels(20, 5) {
		s.AddBox(v.Min, v.Max, 0)
	}
	r.SetUseBVH(true)
	require.NoError(t, r.SetScene(s))
	buf.Reset()
	assert.True(t, r.DumpBVH(&buf))
	assert.Contains(t, buf.String(), "[BVH] root: nodes=")
	assert.Contains(t, buf.String(), "voxels=20")
	assert.Contains(t, buf.String(), "LEAF")
}
