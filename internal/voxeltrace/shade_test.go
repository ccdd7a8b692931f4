package voxeltrace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTonemapRange(t *testing.T) {
	assert.Equal(t, Color{}, tonemapACES(Color{}))
	assert.Equal(t, Color{}, displayEncode(Color{}))
	for _, v := range []Real{1, 10, 1e3, 1e6} {
		c := displayEncode(Color{v, v * 2, v * 3})
		for _, ch := range []Real{c.X, c.Y, c.Z} {
			assert.LessOrEqual(t, ch, 1.0)
			assert.GreaterOrEqual(t, ch, 0.0)
		}
	}
	// monotone in the visible range
	assert.Less(t, aces(0.1), aces(0.5))
	assert.Less(t, aces(0.5), aces(1.0))
}

func TestSunSampleDir(t *testing.T) {
	sun := Vec3{0.3, 0.8, 0.2}.Norm()
	assert.InDelta(t, 0, sunSampleDir(sun, 0).Sub(sun).Len(), 1e-12, "first sample is the sun itself")
	for i := range sunJitter {
		d := sunSampleDir(sun, i)
		assert.InDelta(t, 1, d.Len(), 1e-12)
		assert.Greater(t, d.Dot(sun), 0.999)
	}
}

func TestTangentFrame(t *testing.T) {
	for _, n := range []Vec3{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}, Vec3{1, 2, 3}.Norm()} {
		tt, b := tangentFrame(n)
		assert.InDelta(t, 0, tt.Dot(n), 1e-12)
		assert.InDelta(t, 0, b.Dot(n), 1e-12)
		assert.InDelta(t, 0, tt.Dot(b), 1e-12)
		assert.InDelta(t, 1, tt.Len(), 1e-12)
	}
}

// emissiveScene puts a plain voxel at [0,1]^3 and a pure emitter at [2,3]x[0,1]x[0,1].
func emissiveScene() *Scene {
	s := NewScene()
	plain := s.AddMaterial(NewMaterial("plain", Color{0.8, 0.8, 0.8}, ""))
	lamp := s.AddMaterial(NewMaterial("lamp", Color{}, "").WithEmissive(Color{4, 3, 2}))
	s.AddBox(Vec3{0, 0, 0}, Vec3{1, 1, 1}, plain)
	s.AddBox(Vec3{2, 0, 0}, Vec3{3, 1, 1}, lamp)
	return s
}

func TestEmissiveVoxelLightsNeighbor(t *testing.T) {
	r := New(4, 4, 1)
	require.NoError(t, r.SetScene(emissiveScene()))
	require.Len(t, r.lights, 1)
	assert.Equal(t, 1, r.lights[0].voxel)

	night := r.dn.Cycle * 0.75
	f := newFrame(r, night)
	require.Equal(t, 0.0, f.light.SunIntensity)

	// look at the plain voxel's +X face from the gap between the two boxes
	ray := NewRay(Vec3{1.5, 0.5, 0.5}, Vec3{-1, 0, 0})
	hit, ok := f.tr.nearest(ray)
	require.True(t, ok)
	require.Equal(t, 0, hit.index)
	require.Equal(t, Vec3{1, 0, 0}, hit.n)

	var st RayStats
	lit := f.shadeHit(ray, &hit, &st)
	assert.Equal(t, uint64(1), st[LightProbe])
	assert.Equal(t, uint64(0), st[LightBlocked], "the lamp must not shadow itself")

	dark := *f
	dark.lights = nil
	floor := dark.shadeHit(ray, &hit, &st)
	assert.Greater(t, lit.X, floor.X)
	assert.Greater(t, lit.Y, floor.Y)
	assert.Greater(t, lit.Z, floor.Z)

	// the floor itself is never black
	assert.Greater(t, floor.X, 0.0)
}

func TestEmissiveSelfTermIsClamped(t *testing.T) {
	r := New(4, 4, 1)
	require.NoError(t, r.SetScene(emissiveScene()))
	f := newFrame(r, r.dn.Cycle*0.75)
	ray := NewRay(Vec3{2.5, 0.5, 5}, Vec3{0, 0, -1})
	hit, ok := f.tr.nearest(ray)
	require.True(t, ok)
	require.Equal(t, 1, hit.index)
	var st RayStats
	c := f.shadeHit(ray, &hit, &st)
	// zero albedo: only the clamped emissive term remains
	assert.Equal(t, Color{1, 1, 1}, c)
}

func TestAOTerm(t *testing.T) {
	r := New(4, 4, 1)
	s := NewScene()
	m := s.AddMaterial(NewMaterial("m", Color{1, 1, 1}, ""))
	s.AddBox(Vec3{-5, -1, -5}, Vec3{5, 0, 5}, m)
	require.NoError(t, r.SetScene(s))
	f := newFrame(r, 0)
	var st RayStats

	// open sky above the floor
	assert.Equal(t, 1.0, f.aoTerm(Vec3{0, 0, 0}, Vec3{0, 1, 0}, &st))
	assert.Equal(t, uint64(len(aoJitter)), st[AOProbe])

	// a lid right above blocks every probe; the floor caps the darkening
	s.AddBox(Vec3{-5, 0.2, -5}, Vec3{5, 0.3, 5}, m)
	require.NoError(t, r.SetScene(s))
	f = newFrame(r, 0)
	ao := f.aoTerm(Vec3{0, 0, 0}, Vec3{0, 1, 0}, &st)
	assert.Equal(t, math.Max(1-aoStrength, aoFloor), ao)
	assert.Equal(t, uint64(len(aoJitter)), st[AOBlocked])
}

func TestSunShadow(t *testing.T) {
	r := New(4, 4, 1)
	s := NewScene()
	m := s.AddMaterial(NewMaterial("m", Color{1, 1, 1}, ""))
	s.AddBox(Vec3{-50, -1, -50}, Vec3{50, 0, 50}, m)
	require.NoError(t, r.SetScene(s))
	noon := r.dn.Cycle / 4
	f := newFrame(r, noon)
	ray := NewRay(Vec3{0, 5, 0}, Vec3{0, -1, 0})
	hit, ok := f.tr.nearest(ray)
	require.True(t, ok)
	var st RayStats
	open := f.shadeHit(ray, &hit, &st)
	assert.Zero(t, st[SunBlocked])

	// a roof high above casts a shadow over the hit point
	s.AddBox(Vec3{-50, 20, -50}, Vec3{50, 21, 50}, m)
	require.NoError(t, r.SetScene(s))
	f = newFrame(r, noon)
	ray = NewRay(Vec3{0, 5, 0}, Vec3{0, -1, 0})
	hit, ok = f.tr.nearest(ray)
	require.True(t, ok)
	st = RayStats{}
	shadowed := f.shadeHit(ray, &hit, &st)
	assert.Equal(t, uint64(len(sunJitter)), st[SunBlocked])
	assert.Less(t, shadowed.X, open.X)
}
