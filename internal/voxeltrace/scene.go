package voxeltrace

import "fmt"

// Voxel is an axis-aligned box with a single material.
type Voxel struct {
	Min, Max Vec3
	MatID    int
}

// VoxelFromGrid returns the unit cell (i,j,k) of the integer grid.
func VoxelFromGrid(i, j, k, matID int) Voxel {
	min := Vec3{Real(i), Real(j), Real(k)}
	return Voxel{Min: min, Max: min.Add(Vec3{1, 1, 1}), MatID: matID}
}

// Center returns the midpoint of the box.
func (v Voxel) Center() Vec3 { return v.Min.Add(v.Max).Mul(0.5) }

// Triangle is a flat-shaded triangle. Triangles are carried by the scene but not traced.
type Triangle struct {
	V0, V1, V2 Vec3
	N          Vec3
	MatID      int
}

// Skybox holds the six cube-map face paths; an empty path means no texture.
type Skybox struct {
	Right  string // +X
	Left   string // -X
	Top    string // +Y
	Bottom string // -Y
	Front  string // +Z
	Back   string // -Z
}

// Faces returns the paths in face-index order (+X, -X, +Y, -Y, +Z, -Z).
func (s Skybox) Faces() [6]string {
	return [6]string{s.Right, s.Left, s.Top, s.Bottom, s.Front, s.Back}
}

// Portal is carried by the scene for the builder's sake; nothing consumes it.
type Portal struct {
	Min, Max Vec3
	ToPos    Vec3
	RotYDeg  Real
}

// Scene is the full description of a frame's world.
type Scene struct {
	Materials []Material
	Voxels    []Voxel
	Triangles []Triangle
	Skybox    Skybox
	Portals   []Portal
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// AddMaterial appends m and returns its id.
func (s *Scene) AddMaterial(m Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddBox appends an axis-aligned box.
func (s *Scene) AddBox(min, max Vec3, matID int) {
	s.Voxels = append(s.Voxels, Voxel{Min: min, Max: max, MatID: matID})
}

// Validate reports the first voxel or triangle whose material id is out of range.
func (s *Scene) Validate() error {
	n := len(s.Materials)
	for i, v := range s.Voxels {
		if v.MatID < 0 || v.MatID >= n {
			return fmt.Errorf("voxel #%d: material id %d out of range [0,%d)", i, v.MatID, n)
		}
	}
	for i, t := range s.Triangles {
		if t.MatID < 0 || t.MatID >= n {
			return fmt.Errorf("triangle #%d: material id %d out of range [0,%d)", i, t.MatID, n)
		}
	}
	return nil
}

// Bounds returns the union of all voxel boxes (zero boxes for an empty scene).
func (s *Scene) Bounds() (min, max Vec3) {
	if len(s.Voxels) == 0 {
		return
	}
	min, max = s.Voxels[0].Min, s.Voxels[0].Max
	for _, v := range s.Voxels[1:] {
		min, max = aabbUnion(min, max, v.Min, v.Max)
	}
	return
}
