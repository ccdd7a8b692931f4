package voxeltrace

import (
	"log/slog"
	"path/filepath"
)

// Material ids of the house scene, in the order BuildHouseScene registers them.
const (
	MatGrass = iota
	MatDirt
	MatStone
	MatPlanks
	MatDarkWood
	MatRoof
	MatGlass
	MatWater
	MatTorch
	MatLeaves
	MatSun
)

// BuildHouseScene builds the reference house: a ground slab, a planked house with windows,
// a door and a stepped roof, torches, a pond, a tree, a sun block and the optional bunny mesh.
// Asset paths are relative to assetsDir; missing assets are tolerated later on.
func BuildHouseScene(assetsDir string) *Scene {
	tex := func(name string) string { return filepath.Join(assetsDir, "textures", name) }
	s := NewScene()

	s.AddMaterial(NewMaterial("grass", Color{0.95, 0.98, 0.95}, tex("grass.jpeg")).WithUVScale(8).WithSpecular(0.03))
	s.AddMaterial(NewMaterial("dirt", Color{0.55, 0.44, 0.36}, tex("dirt.jpeg")).WithUVScale(4).WithSpecular(0.02))
	s.AddMaterial(NewMaterial("stone", Color{0.72, 0.72, 0.74}, tex("stone.jpeg")).WithUVScale(3).WithSpecular(0.06))
	s.AddMaterial(NewMaterial("planks", Color{0.85, 0.70, 0.52}, tex("planks.jpeg")).WithUVScale(2.5).WithSpecular(0.05))
	s.AddMaterial(NewMaterial("dark_wood", Color{0.35, 0.25, 0.18}, tex("planks.jpeg")).WithUVScale(2.5).WithSpecular(0.04))
	s.AddMaterial(NewMaterial("roof", Color{0.95, 0.60, 0.55}, tex("roof.jpeg")).WithUVScale(2).WithSpecular(0.04))
	s.AddMaterial(NewMaterial("glass", Color{0.95, 0.97, 1.0}, tex("glass.jpeg")).WithSpecular(0.6).WithReflection(0.25))
	s.AddMaterial(NewMaterial("water", Color{0.25, 0.45, 0.95}, tex("water.png")).WithUVScale(6).Animated(true).WithSpecular(0.12))
	s.AddMaterial(NewMaterial("torch", Color{1.00, 0.85, 0.45}, "").WithEmissive(Color{4.0, 2.6, 1.2}))
	s.AddMaterial(NewMaterial("tree_leaves", Color{0.65, 0.85, 0.60}, tex("tree.jpeg")).WithUVScale(2).WithSpecular(0.02))
	s.AddMaterial(NewMaterial("sun", Color{1.0, 0.95, 0.85}, "").WithEmissive(Color{20, 18, 10}))

	s.Skybox = Skybox{
		Right:  filepath.Join(assetsDir, "skybox", "right.bmp"),
		Left:   filepath.Join(assetsDir, "skybox", "left.bmp"),
		Top:    filepath.Join(assetsDir, "skybox", "top.bmp"),
		Bottom: filepath.Join(assetsDir, "skybox", "bottom.bmp"),
		Front:  filepath.Join(assetsDir, "skybox", "front.bmp"),
		Back:   filepath.Join(assetsDir, "skybox", "back.bmp"),
	}

	// ground
	s.AddBox(Vec3{-5, 0, -5}, Vec3{20, 0.8, 20}, MatDirt)
	s.AddBox(Vec3{-5, 0.8, -5}, Vec3{20, 1, 20}, MatGrass)

	const (
		x0, x1 = 3.0, 13.0
		z0, z1 = 3.0, 13.0
		y0, y1 = 1.0, 6.0
		t      = 0.25
	)

	// back wall + window
	s.AddBox(Vec3{x0, y0, z0}, Vec3{x1, y1, z0 + t}, MatPlanks)
	s.AddBox(Vec3{6.5, 2.0, z0}, Vec3{9.5, 4.0, z0 + t}, MatGlass)

	// front wall around the door
	const (
		doorX0, doorX1 = 7.4, 8.6
		doorH          = 2.2
	)
	s.AddBox(Vec3{x0, y0, z1 - t}, Vec3{doorX0, y1, z1}, MatPlanks)
	s.AddBox(Vec3{doorX1, y0, z1 - t}, Vec3{x1, y1, z1}, MatPlanks)
	s.AddBox(Vec3{doorX0, y0 + doorH, z1 - t}, Vec3{doorX1, y1, z1}, MatPlanks)

	// side walls
	s.AddBox(Vec3{x0, y0, z0}, Vec3{x0 + t, y1, z1}, MatPlanks)
	s.AddBox(Vec3{x1 - t, y0, z0}, Vec3{x1, y1, z1}, MatPlanks)

	// dark wood band
	const bandH = 0.7
	s.AddBox(Vec3{x0, y0 + 2.2, z0}, Vec3{x1, y0 + 2.2 + bandH, z0 + t}, MatDarkWood)
	s.AddBox(Vec3{x0, y0 + 2.2, z1 - t}, Vec3{x1, y0 + 2.2 + bandH, z1}, MatDarkWood)
	s.AddBox(Vec3{x0, y0 + 2.2, z0}, Vec3{x0 + t, y0 + 2.2 + bandH, z1}, MatDarkWood)
	s.AddBox(Vec3{x1 - t, y0 + 2.2, z0}, Vec3{x1, y0 + 2.2 + bandH, z1}, MatDarkWood)

	// front and side windows
	s.AddBox(Vec3{6.2, 2.0, z1 - t}, Vec3{7.2, 3.5, z1}, MatGlass)
	s.AddBox(Vec3{8.8, 2.0, z1 - t}, Vec3{9.8, 3.5, z1}, MatGlass)
	s.AddBox(Vec3{9.0, 3.8, z1 - t}, Vec3{9.8, 5.0, z1}, MatGlass)
	s.AddBox(Vec3{x0, 2.0, 7.0}, Vec3{x0 + t, 3.5, 9.0}, MatGlass)
	s.AddBox(Vec3{x1 - t, 2.0, 7.0}, Vec3{x1, 3.5, 9.0}, MatGlass)

	// stepped roof
	const yTop = y1 + 0.06
	s.AddBox(Vec3{2.5, yTop, 2.5}, Vec3{13.5, yTop + 0.6, 13.5}, MatRoof)
	s.AddBox(Vec3{3.5, yTop + 0.6, 3.5}, Vec3{12.5, yTop + 1.2, 12.5}, MatRoof)
	s.AddBox(Vec3{4.5, yTop + 1.2, 4.5}, Vec3{11.5, yTop + 1.8, 11.5}, MatRoof)
	s.AddBox(Vec3{5.5, yTop + 1.8, 5.5}, Vec3{10.5, yTop + 2.6, 10.5}, MatRoof)

	// door
	s.AddBox(Vec3{doorX0 + 0.05, y0, z1 - t + 0.02}, Vec3{doorX1 - 0.05, y0 + doorH, z1 - 0.02}, MatDarkWood)

	// wall torches
	s.AddBox(Vec3{6.0, 3.2, z1 - 0.15}, Vec3{6.2, 3.6, z1}, MatTorch)
	s.AddBox(Vec3{9.8, 3.2, z1 - 0.15}, Vec3{10.0, 3.6, z1}, MatTorch)

	// standing torch
	s.AddBox(Vec3{7.0, 1.0, z1 + 0.6}, Vec3{7.3, 2.4, z1 + 0.9}, MatDarkWood)
	s.AddBox(Vec3{6.9, 2.4, z1 + 0.5}, Vec3{7.4, 2.9, z1 + 1.0}, MatTorch)

	// pond
	s.AddBox(Vec3{1.0, 1.0, 14.0}, Vec3{4.5, 1.2, 17.0}, MatWater)

	// tree
	s.AddBox(Vec3{15.8, 1.0, 8.2}, Vec3{16.2, 5.5, 8.6}, MatDarkWood)
	s.AddBox(Vec3{14.8, 5.5, 7.2}, Vec3{17.2, 7.5, 9.6}, MatLeaves)
	s.AddBox(Vec3{15.3, 7.5, 7.7}, Vec3{16.7, 8.9, 9.1}, MatLeaves)
	s.AddBox(Vec3{15.6, 8.9, 8.0}, Vec3{16.4, 9.7, 8.8}, MatLeaves)

	// sun block
	s.AddBox(Vec3{30.0, 25.0, 5.0}, Vec3{33.5, 28.5, 8.5}, MatSun)

	s.Portals = append(s.Portals,
		Portal{Min: Vec3{3.0, 1.0, 12.0}, Max: Vec3{3.2, 3.6, 12.6}, ToPos: Vec3{12.8, 2.0, 3.4}, RotYDeg: 180},
		Portal{Min: Vec3{12.8, 1.0, 3.0}, Max: Vec3{13.0, 3.6, 3.6}, ToPos: Vec3{3.1, 2.0, 12.3}, RotYDeg: 180},
	)

	mesh := filepath.Join(assetsDir, "models", "bunny.obj")
	tris := LoadOBJTriangles(mesh, MatStone, 0.6, Vec3{15.0, 1.0, 10.0})
	if len(tris) == 0 {
		slog.Info("mesh not loaded, continuing without it", "path", mesh)
	}
	s.Triangles = append(s.Triangles, tris...)

	slog.Debug("built house scene", "materials", len(s.Materials), "voxels", len(s.Voxels), "triangles", len(s.Triangles))
	return s
}
