package voxeltrace

// Material describes how a voxel or triangle surface looks.
type Material struct {
	Name         string
	Albedo       Color  // base color, multiplied with the texture when present
	Specular     Real   // 0..1
	Transparency Real   // 0..1
	Reflectivity Real   // 0..1
	IOR          Real   // index of refraction
	Emissive     Color  // non-zero turns every voxel of this material into a point light
	TexturePath  string // empty => albedo only
	UVScale      Real   // texture repeats per world unit
	AnimatedUV   bool   // scroll U with time (water, lava)
}

// NewMaterial returns a material with the default knobs.
func NewMaterial(name string, albedo Color, texturePath string) Material {
	return Material{
		Name:        name,
		Albedo:      albedo,
		Specular:    0.04,
		IOR:         1.5,
		TexturePath: texturePath,
		UVScale:     1,
	}
}

func (m Material) WithUVScale(s Real) Material    { m.UVScale = s; return m }
func (m Material) WithSpecular(k Real) Material   { m.Specular = k; return m }
func (m Material) WithEmissive(e Color) Material  { m.Emissive = e; return m }
func (m Material) Animated(on bool) Material      { m.AnimatedUV = on; return m }
func (m Material) WithReflection(r Real) Material { m.Reflectivity = r; return m }
func (m Material) WithTransparency(t, ior Real) Material {
	m.Transparency = t
	m.IOR = ior
	return m
}

// IsEmissive reports whether any emissive channel is positive.
func (m Material) IsEmissive() bool {
	return m.Emissive.X > 0 || m.Emissive.Y > 0 || m.Emissive.Z > 0
}

// uvScale guards against a non-finite or unset scale.
func (m *Material) uvScale() Real {
	if !isFinite(m.UVScale) || m.UVScale == 0 {
		return 1
	}
	return m.UVScale
}
