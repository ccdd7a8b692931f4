package voxeltrace

import "math"

type pointLight struct {
	pos       Vec3
	color     Color
	intensity Real
	voxel     int // emitting voxel, ignored by its own shadow probe
}

// frame is the read-only snapshot every tile of one frame shades against.
type frame struct {
	tr        *tracer
	materials []Material
	textures  []*Texture
	skybox    *[6]*Texture
	lights    []pointLight
	light     Lighting
	sunVec    Vec3 // sun direction with Y floored, used for direct light and specular
	time      Real
	procSky   bool
	h         int
}

func newFrame(r *Renderer, t Real) *frame {
	l := r.dn.LightingAt(t)
	sv := l.SunDir
	if sv.Y < sunMinY {
		sv.Y = sunMinY
	}
	f := &frame{
		tr:      &r.tracer,
		lights:  r.lights,
		skybox:  &r.skybox,
		light:   l,
		sunVec:  sv.Norm(),
		time:    t,
		procSky: r.useProcSky,
		h:       r.h,
	}
	if r.scene != nil {
		f.materials = r.scene.Materials
		f.textures = r.textures
	}
	return f
}

// radiance returns the linear color seen along a primary ray; y is the pixel row for the gradient fallback.
func (f *frame) radiance(r Ray, y int, st *RayStats) Color {
	hit, ok := f.tr.nearest(r)
	if !ok {
		st.inc(Miss)
		return f.shadeMiss(r, y)
	}
	st.inc(Hit)
	return f.shadeHit(r, &hit, st)
}

func (f *frame) shadeMiss(r Ray, y int) Color {
	if f.procSky {
		return proceduralSky(r.D, &f.light)
	}
	face, u, v := dirToCubeUV(r.D)
	if tex := f.skybox[face]; tex != nil {
		return tex.SampleNearest(u, v)
	}
	return skyGradient(f.light.SkyColor, y, f.h)
}

func (f *frame) shadeHit(r Ray, hit *hitInfo, st *RayStats) Color {
	mat := &f.materials[hit.matID]
	n := hit.n.Norm()
	albedo := f.albedo(mat, hit)
	l := &f.light

	var sun Color
	if l.SunIntensity > sunMinInt {
		lit := 0.0
		for i := range sunJitter {
			dir := sunSampleDir(f.sunVec, i)
			nl := math.Max(n.Dot(dir), 0)
			if nl <= 0 {
				continue
			}
			st.inc(SunProbe)
			probe := NewRay(hit.p.Add(n.Mul(surfaceEps)), dir).Bounded(shadowMaxT)
			if f.tr.blocked(probe, -1) {
				st.inc(SunBlocked)
				continue
			}
			lit += nl
		}
		lit /= Real(len(sunJitter))
		sun = albedo.Hadamard(l.SunColor).Mul(lit * l.SunIntensity)
	}

	k := saturate(n.Y*0.5 + 0.5)
	hemi := l.SkyColor.Mul(k).Add(groundColor.Mul(1 - k))
	ambient := albedo.Hadamard(hemi).Mul(l.Ambient)

	ao := f.aoTerm(hit.p, n, st)

	var spec Color
	if l.SunIntensity > specMinInt {
		view := r.D.Neg().Norm()
		h := view.Add(f.sunVec).Norm()
		s := math.Pow(math.Max(n.Dot(h), 0), specPower)
		spec = l.SunColor.Mul(specK * s * l.SunIntensity)
	}

	lights := f.pointLights(hit.p, n, albedo, st)

	c := sun.Add(ambient.Mul(ao)).Add(spec).Add(lights).Add(mat.Emissive.Clamp01())
	return c.Add(albedo.Mul(l.Ambient * minLightK))
}

// albedo is the clamped material color, modulated by its texture when one is loaded.
func (f *frame) albedo(mat *Material, hit *hitInfo) Color {
	albedo := mat.Albedo.Clamp01()
	if hit.matID >= len(f.textures) || f.textures[hit.matID] == nil {
		return albedo
	}
	u, v := voxelUV(hit.vmin, hit.p, hit.n)
	s := mat.uvScale()
	u *= s
	v *= s
	if mat.AnimatedUV {
		u = fract(u + f.time*uvAnimSpeed)
		v = fract(v)
	}
	return albedo.Hadamard(f.textures[hit.matID].SampleNearest(u, v)).Clamp01()
}

func (f *frame) pointLights(p, n Vec3, albedo Color, st *RayStats) Color {
	var sum Color
	for i := range f.lights {
		lt := &f.lights[i]
		toL := lt.pos.Sub(p)
		dist := toL.Len()
		if dist <= 1e-6 {
			continue
		}
		ldir := toL.Div(dist)
		nl := math.Max(n.Dot(ldir), 0)
		if nl <= 0 {
			continue
		}
		st.inc(LightProbe)
		probe := NewRay(p.Add(n.Mul(surfaceEps)), ldir).Bounded(dist - surfaceEps)
		if f.tr.blocked(probe, lt.voxel) {
			st.inc(LightBlocked)
			continue
		}
		falloff := 1 - math.Min(dist/lightMaxRange, 1)
		atten := falloff * falloff
		sum = sum.Add(albedo.Hadamard(lt.color.Mul(lt.intensity)).Mul(nl * atten * lightScale))
	}
	return sum
}

// aoTerm probes a short range around the normal; every blocked probe darkens the surface.
func (f *frame) aoTerm(p, n Vec3, st *RayStats) Real {
	t, b := tangentFrame(n)
	o := p.Add(n.Mul(aoEps))
	occ := 0
	for _, j := range aoJitter {
		dir := n.Add(t.Mul(j[0])).Add(b.Mul(j[1])).Norm()
		st.inc(AOProbe)
		if f.tr.blocked(NewRay(o, dir).Bounded(aoRange), -1) {
			st.inc(AOBlocked)
			occ++
		}
	}
	return math.Max(1-aoStrength*Real(occ)/Real(len(aoJitter)), aoFloor)
}

// tangentFrame returns two unit vectors orthogonal to n and to each other.
func tangentFrame(n Vec3) (t, b Vec3) {
	up := Vec3{0, 1, 0}
	if math.Abs(n.Y) >= 0.9 {
		up = Vec3{1, 0, 0}
	}
	t = n.Cross(up).Norm()
	b = t.Cross(n).Norm()
	return t, b
}

// sunSampleDir offsets the sun direction by the i-th soft shadow jitter.
func sunSampleDir(sunDir Vec3, i int) Vec3 {
	n := sunDir.Norm()
	t, b := tangentFrame(n)
	j := sunJitter[i%len(sunJitter)]
	return n.Add(t.Mul(j[0] * sunSpread)).Add(b.Mul(j[1] * sunSpread)).Norm()
}

// tonemapACES is the filmic ACES fit, clamped to [0,1] per channel.
func tonemapACES(c Color) Color {
	return Color{aces(c.X), aces(c.Y), aces(c.Z)}
}

func aces(x Real) Real {
	const (
		a = 2.51
		b = 0.03
		c = 2.43
		d = 0.59
		e = 0.14
	)
	return saturate((x * (a*x + b)) / (x*(c*x+d) + e))
}

func gamma22(c Color) Color {
	return Color{math.Pow(c.X, gammaInv), math.Pow(c.Y, gammaInv), math.Pow(c.Z, gammaInv)}
}

// displayEncode maps averaged linear radiance to display-ready [0,1] color.
func displayEncode(c Color) Color { return gamma22(tonemapACES(c)) }
