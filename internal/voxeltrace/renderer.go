package voxeltrace

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

// ErrImageSize is returned by RenderFrame when the output image does not match the renderer.
var ErrImageSize = errors.New("output image size does not match renderer")

// Renderer traces a bound scene from a camera pose into display-encoded images.
// Configuration methods must not be called while RenderFrame is running.
type Renderer struct {
	w, h, spp  int
	tileSize   int
	workers    int
	scene      *Scene
	camera     *CameraPose
	dn         DayNight
	textures   []*Texture // per material, nil when absent
	skybox     [6]*Texture
	lights     []pointLight
	tracer     tracer
	useProcSky bool
	useBVH     bool
	fb         *Framebuffer
}

// New returns a renderer for w×h images with spp samples per pixel.
// Procedural sky is on by default; non-positive arguments fall back to the defaults.
func New(w, h, spp int) *Renderer {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if spp <= 0 {
		spp = 1
	}
	return &Renderer{
		w:          w,
		h:          h,
		spp:        spp,
		tileSize:   DefaultTileSize,
		workers:    runtime.GOMAXPROCS(0),
		dn:         NewDayNight(),
		useProcSky: true,
		fb:         NewFramebuffer(w, h),
	}
}

// Size returns the output size in pixels.
func (r *Renderer) Size() (int, int) { return r.w, r.h }

// SetScene deep-copies s and rebuilds every derived cache: textures, point lights, skybox and the BVH.
func (r *Renderer) SetScene(s *Scene) error {
	if s == nil {
		return errors.New("nil scene")
	}
	if err := s.Validate(); err != nil {
		return err
	}
	cloned := &Scene{}
	if err := copier.CopyWithOption(cloned, s, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("copy scene: %w", err)
	}

	r.textures = make([]*Texture, len(cloned.Materials))
	for i, m := range cloned.Materials {
		if m.TexturePath == "" {
			slog.Debug("material without texture, albedo only", "id", i, "material", m.Name)
			continue
		}
		tex, err := LoadTexture(m.TexturePath)
		if err != nil {
			slog.Info("texture not loaded, albedo only", "id", i, "material", m.Name, "path", m.TexturePath, "err", err)
			continue
		}
		slog.Debug("texture loaded", "id", i, "material", m.Name, "w", tex.W, "h", tex.H)
		r.textures[i] = tex
	}
	r.skybox = loadSkybox(cloned.Skybox)

	r.lights = r.lights[:0]
	for i, v := range cloned.Voxels {
		m := &cloned.Materials[v.MatID]
		if !m.IsEmissive() {
			continue
		}
		r.lights = append(r.lights, pointLight{
			pos:       v.Center(),
			color:     m.Emissive,
			intensity: lightIntensity,
			voxel:     i,
		})
	}

	r.scene = cloned
	r.rebuildTracer()
	slog.Debug("scene bound", "materials", len(cloned.Materials), "voxels", len(cloned.Voxels), "lights", len(r.lights), "bvh", r.tracer.root != nil)
	return nil
}

func (r *Renderer) rebuildTracer() {
	r.tracer = tracer{}
	if r.scene == nil {
		return
	}
	r.tracer.voxels = r.scene.Voxels
	if r.useBVH && len(r.scene.Voxels) >= AABBBVHFromNObjects {
		r.tracer.root = buildBVH(r.scene.Voxels)
	}
}

// SetCamera fixes the pose used by the next frames.
func (r *Renderer) SetCamera(p CameraPose) {
	r.camera = &p
}

// SetUseProceduralSky switches miss shading between the procedural sky and the cube-map skybox.
func (r *Renderer) SetUseProceduralSky(on bool) { r.useProcSky = on }

// SetUseBVH toggles the BVH accelerator; the result of every query is unchanged.
func (r *Renderer) SetUseBVH(on bool) {
	r.useBVH = on
	r.rebuildTracer()
}

// SetDayNight replaces the lighting model.
func (r *Renderer) SetDayNight(dn DayNight) { r.dn = dn }

// SetTileSize sets the square tile edge in pixels; n <= 0 restores the default.
func (r *Renderer) SetTileSize(n int) {
	if n <= 0 {
		n = DefaultTileSize
	}
	r.tileSize = n
}

// SetWorkers bounds the number of tiles rendered at once; n <= 0 means GOMAXPROCS.
func (r *Renderer) SetWorkers(n int) {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	r.workers = n
}

// Framebuffer exposes the linear radiance of the last frame.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// Stats returns the ray counters of the last frame.
func (r *Renderer) Stats() RayStats { return r.fb.Stats() }

// RenderFrame traces one frame at time t and writes display-encoded colors into img.
// It returns once every tile is finished.
func (r *Renderer) RenderFrame(img *Image, t Real) error {
	if img == nil || img.W != r.w || img.H != r.h || len(img.Pix) != r.w*r.h {
		return ErrImageSize
	}
	f := newFrame(r, t)
	var cam *cameraBasis
	if r.scene != nil && r.camera != nil {
		c := newCameraBasis(*r.camera, r.w, r.h)
		cam = &c
	}

	r.fb.reset()
	ts := r.tileSize
	var g errgroup.Group
	g.SetLimit(r.workers)
	for y0 := 0; y0 < r.h; y0 += ts {
		for x0 := 0; x0 < r.w; x0 += ts {
			tile := &tileResult{x0: x0, y0: y0, x1: min(x0+ts, r.w), y1: min(y0+ts, r.h)}
			g.Go(func() error {
				r.renderTile(f, cam, tile)
				r.fb.writeTile(tile)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, c := range r.fb.Pix {
		img.Pix[i] = displayEncode(c)
	}
	if Debug {
		slog.Debug("frame rendered", "time", t, "rays", r.fb.Stats())
	}
	return nil
}

func (r *Renderer) renderTile(f *frame, cam *cameraBasis, tile *tileResult) {
	tile.colors = make([]Color, 0, (tile.x1-tile.x0)*(tile.y1-tile.y0))
	for y := tile.y0; y < tile.y1; y++ {
		for x := tile.x0; x < tile.x1; x++ {
			if cam == nil {
				tile.colors = append(tile.colors, skyGradient(f.light.SkyColor, y, r.h))
				continue
			}
			var acc Color
			for s := 0; s < r.spp; s++ {
				jx, jy := sampleOffset(x, y, s)
				acc = acc.Add(f.radiance(cam.primaryRay(x, y, jx, jy), y, &tile.stats))
			}
			tile.colors = append(tile.colors, acc.Div(Real(r.spp)))
		}
	}
}

// sampleOffset places sample 0 at the pixel center and the rest at deterministic jittered spots.
func sampleOffset(x, y, s int) (Real, Real) {
	if s == 0 {
		return 0.5, 0.5
	}
	rng := NewRng(pixelSeed(x, y, s))
	return rng.NextF64(), rng.NextF64()
}
