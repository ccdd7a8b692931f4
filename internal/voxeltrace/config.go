package voxeltrace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type MaterialCfg struct {
	Name     string `json:"name" toml:"name" yaml:"name"`
	Albedo   Color  `json:"albedo" toml:"albedo" yaml:"albedo"`
	Specular Real   `json:"specular,omitempty" toml:"specular,omitempty" yaml:"specular,omitempty"`
	Emissive Color  `json:"emissive,omitempty" toml:"emissive,omitempty" yaml:"emissive,omitempty"`
	Texture  string `json:"texture,omitempty" toml:"texture,omitempty" yaml:"texture,omitempty"`
	UVScale  Real   `json:"uvScale,omitempty" toml:"uvScale,omitempty" yaml:"uvScale,omitempty"`
	Animated bool   `json:"animated,omitempty" toml:"animated,omitempty" yaml:"animated,omitempty"`
}

// Build turns the entry into a material; texture paths are taken relative to assetsDir
// unless absolute.
func (mc MaterialCfg) Build(assetsDir string) (Material, error) {
	if mc.Name == "" {
		return Material{}, fmt.Errorf("material without a name")
	}
	tex := mc.Texture
	if tex != "" && !filepath.IsAbs(tex) {
		tex = filepath.Join(assetsDir, tex)
	}
	m := NewMaterial(mc.Name, mc.Albedo, tex).WithEmissive(mc.Emissive).Animated(mc.Animated)
	if mc.Specular > 0 {
		m = m.WithSpecular(mc.Specular)
	}
	if mc.UVScale > 0 {
		m = m.WithUVScale(mc.UVScale)
	}
	return m, nil
}

type BoxCfg struct {
	Min      Vec3   `json:"min" toml:"min" yaml:"min"`
	Max      Vec3   `json:"max" toml:"max" yaml:"max"`
	Material string `json:"material" toml:"material" yaml:"material"`
}

type SceneCfg struct {
	// Preset is "house" (the reference scene) or "empty".
	Preset    string        `json:"preset,omitempty" toml:"preset,omitempty" yaml:"preset,omitempty"`
	Materials []MaterialCfg `json:"materials,omitempty" toml:"materials,omitempty" yaml:"materials,omitempty"`
	Boxes     []BoxCfg      `json:"boxes,omitempty" toml:"boxes,omitempty" yaml:"boxes,omitempty"`
}

// Build creates the preset and appends the configured materials and boxes.
// Boxes refer to materials by name, preset ones included.
func (sc SceneCfg) Build(assetsDir string) (*Scene, error) {
	var s *Scene
	switch sc.Preset {
	case "", "house":
		s = BuildHouseScene(assetsDir)
	case "empty":
		s = NewScene()
	default:
		return nil, fmt.Errorf("unknown scene preset %q", sc.Preset)
	}
	byName := make(map[string]int, len(s.Materials)+len(sc.Materials))
	for i, m := range s.Materials {
		byName[m.Name] = i
	}
	for _, mc := range sc.Materials {
		m, err := mc.Build(assetsDir)
		if err != nil {
			return nil, err
		}
		byName[m.Name] = s.AddMaterial(m)
	}
	for i, bc := range sc.Boxes {
		id, ok := byName[bc.Material]
		if !ok {
			return nil, fmt.Errorf("box #%d: unknown material %q", i, bc.Material)
		}
		if bc.Min.X > bc.Max.X || bc.Min.Y > bc.Max.Y || bc.Min.Z > bc.Max.Z {
			return nil, fmt.Errorf("box #%d: min %+v exceeds max %+v", i, bc.Min, bc.Max)
		}
		s.AddBox(bc.Min, bc.Max, id)
	}
	return s, nil
}

type Config struct {
	Width         int         `json:"width" toml:"width" yaml:"width"`
	Height        int         `json:"height" toml:"height" yaml:"height"`
	Spp           int         `json:"spp" toml:"spp" yaml:"spp"`
	TileSize      int         `json:"tileSize,omitempty" toml:"tileSize,omitempty" yaml:"tileSize,omitempty"`
	Workers       int         `json:"workers,omitempty" toml:"workers,omitempty" yaml:"workers,omitempty"`
	FPS           int         `json:"fps" toml:"fps" yaml:"fps"`
	Seconds       Real        `json:"seconds" toml:"seconds" yaml:"seconds"`
	Frames        int         `json:"frames,omitempty" toml:"frames,omitempty" yaml:"frames,omitempty"` // overrides fps*seconds when > 0
	DayTimeScale  Real        `json:"dayTimeScale,omitempty" toml:"dayTimeScale,omitempty" yaml:"dayTimeScale,omitempty"`
	DayTimeOffset Real        `json:"dayTimeOffset,omitempty" toml:"dayTimeOffset,omitempty" yaml:"dayTimeOffset,omitempty"`
	DayCycle      Real        `json:"dayCycle,omitempty" toml:"dayCycle,omitempty" yaml:"dayCycle,omitempty"`
	OutDir        string      `json:"outDir" toml:"outDir" yaml:"outDir"`
	Format        string      `json:"format" toml:"format" yaml:"format"`
	AssetsDir     string      `json:"assetsDir" toml:"assetsDir" yaml:"assetsDir"`
	ProceduralSky *bool       `json:"proceduralSky,omitempty" toml:"proceduralSky,omitempty" yaml:"proceduralSky,omitempty"`
	UseBVH        bool        `json:"bvh,omitempty" toml:"bvh,omitempty" yaml:"bvh,omitempty"`
	GIFOut        string      `json:"gifOut,omitempty" toml:"gifOut,omitempty" yaml:"gifOut,omitempty"`
	GIFDelay      int         `json:"gifDelay,omitempty" toml:"gifDelay,omitempty" yaml:"gifDelay,omitempty"`
	GIFScale      Real        `json:"gifScale,omitempty" toml:"gifScale,omitempty" yaml:"gifScale,omitempty"`
	Raw           bool        `json:"raw,omitempty" toml:"raw,omitempty" yaml:"raw,omitempty"`
	Camera        CameraOrbit `json:"camera" toml:"camera" yaml:"camera"`
	Scene         SceneCfg    `json:"scene" toml:"scene" yaml:"scene"`
}

// DefaultConfig returns a config with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	_ = cfg.applyDefaults()
	return cfg
}

// LoadConfig reads path as JSON, TOML or YAML depending on its extension,
// then fills defaults and validates.
func LoadConfig(path string) (*Config, error) {
	full, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(full)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	slog.Debug("loaded config", "path", full, "width", cfg.Width, "height", cfg.Height, "spp", cfg.Spp, "frames", cfg.FrameCount(), "format", cfg.Format)
	return &cfg, nil
}

// applyDefaults / validation
func (cfg *Config) applyDefaults() error {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Spp <= 0 {
		cfg.Spp = DefaultSpp
	}
	if cfg.TileSize <= 0 {
		cfg.TileSize = DefaultTileSize
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.Seconds <= 0 {
		cfg.Seconds = DefaultSeconds
	}
	if cfg.DayTimeScale == 0 {
		cfg.DayTimeScale = DefaultDayTimeScale
	}
	if cfg.DayCycle <= 0 {
		cfg.DayCycle = DefaultDayCycle
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	cfg.Format = strings.ToLower(strings.TrimPrefix(cfg.Format, "."))
	if !IsImageFormat(cfg.Format) {
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = DefaultAssetsDir
	}
	if cfg.ProceduralSky == nil {
		on := true
		cfg.ProceduralSky = &on
	}
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = DefaultGIFDelay
	}
	if cfg.GIFScale <= 0 || cfg.GIFScale > 1 {
		cfg.GIFScale = DefaultGIFScale
	}
	def := NewCameraOrbit(Vec3{8, 3, 8})
	if cfg.Camera.Center.IsZero() {
		cfg.Camera.Center = def.Center
	}
	if cfg.Camera.BaseRadius <= 0 {
		cfg.Camera.BaseRadius = def.BaseRadius
	}
	if cfg.Camera.Height == 0 {
		cfg.Camera.Height = def.Height
	}
	if cfg.Camera.Period <= 0 {
		cfg.Camera.Period = def.Period
	}
	if cfg.Camera.FovDeg <= 0 || cfg.Camera.FovDeg >= 180 {
		cfg.Camera.FovDeg = def.FovDeg
	}
	if cfg.Camera.ZoomAmp == 0 {
		cfg.Camera.ZoomAmp = def.ZoomAmp
	}
	if cfg.Camera.ZoomAmp < 0 || cfg.Camera.ZoomAmp >= cfg.Camera.BaseRadius {
		return fmt.Errorf("camera zoom amplitude %g must be in [0, radius %g)", cfg.Camera.ZoomAmp, cfg.Camera.BaseRadius)
	}
	var err error
	for _, p := range []*string{&cfg.OutDir, &cfg.AssetsDir, &cfg.GIFOut} {
		if *p, err = homedir.Expand(*p); err != nil {
			return err
		}
	}
	return nil
}

// FrameCount is the number of frames Run renders.
func (cfg *Config) FrameCount() int {
	if cfg.Frames > 0 {
		return cfg.Frames
	}
	return max(1, int(Real(cfg.FPS)*cfg.Seconds+0.5))
}

// FrameTimes returns the orbit time and the day/night time of frame i.
func (cfg *Config) FrameTimes(i int) (t, dayTime Real) {
	t = Real(i) / Real(cfg.FPS)
	return t, cfg.DayTimeOffset + t*cfg.DayTimeScale
}
