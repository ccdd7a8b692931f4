package voxeltrace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// RunFile loads the config at path and runs it.
func RunFile(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	return Run(cfg)
}

// Run renders the timelapse described by cfg: one image per frame in cfg.OutDir,
// plus the optional GIF preview and raw framebuffer dumps.
func Run(cfg *Config) error {
	scene, err := cfg.Scene.Build(cfg.AssetsDir)
	if err != nil {
		return err
	}
	if err := scene.Validate(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	r := New(cfg.Width, cfg.Height, cfg.Spp)
	r.SetTileSize(cfg.TileSize)
	r.SetWorkers(cfg.Workers)
	r.SetUseProceduralSky(*cfg.ProceduralSky)
	r.SetUseBVH(cfg.UseBVH)
	dn := NewDayNight()
	dn.Cycle = cfg.DayCycle
	r.SetDayNight(dn)
	if err := r.SetScene(scene); err != nil {
		return err
	}
	if Debug && cfg.UseBVH {
		r.DumpBVH(os.Stderr)
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	var preview *GIFCollector
	if cfg.GIFOut != "" {
		preview = &GIFCollector{Scale: cfg.GIFScale}
	}

	frames := cfg.FrameCount()
	slog.Info("rendering", "frames", frames, "width", cfg.Width, "height", cfg.Height, "spp", cfg.Spp, "out", cfg.OutDir)
	img := NewImage(cfg.Width, cfg.Height)
	start := time.Now()
	for i := 0; i < frames; i++ {
		t, dayTime := cfg.FrameTimes(i)
		r.SetCamera(cfg.Camera.PoseAt(t))
		if Debug && i == 0 {
			slog.Debug("coverage", "hit_fraction", r.EstimateCoverage(CoverageProbeRays))
		}

		frameStart := time.Now()
		if err := r.RenderFrame(img, dayTime); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		path := filepath.Join(cfg.OutDir, fmt.Sprintf("frame_%04d.%s", i, cfg.Format))
		if err := SaveImage(img, path); err != nil {
			return err
		}
		if cfg.Raw || RAW {
			raw := filepath.Join(cfg.OutDir, fmt.Sprintf("frame_%04d.raw", i))
			if err := r.Framebuffer().SaveRawRGB64(raw); err != nil {
				return fmt.Errorf("raw dump %s: %w", raw, err)
			}
		}
		if preview != nil {
			preview.Add(img)
		}
		slog.Info("frame saved", "frame", i, "path", path, "dayTime", dayTime, "elapsed", time.Since(frameStart))
	}

	if preview != nil {
		if err := preview.SaveAnimatedGIF(cfg.GIFOut, cfg.GIFDelay); err != nil {
			return fmt.Errorf("gif %s: %w", cfg.GIFOut, err)
		}
		slog.Info("saved animated GIF", "path", cfg.GIFOut, "frames", preview.Len())
	}
	slog.Info("done", "frames", frames, "elapsed", time.Since(start))
	return nil
}
