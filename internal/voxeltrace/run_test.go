package voxeltrace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWritesFrames(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Spp = 24, 16, 1
	cfg.Frames = 2
	cfg.OutDir = filepath.Join(dir, "frames")
	cfg.AssetsDir = filepath.Join(dir, "assets")
	cfg.Format = "png"
	cfg.GIFOut = filepath.Join(dir, "preview.gif")
	cfg.Raw = true
	cfg.UseBVH = true

	require.NoError(t, Run(cfg))
	for _, name := range []string{"frame_0000.png", "frame_0001.png", "frame_0000.raw", "frame_0001.raw"} {
		_, err := os.Stat(filepath.Join(cfg.OutDir, name))
		assert.NoError(t, err, name)
	}
	_, err := os.Stat(cfg.GIFOut)
	assert.NoError(t, err)
}

func TestRunFileRejectsBadScene(t *testing.T) {
	p := writeConfig(t, "c.json", `{"frames": 1, "width": 8, "height": 8,
  "scene": {"preset": "empty", "boxes": [{"material": "ghost"}]}}`)
	assert.ErrorContains(t, RunFile(p), "unknown material")
	assert.Error(t, RunFile(filepath.Join(t.TempDir(), "none.json")))
}
