package voxeltrace

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/transform"
)

// GIFCollector accumulates downscaled frames for the timelapse preview.
type GIFCollector struct {
	Scale  Real // 0 < Scale <= 1
	frames []*image.Paletted
}

// Add quantizes a downscaled copy of img to the Plan9 palette.
func (g *GIFCollector) Add(img *Image) {
	var src image.Image = img.ToNRGBA()
	if g.Scale > 0 && g.Scale < 1 {
		w := max(1, int(Real(img.W)*g.Scale))
		h := max(1, int(Real(img.H)*g.Scale))
		src = transform.Resize(src, w, h, transform.Linear)
	}
	pimg := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), src, src.Bounds().Min)
	g.frames = append(g.frames, pimg)
}

// Len returns the number of collected frames.
func (g *GIFCollector) Len() int { return len(g.frames) }

// SaveAnimatedGIF writes the collected frames as a looping GIF.
// delay is in 100ths of a second (e.g., 5 => 20 fps).
func (g *GIFCollector) SaveAnimatedGIF(path string, delay int) error {
	if len(g.frames) == 0 {
		return errors.New("no frames to save")
	}
	out := &gif.GIF{
		Image:     g.frames,
		Delay:     make([]int, len(g.frames)),
		LoopCount: 0,
	}
	for i := range out.Delay {
		out.Delay[i] = delay
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}

// SaveAnimatedGIF writes frames at full size as a looping GIF.
func SaveAnimatedGIF(frames []*Image, path string, delay int) error {
	g := &GIFCollector{Scale: 1}
	for _, f := range frames {
		g.Add(f)
	}
	return g.SaveAnimatedGIF(path, delay)
}
