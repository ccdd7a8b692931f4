package voxeltrace

import (
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientImage(w, h int) *Image {
	img := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, Color{Real(x) / Real(w-1), Real(y) / Real(h-1), 0.5})
		}
	}
	return img
}

func TestImageSetAt(t *testing.T) {
	img := NewImage(3, 2)
	img.Set(2, 1, Color{0.1, 0.2, 0.3})
	assert.Equal(t, Color{0.1, 0.2, 0.3}, img.At(2, 1))
	assert.Equal(t, Color{0.1, 0.2, 0.3}, img.Pix[5])
}

func TestImageQuantize(t *testing.T) {
	img := NewImage(1, 1)
	img.Set(0, 0, Color{1, 0, 2})
	n := img.ToNRGBA()
	assert.Equal(t, []uint8{255, 0, 255, 255}, n.Pix)
	n64 := img.ToNRGBA64()
	r, g, b, a := n64.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0xffff, 0xffff}, []uint32{r, g, b, a})
}

func TestSaveImageFormats(t *testing.T) {
	dir := t.TempDir()
	img := gradientImage(8, 4)
	for _, ext := range []string{"bmp", "png", "tiff", "jpg"} {
		p := filepath.Join(dir, "sub", "frame."+ext)
		require.NoError(t, SaveImage(img, p), ext)
		f, err := os.Open(p)
		require.NoError(t, err)
		cfg, format, err := image.DecodeConfig(f)
		f.Close()
		require.NoError(t, err, ext)
		assert.Equal(t, 8, cfg.Width, ext)
		assert.Equal(t, 4, cfg.Height, ext)
		assert.NotEmpty(t, format)
	}
	assert.ErrorContains(t, SaveImage(img, filepath.Join(dir, "frame.exr")), "not recognized")
}

func TestSavePNGIs16Bit(t *testing.T) {
	p := filepath.Join(t.TempDir(), "f.png")
	require.NoError(t, SaveImage(gradientImage(4, 4), p))
	f, err := os.Open(p)
	require.NoError(t, err)
	defer f.Close()
	im, _, err := image.Decode(f)
	require.NoError(t, err)
	_, ok := im.(*image.NRGBA64)
	if !ok {
		_, ok = im.(*image.RGBA64)
	}
	assert.True(t, ok, "got %T", im)
}

func TestIsImageFormat(t *testing.T) {
	assert.True(t, IsImageFormat("bmp"))
	assert.True(t, IsImageFormat(".PNG"))
	assert.True(t, IsImageFormat("tif"))
	assert.False(t, IsImageFormat("gif"))
	assert.False(t, IsImageFormat(""))
}

func TestGIFCollector(t *testing.T) {
	g := &GIFCollector{Scale: 0.5}
	assert.Error(t, g.SaveAnimatedGIF(filepath.Join(t.TempDir(), "x.gif"), 3))

	for i := 0; i < 3; i++ {
		g.Add(gradientImage(16, 8))
	}
	assert.Equal(t, 3, g.Len())
	p := filepath.Join(t.TempDir(), "out", "preview.gif")
	require.NoError(t, g.SaveAnimatedGIF(p, 4))

	f, err := os.Open(p)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	require.Len(t, anim.Image, 3)
	assert.Equal(t, []int{4, 4, 4}, anim.Delay)
	assert.Equal(t, 8, anim.Image[0].Bounds().Dx())
	assert.Equal(t, 4, anim.Image[0].Bounds().Dy())
}

func TestSaveAnimatedGIFFullSize(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.gif")
	require.NoError(t, SaveAnimatedGIF([]*Image{gradientImage(6, 5), gradientImage(6, 5)}, p, DefaultGIFDelay))
	f, err := os.Open(p)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 2)
	assert.Equal(t, 6, anim.Config.Width)
}
