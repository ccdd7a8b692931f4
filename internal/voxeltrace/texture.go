package voxeltrace

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned by LoadTexture for files that do not carry a known image signature.
var ErrNotImage = errors.New("not an image")

// Texture is a decoded image as row-major (top-down) 8-bit RGB triplets.
type Texture struct {
	W, H int
	Data []byte
}

// LoadTexture reads and decodes path. bmp, png, jpeg, gif, tiff and webp are supported.
func LoadTexture(path string) (*Texture, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !filetype.IsImage(buf) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	im, format, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	tex := TextureFromImage(im)
	if tex == nil {
		return nil, fmt.Errorf("%s (%s): empty image", path, format)
	}
	return tex, nil
}

// TextureFromImage converts any image into an RGB texture; nil for an empty image.
func TextureFromImage(im image.Image) *Texture {
	b := im.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	data := make([]byte, 0, w*h*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(im.At(x, y)).(color.NRGBA)
			data = append(data, c.R, c.G, c.B)
		}
	}
	return &Texture{W: w, H: h, Data: data}
}

// SampleNearest returns the texel under (u,v), both wrapped into [0,1); v=0 is the top row.
func (t *Texture) SampleNearest(u, v Real) Color {
	u = fract(u)
	v = fract(v)
	x := int(clamp(math.Floor(u*Real(t.W)), 0, Real(t.W-1)))
	y := int(clamp(math.Floor(v*Real(t.H)), 0, Real(t.H-1)))
	i := (y*t.W + x) * 3
	return Color{
		Real(t.Data[i]) / 255,
		Real(t.Data[i+1]) / 255,
		Real(t.Data[i+2]) / 255,
	}
}
