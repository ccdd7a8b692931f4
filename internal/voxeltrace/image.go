package voxeltrace

import (
	"image"
	"math"
)

// Image is a W×H grid of display-encoded colors in [0,1].
type Image struct {
	W, H int
	Pix  []Color
}

func NewImage(w, h int) *Image {
	return &Image{W: w, H: h, Pix: make([]Color, w*h)}
}

func (im *Image) Set(x, y int, c Color) { im.Pix[y*im.W+x] = c }
func (im *Image) At(x, y int) Color     { return im.Pix[y*im.W+x] }

func toU8(v Real) uint8 { return uint8(math.Round(saturate(v) * 255)) }

func toU16(v Real) uint16 { return uint16(math.Round(saturate(v) * 65535)) }

// ToNRGBA quantizes to 8 bits per channel.
func (im *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.W, im.H))
	for y := 0; y < im.H; y++ {
		rowOff := y * out.Stride
		for x := 0; x < im.W; x++ {
			c := im.At(x, y)
			p := rowOff + x*4
			out.Pix[p+0] = toU8(c.X)
			out.Pix[p+1] = toU8(c.Y)
			out.Pix[p+2] = toU8(c.Z)
			out.Pix[p+3] = 255
		}
	}
	return out
}

// ToNRGBA64 quantizes to 16 bits per channel.
func (im *Image) ToNRGBA64() *image.NRGBA64 {
	out := image.NewNRGBA64(image.Rect(0, 0, im.W, im.H))
	const pxBytes = 8 // 4 channels * 2 bytes/channel
	for y := 0; y < im.H; y++ {
		rowOff := y * out.Stride
		for x := 0; x < im.W; x++ {
			c := im.At(x, y)
			r, g, b := toU16(c.X), toU16(c.Y), toU16(c.Z)
			p := rowOff + x*pxBytes
			// NRGBA64 stores big-endian uint16 per channel: R, G, B, A.
			out.Pix[p+0] = uint8(r >> 8)
			out.Pix[p+1] = uint8(r)
			out.Pix[p+2] = uint8(g >> 8)
			out.Pix[p+3] = uint8(g)
			out.Pix[p+4] = uint8(b >> 8)
			out.Pix[p+5] = uint8(b)
			out.Pix[p+6] = 0xFF
			out.Pix[p+7] = 0xFF
		}
	}
	return out
}
