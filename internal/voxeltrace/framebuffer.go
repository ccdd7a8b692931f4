package voxeltrace

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Framebuffer holds the averaged linear radiance of one frame.
// Tiles write into it under a single lock; it is read only after every tile is done.
type Framebuffer struct {
	mu    sync.Mutex
	W, H  int
	Pix   []Color // row-major
	stats RayStats
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{W: w, H: h, Pix: make([]Color, w*h)}
}

// tileResult is what one tile hands back: its rectangle, colors in row-major order and counters.
type tileResult struct {
	x0, y0, x1, y1 int
	colors         []Color
	stats          RayStats
}

func (fb *Framebuffer) reset() {
	fb.mu.Lock()
	fb.stats = RayStats{}
	fb.mu.Unlock()
}

func (fb *Framebuffer) writeTile(t *tileResult) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := 0
	for y := t.y0; y < t.y1; y++ {
		row := y * fb.W
		for x := t.x0; x < t.x1; x++ {
			fb.Pix[row+x] = t.colors[i]
			i++
		}
	}
	fb.stats.merge(&t.stats)
}

// Stats returns the counters merged so far.
func (fb *Framebuffer) Stats() RayStats {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.stats
}

// SaveRawRGB64 dumps the linear framebuffer: W and H as little-endian int32,
// then W*H*3 little-endian float64 values, rows top to bottom.
func (fb *Framebuffer) SaveRawRGB64(path string) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.W < 0 || fb.H < 0 {
		return fmt.Errorf("negative dimensions: W=%d H=%d", fb.W, fb.H)
	}
	if len(fb.Pix) != fb.W*fb.H {
		return fmt.Errorf("Pix length mismatch: got %d, expected %d (W*H)", len(fb.Pix), fb.W*fb.H)
	}

	// Make sure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, [2]int32{int32(fb.W), int32(fb.H)}); err != nil {
		return err
	}
	buf := make([]float64, 0, len(fb.Pix)*3)
	for _, c := range fb.Pix {
		buf = append(buf, c.X, c.Y, c.Z)
	}
	if len(buf) > 0 {
		if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadRawRGB64 reads a dump written by SaveRawRGB64.
func LoadRawRGB64(path string) (*Framebuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)
	var dims [2]int32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if dims[0] < 0 || dims[1] < 0 {
		return nil, fmt.Errorf("negative dimensions: W=%d H=%d", dims[0], dims[1])
	}
	fb := NewFramebuffer(int(dims[0]), int(dims[1]))
	buf := make([]float64, len(fb.Pix)*3)
	if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	for i := range fb.Pix {
		fb.Pix[i] = Color{buf[3*i], buf[3*i+1], buf[3*i+2]}
	}
	return fb, nil
}
