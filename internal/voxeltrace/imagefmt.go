package voxeltrace

import (
	"bufio"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats accepted by SaveImage, keyed by lower-case extension without the dot.
var imageFormats = map[string]bool{
	"bmp": true, "png": true, "tif": true, "tiff": true, "jpg": true, "jpeg": true,
}

// IsImageFormat reports whether ext (with or without the leading dot) can be written by SaveImage.
func IsImageFormat(ext string) bool {
	return imageFormats[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// SaveImage writes img to path, choosing the encoder from the extension:
// bmp (8-bit), png (16-bit, lossless), tif/tiff (16-bit) or jpg/jpeg.
func SaveImage(img *Image, path string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !imageFormats[ext] {
		return fmt.Errorf("save %s: extension %q not recognized", path, ext)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	switch ext {
	case "bmp":
		err = bmp.Encode(w, img.ToNRGBA())
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression} // still lossless
		err = enc.Encode(w, img.ToNRGBA64())
	case "tif", "tiff":
		err = tiff.Encode(w, img.ToNRGBA64(), &tiff.Options{Compression: tiff.Deflate})
	default:
		err = jpeg.Encode(w, img.ToNRGBA(), &jpeg.Options{Quality: 90})
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
