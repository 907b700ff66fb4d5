// Package imageproc resizes uploaded images to fit a bounding box.
package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"postboard/internal/domain"
	"postboard/internal/port"
)

const (
	DefaultWidth       = 500
	DefaultHeight      = 800
	DefaultJPEGQuality = 80
	DefaultMaxPixels   = 50_000_000
)

var contentTypes = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

// Transformer scales images to fit within Width x Height without distortion.
type Transformer struct {
	Width       int
	Height      int
	JPEGQuality int
	// MaxPixels caps the declared source dimensions; decoding allocates
	// width*height pixels before any data is read.
	MaxPixels int64
}

// NewTransformer creates a Transformer, substituting defaults for
// non-positive settings.
func NewTransformer(width, height, quality int) *Transformer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Transformer{Width: width, Height: height, JPEGQuality: quality, MaxPixels: DefaultMaxPixels}
}

// WithMaxPixels sets the source pixel limit; a non-positive n keeps the default.
func (t *Transformer) WithMaxPixels(n int64) *Transformer {
	if n > 0 {
		t.MaxPixels = n
	}
	return t
}

// Transform decodes data, scales it to the largest size that fits the box
// while keeping its aspect ratio, and re-encodes it in the source format
// where imaging can write it.
func (t *Transformer) Transform(data []byte) (*port.TransformedImage, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewError(domain.ErrImageTransform, "file is not a decodable image", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, domain.NewError(domain.ErrImageTransform, "file is not a decodable image", nil)
	}
	if limit := t.maxPixels(); int64(cfg.Width)*int64(cfg.Height) > limit {
		return nil, domain.NewError(domain.ErrImageTransform, "image dimensions too large", nil)
	}
	// Formats imaging cannot encode (webp) are written as JPEG.
	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		format = imaging.JPEG
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, domain.NewError(domain.ErrImageTransform, "file is not a decodable image", err)
	}

	w, h := FitWithin(src.Bounds().Dx(), src.Bounds().Dy(), t.Width, t.Height)
	dst := imaging.Resize(src, w, h, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, format, imaging.JPEGQuality(t.JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}

	return &port.TransformedImage{
		Data:        buf.Bytes(),
		ContentType: contentTypes[format],
		Width:       w,
		Height:      h,
	}, nil
}

func (t *Transformer) maxPixels() int64 {
	if t.MaxPixels <= 0 {
		return DefaultMaxPixels
	}
	return t.MaxPixels
}

// FitWithin returns the dimensions of a w x h image scaled to the largest
// size that fits inside maxW x maxH with the same aspect ratio.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := clamp(int(math.Round(float64(w)*scale)), 1, maxW)
	nh := clamp(int(math.Round(float64(h)*scale)), 1, maxH)
	return nw, nh
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
