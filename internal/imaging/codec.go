// Package imaging normalizes uploaded images into the canonical form the
// vector backend stores and queries: a fixed-size JPEG carried as base64.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"

	// Decoders for the accepted upload formats.
	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/forkful/foodsearch/internal/domain"
)

// Config holds canonicalization settings.
type Config struct {
	TargetWidth   int
	TargetHeight  int
	JPEGQuality   int
	OversizeLimit int
}

// Codec converts between raw uploads, the canonical encoded form, and
// displayable images.
type Codec struct {
	cfg Config
}

// New creates a codec, filling zero config fields with the canonical defaults.
func New(cfg Config) *Codec {
	if cfg.TargetWidth <= 0 {
		cfg.TargetWidth = 400
	}
	if cfg.TargetHeight <= 0 {
		cfg.TargetHeight = 400
	}
	if cfg.JPEGQuality <= 0 || cfg.JPEGQuality > 100 {
		cfg.JPEGQuality = 85
	}
	if cfg.OversizeLimit <= 0 {
		cfg.OversizeLimit = 5000
	}
	return &Codec{cfg: cfg}
}

// Canonical is the normalized transport form of an uploaded image.
type Canonical struct {
	// Base64 is the std-encoded canonical JPEG.
	Base64 string
	// Oversized reports that an input dimension exceeded the configured
	// limit. Informational only; the image was still resized and encoded.
	Oversized bool
}

// NormalizeForQuery decodes raw upload bytes and produces the canonical form:
// direct resize to the target resolution (aspect ratio is not preserved),
// JPEG at the configured quality, base64-encoded.
func (c *Codec) NormalizeForQuery(raw []byte) (Canonical, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Canonical{}, fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}

	bounds := src.Bounds()
	oversized := bounds.Dx() > c.cfg.OversizeLimit || bounds.Dy() > c.cfg.OversizeLimit

	dst := c.canvas(src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: c.cfg.JPEGQuality}); err != nil {
		return Canonical{}, fmt.Errorf("encode jpeg: %w", err)
	}

	return Canonical{
		Base64:    base64.StdEncoding.EncodeToString(buf.Bytes()),
		Oversized: oversized,
	}, nil
}

// canvas picks the scaling surface. Grayscale sources stay single-channel;
// every other color mode lands on a three-channel-backed canvas.
func (c *Codec) canvas(src image.Image) xdraw.Image {
	rect := image.Rect(0, 0, c.cfg.TargetWidth, c.cfg.TargetHeight)
	if _, ok := src.(*image.Gray); ok {
		return image.NewGray(rect)
	}
	return image.NewRGBA(rect)
}

// DecodeForDisplay turns a stored canonical image back into a displayable
// one. Failures are recoverable: the caller is expected to omit the image
// and keep rendering the rest of the item.
func (c *Codec) DecodeForDisplay(encoded string) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", domain.ErrImageDecode, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}
	return img, nil
}
