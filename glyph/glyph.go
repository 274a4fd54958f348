// Package glyph rasterizes single characters into 8-bit coverage bitmaps.
package glyph

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Bitmap is one rasterized glyph. Buffer holds Width*Rows coverage bytes,
// top row first, with no row padding.
type Bitmap struct {
	Buffer []byte
	Width  int
	Rows   int
	// Left and Top are the offsets from the pen position to the bitmap's
	// top-left corner, Top measured upward from the baseline.
	Left, Top int
	// Advance is the horizontal pen advance in pixels.
	Advance int
}

// Rasterizer renders glyphs from one face at a fixed pixel size.
type Rasterizer struct {
	face font.Face
	size float64
}

// NewRasterizer parses an OpenType/TrueType font and prepares a face of
// the given pixel height. A nil fontData selects Go Regular.
func NewRasterizer(fontData []byte, pixelSize float64) (*Rasterizer, error) {
	if fontData == nil {
		fontData = goregular.TTF
	}
	if pixelSize <= 0 {
		return nil, fmt.Errorf("invalid glyph size %v", pixelSize)
	}
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    pixelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return &Rasterizer{face: face, size: pixelSize}, nil
}

// Size returns the pixel size the face was created with.
func (r *Rasterizer) Size() float64 { return r.size }

// Rasterize renders ch. Characters without a visible shape (space) return a
// zero-size bitmap that still carries an advance.
func (r *Rasterizer) Rasterize(ch rune) (*Bitmap, error) {
	dr, mask, maskp, advance, ok := r.face.Glyph(fixed.Point26_6{}, ch)
	if !ok {
		return nil, fmt.Errorf("font has no glyph for %q", ch)
	}
	bm := &Bitmap{
		Width:   dr.Dx(),
		Rows:    dr.Dy(),
		Left:    dr.Min.X,
		Top:     -dr.Min.Y,
		Advance: advance.Round(),
	}
	if dr.Empty() {
		return bm, nil
	}
	dst := image.NewAlpha(image.Rect(0, 0, bm.Width, bm.Rows))
	draw.DrawMask(dst, dst.Bounds(), image.Opaque, image.Point{}, mask, maskp, draw.Src)
	bm.Buffer = dst.Pix
	return bm, nil
}

// Close releases the face.
func (r *Rasterizer) Close() error {
	return r.face.Close()
}
