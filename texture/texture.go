// Package texture owns 2D GPU images: creation from raw pixels, decoded
// images and glyph bitmaps, unit binding and sampler state.
package texture

import (
	"errors"
	"fmt"
	"math"

	"github.com/richinsley/revenant/glyph"
	"github.com/richinsley/revenant/graphics"
)

var (
	ErrDimensionOverflow        = errors.New("texture dimensions do not fit in a signed 32-bit size")
	ErrUnsupportedFormat        = errors.New("unsupported texture format")
	ErrUnsupportedImageEncoding = errors.New("unsupported image encoding, need 8-bit RGB without alpha")
	ErrShortPixelData           = errors.New("pixel data is smaller than the texture")
	ErrInvalidFilter            = errors.New("invalid texture filter")
)

// Kind tags what a texture is sampled for.
type Kind uint8

const (
	Diffuse Kind = iota
	Specular
	Normal
	Height
)

func (k Kind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Normal:
		return "normal"
	case Height:
		return "height"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Format is the channel layout of the client pixel data, 8 bits per channel.
type Format uint8

const (
	RGB Format = iota
	RGBA
	RG
	// Unicolor is a single coverage/intensity channel, as produced for glyphs.
	Unicolor
)

func (f Format) String() string {
	switch f {
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	case RG:
		return "rg"
	case Unicolor:
		return "unicolor"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// FormatForChannels returns the format holding n channels.
func FormatForChannels(n int) (Format, error) {
	switch n {
	case 1:
		return Unicolor, nil
	case 3:
		return RGB, nil
	case 4:
		return RGBA, nil
	}
	return 0, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, n)
}

// gpuFormat maps f to the internal format and row unpack alignment. Rows of
// RGB and single-channel data are tightly packed, so they need alignment 1.
func gpuFormat(f Format) (graphics.PixelFormat, int32, error) {
	switch f {
	case RGB:
		return graphics.PixelRGB, 1, nil
	case RGBA:
		return graphics.PixelRGBA, 4, nil
	case Unicolor:
		return graphics.PixelRed, 1, nil
	case RG:
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// Config is the sampler setup a texture is created with.
type Config struct {
	Kind      Kind
	WrapS     graphics.WrapMode
	WrapT     graphics.WrapMode
	MinFilter graphics.FilterMode
	MagFilter graphics.FilterMode
	Mipmaps   bool
}

// DefaultConfig repeats in both directions and filters linearly with
// mipmapped minification.
func DefaultConfig(kind Kind) Config {
	return Config{
		Kind:      kind,
		WrapS:     graphics.WrapRepeat,
		WrapT:     graphics.WrapRepeat,
		MinFilter: graphics.FilterLinearMipmapLinear,
		MagFilter: graphics.FilterLinear,
		Mipmaps:   true,
	}
}

type Texture struct {
	device graphics.Device
	id     uint32
	kind   Kind
	format Format
	width  int32
	height int32

	wrapS, wrapT         graphics.WrapMode
	minFilter, magFilter graphics.FilterMode
	mipmaps              bool
}

// Create uploads width x height pixels of the given format. Rows are top to
// bottom as the driver will read them, with no padding. Create binds the new
// texture on the active unit and finishes by binding 0 there, so whatever the
// caller had bound on that unit is unbound; rebind before drawing.
func Create(dev graphics.Device, pixels []byte, width, height int, format Format, cfg Config) (*Texture, error) {
	if width < 0 || height < 0 || width > math.MaxInt32 || height > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensionOverflow, width, height)
	}
	internal, alignment, err := gpuFormat(format)
	if err != nil {
		return nil, err
	}
	if row := int64(width) * int64(internal.Channels()); row > 0 && int64(len(pixels))/row < int64(height) {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d %s", ErrShortPixelData, len(pixels), width, height, format)
	}
	if cfg.MagFilter.UsesMipmaps() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFilter, cfg.MagFilter)
	}
	// Without levels a mipmapped minification filter leaves the texture
	// incomplete.
	if cfg.MinFilter.UsesMipmaps() && !cfg.Mipmaps {
		return nil, fmt.Errorf("%w: %s without mipmaps", ErrInvalidFilter, cfg.MinFilter)
	}

	t := &Texture{
		device:    dev,
		id:        dev.GenTexture(),
		kind:      cfg.Kind,
		format:    format,
		width:     int32(width),
		height:    int32(height),
		wrapS:     cfg.WrapS,
		wrapT:     cfg.WrapT,
		minFilter: cfg.MinFilter,
		magFilter: cfg.MagFilter,
		mipmaps:   cfg.Mipmaps,
	}

	dev.BindTexture(graphics.Texture2D, t.id)
	dev.SetUnpackAlignment(alignment)
	dev.TexImage2D(graphics.Texture2D, internal, t.width, t.height, internal, pixels)
	dev.TexWrap(graphics.Texture2D, cfg.WrapS, cfg.WrapT)
	dev.TexFilter(graphics.Texture2D, cfg.MinFilter, cfg.MagFilter)
	if cfg.Mipmaps {
		dev.GenerateMipmap(graphics.Texture2D)
	}
	dev.BindTexture(graphics.Texture2D, 0)

	return t, nil
}

// FromGlyph builds a single-channel texture from a rasterized glyph. Glyph
// textures always repeat, filter linearly and skip mipmaps.
func FromGlyph(dev graphics.Device, bm *glyph.Bitmap) (*Texture, error) {
	return Create(dev, bm.Buffer, bm.Width, bm.Rows, Unicolor, Config{
		Kind:      Diffuse,
		WrapS:     graphics.WrapRepeat,
		WrapT:     graphics.WrapRepeat,
		MinFilter: graphics.FilterLinear,
		MagFilter: graphics.FilterLinear,
	})
}

// Bind makes unit the active texture unit and binds t to its 2D target.
// The sampler uniform reading it must be set to the same unit.
func (t *Texture) Bind(unit uint32) {
	t.device.ActiveTexture(unit)
	t.device.BindTexture(graphics.Texture2D, t.id)
}

// SetWrap changes the wrap modes. t must be bound on the active unit.
func (t *Texture) SetWrap(s, tt graphics.WrapMode) {
	t.device.TexWrap(graphics.Texture2D, s, tt)
	t.wrapS, t.wrapT = s, tt
}

// SetFilter changes the filters. t must be bound on the active unit. A
// mipmap filter is rejected for magnification, and for minification when t
// has no mipmaps.
func (t *Texture) SetFilter(min, mag graphics.FilterMode) error {
	if mag.UsesMipmaps() {
		return fmt.Errorf("%w: %s", ErrInvalidFilter, mag)
	}
	if min.UsesMipmaps() && !t.mipmaps {
		return fmt.Errorf("%w: %s without mipmaps", ErrInvalidFilter, min)
	}
	t.device.TexFilter(graphics.Texture2D, min, mag)
	t.minFilter, t.magFilter = min, mag
	return nil
}

func (t *Texture) ID() uint32 { return t.id }

func (t *Texture) Kind() Kind { return t.kind }

func (t *Texture) Format() Format { return t.format }

func (t *Texture) Size() (width, height int32) { return t.width, t.height }

func (t *Texture) Wrap() (s, tt graphics.WrapMode) { return t.wrapS, t.wrapT }

func (t *Texture) Filter() (min, mag graphics.FilterMode) { return t.minFilter, t.magFilter }

// Mipmapped reports whether mipmaps were generated at creation.
func (t *Texture) Mipmapped() bool { return t.mipmaps }

// Destroy deletes the GPU texture. It is safe to call more than once.
func (t *Texture) Destroy() {
	if t == nil || t.id == 0 {
		return
	}
	t.device.DeleteTexture(t.id)
	t.id = 0
}
