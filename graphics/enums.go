package graphics

import "fmt"

// ShaderStage is one programmable pipeline stage.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStage(%d)", uint8(s))
}

// TextureTarget is the binding point a texture is bound to.
type TextureTarget uint8

const (
	Texture2D TextureTarget = iota
)

// PixelFormat is a GPU-side pixel layout, used both as the internal format
// and as the layout of uploaded client data. All client data is 8 bits per
// channel.
type PixelFormat uint8

const (
	PixelRed PixelFormat = iota
	PixelRGB
	PixelRGBA
)

// Channels returns the number of channels in one pixel.
func (f PixelFormat) Channels() int {
	switch f {
	case PixelRed:
		return 1
	case PixelRGB:
		return 3
	case PixelRGBA:
		return 4
	}
	return 0
}

func (f PixelFormat) String() string {
	switch f {
	case PixelRed:
		return "red"
	case PixelRGB:
		return "rgb"
	case PixelRGBA:
		return "rgba"
	}
	return fmt.Sprintf("PixelFormat(%d)", uint8(f))
}

// WrapMode is the texture coordinate wrapping applied outside [0, 1].
type WrapMode uint8

const (
	WrapRepeat WrapMode = iota
	WrapMirroredRepeat
	WrapClampToEdge
	WrapClampToBorder
)

func (w WrapMode) String() string {
	switch w {
	case WrapRepeat:
		return "repeat"
	case WrapMirroredRepeat:
		return "mirrored-repeat"
	case WrapClampToEdge:
		return "clamp-to-edge"
	case WrapClampToBorder:
		return "clamp-to-border"
	}
	return fmt.Sprintf("WrapMode(%d)", uint8(w))
}

// FilterMode is a texture minification or magnification filter.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapNearest
	FilterLinearMipmapLinear
)

// UsesMipmaps reports whether sampling with f reads mipmap levels.
func (f FilterMode) UsesMipmaps() bool {
	return f >= FilterNearestMipmapNearest && f <= FilterLinearMipmapLinear
}

func (f FilterMode) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	case FilterNearestMipmapNearest:
		return "nearest-mipmap-nearest"
	case FilterNearestMipmapLinear:
		return "nearest-mipmap-linear"
	case FilterLinearMipmapNearest:
		return "linear-mipmap-nearest"
	case FilterLinearMipmapLinear:
		return "linear-mipmap-linear"
	}
	return fmt.Sprintf("FilterMode(%d)", uint8(f))
}

// BufferUsage hints how often buffer contents change.
type BufferUsage uint8

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
)

// PolygonMode is the rasterization mode for front and back faces.
type PolygonMode uint8

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

// Next cycles fill -> line -> point -> fill.
func (m PolygonMode) Next() PolygonMode {
	switch m {
	case PolygonFill:
		return PolygonLine
	case PolygonLine:
		return PolygonPoint
	}
	return PolygonFill
}

func (m PolygonMode) String() string {
	switch m {
	case PolygonFill:
		return "fill"
	case PolygonLine:
		return "line"
	case PolygonPoint:
		return "point"
	}
	return fmt.Sprintf("PolygonMode(%d)", uint8(m))
}
