package gldevice

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/revenant/graphics"
)

// The mappings below cover every value of their graphics enum. An unknown
// value is a programming error, not a runtime condition.

func shaderType(stage graphics.ShaderStage) uint32 {
	switch stage {
	case graphics.StageVertex:
		return gl.VERTEX_SHADER
	case graphics.StageFragment:
		return gl.FRAGMENT_SHADER
	}
	panic(fmt.Sprintf("gldevice: unmapped %v", stage))
}

func textureTarget(target graphics.TextureTarget) uint32 {
	switch target {
	case graphics.Texture2D:
		return gl.TEXTURE_2D
	}
	panic(fmt.Sprintf("gldevice: unmapped texture target %d", target))
}

func pixelFormat(format graphics.PixelFormat) uint32 {
	switch format {
	case graphics.PixelRed:
		return gl.RED
	case graphics.PixelRGB:
		return gl.RGB
	case graphics.PixelRGBA:
		return gl.RGBA
	}
	panic(fmt.Sprintf("gldevice: unmapped %v", format))
}

func wrapMode(mode graphics.WrapMode) int32 {
	switch mode {
	case graphics.WrapRepeat:
		return gl.REPEAT
	case graphics.WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	case graphics.WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case graphics.WrapClampToBorder:
		return gl.CLAMP_TO_BORDER
	}
	panic(fmt.Sprintf("gldevice: unmapped %v", mode))
}

func filterMode(mode graphics.FilterMode) int32 {
	switch mode {
	case graphics.FilterNearest:
		return gl.NEAREST
	case graphics.FilterLinear:
		return gl.LINEAR
	case graphics.FilterNearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case graphics.FilterNearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case graphics.FilterLinearMipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case graphics.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	}
	panic(fmt.Sprintf("gldevice: unmapped %v", mode))
}

func bufferUsage(usage graphics.BufferUsage) uint32 {
	switch usage {
	case graphics.StaticDraw:
		return gl.STATIC_DRAW
	case graphics.DynamicDraw:
		return gl.DYNAMIC_DRAW
	}
	panic(fmt.Sprintf("gldevice: unmapped buffer usage %d", usage))
}

func polygonMode(mode graphics.PolygonMode) uint32 {
	switch mode {
	case graphics.PolygonFill:
		return gl.FILL
	case graphics.PolygonLine:
		return gl.LINE
	case graphics.PolygonPoint:
		return gl.POINT
	}
	panic(fmt.Sprintf("gldevice: unmapped %v", mode))
}
