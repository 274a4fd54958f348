// Package gldevice implements graphics.Device on desktop OpenGL 4.1 core.
package gldevice

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/revenant/graphics"
)

var glInitOnce sync.Once

// Device issues GL calls on the context current on the calling thread.
type Device struct{}

var _ graphics.Device = (*Device)(nil)

// New loads the OpenGL function pointers. The window's context must already
// be current on this thread.
func New() (*Device, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
		if initErr == nil {
			log.Printf("OpenGL %s initialized", gl.GoStr(gl.GetString(gl.VERSION)))
		}
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	return &Device{}, nil
}

func (d *Device) CreateShader(stage graphics.ShaderStage) uint32 {
	return gl.CreateShader(shaderType(stage))
}

func (d *Device) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (d *Device) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (d *Device) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *Device) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (d *Device) CreateProgram() uint32 { return gl.CreateProgram() }

func (d *Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (d *Device) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (d *Device) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (d *Device) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (d *Device) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (d *Device) UniformMatrix4fv(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (d *Device) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }

func (d *Device) BindTexture(target graphics.TextureTarget, texture uint32) {
	gl.BindTexture(textureTarget(target), texture)
}

func (d *Device) SetUnpackAlignment(alignment int32) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, alignment)
}

func (d *Device) TexImage2D(target graphics.TextureTarget, internalFormat graphics.PixelFormat, width, height int32, format graphics.PixelFormat, pixels []byte) {
	var data unsafe.Pointer
	if len(pixels) > 0 {
		data = gl.Ptr(pixels)
	}
	gl.TexImage2D(
		textureTarget(target),
		0,
		int32(pixelFormat(internalFormat)),
		width,
		height,
		0,
		pixelFormat(format),
		gl.UNSIGNED_BYTE,
		data,
	)
}

func (d *Device) TexWrap(target graphics.TextureTarget, s, t graphics.WrapMode) {
	gl.TexParameteri(textureTarget(target), gl.TEXTURE_WRAP_S, wrapMode(s))
	gl.TexParameteri(textureTarget(target), gl.TEXTURE_WRAP_T, wrapMode(t))
}

func (d *Device) TexFilter(target graphics.TextureTarget, min, mag graphics.FilterMode) {
	gl.TexParameteri(textureTarget(target), gl.TEXTURE_MIN_FILTER, filterMode(min))
	gl.TexParameteri(textureTarget(target), gl.TEXTURE_MAG_FILTER, filterMode(mag))
}

func (d *Device) GenerateMipmap(target graphics.TextureTarget) {
	gl.GenerateMipmap(textureTarget(target))
}

func (d *Device) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (d *Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Device) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (d *Device) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (d *Device) GenBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (d *Device) BindArrayBuffer(vbo uint32) { gl.BindBuffer(gl.ARRAY_BUFFER, vbo) }

func (d *Device) ArrayBufferData(data []float32, usage graphics.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), bufferUsage(usage))
}

func (d *Device) DeleteBuffer(vbo uint32) { gl.DeleteBuffers(1, &vbo) }

func (d *Device) VertexAttribPointer(index uint32, size, stride, offset int32) {
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, stride*4, gl.PtrOffset(int(offset)*4))
}

func (d *Device) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (d *Device) DrawTriangles(first, count int32) { gl.DrawArrays(gl.TRIANGLES, first, count) }

func (d *Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Device) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }

func (d *Device) SetDepthTest(enabled bool) { toggle(gl.DEPTH_TEST, enabled) }

func (d *Device) SetBlending(enabled bool) {
	toggle(gl.BLEND, enabled)
	if enabled {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func toggle(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func (d *Device) SetPolygonMode(mode graphics.PolygonMode) {
	gl.PolygonMode(gl.FRONT_AND_BACK, polygonMode(mode))
}

func (d *Device) MaxVertexAttribs() int32 {
	var n int32
	gl.GetIntegerv(gl.MAX_VERTEX_ATTRIBS, &n)
	return n
}
