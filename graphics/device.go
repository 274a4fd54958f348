package graphics

// Device is the GPU driver boundary. It carries the driver's implicit global
// state (active program, active texture unit, per-unit bindings, current
// vertex array) so that every call site that depends on that state names the
// device it talks to. All methods must be called from the thread that owns
// the rendering context.
type Device interface {
	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// UniformLocation returns -1 when name is not an active uniform of program.
	UniformLocation(program uint32, name string) int32
	// Uniform uploads target the program made current by UseProgram.
	Uniform1f(location int32, v float32)
	Uniform1i(location int32, v int32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4fv(location int32, m *[16]float32)

	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(target TextureTarget, texture uint32)
	SetUnpackAlignment(alignment int32)
	// TexImage2D, TexWrap, TexFilter and GenerateMipmap act on the texture
	// bound to target on the active unit.
	TexImage2D(target TextureTarget, internalFormat PixelFormat, width, height int32, format PixelFormat, pixels []byte)
	TexWrap(target TextureTarget, s, t WrapMode)
	TexFilter(target TextureTarget, min, mag FilterMode)
	GenerateMipmap(target TextureTarget)
	DeleteTexture(texture uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindArrayBuffer(vbo uint32)
	ArrayBufferData(data []float32, usage BufferUsage)
	DeleteBuffer(vbo uint32)
	// VertexAttribPointer describes float attribute index in the bound array
	// buffer. Stride and offset are counted in floats, not bytes.
	VertexAttribPointer(index uint32, size, stride, offset int32)
	EnableVertexAttribArray(index uint32)
	DrawTriangles(first, count int32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()
	SetDepthTest(enabled bool)
	// SetBlending toggles source-alpha blending.
	SetBlending(enabled bool)
	SetPolygonMode(mode PolygonMode)
	MaxVertexAttribs() int32
}
