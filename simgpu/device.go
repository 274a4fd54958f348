// Package simgpu is an in-memory graphics.Device. It follows the driver's
// observable rules closely enough to test ordering: uniforms land in the
// program made current by UseProgram, texture uploads and sampler state land
// in the texture bound on the active unit, and draws capture the current
// program and unit bindings. Calls the real driver would reject are recorded
// in Violations instead of panicking.
package simgpu

import (
	"fmt"
	"sort"

	"github.com/richinsley/revenant/graphics"
)

type Shader struct {
	Stage    graphics.ShaderStage
	Source   string
	Compiled bool
	Log      string
	Deleted  bool
}

type Program struct {
	Shaders []uint32
	Linked  bool
	Log     string
	Deleted bool
	// Uniforms maps every active uniform name to its location.
	Uniforms map[string]int32
	// Values holds the last value uploaded to each location: float32,
	// int32, [3]float32 or [16]float32.
	Values map[int32]any
}

type Texture struct {
	Target         graphics.TextureTarget
	InternalFormat graphics.PixelFormat
	Format         graphics.PixelFormat
	Width, Height  int32
	Alignment      int32
	Pixels         []byte
	Uploads        int
	WrapS, WrapT   graphics.WrapMode
	Min, Mag       graphics.FilterMode
	Mipmapped      bool
	Deleted        bool
}

type Attrib struct {
	Size, Stride, Offset int32
	Buffer               uint32
	Enabled              bool
}

type VertexArray struct {
	Attribs map[uint32]*Attrib
	Deleted bool
}

type Buffer struct {
	Data    []float32
	Usage   graphics.BufferUsage
	Uploads int
	Deleted bool
}

// Draw is one recorded draw call.
type Draw struct {
	Program     uint32
	VertexArray uint32
	First       int32
	Count       int32
	// Units is the texture bound on each unit at the time of the draw.
	Units       map[uint32]uint32
	DepthTest   bool
	Blending    bool
	Mode        graphics.PolygonMode
}

type Device struct {
	Shaders      map[uint32]*Shader
	Programs     map[uint32]*Program
	Textures     map[uint32]*Texture
	VertexArrays map[uint32]*VertexArray
	Buffers      map[uint32]*Buffer

	CurrentProgram  uint32
	ActiveUnit      uint32
	Units           map[uint32]uint32
	UnpackAlignment int32
	VertexArray     uint32
	ArrayBuffer     uint32

	ViewportRect [4]int32
	Color        [4]float32
	Clears       int
	DepthTest    bool
	Blending     bool
	PolygonMode  graphics.PolygonMode
	MaxAttribs   int32
	Draws        []Draw

	// LinkFailure, when set, makes every subsequent link fail with this log.
	LinkFailure string

	Violations []string

	nextID uint32
}

var _ graphics.Device = (*Device)(nil)

// New returns a device with the driver defaults: unpack alignment 4, unit 0
// active, 16 vertex attributes.
func New() *Device {
	return &Device{
		Shaders:         make(map[uint32]*Shader),
		Programs:        make(map[uint32]*Program),
		Textures:        make(map[uint32]*Texture),
		VertexArrays:    make(map[uint32]*VertexArray),
		Buffers:         make(map[uint32]*Buffer),
		Units:           make(map[uint32]uint32),
		UnpackAlignment: 4,
		MaxAttribs:      16,
	}
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) violate(format string, args ...any) {
	d.Violations = append(d.Violations, fmt.Sprintf(format, args...))
}

func (d *Device) CreateShader(stage graphics.ShaderStage) uint32 {
	id := d.id()
	d.Shaders[id] = &Shader{Stage: stage}
	return id
}

func (d *Device) shader(id uint32, op string) *Shader {
	s, ok := d.Shaders[id]
	if !ok || s.Deleted {
		d.violate("%s: no shader %d", op, id)
		return nil
	}
	return s
}

func (d *Device) ShaderSource(shader uint32, source string) {
	if s := d.shader(shader, "ShaderSource"); s != nil {
		s.Source = source
	}
}

func (d *Device) CompileShader(shader uint32) {
	s := d.shader(shader, "CompileShader")
	if s == nil {
		return
	}
	s.Log = compileLog(s.Source)
	s.Compiled = s.Log == ""
}

func (d *Device) ShaderCompiled(shader uint32) bool {
	s := d.shader(shader, "ShaderCompiled")
	return s != nil && s.Compiled
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	if s := d.shader(shader, "ShaderInfoLog"); s != nil {
		return s.Log
	}
	return ""
}

func (d *Device) DeleteShader(shader uint32) {
	if s := d.shader(shader, "DeleteShader"); s != nil {
		s.Deleted = true
	}
}

func (d *Device) CreateProgram() uint32 {
	id := d.id()
	d.Programs[id] = &Program{
		Uniforms: make(map[string]int32),
		Values:   make(map[int32]any),
	}
	return id
}

func (d *Device) program(id uint32, op string) *Program {
	p, ok := d.Programs[id]
	if !ok || p.Deleted {
		d.violate("%s: no program %d", op, id)
		return nil
	}
	return p
}

func (d *Device) AttachShader(program, shader uint32) {
	p := d.program(program, "AttachShader")
	if p == nil || d.shader(shader, "AttachShader") == nil {
		return
	}
	p.Shaders = append(p.Shaders, shader)
}

func (d *Device) LinkProgram(program uint32) {
	p := d.program(program, "LinkProgram")
	if p == nil {
		return
	}
	p.Linked = false
	if d.LinkFailure != "" {
		p.Log = d.LinkFailure
		return
	}
	var sources []string
	stages := map[graphics.ShaderStage]bool{}
	for _, id := range p.Shaders {
		s := d.Shaders[id]
		if !s.Compiled {
			p.Log = fmt.Sprintf("error: %s shader %d is not compiled", s.Stage, id)
			return
		}
		stages[s.Stage] = true
		sources = append(sources, s.Source)
	}
	for _, stage := range []graphics.ShaderStage{graphics.StageVertex, graphics.StageFragment} {
		if !stages[stage] {
			p.Log = fmt.Sprintf("error: no %s shader attached", stage)
			return
		}
	}
	names := activeUniforms(sources)
	sort.Strings(names)
	p.Uniforms = make(map[string]int32, len(names))
	p.Values = make(map[int32]any)
	for i, name := range names {
		p.Uniforms[name] = int32(i)
	}
	p.Log = ""
	p.Linked = true
}

func (d *Device) ProgramLinked(program uint32) bool {
	p := d.program(program, "ProgramLinked")
	return p != nil && p.Linked
}

func (d *Device) ProgramInfoLog(program uint32) string {
	if p := d.program(program, "ProgramInfoLog"); p != nil {
		return p.Log
	}
	return ""
}

func (d *Device) UseProgram(program uint32) {
	if program != 0 {
		p := d.program(program, "UseProgram")
		if p == nil {
			return
		}
		if !p.Linked {
			d.violate("UseProgram: program %d is not linked", program)
			return
		}
	}
	d.CurrentProgram = program
}

func (d *Device) DeleteProgram(program uint32) {
	if p := d.program(program, "DeleteProgram"); p != nil {
		p.Deleted = true
		if d.CurrentProgram == program {
			d.CurrentProgram = 0
		}
	}
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	p := d.program(program, "UniformLocation")
	if p == nil || !p.Linked {
		return -1
	}
	if loc, ok := p.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) setUniform(op string, location int32, v any) {
	if location == -1 {
		return
	}
	if d.CurrentProgram == 0 {
		d.violate("%s: no program in use", op)
		return
	}
	p := d.Programs[d.CurrentProgram]
	if int(location) < 0 || int(location) >= len(p.Uniforms) {
		d.violate("%s: location %d is not valid for program %d", op, location, d.CurrentProgram)
		return
	}
	p.Values[location] = v
}

func (d *Device) Uniform1f(location int32, v float32) { d.setUniform("Uniform1f", location, v) }

func (d *Device) Uniform1i(location int32, v int32) { d.setUniform("Uniform1i", location, v) }

func (d *Device) Uniform3f(location int32, x, y, z float32) {
	d.setUniform("Uniform3f", location, [3]float32{x, y, z})
}

func (d *Device) UniformMatrix4fv(location int32, m *[16]float32) {
	d.setUniform("UniformMatrix4fv", location, *m)
}

// Uniform returns the value last uploaded to the named uniform of program.
func (d *Device) Uniform(program uint32, name string) (any, bool) {
	p, ok := d.Programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.Uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.Values[loc]
	return v, ok
}

func (d *Device) GenTexture() uint32 {
	id := d.id()
	d.Textures[id] = &Texture{}
	return id
}

func (d *Device) ActiveTexture(unit uint32) { d.ActiveUnit = unit }

func (d *Device) BindTexture(target graphics.TextureTarget, texture uint32) {
	if texture != 0 {
		t, ok := d.Textures[texture]
		if !ok || t.Deleted {
			d.violate("BindTexture: no texture %d", texture)
			return
		}
		t.Target = target
	}
	d.Units[d.ActiveUnit] = texture
}

// Bound returns the texture bound on unit.
func (d *Device) Bound(unit uint32) uint32 { return d.Units[unit] }

func (d *Device) SetUnpackAlignment(alignment int32) {
	switch alignment {
	case 1, 2, 4, 8:
		d.UnpackAlignment = alignment
	default:
		d.violate("SetUnpackAlignment: invalid alignment %d", alignment)
	}
}

func (d *Device) boundTexture(op string) *Texture {
	id := d.Units[d.ActiveUnit]
	if id == 0 {
		d.violate("%s: no texture bound on unit %d", op, d.ActiveUnit)
		return nil
	}
	return d.Textures[id]
}

func (d *Device) TexImage2D(target graphics.TextureTarget, internalFormat graphics.PixelFormat, width, height int32, format graphics.PixelFormat, pixels []byte) {
	t := d.boundTexture("TexImage2D")
	if t == nil {
		return
	}
	if width < 0 || height < 0 {
		d.violate("TexImage2D: negative size %dx%d", width, height)
		return
	}
	if need := uploadSize(width, height, format.Channels(), d.UnpackAlignment); int64(len(pixels)) < need {
		d.violate("TexImage2D: %d bytes supplied, %d needed at alignment %d", len(pixels), need, d.UnpackAlignment)
		return
	}
	t.InternalFormat = internalFormat
	t.Format = format
	t.Width, t.Height = width, height
	t.Alignment = d.UnpackAlignment
	t.Pixels = append([]byte(nil), pixels...)
	t.Uploads++
}

// uploadSize is the number of bytes the driver reads for a width x height
// upload when every row but the last is padded to alignment.
func uploadSize(width, height int32, channels int, alignment int32) int64 {
	if width == 0 || height == 0 {
		return 0
	}
	row := int64(width) * int64(channels)
	padded := (row + int64(alignment) - 1) / int64(alignment) * int64(alignment)
	return padded*int64(height-1) + row
}

func (d *Device) TexWrap(target graphics.TextureTarget, s, t graphics.WrapMode) {
	if tex := d.boundTexture("TexWrap"); tex != nil {
		tex.WrapS, tex.WrapT = s, t
	}
}

func (d *Device) TexFilter(target graphics.TextureTarget, min, mag graphics.FilterMode) {
	if tex := d.boundTexture("TexFilter"); tex != nil {
		if mag.UsesMipmaps() {
			d.violate("TexFilter: %v is not a magnification filter", mag)
			return
		}
		tex.Min, tex.Mag = min, mag
	}
}

func (d *Device) GenerateMipmap(target graphics.TextureTarget) {
	if tex := d.boundTexture("GenerateMipmap"); tex != nil {
		tex.Mipmapped = true
	}
}

func (d *Device) DeleteTexture(texture uint32) {
	t, ok := d.Textures[texture]
	if !ok || t.Deleted {
		d.violate("DeleteTexture: no texture %d", texture)
		return
	}
	t.Deleted = true
	for unit, id := range d.Units {
		if id == texture {
			d.Units[unit] = 0
		}
	}
}

func (d *Device) GenVertexArray() uint32 {
	id := d.id()
	d.VertexArrays[id] = &VertexArray{Attribs: make(map[uint32]*Attrib)}
	return id
}

func (d *Device) BindVertexArray(vao uint32) {
	if vao != 0 {
		if v, ok := d.VertexArrays[vao]; !ok || v.Deleted {
			d.violate("BindVertexArray: no vertex array %d", vao)
			return
		}
	}
	d.VertexArray = vao
}

func (d *Device) DeleteVertexArray(vao uint32) {
	if v, ok := d.VertexArrays[vao]; ok && !v.Deleted {
		v.Deleted = true
		if d.VertexArray == vao {
			d.VertexArray = 0
		}
		return
	}
	d.violate("DeleteVertexArray: no vertex array %d", vao)
}

func (d *Device) GenBuffer() uint32 {
	id := d.id()
	d.Buffers[id] = &Buffer{}
	return id
}

func (d *Device) BindArrayBuffer(vbo uint32) {
	if vbo != 0 {
		if b, ok := d.Buffers[vbo]; !ok || b.Deleted {
			d.violate("BindArrayBuffer: no buffer %d", vbo)
			return
		}
	}
	d.ArrayBuffer = vbo
}

func (d *Device) ArrayBufferData(data []float32, usage graphics.BufferUsage) {
	if d.ArrayBuffer == 0 {
		d.violate("ArrayBufferData: no array buffer bound")
		return
	}
	b := d.Buffers[d.ArrayBuffer]
	b.Data = append([]float32(nil), data...)
	b.Usage = usage
	b.Uploads++
}

func (d *Device) DeleteBuffer(vbo uint32) {
	if b, ok := d.Buffers[vbo]; ok && !b.Deleted {
		b.Deleted = true
		if d.ArrayBuffer == vbo {
			d.ArrayBuffer = 0
		}
		return
	}
	d.violate("DeleteBuffer: no buffer %d", vbo)
}

func (d *Device) VertexAttribPointer(index uint32, size, stride, offset int32) {
	if d.VertexArray == 0 {
		d.violate("VertexAttribPointer: no vertex array bound")
		return
	}
	if int32(index) >= d.MaxAttribs {
		d.violate("VertexAttribPointer: index %d exceeds %d attributes", index, d.MaxAttribs)
		return
	}
	if d.ArrayBuffer == 0 {
		d.violate("VertexAttribPointer: no array buffer bound")
		return
	}
	attrs := d.VertexArrays[d.VertexArray].Attribs
	a, ok := attrs[index]
	if !ok {
		a = &Attrib{}
		attrs[index] = a
	}
	a.Size, a.Stride, a.Offset, a.Buffer = size, stride, offset, d.ArrayBuffer
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	if d.VertexArray == 0 {
		d.violate("EnableVertexAttribArray: no vertex array bound")
		return
	}
	attrs := d.VertexArrays[d.VertexArray].Attribs
	a, ok := attrs[index]
	if !ok {
		a = &Attrib{}
		attrs[index] = a
	}
	a.Enabled = true
}

func (d *Device) DrawTriangles(first, count int32) {
	if d.CurrentProgram == 0 {
		d.violate("DrawTriangles: no program in use")
		return
	}
	if d.VertexArray == 0 {
		d.violate("DrawTriangles: no vertex array bound")
		return
	}
	units := make(map[uint32]uint32, len(d.Units))
	for unit, id := range d.Units {
		if id != 0 {
			units[unit] = id
		}
	}
	d.Draws = append(d.Draws, Draw{
		Program:     d.CurrentProgram,
		VertexArray: d.VertexArray,
		First:       first,
		Count:       count,
		Units:       units,
		DepthTest:   d.DepthTest,
		Blending:    d.Blending,
		Mode:        d.PolygonMode,
	})
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.ViewportRect = [4]int32{x, y, width, height}
}

func (d *Device) ClearColor(r, g, b, a float32) { d.Color = [4]float32{r, g, b, a} }

func (d *Device) Clear() { d.Clears++ }

func (d *Device) SetDepthTest(enabled bool) { d.DepthTest = enabled }

func (d *Device) SetBlending(enabled bool) { d.Blending = enabled }

func (d *Device) SetPolygonMode(mode graphics.PolygonMode) { d.PolygonMode = mode }

func (d *Device) MaxVertexAttribs() int32 { return d.MaxAttribs }

// Live counts the shaders, programs and textures that have not been deleted.
func (d *Device) Live() (shaders, programs, textures int) {
	for _, s := range d.Shaders {
		if !s.Deleted {
			shaders++
		}
	}
	for _, p := range d.Programs {
		if !p.Deleted {
			programs++
		}
	}
	for _, t := range d.Textures {
		if !t.Deleted {
			textures++
		}
	}
	return shaders, programs, textures
}
