package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/revenant/graphics"
)

// LinkError reports a program that could not be linked.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", strings.TrimSpace(e.Log))
}

// Program is a linked vertex+fragment pipeline. Uniform locations are looked
// up lazily and cached per program, misses included.
type Program struct {
	device    graphics.Device
	id        uint32
	locations map[string]int32
	resolve   func(string) string
}

// Link links vertex and fragment into a new program. Both shaders are
// consumed whether or not linking succeeds.
func Link(dev graphics.Device, vertex, fragment *Shader) (*Program, error) {
	defer vertex.Destroy()
	defer fragment.Destroy()

	if vertex == nil || fragment == nil {
		return nil, &LinkError{Log: "missing vertex or fragment shader"}
	}
	if vertex.stage != graphics.StageVertex || fragment.stage != graphics.StageFragment {
		return nil, &LinkError{Log: fmt.Sprintf("expected vertex and fragment stages, got %s and %s", vertex.stage, fragment.stage)}
	}

	id := dev.CreateProgram()
	dev.AttachShader(id, vertex.id)
	dev.AttachShader(id, fragment.id)
	dev.LinkProgram(id)

	if !dev.ProgramLinked(id) {
		logText := dev.ProgramInfoLog(id)
		dev.DeleteProgram(id)
		return nil, &LinkError{Log: logText}
	}

	return &Program{
		device:    dev,
		id:        id,
		locations: make(map[string]int32),
	}, nil
}

// NewProgram compiles both stages and links them.
func NewProgram(dev graphics.Device, vertexSource, fragmentSource string) (*Program, error) {
	vertex, err := Compile(dev, vertexSource, graphics.StageVertex)
	if err != nil {
		return nil, err
	}
	fragment, err := Compile(dev, fragmentSource, graphics.StageFragment)
	if err != nil {
		vertex.Destroy()
		return nil, err
	}
	return Link(dev, vertex, fragment)
}

// ID returns the program handle, 0 after Destroy.
func (p *Program) ID() uint32 { return p.id }

// Use makes p the current program. Uniform uploads and draws that should
// target p must follow it.
func (p *Program) Use() {
	p.device.UseProgram(p.id)
}

// MapUniformNames installs fn to translate source-level uniform names into
// the names the linked program actually exposes.
func (p *Program) MapUniformNames(fn func(string) string) {
	p.resolve = fn
	p.locations = make(map[string]int32)
}

// Location returns the cached location of name, or -1 when name is not an
// active uniform.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	if p.id == 0 {
		return -1
	}
	mapped := name
	if p.resolve != nil {
		mapped = p.resolve(name)
	}
	loc := p.device.UniformLocation(p.id, mapped)
	p.locations[name] = loc
	return loc
}

// SetFloat uploads a float uniform. Inactive names are ignored.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Location(name); loc != -1 {
		p.device.Uniform1f(loc, v)
	}
}

// SetInt uploads an int (or sampler) uniform.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.Location(name); loc != -1 {
		p.device.Uniform1i(loc, v)
	}
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.Location(name); loc != -1 {
		p.device.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.Location(name); loc != -1 {
		a := [16]float32(m)
		p.device.UniformMatrix4fv(loc, &a)
	}
}

// Destroy deletes the program and forgets every cached location.
func (p *Program) Destroy() {
	if p == nil || p.id == 0 {
		return
	}
	p.device.DeleteProgram(p.id)
	p.id = 0
	p.locations = make(map[string]int32)
}
