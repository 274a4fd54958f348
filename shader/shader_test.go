package shader

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/revenant/graphics"
	"github.com/richinsley/revenant/simgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertex = `#version 300 es
layout (location = 0) in vec3 in_pos;
uniform mat4 model;
uniform mat4 view;
void main() { gl_Position = view * model * vec4(in_pos, 1.0); }
`

const testFragment = `#version 300 es
precision mediump float;
out vec4 frag_color;
uniform vec3 tint;
uniform float strength;
uniform int mode;
void main() { frag_color = vec4(tint * strength, 1.0); }
`

func TestCompile(t *testing.T) {
	dev := simgpu.New()
	s, err := Compile(dev, testVertex, graphics.StageVertex)
	require.NoError(t, err)
	assert.Equal(t, graphics.StageVertex, s.Stage())

	shaders, _, _ := dev.Live()
	assert.Equal(t, 1, shaders)

	s.Destroy()
	s.Destroy()
	shaders, _, _ = dev.Live()
	assert.Equal(t, 0, shaders)
	assert.Empty(t, dev.Violations)
}

func TestCompileError(t *testing.T) {
	dev := simgpu.New()
	src := "#version 300 es\n#error missing semicolon\nvoid main() {}\n"
	s, err := Compile(dev, src, graphics.StageFragment)
	assert.Nil(t, s)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, graphics.StageFragment, ce.Stage)
	assert.Equal(t, "ERROR: 0:2: '#error' : missing semicolon", ce.Log)
	assert.Contains(t, err.Error(), "fragment")

	shaders, _, _ := dev.Live()
	assert.Equal(t, 0, shaders, "failed shader must be deleted")
}

func TestLinkConsumesShaders(t *testing.T) {
	dev := simgpu.New()
	p, err := NewProgram(dev, testVertex, testFragment)
	require.NoError(t, err)
	defer p.Destroy()

	shaders, programs, _ := dev.Live()
	assert.Equal(t, 0, shaders)
	assert.Equal(t, 1, programs)
	assert.NotZero(t, p.ID())
}

func TestLinkError(t *testing.T) {
	dev := simgpu.New()
	dev.LinkFailure = "error: varying frag_uv not written by vertex shader"

	p, err := NewProgram(dev, testVertex, testFragment)
	assert.Nil(t, p)
	var le *LinkError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, dev.LinkFailure, le.Log)

	shaders, programs, _ := dev.Live()
	assert.Equal(t, 0, shaders, "shaders are consumed on failure too")
	assert.Equal(t, 0, programs, "no partially linked program survives")
}

func TestLinkMissingShader(t *testing.T) {
	dev := simgpu.New()
	vs, err := Compile(dev, testVertex, graphics.StageVertex)
	require.NoError(t, err)

	var le *LinkError
	_, err = Link(dev, vs, nil)
	require.True(t, errors.As(err, &le))
	assert.Contains(t, le.Log, "missing")

	_, err = Link(dev, nil, nil)
	require.True(t, errors.As(err, &le))

	shaders, programs, _ := dev.Live()
	assert.Equal(t, 0, shaders, "the shader that was passed is still consumed")
	assert.Equal(t, 0, programs)
}

func TestLinkStageMismatch(t *testing.T) {
	dev := simgpu.New()
	a, err := Compile(dev, testFragment, graphics.StageFragment)
	require.NoError(t, err)
	b, err := Compile(dev, testFragment, graphics.StageFragment)
	require.NoError(t, err)

	_, err = Link(dev, a, b)
	var le *LinkError
	require.True(t, errors.As(err, &le))

	shaders, programs, _ := dev.Live()
	assert.Equal(t, 0, shaders)
	assert.Equal(t, 0, programs)
}

func TestNewProgramFragmentFailureReleasesVertex(t *testing.T) {
	dev := simgpu.New()
	_, err := NewProgram(dev, testVertex, "")
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, graphics.StageFragment, ce.Stage)

	shaders, programs, _ := dev.Live()
	assert.Equal(t, 0, shaders)
	assert.Equal(t, 0, programs)
}

func TestUniforms(t *testing.T) {
	dev := simgpu.New()
	p, err := NewProgram(dev, testVertex, testFragment)
	require.NoError(t, err)
	p.Use()

	model := mgl32.Translate3D(1, 2, 3)
	p.SetMat4("model", model)
	p.SetVec3("tint", mgl32.Vec3{0.5, 0.25, 1})
	p.SetFloat("strength", 2)
	p.SetInt("mode", 3)

	v, ok := dev.Uniform(p.ID(), "model")
	require.True(t, ok)
	assert.Equal(t, [16]float32(model), v)
	v, _ = dev.Uniform(p.ID(), "tint")
	assert.Equal(t, [3]float32{0.5, 0.25, 1}, v)
	v, _ = dev.Uniform(p.ID(), "strength")
	assert.Equal(t, float32(2), v)
	v, _ = dev.Uniform(p.ID(), "mode")
	assert.Equal(t, int32(3), v)
	assert.Empty(t, dev.Violations)
}

func TestUnknownUniformIsIgnored(t *testing.T) {
	dev := simgpu.New()
	p, err := NewProgram(dev, testVertex, testFragment)
	require.NoError(t, err)
	p.Use()

	p.SetFloat("strength", 1.5)
	p.SetFloat("does_not_exist", 9)
	p.SetVec3("also.missing", mgl32.Vec3{1, 1, 1})
	p.SetMat4("nope", mgl32.Ident4())

	v, _ := dev.Uniform(p.ID(), "strength")
	assert.Equal(t, float32(1.5), v)
	_, ok := dev.Uniform(p.ID(), "tint")
	assert.False(t, ok, "untouched uniform stays unset")
	assert.Equal(t, int32(-1), p.Location("does_not_exist"))
	assert.Empty(t, dev.Violations)
}

// countingDevice counts location queries reaching the driver.
type countingDevice struct {
	*simgpu.Device
	lookups int
}

func (d *countingDevice) UniformLocation(program uint32, name string) int32 {
	d.lookups++
	return d.Device.UniformLocation(program, name)
}

func TestLocationCache(t *testing.T) {
	dev := &countingDevice{Device: simgpu.New()}
	p, err := NewProgram(dev, testVertex, testFragment)
	require.NoError(t, err)
	p.Use()

	for i := 0; i < 5; i++ {
		p.SetFloat("strength", float32(i))
		p.SetFloat("missing", float32(i))
	}
	assert.Equal(t, 2, dev.lookups, "hits and misses are both cached")

	p.Destroy()
	assert.Equal(t, int32(-1), p.Location("strength"))
	assert.Zero(t, p.ID())
	assert.Equal(t, 2, dev.lookups, "destroyed program does not query the driver")
}

func TestMapUniformNames(t *testing.T) {
	dev := simgpu.New()
	p, err := NewProgram(dev, testVertex, testFragment)
	require.NoError(t, err)
	p.Use()

	assert.Equal(t, int32(-1), p.Location("_ustrength"))
	p.MapUniformNames(func(name string) string {
		if name == "_ustrength" {
			return "strength"
		}
		return name
	})
	p.SetFloat("_ustrength", 4)
	v, _ := dev.Uniform(p.ID(), "strength")
	assert.Equal(t, float32(4), v)
}

func TestUniformWithoutUseIsAViolation(t *testing.T) {
	dev := simgpu.New()
	p, err := NewProgram(dev, testVertex, testFragment)
	require.NoError(t, err)

	p.SetFloat("strength", 1)
	assert.Len(t, dev.Violations, 1)
	_, ok := dev.Uniform(p.ID(), "strength")
	assert.False(t, ok)
}

func TestBuiltinSourcesLink(t *testing.T) {
	dev := simgpu.New()
	for _, pair := range [][2]string{
		{ObjectVertex, ObjectFragment},
		{LampVertex, LampFragment},
		{TextVertex, TextFragment},
	} {
		p, err := NewProgram(dev, pair[0], pair[1])
		require.NoError(t, err)
		p.Destroy()
	}

	p, err := NewProgram(dev, ObjectVertex, ObjectFragment)
	require.NoError(t, err)
	assert.NotEqual(t, int32(-1), p.Location("light.light.quadratic"))
	assert.NotEqual(t, int32(-1), p.Location("material.specular_map"))
}
