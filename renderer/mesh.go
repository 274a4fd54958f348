package renderer

import (
	"fmt"

	"github.com/richinsley/revenant/graphics"
)

// Attribute is one float vector in an interleaved vertex.
type Attribute struct {
	Index uint32
	Size  int32
}

// Mesh is a vertex array over one interleaved float buffer, drawn as
// triangles.
type Mesh struct {
	device graphics.Device
	vao    uint32
	vbo    uint32
	stride int32
	count  int32
}

// NewMesh uploads vertices and describes attrs, in order, as the layout of
// each vertex.
func NewMesh(dev graphics.Device, vertices []float32, attrs []Attribute, usage graphics.BufferUsage) (*Mesh, error) {
	maxAttribs := dev.MaxVertexAttribs()
	var stride int32
	for _, a := range attrs {
		if int32(a.Index) >= maxAttribs {
			return nil, fmt.Errorf("vertex attribute %d exceeds the %d supported by the driver", a.Index, maxAttribs)
		}
		if a.Size < 1 || a.Size > 4 {
			return nil, fmt.Errorf("vertex attribute %d has invalid size %d", a.Index, a.Size)
		}
		stride += a.Size
	}
	if stride == 0 {
		return nil, fmt.Errorf("mesh has no vertex attributes")
	}
	if len(vertices)%int(stride) != 0 {
		return nil, fmt.Errorf("%d floats is not a whole number of %d-float vertices", len(vertices), stride)
	}

	m := &Mesh{
		device: dev,
		vao:    dev.GenVertexArray(),
		vbo:    dev.GenBuffer(),
		stride: stride,
		count:  int32(len(vertices)) / stride,
	}
	dev.BindVertexArray(m.vao)
	dev.BindArrayBuffer(m.vbo)
	dev.ArrayBufferData(vertices, usage)

	var offset int32
	for _, a := range attrs {
		dev.VertexAttribPointer(a.Index, a.Size, stride, offset)
		dev.EnableVertexAttribArray(a.Index)
		offset += a.Size
	}
	dev.BindArrayBuffer(0)
	dev.BindVertexArray(0)
	return m, nil
}

// Update replaces the vertex data, keeping the layout.
func (m *Mesh) Update(vertices []float32) {
	m.device.BindArrayBuffer(m.vbo)
	m.device.ArrayBufferData(vertices, graphics.DynamicDraw)
	m.device.BindArrayBuffer(0)
	m.count = int32(len(vertices)) / m.stride
}

func (m *Mesh) Count() int32 { return m.count }

// Draw draws every vertex with the current program.
func (m *Mesh) Draw() {
	m.device.BindVertexArray(m.vao)
	m.device.DrawTriangles(0, m.count)
}

func (m *Mesh) Destroy() {
	if m == nil || m.vao == 0 {
		return
	}
	m.device.DeleteVertexArray(m.vao)
	m.device.DeleteBuffer(m.vbo)
	m.vao, m.vbo = 0, 0
}

// cubeLayout is position, normal, texture coordinate.
var cubeLayout = []Attribute{{0, 3}, {1, 3}, {2, 2}}

// cubeVertices is a unit cube centred on the origin, 36 vertices.
var cubeVertices = []float32{
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	0.5, -0.5, -0.5, 0, 0, -1, 1, 0,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	-0.5, 0.5, -0.5, 0, 0, -1, 0, 1,
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,

	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	0.5, -0.5, 0.5, 0, 0, 1, 1, 0,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	-0.5, 0.5, 0.5, 0, 0, 1, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,

	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	-0.5, 0.5, -0.5, -1, 0, 0, 1, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, 0.5, -1, 0, 0, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,

	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	0.5, 0.5, -0.5, 1, 0, 0, 1, 1,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, -0.5, 0.5, 1, 0, 0, 0, 0,
	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,

	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
	0.5, -0.5, -0.5, 0, -1, 0, 1, 1,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0, 0, 0,
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,

	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
	0.5, 0.5, -0.5, 0, 1, 0, 1, 1,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	-0.5, 0.5, 0.5, 0, 1, 0, 0, 0,
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
}
