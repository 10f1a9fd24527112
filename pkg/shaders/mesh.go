package shaders

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/kjkrol/gokshader/pkg/gfx"
)

const (
	positionComponents = 4
	colorComponents    = 4
	floatsPerVertex    = positionComponents + colorComponents
)

// Vertex is one corner of a triangle: a model-space position and its color.
type Vertex struct {
	Position [3]float32
	Color    color.Color
}

// Mesh is a triangle list interleaved as (x, y, z, 1, r, g, b, a) per vertex.
// Its buffer is created on the first Draw and kept until Release.
type Mesh struct {
	data   []float32
	count  int
	buffer gfx.Buffer
	dirty  bool
}

// NewMesh returns a mesh holding vertices; nothing is uploaded until Draw.
func NewMesh(vertices []Vertex) *Mesh {
	m := &Mesh{}
	m.Set(vertices)
	return m
}

// Set replaces the vertex data. The upload happens on the next Draw.
func (m *Mesh) Set(vertices []Vertex) {
	data := make([]float32, 0, len(vertices)*floatsPerVertex)
	for _, v := range vertices {
		c := gfx.ColorToFloat(v.Color)
		data = append(data,
			v.Position[0], v.Position[1], v.Position[2], 1,
			c[0], c[1], c[2], c[3],
		)
	}
	m.data = data
	m.count = len(vertices)
	m.dirty = true
}

func (m *Mesh) VertexCount() int {
	return m.count
}

// Data returns the interleaved vertex data.
func (m *Mesh) Data() []float32 {
	return m.data
}

func (m *Mesh) Release(ctx gfx.DrawContext) {
	if m.buffer == nil {
		return
	}
	ctx.DeleteBuffer(m.buffer)
	m.buffer = nil
	m.dirty = true
}

// Draw renders mesh with p bound as the current program. Uniforms the
// program does not expose (nil locations) and attributes with a negative
// index are skipped.
func (p *BasicProgram) Draw(ctx gfx.DrawContext, mesh *Mesh, projection, transformation mgl32.Mat4) {
	if mesh == nil || mesh.count == 0 {
		return
	}
	ctx.UseProgram(p.Program)

	if mesh.buffer == nil {
		mesh.buffer = ctx.CreateBuffer()
		mesh.dirty = true
	}
	if mesh.dirty {
		ctx.BufferData(mesh.buffer, mesh.data)
		mesh.dirty = false
	} else {
		ctx.BindBuffer(mesh.buffer)
	}

	if p.VertexAttrib >= 0 {
		ctx.VertexAttribPointer(p.VertexAttrib, positionComponents, floatsPerVertex, 0)
	}
	if p.ColorAttrib >= 0 {
		ctx.VertexAttribPointer(p.ColorAttrib, colorComponents, floatsPerVertex, positionComponents)
	}
	if p.ProjectionMatrix != nil {
		ctx.UniformMatrix4fv(p.ProjectionMatrix, [16]float32(projection))
	}
	if p.TransformationMatrix != nil {
		ctx.UniformMatrix4fv(p.TransformationMatrix, [16]float32(transformation))
	}
	ctx.DrawTriangles(0, mesh.count)
}
