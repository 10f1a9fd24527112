package gfx

import "image/color"

// Program is a linked GPU program owned by the driver.
type Program any

// Shader is a compiled, not yet linked, shader object.
type Shader any

// Buffer is a vertex buffer object.
type Buffer any

// UniformLocation identifies a uniform of a linked program.
// A nil location means the program has no active uniform of that name.
type UniformLocation any

// Context is the immediate-mode state a shader program is bound to.
// Calls mutate global context state and must run on the thread owning it.
type Context interface {
	UseProgram(p Program)
	AttribLocation(p Program, name string) int32
	UniformLocation(p Program, name string) UniformLocation
	EnableVertexAttribArray(index int32)
}

// Compiler is a Context able to turn GLSL source into programs.
type Compiler interface {
	Context
	CompileShader(stage Stage, source string) (Shader, error)
	LinkProgram(vertex, fragment Shader) (Program, error)
	DeleteShader(s Shader)
	DeleteProgram(p Program)
}

// DrawContext is a Context that can feed vertex data to a bound program.
type DrawContext interface {
	Context
	CreateBuffer() Buffer
	BindBuffer(buf Buffer)
	// BufferData binds buf and replaces its contents.
	BufferData(buf Buffer, data []float32)
	DeleteBuffer(buf Buffer)
	// VertexAttribPointer describes float attribute data in the bound buffer.
	// size is in components, stride and offset in floats.
	VertexAttribPointer(index int32, size, stride, offset int)
	UniformMatrix4fv(loc UniformLocation, m [16]float32)
	Viewport(width, height int)
	Clear(c color.Color)
	DrawTriangles(first, count int)
}

// Stage selects the pipeline stage a shader source is compiled for.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// ColorToFloat converts c to normalized RGBA components.
func ColorToFloat(c color.Color) [4]float32 {
	if c == nil {
		return [4]float32{}
	}
	r, g, b, a := c.RGBA()
	const inv = 1.0 / 65535.0
	return [4]float32{
		float32(r) * inv,
		float32(g) * inv,
		float32(b) * inv,
		float32(a) * inv,
	}
}
