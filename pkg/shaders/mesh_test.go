package shaders_test

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/gokshader/internal/gltest"
	"github.com/kjkrol/gokshader/pkg/gfx"
		"github.com/kjkrol/gokshader/pkg/shaders"
)

func triangle() []shaders.Vertex {
	return []shaders.Vertex{
		{Position: [3]float32{0, 1, 0}, Color: color.RGBA{255, 0, 0, 255}},
		{Position: [3]float32{-1, -1, 0}, Color: color.RGBA{0, 255, 0, 255}},
		{Position: [3]float32{1, -1, 0}, Color: color.RGBA{0, 0, 255, 255}},
	}
}

func TestMesh_InterleavesPositionAndColor(t *testing.T) {
	m := shaders.NewMesh(triangle())

	require.Equal(t, 3, m.VertexCount())
	require.Len(t, m.Data(), 3*8)
	assert.InDeltaSlice(t, []float32{0, 1, 0, 1, 1, 0, 0, 1}, m.Data()[:8], 1e-6)
	assert.InDeltaSlice(t, []float32{1, -1, 0, 1, 0, 0, 1, 1}, m.Data()[16:], 1e-6)
}

func TestDraw_FeedsAttributesAndUniforms(t *testing.T) {
	ctx := gltest.NewContext()
	p, err := shaders.Basic(ctx)
	require.NoError(t, err)

	mesh := shaders.NewMesh(triangle())
	projection := mgl32.Ortho(-1, 1, -1, 1, -1, 1)
	transformation := mgl32.Translate3D(0.5, 0, 0)
	p.Draw(ctx, mesh, projection, transformation)

	require.Empty(t, ctx.Errors)
	require.Len(t, ctx.Draws, 1)
	draw := ctx.Draws[0]
	assert.Same(t, p.Program, draw.Program)
	assert.Equal(t, 0, draw.First)
	assert.Equal(t, 3, draw.Count)

	pos := draw.Pointers[p.VertexAttrib]
	assert.Equal(t, gltest.AttribPointer{Buffer: pos.Buffer, Size: 4, Stride: 8, Offset: 0}, pos)
	col := draw.Pointers[p.ColorAttrib]
	assert.Equal(t, gltest.AttribPointer{Buffer: pos.Buffer, Size: 4, Stride: 8, Offset: 4}, col)
	require.NotNil(t, pos.Buffer)
	assert.Equal(t, mesh.Data(), pos.Buffer.Data)

	assert.Equal(t, [16]float32(projection), draw.Uniforms[shaders.ProjectionMatrixUniform])
	assert.Equal(t, [16]float32(transformation), draw.Uniforms[shaders.TransformationMatrixUniform])
	// column-major: translation lives in the last column
	assert.Equal(t, float32(0.5), draw.Uniforms[shaders.TransformationMatrixUniform][12])
}

const projectionOnlyVertexSource = `attribute vec4 vertex_position;
attribute vec4 vertex_color;
varying lowp vec4 vert_color;
uniform mat4 projection_matrix;
void main( void ) {
   gl_Position = projection_matrix * vertex_position;
   vert_color = vertex_color;
}`

func TestDraw_SkipsUniformMissingFromProgram(t *testing.T) {
	ctx := gltest.NewContext()
	linker := gfx.LinkerFunc(func(c gfx.Context, _, fs string) (gfx.Program, error) {
		return gfx.ProgramLinker{}.Link(c, projectionOnlyVertexSource, fs)
	})
	p, err := shaders.BuildBasic(ctx, linker)
	require.NoError(t, err)
	require.NotNil(t, p.ProjectionMatrix)
	require.Nil(t, p.TransformationMatrix)

	p.Draw(ctx, shaders.NewMesh(triangle()), mgl32.Ortho2D(-1, 1, -1, 1), mgl32.Translate3D(1, 0, 0))

	assert.Empty(t, ctx.Errors)
	require.Len(t, ctx.Draws, 1)
	draw := ctx.Draws[0]
	assert.Contains(t, draw.Uniforms, shaders.ProjectionMatrixUniform)
	assert.NotContains(t, draw.Uniforms, shaders.TransformationMatrixUniform)
	assert.Equal(t, 1, countCalls(ctx.Calls, "uniformMatrix4fv"))
	assert.Equal(t, 3, draw.Count)
}

func TestDraw_UploadsOnceUntilChanged(t *testing.T) {
	ctx := gltest.NewContext()
	p, err := shaders.Basic(ctx)
	require.NoError(t, err)
	mesh := shaders.NewMesh(triangle())

	p.Draw(ctx, mesh, mgl32.Ident4(), mgl32.Ident4())
	p.Draw(ctx, mesh, mgl32.Ident4(), mgl32.Ident4())
	require.Len(t, ctx.Buffers, 1)
	assert.Equal(t, 1, countCalls(ctx.Calls, "bufferData 24"))

	mesh.Set(triangle()[:1])
	p.Draw(ctx, mesh, mgl32.Ident4(), mgl32.Ident4())
	assert.Equal(t, 1, countCalls(ctx.Calls, "bufferData 8"))
	assert.Len(t, ctx.Buffers, 1)
	assert.Len(t, ctx.Draws, 3)
	assert.Equal(t, 1, ctx.Draws[2].Count)
}

func TestDraw_EmptyMeshIsNoop(t *testing.T) {
	ctx := gltest.NewContext()
	p, err := shaders.Basic(ctx)
	require.NoError(t, err)

	p.Draw(ctx, shaders.NewMesh(nil), mgl32.Ident4(), mgl32.Ident4())
	p.Draw(ctx, nil, mgl32.Ident4(), mgl32.Ident4())
	assert.Empty(t, ctx.Draws)
	assert.Empty(t, ctx.Buffers)
}

func TestMesh_Release(t *testing.T) {
	ctx := gltest.NewContext()
	p, err := shaders.Basic(ctx)
	require.NoError(t, err)
	mesh := shaders.NewMesh(triangle())

	p.Draw(ctx, mesh, mgl32.Ident4(), mgl32.Ident4())
	mesh.Release(ctx)
	require.Len(t, ctx.Buffers, 1)
	assert.True(t, ctx.Buffers[0].Deleted)

	p.Draw(ctx, mesh, mgl32.Ident4(), mgl32.Ident4())
	assert.Len(t, ctx.Buffers, 2)
	assert.Empty(t, ctx.Errors)
}

func countCalls(calls []string, call string) int {
	n := 0
	for _, c := range calls {
		if c == call {
			n++
		}
	}
	return n
}
