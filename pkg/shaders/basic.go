// Package shaders builds the GLSL programs used by the renderer.
package shaders

import "github.com/kjkrol/gokshader/pkg/gfx"

// Attribute and uniform names shared by BasicVertexSource and BasicProgram.
const (
	VertexPositionAttrib        = "vertex_position"
	VertexColorAttrib           = "vertex_color"
	ProjectionMatrixUniform     = "projection_matrix"
	TransformationMatrixUniform = "transformation_matrix"
)

// BasicVertexSource transforms vertex_position by projection * transformation
// and forwards vertex_color to the fragment stage. The flip matrix is not
// applied to gl_Position.
const BasicVertexSource = `attribute vec4 vertex_position;
attribute vec4 vertex_color;
varying lowp vec4 vert_color;
uniform mat4 projection_matrix;
uniform mat4 transformation_matrix;
void main( void ) {
   mat4 flip = mat4(mat2(1., 0., 0., -1.));
   gl_Position = projection_matrix * transformation_matrix * vertex_position;
   vert_color = vertex_color;
}`

// BasicFragmentSource writes the interpolated vertex color unchanged.
const BasicFragmentSource = `varying lowp vec4 vert_color;
void main( void ) {
   gl_FragColor = vert_color;
}`

// BasicProgram is a linked basic program with its cached input locations.
type BasicProgram struct {
	Program gfx.Program

	VertexAttrib int32
	ColorAttrib  int32

	ProjectionMatrix     gfx.UniformLocation
	TransformationMatrix gfx.UniformLocation
}

// Basic builds the basic program with the default ProgramLinker.
func Basic(ctx gfx.Context) (*BasicProgram, error) {
	return BuildBasic(ctx, gfx.ProgramLinker{})
}

// BuildBasic links the basic program through linker, makes it the current
// program of ctx and enables both of its vertex attribute arrays.
// Linker errors are returned as is and no partial program is returned.
func BuildBasic(ctx gfx.Context, linker gfx.Linker) (*BasicProgram, error) {
	program, err := linker.Link(ctx, BasicVertexSource, BasicFragmentSource)
	if err != nil {
		return nil, err
	}

	ctx.UseProgram(program)
	p := &BasicProgram{
		Program:              program,
		VertexAttrib:         ctx.AttribLocation(program, VertexPositionAttrib),
		ColorAttrib:          ctx.AttribLocation(program, VertexColorAttrib),
		ProjectionMatrix:     ctx.UniformLocation(program, ProjectionMatrixUniform),
		TransformationMatrix: ctx.UniformLocation(program, TransformationMatrixUniform),
	}
	ctx.EnableVertexAttribArray(p.VertexAttrib)
	ctx.EnableVertexAttribArray(p.ColorAttrib)

	return p, nil
}
