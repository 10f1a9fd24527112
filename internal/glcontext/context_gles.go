//go:build !js

package glcontext

import (
	"image/color"
	"strings"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"github.com/kjkrol/gokshader/pkg/gfx"
)

// Context drives the GLES 2.0 context current on the calling OS thread.
// Handles are the raw GL object names (uint32) and uniform locations (int32).
type Context struct{}

func (c *Context) CompileShader(stage gfx.Stage, source string) (gfx.Shader, error) {
	shader := gl.CreateShader(shaderType(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return nil, &gfx.ShaderError{Stage: stage, Log: log}
	}
	return shader, nil
}

func (c *Context) LinkProgram(vertex, fragment gfx.Shader) (gfx.Program, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertex.(uint32))
	gl.AttachShader(program, fragment.(uint32))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return nil, &gfx.LinkError{Log: log}
	}
	return program, nil
}

func (c *Context) DeleteShader(s gfx.Shader) {
	if shader, ok := s.(uint32); ok {
		gl.DeleteShader(shader)
	}
}

func (c *Context) DeleteProgram(p gfx.Program) {
	if program, ok := p.(uint32); ok {
		gl.DeleteProgram(program)
	}
}

func (c *Context) UseProgram(p gfx.Program) {
	program, _ := p.(uint32)
	gl.UseProgram(program)
}

func (c *Context) AttribLocation(p gfx.Program, name string) int32 {
	return gl.GetAttribLocation(p.(uint32), gl.Str(name+"\x00"))
}

func (c *Context) UniformLocation(p gfx.Program, name string) gfx.UniformLocation {
	loc := gl.GetUniformLocation(p.(uint32), gl.Str(name+"\x00"))
	if loc < 0 {
		return nil
	}
	return loc
}

func (c *Context) EnableVertexAttribArray(index int32) {
	if index < 0 {
		return
	}
	gl.EnableVertexAttribArray(uint32(index))
}

func (c *Context) CreateBuffer() gfx.Buffer {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (c *Context) BindBuffer(b gfx.Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.(uint32))
}

func (c *Context) BufferData(b gfx.Buffer, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.(uint32))
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (c *Context) DeleteBuffer(b gfx.Buffer) {
	if buf, ok := b.(uint32); ok {
		gl.DeleteBuffers(1, &buf)
	}
}

func (c *Context) VertexAttribPointer(index int32, size, stride, offset int) {
	if index < 0 {
		return
	}
	gl.VertexAttribPointer(uint32(index), int32(size), gl.FLOAT, false, int32(stride*4), gl.PtrOffset(offset*4))
}

func (c *Context) UniformMatrix4fv(loc gfx.UniformLocation, m [16]float32) {
	location, ok := loc.(int32)
	if !ok {
		return
	}
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (c *Context) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (c *Context) Clear(col color.Color) {
	rgba := gfx.ColorToFloat(col)
	gl.ClearColor(rgba[0], rgba[1], rgba[2], rgba[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (c *Context) DrawTriangles(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

func shaderType(stage gfx.Stage) uint32 {
	if stage == gfx.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

var (
	_ gfx.Compiler    = (*Context)(nil)
	_ gfx.DrawContext = (*Context)(nil)
)
