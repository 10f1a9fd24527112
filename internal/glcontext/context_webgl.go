//go:build js && wasm

package glcontext

import (
	"image/color"
	"syscall/js"

	"github.com/kjkrol/gokshader/pkg/gfx"
)

// Context drives a WebGL rendering context. Handles are js.Value objects.
type Context struct {
	gl     js.Value
	consts glConsts
}

type glConsts struct {
	arrayBuffer    int
	staticDraw     int
	floatType      int
	triangles      int
	colorBufferBit int
	compileStatus  int
	linkStatus     int
	vertexShader   int
	fragmentShader int
}

func newContext(gl js.Value) *Context {
	c := &Context{gl: gl}
	c.consts = glConsts{
		arrayBuffer:    gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:     gl.Get("STATIC_DRAW").Int(),
		floatType:      gl.Get("FLOAT").Int(),
		triangles:      gl.Get("TRIANGLES").Int(),
		colorBufferBit: gl.Get("COLOR_BUFFER_BIT").Int(),
		compileStatus:  gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     gl.Get("LINK_STATUS").Int(),
		vertexShader:   gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: gl.Get("FRAGMENT_SHADER").Int(),
	}
	return c
}

func (c *Context) CompileShader(stage gfx.Stage, source string) (gfx.Shader, error) {
	shaderType := c.consts.vertexShader
	if stage == gfx.FragmentStage {
		shaderType = c.consts.fragmentShader
	}
	shader := c.gl.Call("createShader", shaderType)
	c.gl.Call("shaderSource", shader, source)
	c.gl.Call("compileShader", shader)
	if !c.gl.Call("getShaderParameter", shader, c.consts.compileStatus).Truthy() {
		log := c.gl.Call("getShaderInfoLog", shader).String()
		c.gl.Call("deleteShader", shader)
		return nil, &gfx.ShaderError{Stage: stage, Log: log}
	}
	return shader, nil
}

func (c *Context) LinkProgram(vertex, fragment gfx.Shader) (gfx.Program, error) {
	program := c.gl.Call("createProgram")
	c.gl.Call("attachShader", program, vertex.(js.Value))
	c.gl.Call("attachShader", program, fragment.(js.Value))
	c.gl.Call("linkProgram", program)

	if !c.gl.Call("getProgramParameter", program, c.consts.linkStatus).Truthy() {
		log := c.gl.Call("getProgramInfoLog", program).String()
		c.gl.Call("deleteProgram", program)
		return nil, &gfx.LinkError{Log: log}
	}
	return program, nil
}

func (c *Context) DeleteShader(s gfx.Shader) {
	if shader, ok := s.(js.Value); ok && shader.Truthy() {
		c.gl.Call("deleteShader", shader)
	}
}

func (c *Context) DeleteProgram(p gfx.Program) {
	if program, ok := p.(js.Value); ok && program.Truthy() {
		c.gl.Call("deleteProgram", program)
	}
}

func (c *Context) UseProgram(p gfx.Program) {
	program, ok := p.(js.Value)
	if !ok {
		program = js.Null()
	}
	c.gl.Call("useProgram", program)
}

func (c *Context) AttribLocation(p gfx.Program, name string) int32 {
	return int32(c.gl.Call("getAttribLocation", p.(js.Value), name).Int())
}

func (c *Context) UniformLocation(p gfx.Program, name string) gfx.UniformLocation {
	loc := c.gl.Call("getUniformLocation", p.(js.Value), name)
	if loc.IsNull() || loc.IsUndefined() {
		return nil
	}
	return loc
}

func (c *Context) EnableVertexAttribArray(index int32) {
	if index < 0 {
		return
	}
	c.gl.Call("enableVertexAttribArray", index)
}

func (c *Context) CreateBuffer() gfx.Buffer {
	return c.gl.Call("createBuffer")
}

func (c *Context) BindBuffer(b gfx.Buffer) {
	c.gl.Call("bindBuffer", c.consts.arrayBuffer, b.(js.Value))
}

func (c *Context) BufferData(b gfx.Buffer, data []float32) {
	c.gl.Call("bindBuffer", c.consts.arrayBuffer, b.(js.Value))
	c.gl.Call("bufferData", c.consts.arrayBuffer, float32Array(data), c.consts.staticDraw)
}

func (c *Context) DeleteBuffer(b gfx.Buffer) {
	if buf, ok := b.(js.Value); ok && buf.Truthy() {
		c.gl.Call("deleteBuffer", buf)
	}
}

func (c *Context) VertexAttribPointer(index int32, size, stride, offset int) {
	if index < 0 {
		return
	}
	c.gl.Call("vertexAttribPointer", index, size, c.consts.floatType, false, stride*4, offset*4)
}

func (c *Context) UniformMatrix4fv(loc gfx.UniformLocation, m [16]float32) {
	location, ok := loc.(js.Value)
	if !ok {
		return
	}
	c.gl.Call("uniformMatrix4fv", location, false, float32Array(m[:]))
}

func (c *Context) Viewport(width, height int) {
	c.gl.Call("viewport", 0, 0, width, height)
}

func (c *Context) Clear(col color.Color) {
	rgba := gfx.ColorToFloat(col)
	c.gl.Call("clearColor", rgba[0], rgba[1], rgba[2], rgba[3])
	c.gl.Call("clear", c.consts.colorBufferBit)
}

func (c *Context) DrawTriangles(first, count int) {
	c.gl.Call("drawArrays", c.consts.triangles, first, count)
}

var (
	_ gfx.Compiler    = (*Context)(nil)
	_ gfx.DrawContext = (*Context)(nil)
)
