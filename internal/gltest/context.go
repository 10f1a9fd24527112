// Package gltest provides an in-memory graphics context that records the
// state changes a real driver would apply. It understands just enough GLSL
// (declarations and main) to hand out attribute and uniform locations.
package gltest

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"

	"github.com/kjkrol/gokshader/pkg/gfx"
)

var (
	declPattern = regexp.MustCompile(`(?m)^\s*(attribute|uniform|varying)\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*;`)
	mainPattern = regexp.MustCompile(`void\s+main\s*\(\s*(void)?\s*\)`)
)

type Shader struct {
	ID         int
	Stage      gfx.Stage
	Source     string
	Deleted    bool
	attributes []string
	uniforms   []string
	varyings   []string
}

type Program struct {
	ID         int
	Deleted    bool
	attributes map[string]int32
	uniforms   map[string]*Uniform
}

type Uniform struct {
	Program  *Program
	Name     string
	Location int32
}

type Buffer struct {
	ID      int
	Data    []float32
	Deleted bool
}

// AttribPointer is the vertex layout recorded for one attribute index.
type AttribPointer struct {
	Buffer *Buffer
	Size   int
	Stride int
	Offset int
}

// Draw is a snapshot of the state seen by a DrawTriangles call.
type Draw struct {
	Program  *Program
	First    int
	Count    int
	Pointers map[int32]AttribPointer
	Uniforms map[string][16]float32
}

// Context implements gfx.Compiler and gfx.DrawContext.
type Context struct {
	nextID   int
	rejects  []string
	current  *Program
	enabled  map[int32]bool
	bound    *Buffer
	pointers map[int32]AttribPointer
	values   map[*Uniform][16]float32

	Shaders  []*Shader
	Programs []*Program
	Buffers  []*Buffer
	Draws    []Draw
	Calls    []string
	Errors   []string

	ViewportWidth  int
	ViewportHeight int
	ClearColor     color.Color
}

func NewContext() *Context {
	return &Context{
		enabled:  make(map[int32]bool),
		pointers: make(map[int32]AttribPointer),
		values:   make(map[*Uniform][16]float32),
	}
}

// Reject makes every later compile of a source containing text fail.
func (c *Context) Reject(text string) {
	c.rejects = append(c.rejects, text)
}

func (c *Context) CurrentProgram() gfx.Program {
	if c.current == nil {
		return nil
	}
	return c.current
}

func (c *Context) AttribArrayEnabled(index int32) bool {
	return c.enabled[index]
}

func (c *Context) UniformValue(loc gfx.UniformLocation) ([16]float32, bool) {
	u, ok := loc.(*Uniform)
	if !ok {
		return [16]float32{}, false
	}
	v, ok := c.values[u]
	return v, ok
}

func (c *Context) id() int {
	c.nextID++
	return c.nextID
}

func (c *Context) record(format string, args ...any) {
	c.Calls = append(c.Calls, fmt.Sprintf(format, args...))
}

func (c *Context) fail(format string, args ...any) {
	c.Errors = append(c.Errors, fmt.Sprintf(format, args...))
}

func (c *Context) CompileShader(stage gfx.Stage, source string) (gfx.Shader, error) {
	c.record("compileShader %s", stage)
	for _, r := range c.rejects {
		if strings.Contains(source, r) {
			return nil, &gfx.ShaderError{Stage: stage, Log: fmt.Sprintf("ERROR: 0:1: '%s' : rejected", r)}
		}
	}
	if !mainPattern.MatchString(source) {
		return nil, &gfx.ShaderError{Stage: stage, Log: "ERROR: 0:1: missing main function"}
	}

	shader := &Shader{ID: c.id(), Stage: stage, Source: source}
	for _, m := range declPattern.FindAllStringSubmatch(source, -1) {
		switch m[1] {
		case "attribute":
			if stage != gfx.VertexStage {
				return nil, &gfx.ShaderError{Stage: stage, Log: fmt.Sprintf("ERROR: 'attribute' : %s not allowed here", m[2])}
			}
			shader.attributes = append(shader.attributes, m[2])
		case "uniform":
			shader.uniforms = append(shader.uniforms, m[2])
		case "varying":
			shader.varyings = append(shader.varyings, m[2])
		}
	}
	c.Shaders = append(c.Shaders, shader)
	return shader, nil
}

func (c *Context) LinkProgram(vertex, fragment gfx.Shader) (gfx.Program, error) {
	c.record("linkProgram")
	vs, ok := vertex.(*Shader)
	if !ok || vs.Deleted || vs.Stage != gfx.VertexStage {
		return nil, &gfx.LinkError{Log: "missing vertex shader"}
	}
	fs, ok := fragment.(*Shader)
	if !ok || fs.Deleted || fs.Stage != gfx.FragmentStage {
		return nil, &gfx.LinkError{Log: "missing fragment shader"}
	}
	for _, name := range fs.varyings {
		if !contains(vs.varyings, name) {
			return nil, &gfx.LinkError{Log: fmt.Sprintf("varying %s not written by vertex shader", name)}
		}
	}

	program := &Program{
		ID:         c.id(),
		attributes: make(map[string]int32),
		uniforms:   make(map[string]*Uniform),
	}
	for i, name := range vs.attributes {
		program.attributes[name] = int32(i)
	}
	for _, name := range append(append([]string{}, vs.uniforms...), fs.uniforms...) {
		if _, ok := program.uniforms[name]; ok {
			continue
		}
		program.uniforms[name] = &Uniform{Program: program, Name: name, Location: int32(len(program.uniforms))}
	}
	c.Programs = append(c.Programs, program)
	return program, nil
}

func (c *Context) DeleteShader(s gfx.Shader) {
	c.record("deleteShader")
	if shader, ok := s.(*Shader); ok {
		shader.Deleted = true
	}
}

func (c *Context) DeleteProgram(p gfx.Program) {
	c.record("deleteProgram")
	if program, ok := p.(*Program); ok {
		program.Deleted = true
	}
}

func (c *Context) UseProgram(p gfx.Program) {
	c.record("useProgram")
	if p == nil {
		c.current = nil
		return
	}
	program, ok := p.(*Program)
	if !ok || program.Deleted {
		c.fail("useProgram: invalid program %v", p)
		return
	}
	c.current = program
}

func (c *Context) AttribLocation(p gfx.Program, name string) int32 {
	c.record("getAttribLocation %s", name)
	program, ok := p.(*Program)
	if !ok {
		c.fail("getAttribLocation: invalid program %v", p)
		return -1
	}
	index, ok := program.attributes[name]
	if !ok {
		return -1
	}
	return index
}

func (c *Context) UniformLocation(p gfx.Program, name string) gfx.UniformLocation {
	c.record("getUniformLocation %s", name)
	program, ok := p.(*Program)
	if !ok {
		c.fail("getUniformLocation: invalid program %v", p)
		return nil
	}
	u, ok := program.uniforms[name]
	if !ok {
		return nil
	}
	return u
}

func (c *Context) EnableVertexAttribArray(index int32) {
	c.record("enableVertexAttribArray %d", index)
	if index < 0 {
		c.fail("enableVertexAttribArray: invalid index %d", index)
		return
	}
	c.enabled[index] = true
}

func (c *Context) CreateBuffer() gfx.Buffer {
	c.record("createBuffer")
	buf := &Buffer{ID: c.id()}
	c.Buffers = append(c.Buffers, buf)
	return buf
}

func (c *Context) BindBuffer(b gfx.Buffer) {
	c.record("bindBuffer")
	buf, ok := b.(*Buffer)
	if !ok || buf.Deleted {
		c.fail("bindBuffer: invalid buffer %v", b)
		return
	}
	c.bound = buf
}

func (c *Context) BufferData(b gfx.Buffer, data []float32) {
	c.record("bufferData %d", len(data))
	buf, ok := b.(*Buffer)
	if !ok || buf.Deleted {
		c.fail("bufferData: invalid buffer %v", b)
		return
	}
	buf.Data = append(buf.Data[:0], data...)
	c.bound = buf
}

func (c *Context) DeleteBuffer(b gfx.Buffer) {
	c.record("deleteBuffer")
	if buf, ok := b.(*Buffer); ok {
		buf.Deleted = true
		if c.bound == buf {
			c.bound = nil
		}
	}
}

func (c *Context) VertexAttribPointer(index int32, size, stride, offset int) {
	c.record("vertexAttribPointer %d", index)
	if index < 0 || c.bound == nil {
		c.fail("vertexAttribPointer: index %d with no bound buffer", index)
		return
	}
	c.pointers[index] = AttribPointer{Buffer: c.bound, Size: size, Stride: stride, Offset: offset}
}

func (c *Context) UniformMatrix4fv(loc gfx.UniformLocation, m [16]float32) {
	c.record("uniformMatrix4fv")
	if loc == nil {
		return
	}
	u, ok := loc.(*Uniform)
	if !ok || u.Program != c.current {
		c.fail("uniformMatrix4fv: location %v does not belong to the current program", loc)
		return
	}
	c.values[u] = m
}

func (c *Context) Viewport(width, height int) {
	c.record("viewport")
	c.ViewportWidth = width
	c.ViewportHeight = height
}

func (c *Context) Clear(col color.Color) {
	c.record("clear")
	c.ClearColor = col
}

func (c *Context) DrawTriangles(first, count int) {
	c.record("drawTriangles %d %d", first, count)
	if c.current == nil {
		c.fail("drawTriangles: no program bound")
		return
	}
	draw := Draw{
		Program:  c.current,
		First:    first,
		Count:    count,
		Pointers: make(map[int32]AttribPointer),
		Uniforms: make(map[string][16]float32),
	}
	for index, ptr := range c.pointers {
		if c.enabled[index] {
			draw.Pointers[index] = ptr
		}
	}
	for u, v := range c.values {
		if u.Program == c.current {
			draw.Uniforms[u.Name] = v
		}
	}
	c.Draws = append(c.Draws, draw)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

var (
	_ gfx.Compiler    = (*Context)(nil)
	_ gfx.DrawContext = (*Context)(nil)
)
