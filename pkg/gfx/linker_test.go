package gfx_test

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/gokshader/internal/gltest"
	"github.com/kjkrol/gokshader/pkg/gfx"
)

const (
	vertexSource = `attribute vec4 position;
varying lowp vec4 tint;
uniform mat4 mvp;
void main( void ) {
   gl_Position = mvp * position;
   tint = position;
}`
	fragmentSource = `varying lowp vec4 tint;
void main( void ) {
   gl_FragColor = tint;
}`
)

func TestProgramLinker_LinksAndReleasesShaders(t *testing.T) {
	ctx := gltest.NewContext()

	program, err := gfx.ProgramLinker{}.Link(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)
	require.NotNil(t, program)

	require.Len(t, ctx.Shaders, 2)
	for _, s := range ctx.Shaders {
		assert.True(t, s.Deleted, "shader %d should be released after link", s.ID)
	}
	assert.Equal(t, int32(0), ctx.AttribLocation(program, "position"))
	assert.NotNil(t, ctx.UniformLocation(program, "mvp"))
}

func TestProgramLinker_VertexCompileError(t *testing.T) {
	ctx := gltest.NewContext()
	ctx.Reject("gl_Position")

	program, err := gfx.ProgramLinker{}.Link(ctx, vertexSource, fragmentSource)
	require.Error(t, err)
	assert.Nil(t, program)

	var shaderErr *gfx.ShaderError
	require.True(t, errors.As(err, &shaderErr))
	assert.Equal(t, gfx.VertexStage, shaderErr.Stage)
	assert.Contains(t, err.Error(), "compile error (vertex)")
	assert.Empty(t, ctx.Programs)
}

func TestProgramLinker_FragmentCompileErrorReleasesVertexShader(t *testing.T) {
	ctx := gltest.NewContext()
	ctx.Reject("gl_FragColor")

	_, err := gfx.ProgramLinker{}.Link(ctx, vertexSource, fragmentSource)

	var shaderErr *gfx.ShaderError
	require.True(t, errors.As(err, &shaderErr))
	assert.Equal(t, gfx.FragmentStage, shaderErr.Stage)
	require.Len(t, ctx.Shaders, 1)
	assert.True(t, ctx.Shaders[0].Deleted)
}

func TestProgramLinker_LinkError(t *testing.T) {
	ctx := gltest.NewContext()
	fragment := `varying lowp vec4 shade;
void main( void ) {
   gl_FragColor = shade;
}`

	_, err := gfx.ProgramLinker{}.Link(ctx, vertexSource, fragment)

	var linkErr *gfx.LinkError
	require.True(t, errors.As(err, &linkErr))
	assert.Contains(t, linkErr.Log, "shade")
	for _, s := range ctx.Shaders {
		assert.True(t, s.Deleted)
	}
}

type stateOnly struct{ gfx.Context }

func TestProgramLinker_RequiresCompiler(t *testing.T) {
	_, err := gfx.ProgramLinker{}.Link(stateOnly{gltest.NewContext()}, vertexSource, fragmentSource)
	assert.ErrorIs(t, err, gfx.ErrNoCompiler)
}

func TestLinkerFunc(t *testing.T) {
	called := false
	var linker gfx.Linker = gfx.LinkerFunc(func(ctx gfx.Context, vs, fs string) (gfx.Program, error) {
		called = true
		assert.Equal(t, vertexSource, vs)
		assert.Equal(t, fragmentSource, fs)
		return "program", nil
	})

	program, err := linker.Link(nil, vertexSource, fragmentSource)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "program", program)
}

func TestShaderErrorTrimsDriverLog(t *testing.T) {
	err := &gfx.ShaderError{Stage: gfx.FragmentStage, Log: "ERROR: 0:3: bad token\n\x00\x00"}
	assert.Equal(t, "compile error (fragment): ERROR: 0:3: bad token", err.Error())
}

func TestColorToFloat(t *testing.T) {
	assert.Equal(t, [4]float32{}, gfx.ColorToFloat(nil))
	got := gfx.ColorToFloat(color.RGBA{255, 0, 0, 255})
	assert.InDelta(t, 1, got[0], 1e-6)
	assert.InDelta(t, 0, got[1], 1e-6)
	assert.InDelta(t, 1, got[3], 1e-6)
}
