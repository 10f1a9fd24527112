//go:build !js

package glcontext

import (
	"time"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kjkrol/gokshader/pkg/gfx"
)

// Surface is a glfw window owning a GLES 2.0 context.
// New, Run and Close must be called from the main OS thread.
type Surface struct {
	window *glfw.Window
	ctx    *Context
	log    *zap.Logger
}

// New opens a glfw window sized by conf and makes its GLES 2.0 context
// current on the calling thread.
func New(conf gfx.SurfaceConfig, log *zap.Logger) (*Surface, error) {
	conf = conf.Normalize()
	if log == nil {
		log = zap.NewNop()
	}

	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "init glfw")
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create window")
	}
	if conf.PositionX != 0 || conf.PositionY != 0 {
		window.SetPos(conf.PositionX, conf.PositionY)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, errors.Wrap(err, "init gles2")
	}

	log.Info("gles context ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int("width", conf.Width),
		zap.Int("height", conf.Height),
	)
	return &Surface{window: window, ctx: &Context{}, log: log}, nil
}

// Context returns the GLES context current on the window's thread.
func (s *Surface) Context() *Context {
	return s.ctx
}

// Size returns the drawable size in pixels.
func (s *Surface) Size() (int, int) {
	return s.window.GetFramebufferSize()
}

// Run calls frame once per swap until the window is asked to close.
func (s *Surface) Run(frame func(dt time.Duration)) {
	last := time.Now()
	for !s.window.ShouldClose() {
		now := time.Now()
		frame(now.Sub(last))
		last = now
		s.window.SwapBuffers()
		glfw.PollEvents()
	}
	s.log.Debug("window close requested")
}

func (s *Surface) Close() {
	s.window.Destroy()
	glfw.Terminate()
}
