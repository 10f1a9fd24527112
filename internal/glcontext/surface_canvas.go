//go:build js && wasm

package glcontext

import (
	"fmt"
	"sync"
	"syscall/js"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kjkrol/gokshader/internal/frameloop"
	"github.com/kjkrol/gokshader/pkg/gfx"
)

// Surface is a canvas element appended to the document body, with its
// WebGL context.
type Surface struct {
	canvas js.Value
	ctx    *Context
	log    *zap.Logger

	done      chan struct{}
	closeOnce sync.Once
	funcs     []js.Func
}

// New creates a canvas sized by conf, appends it to the document body and
// acquires its WebGL context.
func New(conf gfx.SurfaceConfig, log *zap.Logger) (*Surface, error) {
	conf = conf.Normalize()
	if log == nil {
		log = zap.NewNop()
	}

	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil, errors.New("no document available")
	}
	doc.Set("title", conf.Title)

	canvas := doc.Call("createElement", "canvas")
	canvas.Set("width", conf.Width)
	canvas.Set("height", conf.Height)
	style := canvas.Get("style")
	style.Set("border", fmt.Sprintf("%dpx solid black", conf.BorderWidth))
	style.Set("position", "absolute")
	style.Set("left", fmt.Sprintf("%dpx", conf.PositionX))
	style.Set("top", fmt.Sprintf("%dpx", conf.PositionY))

	gl := canvas.Call("getContext", "webgl")
	if !gl.Truthy() {
		gl = canvas.Call("getContext", "experimental-webgl")
	}
	if !gl.Truthy() {
		return nil, errors.New("webgl context is required")
	}
	doc.Get("body").Call("appendChild", canvas)

	log.Info("webgl context ready",
		zap.String("version", gl.Call("getParameter", gl.Get("VERSION")).String()),
		zap.Int("width", conf.Width),
		zap.Int("height", conf.Height),
	)
	return &Surface{
		canvas: canvas,
		ctx:    newContext(gl),
		log:    log,
		done:   make(chan struct{}),
	}, nil
}

// Context returns the WebGL context bound to the canvas.
func (s *Surface) Context() *Context {
	return s.ctx
}

func (s *Surface) Size() (int, int) {
	return s.canvas.Get("width").Int(), s.canvas.Get("height").Int()
}

// Run calls frame on every animation frame and blocks until Close.
func (s *Surface) Run(frame func(dt time.Duration)) {
	var tick js.Func
	loop := &frameloop.Loop{
		Done:     s.done,
		Schedule: func() { js.Global().Call("requestAnimationFrame", tick) },
		Frame:    frame,
	}
	tick = js.FuncOf(func(this js.Value, args []js.Value) any {
		loop.Tick(args[0].Float())
		return nil
	})
	s.funcs = append(s.funcs, tick)
	js.Global().Call("requestAnimationFrame", tick)

	<-s.done
	for _, fn := range s.funcs {
		fn.Release()
	}
	s.funcs = nil
	s.log.Debug("animation loop stopped")
}

func (s *Surface) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if parent := s.canvas.Get("parentNode"); parent.Truthy() {
			parent.Call("removeChild", s.canvas)
		}
	})
}
