// Command basic-demo draws a spinning vertex-colored triangle with the basic
// shader program. It runs in a desktop window, or in the browser when built
// with GOOS=js GOARCH=wasm (see cmd/wasm-demo).
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"runtime"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/kjkrol/gokshader/internal/glcontext"
	"github.com/kjkrol/gokshader/pkg/gfx"
	"github.com/kjkrol/gokshader/pkg/logger"
	"github.com/kjkrol/gokshader/pkg/shaders"
)

func init() {
	// GL calls must stay on the thread that created the context
	runtime.LockOSThread()
}

var triangle = []shaders.Vertex{
	{Position: [3]float32{0, 1, 0}, Color: color.RGBA{255, 0, 0, 255}},
	{Position: [3]float32{-0.866, -0.5, 0}, Color: color.RGBA{0, 255, 0, 255}},
	{Position: [3]float32{0.866, -0.5, 0}, Color: color.RGBA{0, 0, 255, 255}},
}

func main() {
	conf := gfx.DefaultSurfaceConfig()
	conf.Title = "basic shader"
	logConf := logger.Config{ServiceName: "basic-demo"}

	flag.IntVar(&conf.Width, "width", conf.Width, "surface width in pixels")
	flag.IntVar(&conf.Height, "height", conf.Height, "surface height in pixels")
	flag.StringVar(&conf.Title, "title", conf.Title, "window title")
	flag.StringVar(&logConf.LogLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&logConf.Environment, "env", "development", "development or production")
	flag.Parse()

	log, err := logger.New(logConf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(conf, log); err != nil {
		log.Fatal("basic demo failed", zap.Error(err))
	}
}

func run(conf gfx.SurfaceConfig, log *zap.Logger) error {
	surface, err := glcontext.New(conf, log)
	if err != nil {
		return err
	}
	defer surface.Close()
	ctx := surface.Context()

	program, err := shaders.BuildBasic(ctx, gfx.ProgramLinker{Logger: log})
	if err != nil {
		return err
	}
	defer ctx.DeleteProgram(program.Program)
	log.Info("basic program ready",
		zap.Int32("vertex_attrib", program.VertexAttrib),
		zap.Int32("color_attrib", program.ColorAttrib),
	)

	mesh := shaders.NewMesh(triangle)
	defer mesh.Release(ctx)

	var angle float32
	surface.Run(func(dt time.Duration) {
		width, height := surface.Size()
		if width <= 0 || height <= 0 {
			return
		}
		ctx.Viewport(width, height)
		ctx.Clear(color.Black)

		angle = math32.Mod(angle+float32(dt.Seconds()), 2*math32.Pi)
		aspect := float32(width) / float32(height)
		projection := mgl32.Ortho(-aspect, aspect, -1, 1, -1, 1)
		transformation := mgl32.HomogRotate3DZ(angle).Mul4(mgl32.Scale3D(0.8, 0.8, 1))
		program.Draw(ctx, mesh, projection, transformation)
	})
	return nil
}
