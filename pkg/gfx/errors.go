package gfx

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoCompiler is returned when a Context cannot compile shader source.
var ErrNoCompiler = errors.New("context cannot compile shaders")

// ShaderError reports a rejected shader stage together with the driver info log.
type ShaderError struct {
	Stage Stage
	Log   string
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("compile error (%s): %s", e.Stage, cleanLog(e.Log))
}

// LinkError reports a program the driver refused to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link error: %s", cleanLog(e.Log))
}

// driver info logs come NUL padded from C buffers
func cleanLog(log string) string {
	return strings.TrimSpace(strings.TrimRight(log, "\x00"))
}
