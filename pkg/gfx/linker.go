package gfx

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Linker compiles a vertex/fragment source pair into a program on ctx.
type Linker interface {
	Link(ctx Context, vertexSource, fragmentSource string) (Program, error)
}

// LinkerFunc adapts a plain function to the Linker interface.
type LinkerFunc func(ctx Context, vertexSource, fragmentSource string) (Program, error)

func (f LinkerFunc) Link(ctx Context, vertexSource, fragmentSource string) (Program, error) {
	return f(ctx, vertexSource, fragmentSource)
}

// ProgramLinker is the default Linker. ctx must implement Compiler.
// Intermediate shader objects are released whether linking succeeds or not.
type ProgramLinker struct {
	Logger *zap.Logger
}

// Link compiles the vertex then the fragment source and links them into a
// program. Compile and link failures are returned as *ShaderError or *LinkError.
func (l ProgramLinker) Link(ctx Context, vertexSource, fragmentSource string) (Program, error) {
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}
	compiler, ok := ctx.(Compiler)
	if !ok {
		return nil, ErrNoCompiler
	}

	vertexShader, err := compiler.CompileShader(VertexStage, vertexSource)
	if err != nil {
		return nil, errors.Wrap(err, "build program")
	}
	fragmentShader, err := compiler.CompileShader(FragmentStage, fragmentSource)
	if err != nil {
		compiler.DeleteShader(vertexShader)
		return nil, errors.Wrap(err, "build program")
	}

	program, err := compiler.LinkProgram(vertexShader, fragmentShader)
	compiler.DeleteShader(vertexShader)
	compiler.DeleteShader(fragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "build program")
	}

	log.Debug("program linked",
		zap.Int("vertex_source_bytes", len(vertexSource)),
		zap.Int("fragment_source_bytes", len(fragmentSource)),
	)
	return program, nil
}
