package shader

import (
	"fmt"

	"reactive-gradient/internal/gpu"
)

// CompileError carries the compiler info log of a failed shader stage
type CompileError struct {
	Stage gpu.Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// LinkError carries the linker info log of a failed program
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

// Attrib pins a vertex attribute name to an index before linking, so that
// dialects without layout qualifiers agree on where the data lives.
type Attrib struct {
	Index uint32
	Name  string
}

// Compile creates and compiles a shader object. On failure the object is
// deleted and a *CompileError is returned.
func Compile(ctx gpu.Context, source string, stage gpu.Stage) (uint32, error) {
	shader := ctx.CreateShader(stage)
	ctx.ShaderSource(shader, source)
	ctx.CompileShader(shader)

	if ok, log := ctx.ShaderStatus(shader); !ok {
		ctx.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return shader, nil
}

// Link attaches both shaders to a new program and links it. The shader
// objects are deleted as soon as the link has been attempted; the program
// keeps what it needs. On failure the program is deleted as well and a
// *LinkError is returned.
func Link(ctx gpu.Context, vertex, fragment uint32, attribs ...Attrib) (uint32, error) {
	program := ctx.CreateProgram()
	ctx.AttachShader(program, vertex)
	ctx.AttachShader(program, fragment)
	for _, a := range attribs {
		ctx.BindAttribLocation(program, a.Index, a.Name)
	}
	ctx.LinkProgram(program)

	ok, log := ctx.ProgramStatus(program)
	ctx.DeleteShader(vertex)
	ctx.DeleteShader(fragment)
	if !ok {
		ctx.DeleteProgram(program)
		return 0, &LinkError{Log: log}
	}
	return program, nil
}

// Build prefixes both bodies with the context's dialect header, compiles
// them and links the result.
func Build(ctx gpu.Context, vertexBody, fragmentBody string, attribs ...Attrib) (uint32, error) {
	d := ctx.Dialect()

	vertex, err := Compile(ctx, d.Header(gpu.StageVertex)+vertexBody, gpu.StageVertex)
	if err != nil {
		return 0, err
	}
	fragment, err := Compile(ctx, d.Header(gpu.StageFragment)+fragmentBody, gpu.StageFragment)
	if err != nil {
		ctx.DeleteShader(vertex)
		return 0, err
	}
	return Link(ctx, vertex, fragment, attribs...)
}
