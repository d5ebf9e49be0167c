package gpu

// Stage identifies a shader pipeline stage
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return "unknown"
}

// Dialect describes the shading language flavour a backend accepts.
// Headers are prepended to the shared shader bodies, which use the
// ATTRIBUTE, VARYING and FRAG_COLOR macros instead of version specific
// keywords.
type Dialect struct {
	Name           string
	VertexHeader   string
	FragmentHeader string
}

// Header returns the source prefix for the given stage
func (d Dialect) Header(stage Stage) string {
	if stage == StageVertex {
		return d.VertexHeader
	}
	return d.FragmentHeader
}

// Buffer is a vertex buffer together with whatever vertex layout object the
// backend needs to draw from it (a VAO on core profiles, nothing on 2.1).
type Buffer struct {
	VBO        uint32
	VAO        uint32
	Attrib     uint32
	Components int32
}

// Context is the subset of OpenGL the background renderer uses. Handles are
// raw GL object names. Implementations must be used from the thread that
// owns the GL context.
type Context interface {
	Dialect() Dialect

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()

	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	// ShaderStatus reports whether the last compile succeeded and returns
	// the info log.
	ShaderStatus(shader uint32) (bool, string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	BindAttribLocation(program, index uint32, name string)
	LinkProgram(program uint32)
	// ProgramStatus reports whether the last link succeeded and returns the
	// info log.
	ProgramStatus(program uint32) (bool, string)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// UniformLocation returns -1 when the uniform does not exist or was
	// optimized out.
	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)
	Uniform3f(location int32, x, y, z float32)

	NewVertexBuffer(data []float32, attrib uint32, components int32) Buffer
	BindVertexBuffer(b Buffer)
	DeleteVertexBuffer(b Buffer)
	DrawTriangles(first, count int32)

	// ReadPixels returns tightly packed RGBA rows, bottom row first.
	ReadPixels(width, height int32) []byte
}
