// Package gl41 implements gpu.Context on an OpenGL 4.1 core profile.
package gl41

import (
	"strings"

	"reactive-gradient/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ gpu.Context = (*Context)(nil)

var dialect = gpu.Dialect{
	Name: "gl41",
	VertexHeader: "#version 410 core\n" +
		"#define ATTRIBUTE in\n" +
		"#define VARYING out\n",
	FragmentHeader: "#version 410 core\n" +
		"#define VARYING in\n" +
		"out vec4 fragColor;\n" +
		"#define FRAG_COLOR fragColor\n",
}

// Context talks to the current 4.1 core context
type Context struct{}

// New loads the GL entry points for the current context and sets up the
// fixed state used by a flat, alpha blended full-screen pass.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.STENCIL_TEST)
	gl.Enable(gl.BLEND)
	// premultiplied alpha
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	return &Context{}, nil
}

// Version returns the driver version string
func (c *Context) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (c *Context) Dialect() gpu.Dialect { return dialect }

func (c *Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (c *Context) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT) }

func (c *Context) CreateShader(stage gpu.Stage) uint32 {
	if stage == gpu.StageVertex {
		return gl.CreateShader(gl.VERTEX_SHADER)
	}
	return gl.CreateShader(gl.FRAGMENT_SHADER)
}

func (c *Context) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (c *Context) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (c *Context) ShaderStatus(shader uint32) (bool, string) {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (c *Context) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (c *Context) CreateProgram() uint32 { return gl.CreateProgram() }

func (c *Context) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (c *Context) BindAttribLocation(program, index uint32, name string) {
	gl.BindAttribLocation(program, index, gl.Str(name+"\x00"))
}

func (c *Context) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (c *Context) ProgramStatus(program uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (c *Context) UseProgram(program uint32) { gl.UseProgram(program) }

func (c *Context) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (c *Context) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (c *Context) Uniform2f(location int32, x, y float32) { gl.Uniform2f(location, x, y) }

func (c *Context) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

// NewVertexBuffer uploads data into a static VBO and records the attribute
// layout in a VAO, which the core profile requires for every draw.
func (c *Context) NewVertexBuffer(data []float32, attrib uint32, components int32) gpu.Buffer {
	b := gpu.Buffer{Attrib: attrib, Components: components}

	gl.GenVertexArrays(1, &b.VAO)
	gl.BindVertexArray(b.VAO)

	gl.GenBuffers(1, &b.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(attrib)
	gl.VertexAttribPointer(attrib, components, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return b
}

func (c *Context) BindVertexBuffer(b gpu.Buffer) { gl.BindVertexArray(b.VAO) }

func (c *Context) DeleteVertexBuffer(b gpu.Buffer) {
	gl.BindVertexArray(0)
	if b.VBO != 0 {
		gl.DeleteBuffers(1, &b.VBO)
	}
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
	}
}

func (c *Context) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (c *Context) ReadPixels(width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels
}
