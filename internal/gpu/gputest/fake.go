// Package gputest provides a recording gpu.Context for tests that run
// without a GL driver.
package gputest

import (
	"fmt"

	"reactive-gradient/internal/gpu"
)

// Call is one recorded context method invocation
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Context records every call. Object names are handed out sequentially
// starting at 1 so tests can assert on them.
type Context struct {
	Calls []Call

	// CompileErrors maps a stage to the info log a compile of that stage
	// should fail with.
	CompileErrors map[gpu.Stage]string
	// LinkError makes every link fail with this log when non-empty.
	LinkError string
	// Uniforms lists the uniforms the linked program exposes. Anything else
	// resolves to -1. A nil map exposes every requested name.
	Uniforms map[string]int32

	// Pixels is returned by ReadPixels when set.
	Pixels []byte

	next    uint32
	stages  map[uint32]gpu.Stage
	nextLoc int32
	locs    map[string]int32
	deleted map[uint32]bool
}

func New() *Context {
	return &Context{
		stages:  make(map[uint32]gpu.Stage),
		locs:    make(map[string]int32),
		deleted: make(map[uint32]bool),
	}
}

func (c *Context) record(name string, args ...any) {
	c.Calls = append(c.Calls, Call{Name: name, Args: args})
}

func (c *Context) alloc() uint32 {
	c.next++
	return c.next
}

// Count returns how many times the named method was called
func (c *Context) Count(name string) int {
	n := 0
	for _, call := range c.Calls {
		if call.Name == name {
			n++
		}
	}
	return n
}

// Find returns every recorded call of the named method
func (c *Context) Find(name string) []Call {
	var out []Call
	for _, call := range c.Calls {
		if call.Name == name {
			out = append(out, call)
		}
	}
	return out
}

// Index returns the position of the first call matching name and the given
// first argument, or -1.
func (c *Context) Index(name string, arg any) int {
	for i, call := range c.Calls {
		if call.Name == name && len(call.Args) > 0 && call.Args[0] == arg {
			return i
		}
	}
	return -1
}

// Deleted reports whether the object name was passed to a delete call
func (c *Context) Deleted(name uint32) bool { return c.deleted[name] }

// Reset forgets recorded calls but keeps allocated objects
func (c *Context) Reset() { c.Calls = nil }

var _ gpu.Context = (*Context)(nil)

var dialect = gpu.Dialect{
	Name:           "fake",
	VertexHeader:   "// vertex\n",
	FragmentHeader: "// fragment\n",
}

func (c *Context) Dialect() gpu.Dialect { return dialect }

func (c *Context) Viewport(x, y, width, height int32) {
	c.record("Viewport", x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) { c.record("ClearColor", r, g, b, a) }

func (c *Context) Clear() { c.record("Clear") }

func (c *Context) CreateShader(stage gpu.Stage) uint32 {
	id := c.alloc()
	c.stages[id] = stage
	c.record("CreateShader", id, stage)
	return id
}

func (c *Context) ShaderSource(shader uint32, source string) {
	c.record("ShaderSource", shader, source)
}

func (c *Context) CompileShader(shader uint32) { c.record("CompileShader", shader) }

func (c *Context) ShaderStatus(shader uint32) (bool, string) {
	c.record("ShaderStatus", shader)
	if msg, ok := c.CompileErrors[c.stages[shader]]; ok {
		return false, msg
	}
	return true, ""
}

func (c *Context) DeleteShader(shader uint32) {
	c.deleted[shader] = true
	c.record("DeleteShader", shader)
}

func (c *Context) CreateProgram() uint32 {
	id := c.alloc()
	c.record("CreateProgram", id)
	return id
}

func (c *Context) AttachShader(program, shader uint32) {
	c.record("AttachShader", program, shader)
}

func (c *Context) BindAttribLocation(program, index uint32, name string) {
	c.record("BindAttribLocation", program, index, name)
}

func (c *Context) LinkProgram(program uint32) { c.record("LinkProgram", program) }

func (c *Context) ProgramStatus(program uint32) (bool, string) {
	c.record("ProgramStatus", program)
	if c.LinkError != "" {
		return false, c.LinkError
	}
	return true, ""
}

func (c *Context) UseProgram(program uint32) { c.record("UseProgram", program) }

func (c *Context) DeleteProgram(program uint32) {
	c.deleted[program] = true
	c.record("DeleteProgram", program)
}

func (c *Context) UniformLocation(program uint32, name string) int32 {
	c.record("UniformLocation", program, name)
	if c.Uniforms != nil {
		if loc, ok := c.Uniforms[name]; ok {
			return loc
		}
		return -1
	}
	if loc, ok := c.locs[name]; ok {
		return loc
	}
	loc := c.nextLoc
	c.nextLoc++
	c.locs[name] = loc
	return loc
}

func (c *Context) Uniform1f(location int32, v float32) { c.record("Uniform1f", location, v) }

func (c *Context) Uniform2f(location int32, x, y float32) {
	c.record("Uniform2f", location, x, y)
}

func (c *Context) Uniform3f(location int32, x, y, z float32) {
	c.record("Uniform3f", location, x, y, z)
}

func (c *Context) NewVertexBuffer(data []float32, attrib uint32, components int32) gpu.Buffer {
	b := gpu.Buffer{VBO: c.alloc(), VAO: c.alloc(), Attrib: attrib, Components: components}
	c.record("NewVertexBuffer", b.VBO, append([]float32(nil), data...), attrib, components)
	return b
}

func (c *Context) BindVertexBuffer(b gpu.Buffer) { c.record("BindVertexBuffer", b.VBO) }

func (c *Context) DeleteVertexBuffer(b gpu.Buffer) {
	c.deleted[b.VBO] = true
	c.deleted[b.VAO] = true
	c.record("DeleteVertexBuffer", b.VBO)
}

func (c *Context) DrawTriangles(first, count int32) {
	c.record("DrawTriangles", first, count)
}

func (c *Context) ReadPixels(width, height int32) []byte {
	c.record("ReadPixels", width, height)
	if c.Pixels != nil {
		return c.Pixels
	}
	return make([]byte, int(width)*int(height)*4)
}
