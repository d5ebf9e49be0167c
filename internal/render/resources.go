package render

import (
	"fmt"

	"reactive-gradient/internal/gpu"
	"reactive-gradient/internal/shader"
	"reactive-gradient/internal/uniform"
)

// FullscreenTriangle covers clip space with a single primitive. The parts
// outside [-1,1]² are clipped away, so there is no diagonal seam as with a
// two-triangle quad.
var FullscreenTriangle = []float32{
	-1, -1,
	3, -1,
	-1, 3,
}

// Resources are the GL objects of one render session
type Resources struct {
	Program  uint32
	Buffer   gpu.Buffer
	Uniforms uniform.Locations
}

// NewResources builds the gradient program, resolves its uniforms and
// uploads the full-screen triangle. Nothing is left allocated on error.
func NewResources(ctx gpu.Context) (*Resources, error) {
	program, err := shader.BuildGradient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gradient program: %w", err)
	}
	// the surface is composited with premultiplied alpha
	ctx.ClearColor(0, 0, 0, 0)
	return &Resources{
		Program:  program,
		Uniforms: uniform.Bind(ctx, program, shader.GradientUniforms),
		Buffer:   ctx.NewVertexBuffer(FullscreenTriangle, shader.PositionAttrib.Index, 2),
	}, nil
}

// Release deletes the buffer, then the program. Safe to call twice.
func (r *Resources) Release(ctx gpu.Context) {
	if r.Buffer.VBO != 0 || r.Buffer.VAO != 0 {
		ctx.DeleteVertexBuffer(r.Buffer)
		r.Buffer = gpu.Buffer{}
	}
	if r.Program != 0 {
		ctx.UseProgram(0)
		ctx.DeleteProgram(r.Program)
		r.Program = 0
	}
	r.Uniforms = nil
}
