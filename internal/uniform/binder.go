// Package uniform resolves shader uniform locations once and pushes values
// into them every frame.
package uniform

import (
	"reactive-gradient/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Locations maps uniform names to resolved locations. A location of -1 means
// the program does not use the uniform.
type Locations map[string]int32

// Bind looks up every name once
func Bind(ctx gpu.Context, program uint32, names []string) Locations {
	locs := make(Locations, len(names))
	for _, name := range names {
		locs[name] = ctx.UniformLocation(program, name)
	}
	return locs
}

// Active reports whether name resolved to a real location
func (l Locations) Active(name string) bool {
	loc, ok := l[name]
	return ok && loc >= 0
}

// Value is a float, vec2 or vec3 uniform value
type Value struct {
	n int
	v [3]float32
}

func Float(v float32) Value { return Value{n: 1, v: [3]float32{v}} }

func Vec2(v mgl32.Vec2) Value { return Value{n: 2, v: [3]float32{v[0], v[1]}} }

func Vec3(v mgl32.Vec3) Value { return Value{n: 3, v: v} }

// Values is one frame's worth of uniform writes keyed by name
type Values map[string]Value

// Push writes vals into their locations. Names that were never bound or did
// not resolve are skipped: a shader variant may leave uniforms out.
func Push(ctx gpu.Context, locs Locations, vals Values) {
	for name, val := range vals {
		loc, ok := locs[name]
		if !ok || loc < 0 {
			continue
		}
		switch val.n {
		case 1:
			ctx.Uniform1f(loc, val.v[0])
		case 2:
			ctx.Uniform2f(loc, val.v[0], val.v[1])
		case 3:
			ctx.Uniform3f(loc, val.v[0], val.v[1], val.v[2])
		}
	}
}
