// Package shader compiles and links GLSL programs and ships the gradient
// shader sources.
package shader

import (
	_ "embed"

	"reactive-gradient/internal/gpu"
)

// Shader bodies without a #version line; the dialect header is prepended
// by Build.
var (
	//go:embed glsl/gradient.vert
	GradientVertex string
	//go:embed glsl/gradient.frag
	GradientFragment string
)

// PositionAttrib is where the full-screen triangle's clip-space positions go
var PositionAttrib = Attrib{Index: 0, Name: "aPos"}

// Uniform names declared by the gradient fragment shader
const (
	UniformResolution     = "uResolution"
	UniformTime           = "uTime"
	UniformPointer        = "uPointer"
	UniformZoom           = "uZoom"
	UniformReduced        = "uReduced"
	UniformColorBase      = "uColorBase"
	UniformColorPrimary   = "uColorPrimary"
	UniformColorAccent    = "uColorAccent"
	UniformNoiseScale     = "uNoiseScale"
	UniformNoiseIntensity = "uNoiseIntensity"
	UniformDisplacement   = "uDisplacement"
	UniformSpacing        = "uSpacing"
	UniformRotation       = "uRotation"
	UniformSeed           = "uSeed"
	UniformOffset         = "uOffset"
)

// GradientUniforms lists every uniform the gradient program may expose
var GradientUniforms = []string{
	UniformResolution,
	UniformTime,
	UniformPointer,
	UniformZoom,
	UniformReduced,
	UniformColorBase,
	UniformColorPrimary,
	UniformColorAccent,
	UniformNoiseScale,
	UniformNoiseIntensity,
	UniformDisplacement,
	UniformSpacing,
	UniformRotation,
	UniformSeed,
	UniformOffset,
}

// BuildGradient compiles the gradient program for ctx's dialect
func BuildGradient(ctx gpu.Context) (uint32, error) {
	return Build(ctx, GradientVertex, GradientFragment, PositionAttrib)
}
