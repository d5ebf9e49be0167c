package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Zoom bounds shared by the parameter validation and the wheel handler
const (
	MinZoom  float32 = 0.4
	MaxZoom  float32 = 2.5
	ZoomStep float32 = 0.04
)

// Color stop indices
const (
	ColorBase = iota
	ColorPrimary
	ColorAccent
	ColorCount
)

// GradientParameters configures the procedural gradient. It is a plain value:
// copies never share state, and nothing mutates it after NewParameters.
type GradientParameters struct {
	Colors         [ColorCount]mgl32.Vec3
	NoiseScale     float32
	NoiseIntensity float32
	Displacement   float32
	Spacing        float32
	Rotation       float32 // radians
	Seed           float32
	Zoom           float32
	Offset         mgl32.Vec2
}

// DefaultParameters returns the built-in look: a dark base washing into coral
// with cyan accents.
func DefaultParameters() GradientParameters {
	return GradientParameters{
		Colors: [ColorCount]mgl32.Vec3{
			mustHex("#05070d"),
			mustHex("#ec6363"),
			mustHex("#57dbfd"),
		},
		NoiseScale:     2.4,
		NoiseIntensity: 1.4,
		Displacement:   0.35,
		Spacing:        0.3,
		Rotation:       mgl32.DegToRad(112),
		Seed:           0,
		Zoom:           1,
	}
}

// Overrides is a partial GradientParameters as read from JSON. Nil fields keep
// the default. Colors are hex strings applied in stop order; rotation is in
// degrees.
type Overrides struct {
	Colors         []string    `json:"colors,omitempty"`
	NoiseScale     *float32    `json:"noiseScale,omitempty"`
	NoiseIntensity *float32    `json:"noiseIntensity,omitempty"`
	Displacement   *float32    `json:"displacement,omitempty"`
	Spacing        *float32    `json:"spacing,omitempty"`
	Rotation       *float32    `json:"rotation,omitempty"`
	Seed           *float32    `json:"seed,omitempty"`
	Zoom           *float32    `json:"zoom,omitempty"`
	Offset         *[2]float32 `json:"offset,omitempty"`
}

// LoadOverrides reads an Overrides object from a JSON file
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read parameter file: %w", err)
	}
	var o Overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("could not parse parameter file %s: %w", path, err)
	}
	return &o, nil
}

// NewParameters merges o over the defaults. A nil o yields the defaults.
func NewParameters(o *Overrides) (GradientParameters, error) {
	p := DefaultParameters()
	if o == nil {
		return p, nil
	}

	if len(o.Colors) > ColorCount {
		return p, fmt.Errorf("colors: at most %d stops, got %d", ColorCount, len(o.Colors))
	}
	for i, hex := range o.Colors {
		c, err := parseHex(hex)
		if err != nil {
			return p, fmt.Errorf("colors[%d]: %w", i, err)
		}
		p.Colors[i] = c
	}

	if o.NoiseScale != nil {
		if *o.NoiseScale <= 0 {
			return p, fmt.Errorf("noiseScale: must be positive, got %v", *o.NoiseScale)
		}
		p.NoiseScale = *o.NoiseScale
	}
	if o.NoiseIntensity != nil {
		p.NoiseIntensity = *o.NoiseIntensity
	}
	if o.Displacement != nil {
		p.Displacement = *o.Displacement
	}
	if o.Spacing != nil {
		if *o.Spacing < 0 {
			return p, fmt.Errorf("spacing: must not be negative, got %v", *o.Spacing)
		}
		p.Spacing = *o.Spacing
	}
	if o.Rotation != nil {
		p.Rotation = mgl32.DegToRad(*o.Rotation)
	}
	if o.Seed != nil {
		p.Seed = *o.Seed
	}
	if o.Zoom != nil {
		z := *o.Zoom
		if z < MinZoom || z > MaxZoom {
			return p, fmt.Errorf("zoom: must be within [%v, %v], got %v", MinZoom, MaxZoom, z)
		}
		p.Zoom = z
	}
	if o.Offset != nil {
		p.Offset = mgl32.Vec2{o.Offset[0], o.Offset[1]}
	}
	return p, nil
}

func parseHex(s string) (mgl32.Vec3, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}, nil
}

func mustHex(s string) mgl32.Vec3 {
	c, err := parseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
