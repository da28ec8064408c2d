package main

import (
	"fmt"
	"os"

	"github.com/soypat/sculpt/brush"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// Preset is the YAML description of a brush. Values left out of the file
// keep their defaults; command line flags override the file.
type Preset struct {
	// Radius of the brush. Zero means cover the whole model.
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
	Curve    string  `yaml:"curve"`
	Noise    float32 `yaml:"noise"`
	Pressure float64 `yaml:"pressure"`

	LockX bool `yaml:"lock_x"`
	LockY bool `yaml:"lock_y"`
	LockZ bool `yaml:"lock_z"`

	// Surface smooth parameters.
	Iterations        int     `yaml:"iterations"`
	ShapePreservation float64 `yaml:"shape_preservation"`
	CurrentVertex     float64 `yaml:"current_vertex"`
}

// DefaultPreset returns the builtin brush preset.
func DefaultPreset() Preset {
	return Preset{
		Strength:          0.5,
		Curve:             "smooth",
		Pressure:          1,
		Iterations:        2,
		ShapePreservation: 0.5,
		CurrentVertex:     0.5,
	}
}

// LoadPreset layers a preset file over the defaults. An empty path returns
// the defaults unchanged.
func LoadPreset(path string) (Preset, error) {
	p := DefaultPreset()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("loading preset from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing preset %s: %w", path, err)
	}
	return p, nil
}

var curveByName = map[string]brush.Curve{
	"smooth":    brush.CurveSmooth,
	"sphere":    brush.CurveSphere,
	"root":      brush.CurveRoot,
	"sharp":     brush.CurveSharp,
	"linear":    brush.CurveLinear,
	"pow4":      brush.CurvePow4,
	"invsquare": brush.CurveInvSquare,
	"constant":  brush.CurveConstant,
}

// Brush instantiates the preset at a center and radius.
func (p Preset) Brush(center r3.Vec, radius float64) (*brush.Brush, error) {
	curve, ok := curveByName[p.Curve]
	if !ok {
		return nil, fmt.Errorf("unknown curve preset %q", p.Curve)
	}
	if p.Radius > 0 {
		radius = p.Radius
	}
	return &brush.Brush{
		Center:            center,
		Radius:            radius,
		Curve:             curve,
		Noise:             p.Noise,
		Pressure:          p.Pressure,
		LockX:             p.LockX,
		LockY:             p.LockY,
		LockZ:             p.LockZ,
		ShapePreservation: p.ShapePreservation,
		CurrentVertex:     p.CurrentVertex,
		Iterations:        p.Iterations,
	}, nil
}
