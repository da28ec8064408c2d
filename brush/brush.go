// Package brush provides a reference brush for the sculpt smoothing engine:
// spherical and projected falloff shapes, the classic strength curve
// presets and a deterministic per-thread jitter. The engine itself only
// consumes the sculpt.Brush interface, so tools with their own brush system
// can ignore this package entirely.
package brush

import (
	"github.com/chewxy/math32"
	"github.com/soypat/sculpt/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Shape selects the brush falloff shape.
type Shape uint8

const (
	// ShapeSphere applies falloff radially from the brush center.
	ShapeSphere Shape = iota
	// ShapeProjected measures falloff in the plane perpendicular to the
	// brush normal, giving a tube shaped area of effect.
	ShapeProjected
)

// Curve selects the strength falloff curve preset.
type Curve uint8

const (
	CurveSmooth Curve = iota
	CurveSphere
	CurveRoot
	CurveSharp
	CurveLinear
	CurvePow4
	CurveInvSquare
	CurveConstant
)

// Brush is a read-only description of one brush for the duration of a
// stroke. It implements sculpt.Brush. Out of range parameters are clamped,
// never rejected.
type Brush struct {
	Center r3.Vec
	Radius float64
	Shape  Shape
	Curve  Curve
	// Normal is the brush plane normal used by ShapeProjected.
	Normal r3.Vec
	// Pressure multiplies the curve strength. Typically tablet pressure.
	Pressure float64
	// Noise in [0,1] mixes in deterministic per-vertex jitter seeded by
	// the dispatching thread.
	Noise float32
	// Axis locks. A locked axis keeps the vertex's current coordinate.
	LockX, LockY, LockZ bool

	// Surface smooth parameters.
	ShapePreservation float64 // alpha in [0,1]
	CurrentVertex     float64 // beta in [0,1]
	Iterations        int
}

// Default returns a smooth-curve sphere brush of the given center and
// radius with full pressure and typical HC smoothing parameters.
func Default(center r3.Vec, radius float64) *Brush {
	return &Brush{
		Center:            center,
		Radius:            radius,
		Curve:             CurveSmooth,
		Pressure:          1,
		ShapePreservation: 0.5,
		CurrentVertex:     0.5,
		Iterations:        2,
	}
}

// TestSq tests p against the falloff shape. It reports the squared falloff
// distance and whether p lies inside the brush radius.
func (b *Brush) TestSq(p r3.Vec) (dist2 float64, in bool) {
	switch b.Shape {
	case ShapeProjected:
		q := r3.Sub(p, b.Center)
		if n := r3.Norm(b.Normal); n > 0 {
			un := r3.Scale(1/n, b.Normal)
			q = r3.Sub(q, r3.Scale(r3.Dot(q, un), un))
		}
		dist2 = r3.Norm2(q)
	default:
		dist2 = r3.Norm2(r3.Sub(p, b.Center))
	}
	return dist2, dist2 <= b.Radius*b.Radius
}

// Strength evaluates the combined falloff, pressure, mask and noise factor
// for a vertex at distance dist from the brush center.
func (b *Brush) Strength(p, normal r3.Vec, dist float64, mask float32, v mesh.Vertex, thread int) float64 {
	if b.Radius <= 0 {
		return 0
	}
	factor := b.CurveStrength(float32(dist / b.Radius))
	factor *= 1 - math32.Min(1, math32.Max(0, mask))
	if b.Noise > 0 {
		noise := math32.Min(1, math32.Max(0, b.Noise))
		factor *= 1 - noise*hashNoise(v, thread)
	}
	pressure := b.Pressure
	if pressure == 0 {
		pressure = 1
	}
	return float64(factor) * clamp01(pressure)
}

// CurveStrength evaluates the falloff curve preset at normalized distance
// t in [0,1] from the brush center. t outside the range clamps.
func (b *Brush) CurveStrength(t float32) float32 {
	t = math32.Min(1, math32.Max(0, t))
	p := 1 - t
	switch b.Curve {
	case CurveSphere:
		return math32.Sqrt(2*p - p*p)
	case CurveRoot:
		return math32.Sqrt(p)
	case CurveSharp:
		return p * p
	case CurveLinear:
		return p
	case CurvePow4:
		return p * p * p * p
	case CurveInvSquare:
		return p * (2 - p)
	case CurveConstant:
		return 1
	default: // CurveSmooth
		return 3*p*p - 2*p*p*p
	}
}

// Clip constrains a proposed position with the brush axis locks.
func (b *Brush) Clip(co, proposed r3.Vec) r3.Vec {
	if b.LockX {
		proposed.X = co.X
	}
	if b.LockY {
		proposed.Y = co.Y
	}
	if b.LockZ {
		proposed.Z = co.Z
	}
	return proposed
}

// SurfaceSmooth returns the HC smoothing parameters.
func (b *Brush) SurfaceSmooth() (alpha, beta float64, iterations int) {
	return b.ShapePreservation, b.CurrentVertex, b.Iterations
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	} else if v > 1 {
		return 1
	}
	return v
}

// hashNoise returns a deterministic pseudo random value in [0,1) from a
// vertex handle and worker thread id.
func hashNoise(v mesh.Vertex, thread int) float32 {
	h := uint32(v)*2654435761 + uint32(thread)*2246822519
	h ^= h >> 13
	h *= 3266489917
	h ^= h >> 16
	return float32(h) / (1 << 32)
}
