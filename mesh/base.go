package mesh

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// base holds the per-vertex attribute arrays and face list shared by both
// mesh representations. Topology lives in the embedding type.
type base struct {
	pos    []r3.Vec
	orig   []r3.Vec
	no     []r3.Vec
	mask   []float32
	color  []Color
	update []bool
	// faces stored as a flattened polygon list for normal recalculation.
	faceVerts []Vertex
	faceOff   []int32
}

func newBase(positions []r3.Vec) base {
	n := len(positions)
	b := base{
		pos:    make([]r3.Vec, n),
		orig:   make([]r3.Vec, n),
		no:     make([]r3.Vec, n),
		mask:   make([]float32, n),
		color:  make([]Color, n),
		update: make([]bool, n),
	}
	copy(b.pos, positions)
	copy(b.orig, positions)
	return b
}

func (b *base) Len() int                       { return len(b.pos) }
func (b *base) Position(v Vertex) r3.Vec       { return b.pos[v] }
func (b *base) SetPosition(v Vertex, p r3.Vec) { b.pos[v] = p }
func (b *base) Normal(v Vertex) r3.Vec         { return b.no[v] }
func (b *base) Original(v Vertex) r3.Vec       { return b.orig[v] }
func (b *base) SaveOriginal()                  { copy(b.orig, b.pos) }
func (b *base) Mask(v Vertex) float32          { return b.mask[v] }
func (b *base) SetMask(v Vertex, m float32)    { b.mask[v] = m }
func (b *base) Color(v Vertex) Color           { return b.color[v] }
func (b *base) SetColor(v Vertex, c Color)     { b.color[v] = c }
func (b *base) TagUpdate(v Vertex)             { b.update[v] = true }
func (b *base) Updated(v Vertex) bool          { return b.update[v] }

// ClearUpdates resets the per-vertex redraw flags, typically after the
// caller consumed them to refresh a viewport.
func (b *base) ClearUpdates() {
	for i := range b.update {
		b.update[i] = false
	}
}

func (b *base) setFaceList(faces [][]int) error {
	b.faceVerts = b.faceVerts[:0]
	b.faceOff = append(b.faceOff[:0], 0)
	for _, face := range faces {
		if len(face) < 3 {
			return errors.New("mesh: face with fewer than 3 vertices")
		}
		for _, vi := range face {
			if vi < 0 || vi >= b.Len() {
				return errors.New("mesh: face vertex index out of range")
			}
			b.faceVerts = append(b.faceVerts, Vertex(vi))
		}
		b.faceOff = append(b.faceOff, int32(len(b.faceVerts)))
	}
	return nil
}

func (b *base) face(i int) []Vertex {
	return b.faceVerts[b.faceOff[i]:b.faceOff[i+1]]
}

func (b *base) faceCount() int { return len(b.faceOff) - 1 }

// RecalcNormals rebuilds vertex normals from the face list using corner
// angle weighted face normals.
func (b *base) RecalcNormals() {
	for i := range b.no {
		b.no[i] = r3.Vec{}
	}
	for f := 0; f < b.faceCount(); f++ {
		face := b.face(f)
		fn := faceNormal(b.pos, face)
		for j, v := range face {
			prev := b.pos[face[(j+len(face)-1)%len(face)]]
			next := b.pos[face[(j+1)%len(face)]]
			s1 := r3.Sub(prev, b.pos[v])
			s2 := r3.Sub(next, b.pos[v])
			alpha := math.Acos(clampf(r3.Cos(s1, s2), -1, 1))
			b.no[v] = r3.Add(b.no[v], r3.Scale(alpha, fn))
		}
	}
	for i, n := range b.no {
		if r3.Norm(n) > 0 {
			b.no[i] = r3.Unit(n)
		}
	}
}

// faceNormal computes a polygon normal by summing the cross products of
// consecutive edges about the first vertex. Exact for planar faces.
func faceNormal(pos []r3.Vec, face []Vertex) r3.Vec {
	var n r3.Vec
	p0 := pos[face[0]]
	for i := 1; i < len(face)-1; i++ {
		e1 := r3.Sub(pos[face[i]], p0)
		e2 := r3.Sub(pos[face[i+1]], p0)
		n = r3.Add(n, r3.Cross(e1, e2))
	}
	if r3.Norm(n) == 0 {
		return n
	}
	return r3.Unit(n)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}

// edgeKey is an undirected edge identifier with the lower index first.
func edgeKey(a, b Vertex) [2]Vertex {
	if a > b {
		a, b = b, a
	}
	return [2]Vertex{a, b}
}
