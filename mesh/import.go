package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/sculpt/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Weld merges duplicated triangle-soup vertices into a shared vertex list
// using vertexTol to decide which corners coincide. Triangle files such as
// STL repeat every corner per triangle, so welding is required before any
// topology can be built. vertexTol should be of the order of 1/1000th of the
// smallest triangle side in the model. If set to 0 it is inferred.
func Weld(triangles [][3]r3.Vec, vertexTol float64) (positions []r3.Vec, faces [][3]int, err error) {
	if len(triangles) == 0 {
		return nil, nil, errors.New("mesh: empty triangle slice")
	}
	bb := [2]r3.Vec{d3.Elem(math.MaxFloat64), d3.Elem(-math.MaxFloat64)}
	minDist2 := math.MaxFloat64
	maxDist2 := -math.MaxFloat64
	for i := range triangles {
		for j, vert := range triangles[i] {
			bb[0] = d3.MinElem(bb[0], vert)
			bb[1] = d3.MaxElem(bb[1], vert)
			side2 := r3.Norm2(r3.Sub(triangles[i][(j+1)%3], vert))
			minDist2 = math.Min(minDist2, side2)
			maxDist2 = math.Max(maxDist2, side2)
		}
	}
	suggested := math.Sqrt(minDist2) / 256
	if vertexTol > math.Sqrt(maxDist2)/2 {
		return nil, nil, fmt.Errorf("mesh: vertex tolerance too large to weld, suggested tolerance: %g", suggested)
	}
	if vertexTol == 0 {
		vertexTol = suggested
	}
	maxDim := d3.Max(r3.Sub(bb[1], bb[0]))
	div := int64(maxDim/vertexTol + 1e-12)
	if div <= 0 {
		return nil, nil, errors.New("mesh: tolerance larger than model size")
	}
	if div > math.MaxInt64/2 {
		return nil, nil, errors.New("mesh: tolerance too small, overflowed int64")
	}
	// Vertex index cache keyed by position quantized to resolution-space.
	cache := make(map[[3]int64]int)
	ri := 1 / vertexTol
	faces = make([][3]int, len(triangles))
	for i := range triangles {
		for j, vert := range triangles[i] {
			v := r3.Scale(ri, vert)
			vi := [3]int64{int64(v.X), int64(v.Y), int64(v.Z)}
			vertexIdx, ok := cache[vi]
			if !ok {
				vertexIdx = len(positions)
				cache[vi] = vertexIdx
				positions = append(positions, vert)
			}
			faces[i][j] = vertexIdx
		}
	}
	return positions, faces, nil
}

// NewGridFromTriangles welds a triangle soup and builds a static mesh from
// the result. See Weld for the tolerance argument.
func NewGridFromTriangles(triangles [][3]r3.Vec, vertexTol float64) (*Grid, error) {
	positions, faces, err := Weld(triangles, vertexTol)
	if err != nil {
		return nil, err
	}
	g := NewGrid(positions)
	return g, g.SetFaces(triFaces(faces))
}

// NewTopoFromTriangles welds a triangle soup and builds a dynamic-topology
// mesh from the result.
func NewTopoFromTriangles(triangles [][3]r3.Vec, vertexTol float64) (*Topo, error) {
	positions, faces, err := Weld(triangles, vertexTol)
	if err != nil {
		return nil, err
	}
	tm := NewTopo(positions)
	return tm, tm.SetFaces(triFaces(faces))
}

func triFaces(faces [][3]int) [][]int {
	out := make([][]int, len(faces))
	for i := range faces {
		out[i] = faces[i][:]
	}
	return out
}
