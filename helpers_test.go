package sculpt_test

import (
	"testing"

	"github.com/soypat/sculpt"
	"github.com/soypat/sculpt/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// gridQuads returns positions and quad faces of a flat n by n vertex grid
// with unit spacing, vertex j*n+i at (i, j, 0).
func gridQuads(n int) (positions []r3.Vec, faces [][]int) {
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			positions = append(positions, r3.Vec{X: float64(i), Y: float64(j)})
		}
	}
	for j := 0; j < n-1; j++ {
		for i := 0; i < n-1; i++ {
			v := func(di, dj int) int { return (j+dj)*n + i + di }
			faces = append(faces, []int{v(0, 0), v(1, 0), v(1, 1), v(0, 1)})
		}
	}
	return positions, faces
}

func newGrid(t *testing.T, n int) *mesh.Grid {
	t.Helper()
	positions, faces := gridQuads(n)
	g := mesh.NewGrid(positions)
	if err := g.SetFaces(faces); err != nil {
		t.Fatal(err)
	}
	return g
}

func newTopo(t *testing.T, n int) *mesh.Topo {
	t.Helper()
	positions, faces := gridQuads(n)
	tm := mesh.NewTopo(positions)
	if err := tm.SetFaces(faces); err != nil {
		t.Fatal(err)
	}
	return tm
}

// newGridIsolated returns a 3x3 grid with one extra vertex that belongs to
// no face, so it has degree 0.
func newGridIsolated(t *testing.T) (*mesh.Grid, mesh.Vertex) {
	t.Helper()
	positions, faces := gridQuads(3)
	positions = append(positions, r3.Vec{X: 5, Y: 5})
	g := mesh.NewGrid(positions)
	if err := g.SetFaces(faces); err != nil {
		t.Fatal(err)
	}
	return g, mesh.Vertex(len(positions) - 1)
}

func allNodes(m mesh.Mesh) []sculpt.Node {
	verts := make([]mesh.Vertex, m.Len())
	for i := range verts {
		verts[i] = mesh.Vertex(i)
	}
	return []sculpt.Node{{Verts: verts}}
}

func snapshot(m mesh.Mesh) []r3.Vec {
	out := make([]r3.Vec, m.Len())
	for i := range out {
		out[i] = m.Position(mesh.Vertex(i))
	}
	return out
}

// constBrush covers every vertex with a constant strength factor and no
// clipping. Exact control for algorithm tests.
type constBrush struct {
	strength    float64
	alpha, beta float64
	iterations  int
}

func (b *constBrush) TestSq(p r3.Vec) (float64, bool) { return r3.Norm2(p), true }

func (b *constBrush) Strength(p, normal r3.Vec, dist float64, mask float32, v mesh.Vertex, thread int) float64 {
	return b.strength
}

func (b *constBrush) Clip(co, proposed r3.Vec) r3.Vec { return proposed }

func (b *constBrush) SurfaceSmooth() (alpha, beta float64, iterations int) {
	return b.alpha, b.beta, b.iterations
}
