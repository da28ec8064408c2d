package mesh_test

import (
	"testing"

	"github.com/soypat/sculpt/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// grid3x3 returns the positions and quad faces of a flat 3x3 vertex grid
// with unit spacing. Vertex j*3+i sits at (i, j, 0). The 8 border vertices
// are boundary, the center vertex 4 is interior with 4 neighbors.
func grid3x3() (positions []r3.Vec, faces [][]int) {
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			positions = append(positions, r3.Vec{X: float64(i), Y: float64(j)})
		}
	}
	for j := 0; j < 2; j++ {
		for i := 0; i < 2; i++ {
			v := func(di, dj int) int { return (j+dj)*3 + i + di }
			faces = append(faces, []int{v(0, 0), v(1, 0), v(1, 1), v(0, 1)})
		}
	}
	return positions, faces
}

func newGrid3x3(t *testing.T) *mesh.Grid {
	t.Helper()
	positions, faces := grid3x3()
	g := mesh.NewGrid(positions)
	if err := g.SetFaces(faces); err != nil {
		t.Fatal(err)
	}
	return g
}

func newTopo3x3(t *testing.T) *mesh.Topo {
	t.Helper()
	positions, faces := grid3x3()
	tm := mesh.NewTopo(positions)
	if err := tm.SetFaces(faces); err != nil {
		t.Fatal(err)
	}
	return tm
}

func neighborsOf(m mesh.Mesh, v mesh.Vertex) []mesh.Vertex {
	var it mesh.NeighborIter
	var out []mesh.Vertex
	m.Neighbors(v, &it)
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		out = append(out, n)
	}
	return out
}

func TestNeighborSymmetry(t *testing.T) {
	for name, m := range map[string]mesh.Mesh{
		"grid": newGrid3x3(t),
		"topo": newTopo3x3(t),
	} {
		for v := 0; v < m.Len(); v++ {
			for _, n := range neighborsOf(m, mesh.Vertex(v)) {
				back := neighborsOf(m, n)
				found := false
				for _, b := range back {
					if b == mesh.Vertex(v) {
						found = true
					}
				}
				if !found {
					t.Errorf("%s: %d is neighbor of %d but not vice versa", name, n, v)
				}
			}
		}
	}
}

func TestNeighborDeterminism(t *testing.T) {
	for name, m := range map[string]mesh.Mesh{
		"grid": newGrid3x3(t),
		"topo": newTopo3x3(t),
	} {
		for v := 0; v < m.Len(); v++ {
			first := neighborsOf(m, mesh.Vertex(v))
			second := neighborsOf(m, mesh.Vertex(v))
			if len(first) != len(second) {
				t.Fatalf("%s: neighbor count changed between runs", name)
			}
			for i := range first {
				if first[i] != second[i] {
					t.Errorf("%s: neighbor order not deterministic for vertex %d", name, v)
				}
			}
		}
	}
}

func TestNeighborIterReset(t *testing.T) {
	g := newGrid3x3(t)
	var it mesh.NeighborIter
	g.Neighbors(4, &it)
	first, _ := it.Next()
	for _, ok := it.Next(); ok; _, ok = it.Next() {
	}
	it.Reset()
	again, ok := it.Next()
	if !ok || again != first {
		t.Errorf("reset iterator yielded %d, want %d", again, first)
	}
}

func TestCenterNeighbors(t *testing.T) {
	// Quad faces give the center vertex a 4-neighborhood.
	for name, m := range map[string]mesh.Mesh{
		"grid": newGrid3x3(t),
		"topo": newTopo3x3(t),
	} {
		got := neighborsOf(m, 4)
		want := map[mesh.Vertex]bool{1: true, 3: true, 5: true, 7: true}
		if len(got) != 4 {
			t.Fatalf("%s: center has %d neighbors, want 4", name, len(got))
		}
		for _, n := range got {
			if !want[n] {
				t.Errorf("%s: unexpected center neighbor %d", name, n)
			}
		}
	}
}

func TestBoundaryClassification(t *testing.T) {
	for name, m := range map[string]mesh.Mesh{
		"grid": newGrid3x3(t),
		"topo": newTopo3x3(t),
	} {
		for v := 0; v < m.Len(); v++ {
			wantBoundary := v != 4
			if m.IsBoundary(mesh.Vertex(v)) != wantBoundary {
				t.Errorf("%s: vertex %d boundary=%v, want %v", name, v, !wantBoundary, wantBoundary)
			}
		}
	}
}

func TestGridWithoutTopologyPanics(t *testing.T) {
	g := mesh.NewGrid([]r3.Vec{{}, {X: 1}})
	defer func() {
		if recover() == nil {
			t.Error("neighbor query on topology-less grid did not panic")
		}
	}()
	var it mesh.NeighborIter
	g.Neighbors(0, &it)
}

func TestTopoEdgeBoundary(t *testing.T) {
	tm := newTopo3x3(t)
	e, ok := tm.EdgeBetween(0, 1)
	if !ok {
		t.Fatal("edge 0-1 missing")
	}
	if !tm.EdgeIsBoundary(e) {
		t.Error("outer ring edge 0-1 not classified boundary")
	}
	e, ok = tm.EdgeBetween(1, 4)
	if !ok {
		t.Fatal("edge 1-4 missing")
	}
	if tm.EdgeIsBoundary(e) {
		t.Error("interior edge 1-4 classified boundary")
	}
	if tm.EdgeOther(e, 1) != 4 || tm.EdgeOther(e, 4) != 1 {
		t.Error("EdgeOther endpoints wrong")
	}
}

func TestWeldCube(t *testing.T) {
	// Unit cube as a 12 triangle soup: welding must produce 8 shared
	// vertices, all of them interior to the closed surface.
	var quads [][4]r3.Vec
	for axis := 0; axis < 3; axis++ {
		for _, side := range []float64{0, 1} {
			var q [4]r3.Vec
			for k := 0; k < 4; k++ {
				u, v := float64(k&1), float64(k>>1)
				switch axis {
				case 0:
					q[k] = r3.Vec{X: side, Y: u, Z: v}
				case 1:
					q[k] = r3.Vec{X: u, Y: side, Z: v}
				default:
					q[k] = r3.Vec{X: u, Y: v, Z: side}
				}
			}
			quads = append(quads, q)
		}
	}
	var tris [][3]r3.Vec
	for _, q := range quads {
		tris = append(tris, [3]r3.Vec{q[0], q[1], q[3]}, [3]r3.Vec{q[0], q[3], q[2]})
	}
	g, err := mesh.NewGridFromTriangles(tris, 0)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 8 {
		t.Fatalf("welded cube has %d vertices, want 8", g.Len())
	}
	for v := 0; v < g.Len(); v++ {
		if g.IsBoundary(mesh.Vertex(v)) {
			t.Errorf("closed surface vertex %d classified boundary", v)
		}
		if d := g.Degree(mesh.Vertex(v)); d < 3 {
			t.Errorf("cube corner %d has degree %d, want at least 3", v, d)
		}
	}
}

func TestSaveOriginal(t *testing.T) {
	g := newGrid3x3(t)
	g.SaveOriginal()
	moved := r3.Vec{X: 9, Y: 9, Z: 9}
	g.SetPosition(4, moved)
	if got := g.Original(4); got == moved {
		t.Error("Original tracked live position")
	}
	g.SaveOriginal()
	if got := g.Original(4); got != moved {
		t.Errorf("Original after snapshot = %v, want %v", got, moved)
	}
}

func TestAttributes(t *testing.T) {
	g := newGrid3x3(t)
	g.SetMask(4, 0.25)
	if g.Mask(4) != 0.25 {
		t.Error("mask roundtrip failed")
	}
	c := mesh.Color{0.1, 0.2, 0.3, 1}
	g.SetColor(4, c)
	if g.Color(4) != c {
		t.Error("color roundtrip failed")
	}
	if g.Updated(4) {
		t.Error("fresh vertex already tagged for update")
	}
	g.TagUpdate(4)
	if !g.Updated(4) {
		t.Error("TagUpdate not visible")
	}
	g.ClearUpdates()
	if g.Updated(4) {
		t.Error("ClearUpdates left flag set")
	}
}

func TestNormalsFlatGrid(t *testing.T) {
	g := newGrid3x3(t)
	want := r3.Vec{Z: 1}
	for v := 0; v < g.Len(); v++ {
		if n := g.Normal(mesh.Vertex(v)); r3.Norm(r3.Sub(n, want)) > 1e-12 {
			t.Errorf("vertex %d normal %v, want %v", v, n, want)
		}
	}
}
