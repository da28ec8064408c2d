package sculpt_test

import (
	"math"
	"testing"

	"github.com/soypat/sculpt"
	"github.com/soypat/sculpt/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestFourNeighborAverageBoundaryShortCircuit(t *testing.T) {
	tm := newTopo(t, 3)
	// Every edge of an outer ring vertex that touches the rim is a
	// boundary edge: the average must be the vertex's own position.
	for _, v := range []mesh.Vertex{0, 1, 2, 3, 5, 6, 7, 8} {
		co := tm.Position(v)
		got := sculpt.FourNeighborAverage(tm, r3.Vec{X: 1}, v)
		if got != co {
			t.Errorf("boundary vertex %d moved: %v != %v", v, got, co)
		}
	}
}

func TestFourNeighborAverageVolumePreserved(t *testing.T) {
	// Raise the center of the grid. The directional average projects the
	// proposed move onto the tangent plane, so the along-normal bump must
	// survive and the symmetric tangential pull cancels: the center stays
	// exactly where it is.
	tm := newTopo(t, 3)
	raised := r3.Vec{X: 1, Y: 1, Z: 0.5}
	tm.SetPosition(4, raised)
	tm.RecalcNormals()
	if n := tm.Normal(4); math.Abs(n.X) > 1e-9 || math.Abs(n.Y) > 1e-9 {
		t.Fatalf("expected symmetric center normal along z, got %v", n)
	}
	got := sculpt.FourNeighborAverage(tm, r3.Vec{X: 1}, 4)
	if r3.Norm(r3.Sub(got, raised)) > 1e-9 {
		t.Errorf("center moved to %v, want %v", got, raised)
	}
}

func TestFourNeighborAverageDegenerateWeight(t *testing.T) {
	// With the reference direction at 45 degrees to every edge of the
	// flat center ring each quartic weight vanishes. The documented
	// fallback is the vertex's own position.
	tm := newTopo(t, 3)
	dir := r3.Unit(r3.Vec{X: 1, Y: 1})
	co := tm.Position(4)
	if got := sculpt.FourNeighborAverage(tm, dir, 4); got != co {
		t.Errorf("degenerate ring averaged to %v, want own position %v", got, co)
	}
}

func TestFourNeighborAverageFavorsAlignedStructure(t *testing.T) {
	// Perturb one neighbor tangentially. With dir along x the x-aligned
	// edges carry the same weight as the y-aligned ones on an unperturbed
	// grid; moving neighbor 5 shifts the average toward it in the tangent
	// plane only.
	tm := newTopo(t, 3)
	tm.SetPosition(5, r3.Vec{X: 2.5, Y: 1})
	tm.RecalcNormals()
	got := sculpt.FourNeighborAverage(tm, r3.Vec{X: 1}, 4)
	if got.X <= 1 {
		t.Errorf("average x = %v, want pulled toward displaced neighbor", got.X)
	}
	if math.Abs(got.Z) > 1e-9 {
		t.Errorf("average left the tangent plane: z = %v", got.Z)
	}
}
