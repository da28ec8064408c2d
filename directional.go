package sculpt

import (
	"github.com/soypat/sculpt/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// FourNeighborAverage averages the neighbors of v on a dynamic-topology mesh
// based on an orthogonality measure against the reference direction dir,
// which must be a unit vector. Edges at roughly 45 degrees to dir dominate
// the average, so repeated application naturally converges the neighborhood
// to a quad-like structure. The along-normal component of the resulting
// displacement is removed to preserve volume.
//
// If any incident edge is a boundary edge the average is v's own position:
// directional smoothing never crosses a mesh boundary. A degenerate ring
// whose edges are all numerically parallel or perpendicular to dir yields
// zero total weight; the vertex's own position is returned then as well.
func FourNeighborAverage(tm *mesh.Topo, dir r3.Vec, v mesh.Vertex) r3.Vec {
	var avg r3.Vec
	tot := 0.0

	co := tm.Position(v)
	no := tm.Normal(v)
	for _, e := range tm.VertEdges(v) {
		if tm.EdgeIsBoundary(e) {
			return co
		}
		other := tm.EdgeOther(e, v)
		otherCo := tm.Position(other)
		// Reject the edge vector onto the tangent plane of v.
		vec := r3.Sub(otherCo, co)
		vec = r3.Sub(vec, r3.Scale(r3.Dot(vec, no), no))
		if r3.Norm(vec) > 0 {
			vec = r3.Unit(vec)
		}
		// fac is a measure of how orthogonal or parallel the edge is
		// relative to the direction.
		fac := r3.Dot(vec, dir)
		fac = fac*fac - 0.5
		fac *= fac
		avg = r3.Add(avg, r3.Scale(fac, otherCo))
		tot += fac
	}
	if tot <= 0 {
		return co
	}
	avg = r3.Scale(1/tot, avg)

	// Preserve volume: keep only the tangential component of the move.
	disp := r3.Sub(avg, co)
	disp = r3.Sub(disp, r3.Scale(r3.Dot(disp, no), no))
	return r3.Add(co, disp)
}
