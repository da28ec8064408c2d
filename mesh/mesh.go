// Package mesh provides the deformable surface representations consumed by
// the sculpt smoothing algorithms: a static indexed mesh with precomputed
// adjacency (Grid) and a dynamic-topology mesh walked live through its edge
// list (Topo). Both expose the same capability interface so the smoothing
// code is written once.
package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is an opaque vertex handle. It is valid for the lifetime of the
// mesh that produced it.
type Vertex int

// Color is a 4 component RGBA vertex attribute.
type Color [4]float32

// Mesh is the topology and attribute capability interface required by the
// smoothing algorithms. Implementations must guarantee a symmetric neighbor
// relation: if b is yielded as a neighbor of a then a is yielded as a
// neighbor of b. Neighbor order is unspecified but stable for a fixed
// topology.
type Mesh interface {
	// Len returns the number of vertices in the mesh.
	Len() int
	Position(v Vertex) r3.Vec
	SetPosition(v Vertex, p r3.Vec)
	Normal(v Vertex) r3.Vec
	// Original returns the position of v as captured by the last
	// SaveOriginal call.
	Original(v Vertex) r3.Vec
	// SaveOriginal snapshots current positions. Called at stroke start so
	// multi-step algorithms can blend against pre-stroke shape.
	SaveOriginal()
	Mask(v Vertex) float32
	SetMask(v Vertex, m float32)
	Color(v Vertex) Color
	SetColor(v Vertex, c Color)
	// IsBoundary reports whether v lies on a mesh boundary. The
	// classification is built with the topology and is stable during a
	// stroke.
	IsBoundary(v Vertex) bool
	// Neighbors initializes it to iterate the vertices adjacent to v.
	// The iterator may be reused across calls and does not allocate.
	Neighbors(v Vertex, it *NeighborIter)
	// TagUpdate marks v as needing a redraw update.
	TagUpdate(v Vertex)
	Updated(v Vertex) bool
}

// NeighborIter iterates over the neighbors of a single vertex. The zero
// value is empty; obtain a valid iterator from Mesh.Neighbors. A single
// iterator value can be reused for any number of vertices, which keeps
// neighbor queries allocation free in the per-vertex hot loops.
type NeighborIter struct {
	// Indexed representation: precomputed adjacency run for the vertex.
	adj []Vertex
	// Dynamic representation: live walk over the vertex's edge list.
	tp *Topo
	v  Vertex
	i  int
}

// Next returns the next neighbor. ok is false once the neighbor set is
// exhausted.
func (it *NeighborIter) Next() (n Vertex, ok bool) {
	if it.tp != nil {
		edges := it.tp.verts[it.v].edges
		if it.i >= len(edges) {
			return 0, false
		}
		e := &it.tp.edges[edges[it.i]]
		it.i++
		return e.other(it.v), true
	}
	if it.i >= len(it.adj) {
		return 0, false
	}
	n = it.adj[it.i]
	it.i++
	return n, true
}

// Reset rewinds the iterator to the first neighbor of the vertex it was
// initialized with.
func (it *NeighborIter) Reset() { it.i = 0 }
