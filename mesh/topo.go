package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Edge is an opaque edge handle into a Topo mesh.
type Edge int32

type topoEdge struct {
	v1, v2 Vertex
	// number of faces using the edge. One face means boundary edge.
	faces int16
}

func (e *topoEdge) other(v Vertex) Vertex {
	if e.v1 == v {
		return e.v2
	}
	return e.v1
}

type topoVert struct {
	// incident edges in insertion order. The live neighbor walk follows
	// this list, so iteration order is deterministic for fixed topology.
	edges []Edge
}

// Topo is the dynamic-topology mesh representation. There is no separate
// adjacency map: neighbor queries walk the vertex's live edge list, the way
// a sculpt mode with runtime remeshing keeps topology queries valid while
// edges appear and disappear.
type Topo struct {
	base
	verts []topoVert
	edges []topoEdge
	bound []bool
	// edge lookup used during construction and EdgeBetween.
	index map[[2]Vertex]Edge
}

var _ Mesh = (*Topo)(nil)

// NewTopo creates a dynamic-topology mesh from vertex positions.
// Topology is added with SetFaces.
func NewTopo(positions []r3.Vec) *Topo {
	return &Topo{
		base:  newBase(positions),
		verts: make([]topoVert, len(positions)),
		index: make(map[[2]Vertex]Edge),
	}
}

// SetFaces connects the mesh with a polygon face list and recomputes
// boundary flags and normals.
func (tm *Topo) SetFaces(faces [][]int) error {
	if err := tm.setFaceList(faces); err != nil {
		return err
	}
	for f := 0; f < tm.faceCount(); f++ {
		face := tm.face(f)
		for i, v := range face {
			tm.connectEdge(v, face[(i+1)%len(face)])
		}
	}
	tm.recalcBoundary()
	tm.RecalcNormals()
	return nil
}

func (tm *Topo) connectEdge(a, b Vertex) {
	k := edgeKey(a, b)
	e, ok := tm.index[k]
	if !ok {
		e = Edge(len(tm.edges))
		tm.edges = append(tm.edges, topoEdge{v1: k[0], v2: k[1]})
		tm.index[k] = e
		tm.verts[a].edges = append(tm.verts[a].edges, e)
		tm.verts[b].edges = append(tm.verts[b].edges, e)
	}
	tm.edges[e].faces++
}

func (tm *Topo) recalcBoundary() {
	tm.bound = make([]bool, tm.Len())
	for i := range tm.edges {
		if tm.edges[i].faces < 2 {
			tm.bound[tm.edges[i].v1] = true
			tm.bound[tm.edges[i].v2] = true
		}
	}
}

// Neighbors implements Mesh with a live walk over the edge list.
func (tm *Topo) Neighbors(v Vertex, it *NeighborIter) {
	*it = NeighborIter{tp: tm, v: v}
}

// IsBoundary implements Mesh.
func (tm *Topo) IsBoundary(v Vertex) bool {
	if tm.bound == nil {
		panic("mesh: topo boundary classification not built, call SetFaces before smoothing")
	}
	return tm.bound[v]
}

// Degree returns the number of edges incident to v.
func (tm *Topo) Degree(v Vertex) int { return len(tm.verts[v].edges) }

// VertEdges returns the edges incident to v. The returned slice is owned by
// the mesh and must not be mutated.
func (tm *Topo) VertEdges(v Vertex) []Edge { return tm.verts[v].edges }

// EdgeOther returns the endpoint of e that is not v.
func (tm *Topo) EdgeOther(e Edge, v Vertex) Vertex { return tm.edges[e].other(v) }

// EdgeIsBoundary reports whether e is used by fewer than two faces.
func (tm *Topo) EdgeIsBoundary(e Edge) bool { return tm.edges[e].faces < 2 }

// EdgeBetween returns the edge joining a and b, if any.
func (tm *Topo) EdgeBetween(a, b Vertex) (Edge, bool) {
	e, ok := tm.index[edgeKey(a, b)]
	return e, ok
}
