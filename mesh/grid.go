package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Grid is the static indexed mesh representation. Vertex adjacency is
// precomputed from the face list once and queried through flattened
// per-vertex runs, so neighbor iteration is an index walk with no lookups.
type Grid struct {
	base
	// adjacency runs, adj[adjOff[v]:adjOff[v+1]] are the neighbors of v.
	adj    []Vertex
	adjOff []int32
	bound  []bool
}

var _ Mesh = (*Grid)(nil)

// NewGrid creates a static mesh from vertex positions. The mesh has no
// topology until SetFaces is called; neighbor and boundary queries on a
// topology-less Grid are a caller bug and panic.
func NewGrid(positions []r3.Vec) *Grid {
	return &Grid{base: newBase(positions)}
}

// SetFaces builds the adjacency map, boundary classification and vertex
// normals from a polygon face list. Faces may mix triangles and quads.
func (g *Grid) SetFaces(faces [][]int) error {
	if err := g.setFaceList(faces); err != nil {
		return err
	}
	n := g.Len()
	// Unique incident vertices per vertex. Edge face counts drive the
	// boundary classification: an edge used by exactly one face is a
	// boundary edge and both its endpoints are boundary vertices.
	edgeFaces := make(map[[2]Vertex]int, 3*len(faces))
	adj := make([][]Vertex, n)
	for f := 0; f < g.faceCount(); f++ {
		face := g.face(f)
		for i, v := range face {
			w := face[(i+1)%len(face)]
			k := edgeKey(v, w)
			if edgeFaces[k] == 0 {
				adj[v] = append(adj[v], w)
				adj[w] = append(adj[w], v)
			}
			edgeFaces[k]++
		}
	}
	g.bound = make([]bool, n)
	for k, count := range edgeFaces {
		if count == 1 {
			g.bound[k[0]] = true
			g.bound[k[1]] = true
		}
	}
	g.adjOff = make([]int32, n+1)
	g.adj = g.adj[:0]
	for v := 0; v < n; v++ {
		g.adjOff[v] = int32(len(g.adj))
		g.adj = append(g.adj, adj[v]...)
	}
	g.adjOff[n] = int32(len(g.adj))
	g.RecalcNormals()
	return nil
}

// Neighbors implements Mesh. Panics if SetFaces was never called since the
// adjacency map is a hard precondition for smoothing.
func (g *Grid) Neighbors(v Vertex, it *NeighborIter) {
	if g.adjOff == nil {
		panic("mesh: grid adjacency not built, call SetFaces before smoothing")
	}
	*it = NeighborIter{adj: g.adj[g.adjOff[v]:g.adjOff[v+1]]}
}

// IsBoundary implements Mesh.
func (g *Grid) IsBoundary(v Vertex) bool {
	if g.bound == nil {
		panic("mesh: grid boundary classification not built, call SetFaces before smoothing")
	}
	return g.bound[v]
}

// Degree returns the number of vertices adjacent to v.
func (g *Grid) Degree(v Vertex) int {
	if g.adjOff == nil {
		panic("mesh: grid adjacency not built, call SetFaces before smoothing")
	}
	return int(g.adjOff[v+1] - g.adjOff[v])
}
