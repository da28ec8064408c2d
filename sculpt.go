// Package sculpt implements a parallel mesh-smoothing engine for interactive
// sculpting. A brush stroke supplies a set of disjoint node batches covering
// the affected vertices; the engine fans the batches out over worker
// goroutines and moves each vertex toward a locally smoothed configuration
// under the brush falloff, preserving volume and boundary shape.
//
// The algorithms are written once against the mesh.Mesh capability interface
// and work with both mesh representations in package mesh.
package sculpt

import (
	"github.com/soypat/sculpt/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Brush supplies falloff, strength and constraint evaluation for a stroke
// step. It is read-only during smoothing. Implementations are expected to
// clamp their own parameters into documented ranges rather than error.
type Brush interface {
	// TestSq tests p against the brush falloff shape. It returns the
	// squared falloff distance and whether p is inside the area of effect.
	TestSq(p r3.Vec) (dist2 float64, in bool)
	// Strength evaluates the combined falloff, texture and pressure factor
	// for a vertex. thread is the worker thread identifier used to seed
	// per-thread noise.
	Strength(p, normal r3.Vec, dist float64, mask float32, v mesh.Vertex, thread int) float64
	// Clip constrains a proposed new position with the brush's axis locks
	// and returns the position to apply.
	Clip(co, proposed r3.Vec) r3.Vec
	// SurfaceSmooth returns the HC smoothing parameters: shape
	// preservation alpha, current vertex beta and iteration count.
	SurfaceSmooth() (alpha, beta float64, iterations int)
}

// Node is one disjoint batch of vertices processed by a single task. The
// partition is supplied externally (typically by a spatial hierarchy); the
// engine only requires that no vertex appears in more than one node, which
// is what makes lock-free parallel writes safe.
type Node struct {
	Verts []mesh.Vertex
}

// PartitionVertices splits all vertices of m into nodes of at most batch
// vertices. Convenience partitioner for tools that smooth a whole mesh and
// have no spatial hierarchy of their own.
func PartitionVertices(m mesh.Mesh, batch int) []Node {
	if batch <= 0 {
		panic("sculpt: batch size must be positive")
	}
	n := m.Len()
	nodes := make([]Node, 0, (n+batch-1)/batch)
	for start := 0; start < n; start += batch {
		end := min(start+batch, n)
		verts := make([]mesh.Vertex, 0, end-start)
		for v := start; v < end; v++ {
			verts = append(verts, mesh.Vertex(v))
		}
		nodes = append(nodes, Node{Verts: verts})
	}
	return nodes
}

// Clamp x between lo and hi, assume lo <= hi.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	} else if x > hi {
		return hi
	}
	return x
}
