package sculpt

import (
	"github.com/soypat/sculpt/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Generic neighbor averaging operators used by laplacian smoothing. All of
// them are total functions over a valid vertex handle: a vertex with no
// neighbors averages to its own current value.

// AveragePosition returns the unweighted mean of the neighbor positions
// of v, or v's own position when v has no neighbors.
func AveragePosition(m mesh.Mesh, v mesh.Vertex) r3.Vec {
	var it mesh.NeighborIter
	var avg r3.Vec
	total := 0
	m.Neighbors(v, &it)
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		avg = r3.Add(avg, m.Position(n))
		total++
	}
	if total > 0 {
		return r3.Scale(1/float64(total), avg)
	}
	return m.Position(v)
}

// AveragePositionInterior is the boundary aware variant of AveragePosition.
// Boundary vertices average only their boundary neighbors so smoothing
// cannot pull an open edge into the interior. Corner vertices, those with
// two or fewer neighbors, are never moved.
func AveragePositionInterior(m mesh.Mesh, v mesh.Vertex) r3.Vec {
	var it mesh.NeighborIter
	var avg r3.Vec
	total := 0
	neighborCount := 0
	isBoundary := m.IsBoundary(v)

	m.Neighbors(v, &it)
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		neighborCount++
		if isBoundary {
			// Boundary vertices use only other boundary vertices.
			if m.IsBoundary(n) {
				avg = r3.Add(avg, m.Position(n))
				total++
			}
		} else {
			// Interior vertices use all neighbors.
			avg = r3.Add(avg, m.Position(n))
			total++
		}
	}
	// Do not modify corner vertices.
	if neighborCount <= 2 {
		return m.Position(v)
	}
	// Avoid division by 0 when there are no neighbors.
	if total == 0 {
		return m.Position(v)
	}
	return r3.Scale(1/float64(total), avg)
}

// AverageMask returns the unweighted mean of the neighbor mask values of v,
// or v's own mask when v has no neighbors.
func AverageMask(m mesh.Mesh, v mesh.Vertex) float32 {
	var it mesh.NeighborIter
	var avg float32
	total := 0
	m.Neighbors(v, &it)
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		avg += m.Mask(n)
		total++
	}
	if total > 0 {
		return avg / float32(total)
	}
	return m.Mask(v)
}

// AverageColor returns the unweighted mean of the neighbor colors of v, or
// v's own color when v has no neighbors.
func AverageColor(m mesh.Mesh, v mesh.Vertex) mesh.Color {
	var it mesh.NeighborIter
	var avg mesh.Color
	total := 0
	m.Neighbors(v, &it)
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		c := m.Color(n)
		for i := range avg {
			avg[i] += c[i]
		}
		total++
	}
	if total > 0 {
		for i := range avg {
			avg[i] /= float32(total)
		}
		return avg
	}
	return m.Color(v)
}
