package sculpt

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/sculpt/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// smoothMaxIterations caps the number of full smoothing passes per step.
// Strength in [0,1] maps to whole passes plus one fractional pass, which
// approximates a continuous smoothing operator without per-vertex
// fractional step sizes.
const smoothMaxIterations = 4

// Smooth applies plain laplacian smoothing to every node batch. bstrength
// selects the iteration mix: floor(bstrength*4) full passes followed by one
// partial pass. With smoothMask set the vertex mask attribute is smoothed
// instead of positions. Passes are sequential barriers; batches within a
// pass run in parallel.
func Smooth(s *Session, b Brush, nodes []Node, bstrength float64, smoothMask bool) {
	bstrength = clamp(bstrength, 0, 1)
	const fract = 1.0 / smoothMaxIterations
	count := int(bstrength * smoothMaxIterations)
	last := smoothMaxIterations * (bstrength - float64(count)*fract)

	settings := RangeSettings(len(nodes))
	for iteration := 0; iteration <= count; iteration++ {
		strength := last
		if iteration != count {
			strength = 1
		}
		ParallelRange(len(nodes), settings, func(n int, tls *TLS) {
			smoothNode(s.Mesh, b, nodes[n], strength, smoothMask, tls)
		})
	}
}

func smoothNode(m mesh.Mesh, b Brush, node Node, strength float64, smoothMask bool, tls *TLS) {
	strength = clamp(strength, 0, 1)
	for _, v := range node.Verts {
		co := m.Position(v)
		dist2, in := b.TestSq(co)
		if !in {
			continue
		}
		strengthMask := m.Mask(v)
		if smoothMask {
			strengthMask = 0
		}
		fade := strength * b.Strength(co, m.Normal(v), math.Sqrt(dist2), strengthMask, v, tls.Thread)
		if smoothMask {
			val := (AverageMask(m, v) - m.Mask(v)) * float32(fade*strength)
			m.SetMask(v, math32.Min(1, math32.Max(0, m.Mask(v)+val)))
		} else {
			avg := AveragePositionInterior(m, v)
			val := r3.Add(co, r3.Scale(fade, r3.Sub(avg, co)))
			m.SetPosition(v, b.Clip(co, val))
		}
		m.TagUpdate(v)
	}
}

// SmoothColors applies the fractional iteration scheme of Smooth to the
// 4 component vertex color attribute.
func SmoothColors(s *Session, b Brush, nodes []Node, bstrength float64) {
	bstrength = clamp(bstrength, 0, 1)
	const fract = 1.0 / smoothMaxIterations
	count := int(bstrength * smoothMaxIterations)
	last := smoothMaxIterations * (bstrength - float64(count)*fract)

	m := s.Mesh
	settings := RangeSettings(len(nodes))
	for iteration := 0; iteration <= count; iteration++ {
		strength := last
		if iteration != count {
			strength = 1
		}
		ParallelRange(len(nodes), settings, func(n int, tls *TLS) {
			for _, v := range nodes[n].Verts {
				co := m.Position(v)
				dist2, in := b.TestSq(co)
				if !in {
					continue
				}
				fade := float32(strength * b.Strength(co, m.Normal(v), math.Sqrt(dist2), m.Mask(v), v, tls.Thread))
				avg := AverageColor(m, v)
				col := m.Color(v)
				for i := range col {
					col[i] += (avg[i] - col[i]) * fade
					col[i] = math32.Min(1, math32.Max(0, col[i]))
				}
				m.SetColor(v, col)
				m.TagUpdate(v)
			}
		})
	}
}

// EnhanceDetails is the inverse of smoothing: on the first step of the
// stroke it caches, for every vertex, the displacement from the vertex to
// its laplacian-smoothed position, and on every step it pushes affected
// vertices against that direction to amplify existing surface detail.
func EnhanceDetails(s *Session, b Brush, nodes []Node) {
	c := s.Cache()
	m := s.Mesh

	if c.FirstStep() {
		dirs := c.allocDetailDirections(m.Len())
		for i := range dirs {
			v := mesh.Vertex(i)
			dirs[i] = r3.Sub(AveragePosition(m, v), m.Position(v))
		}
	}
	bstrength := clamp(c.Bstrength, -1, 1)

	settings := RangeSettings(len(nodes))
	ParallelRange(len(nodes), settings, func(n int, tls *TLS) {
		for _, v := range nodes[n].Verts {
			co := m.Position(v)
			dist2, in := b.TestSq(co)
			if !in {
				continue
			}
			fade := bstrength * b.Strength(co, m.Normal(v), math.Sqrt(dist2), m.Mask(v), v, tls.Thread)
			disp := r3.Add(co, r3.Scale(fade, c.detailDirections[v]))
			m.SetPosition(v, b.Clip(co, disp))
			m.TagUpdate(v)
		}
	})
}

// SmoothBrush is the smooth tool entry point. The single signed strength
// control doubles as a mode switch: non-positive stroke strength dispatches
// to detail enhancement, positive strength to plain smoothing.
func SmoothBrush(s *Session, b Brush, nodes []Node) {
	c := s.Cache()
	if c.Bstrength <= 0 {
		// Invert mode, intensify details.
		EnhanceDetails(s, b, nodes)
	} else {
		// Regular mode, smooth.
		Smooth(s, b, nodes, c.Bstrength, false)
	}
}

// HC smooth algorithm.
// From: Improved Laplacian Smoothing of Noisy Surface Meshes.

// SurfaceSmoothLaplacianStep computes the laplacian half of one HC
// iteration for a single vertex. It records the correction signal
// laplacianDisp[v], the difference between the smoothed position and the
// alpha blend of original and current position, and returns the raw
// displacement toward the neighbor average for the caller to apply under
// its fade.
func SurfaceSmoothLaplacianStep(m mesh.Mesh, laplacianDisp []r3.Vec, v mesh.Vertex, origco r3.Vec, alpha float64) (disp r3.Vec) {
	smoothed := AveragePosition(m, v)
	co := m.Position(v)

	weighted := r3.Add(r3.Scale(alpha, origco), r3.Scale(1-alpha, co))
	laplacianDisp[v] = r3.Sub(smoothed, weighted)
	return r3.Sub(smoothed, co)
}

// SurfaceSmoothDisplaceStep applies the displacement half of one HC
// iteration for a single vertex: the neighbor average of the correction
// signal blended with the vertex's own signal by beta is subtracted from
// the position, undoing the shrinkage bias of the laplacian half.
func SurfaceSmoothDisplaceStep(m mesh.Mesh, laplacianDisp []r3.Vec, v mesh.Vertex, beta, fade float64) {
	var it mesh.NeighborIter
	var avg r3.Vec
	total := 0
	m.Neighbors(v, &it)
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		avg = r3.Add(avg, laplacianDisp[n])
		total++
	}
	if total == 0 {
		return
	}
	correction := r3.Scale((1-beta)/float64(total), avg)
	correction = r3.Add(correction, r3.Scale(beta, laplacianDisp[v]))
	correction = r3.Scale(clamp(fade, 0, 1), correction)
	m.SetPosition(v, r3.Sub(m.Position(v), correction))
}

// SurfaceSmooth runs the two-pass HC smoothing brush over the node batches.
// Each iteration performs a laplacian pass followed by a displacement pass
// with a barrier in between, since the displacement pass reads the
// correction buffer written by every laplacian task.
func SurfaceSmooth(s *Session, b Brush, nodes []Node) {
	c := s.Cache()
	m := s.Mesh
	alpha, beta, iterations := b.SurfaceSmooth()
	alpha = clamp(alpha, 0, 1)
	beta = clamp(beta, 0, 1)
	if iterations < 1 {
		iterations = 1
	}

	if c.FirstStep() {
		c.allocLaplacianDisp(m.Len())
	}
	laplacianDisp := c.laplacianDisp
	if len(laplacianDisp) != m.Len() {
		panic("sculpt: laplacian displacement buffer not sized to mesh")
	}
	bstrength := c.Bstrength

	settings := RangeSettings(len(nodes))
	for i := 0; i < iterations; i++ {
		ParallelRange(len(nodes), settings, func(n int, tls *TLS) {
			for _, v := range nodes[n].Verts {
				co := m.Position(v)
				dist2, in := b.TestSq(co)
				if !in {
					continue
				}
				fade := bstrength * b.Strength(co, m.Normal(v), math.Sqrt(dist2), m.Mask(v), v, tls.Thread)
				disp := SurfaceSmoothLaplacianStep(m, laplacianDisp, v, m.Original(v), alpha)
				m.SetPosition(v, r3.Add(co, r3.Scale(clamp(fade, 0, 1), disp)))
				m.TagUpdate(v)
			}
		})
		ParallelRange(len(nodes), settings, func(n int, tls *TLS) {
			for _, v := range nodes[n].Verts {
				co := m.Position(v)
				dist2, in := b.TestSq(co)
				if !in {
					continue
				}
				fade := bstrength * b.Strength(co, m.Normal(v), math.Sqrt(dist2), m.Mask(v), v, tls.Thread)
				SurfaceSmoothDisplaceStep(m, laplacianDisp, v, beta, fade)
			}
		})
	}
}
