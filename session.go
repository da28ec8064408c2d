package sculpt

import (
	"github.com/soypat/sculpt/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Session binds a mesh to the smoothing engine for the duration of a
// sculpting interaction. It outlives any single stroke; stroke-scoped state
// lives in the StrokeCache created by StartStroke.
type Session struct {
	Mesh  mesh.Mesh
	cache *StrokeCache
}

// NewSession creates a session over m.
func NewSession(m mesh.Mesh) *Session {
	return &Session{Mesh: m}
}

// StartStroke begins a brush stroke. The pre-stroke positions are captured
// so multi-step algorithms can blend against the original shape. Starting a
// stroke while another is active is a caller bug and panics.
func (s *Session) StartStroke(bstrength float64) *StrokeCache {
	if s.cache != nil {
		panic("sculpt: stroke already active")
	}
	s.Mesh.SaveOriginal()
	s.cache = &StrokeCache{Bstrength: bstrength}
	return s.cache
}

// EndStroke releases the stroke-scoped buffers. The last fully applied step
// stands; no rollback happens on abort.
func (s *Session) EndStroke() {
	s.cache = nil
}

// Cache returns the active stroke cache. Calling any brush operation
// without an active stroke is a caller bug and panics.
func (s *Session) Cache() *StrokeCache {
	if s.cache == nil {
		panic("sculpt: no active stroke")
	}
	return s.cache
}

// StrokeCache carries state that persists across the steps of one stroke:
// the signed brush strength and the lazily allocated per-vertex buffers used
// by the multi-pass algorithms. Buffers are sized to the mesh vertex count,
// allocated on the first step that needs them and released at stroke end.
type StrokeCache struct {
	// Bstrength is the signed stroke strength. Negative values switch the
	// smooth brush into detail-enhance mode.
	Bstrength float64

	step int

	// detailDirections[v] is the displacement from v's position to its
	// laplacian-smoothed position, captured on the first stroke step by
	// the detail-enhance brush.
	detailDirections []r3.Vec
	// laplacianDisp[v] is the HC correction signal written by the surface
	// smooth laplacian pass and consumed by its displacement pass.
	laplacianDisp []r3.Vec
}

// FirstStep reports whether no step has completed yet in this stroke.
func (c *StrokeCache) FirstStep() bool { return c.step == 0 }

// NextStep marks the current brush-movement step as complete.
func (c *StrokeCache) NextStep() { c.step++ }

// allocDetailDirections allocates the per-vertex detail direction buffer.
// Allocating over an existing buffer is a logic error.
func (c *StrokeCache) allocDetailDirections(n int) []r3.Vec {
	if c.detailDirections != nil {
		panic("sculpt: detail directions already allocated for this stroke")
	}
	c.detailDirections = make([]r3.Vec, n)
	return c.detailDirections
}

// allocLaplacianDisp allocates the per-vertex laplacian displacement
// buffer. Allocating over an existing buffer is a logic error.
func (c *StrokeCache) allocLaplacianDisp(n int) []r3.Vec {
	if c.laplacianDisp != nil {
		panic("sculpt: laplacian displacement buffer already allocated for this stroke")
	}
	c.laplacianDisp = make([]r3.Vec, n)
	return c.laplacianDisp
}
