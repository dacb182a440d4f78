// Package layer holds the per-layer and per-island data model of spec.md
// §3: Layer, Island, Machine, and the abstract Move the planner emits.
package layer

import (
	"math"
	"sync"

	"github.com/latticefab/layerkit/internal/geom"
)

// Segment is a raw 2D line segment produced by the mesh slicer, before
// outline stitching.
type Segment struct {
	A, B geom.Point
}

// Island is one connected region of a layer's solid cross-section: an
// outer contour plus its immediate holes, and everything derived from it.
type Island struct {
	// Insets[0] is outermost; Insets[i] is offset inward from Insets[i-1].
	Insets []geom.PathSet
	// InsetGaps[i] is the printable band between Insets[i] and Insets[i+1].
	InsetGaps []geom.PathSet

	InfillInsets geom.PathSet
	SolidInfill  geom.PathSet
	SparseInfill geom.PathSet

	Boundaries      geom.PathSet
	CombPaths       geom.PathSet
	OuterBoundaries geom.PathSet
	OuterCombPaths  geom.PathSet

	SolidInfillClip       geom.PathSet
	SolidInfillBoundaries geom.PathSet
	ExposedSurface        geom.PathSet
	ConstrainingEdge      geom.PathSet
	IronPaths             geom.PathSet

	Box geom.Box
}

// Layer is a horizontal slab at z = i*h + h/2.
type Layer struct {
	Index int
	Z     float64

	mu          sync.Mutex
	RawSegments []Segment

	Islands []*Island

	SupportMap           geom.PathSet
	SupportBoundaries    geom.PathSet
	SupportInterfaceClip geom.PathSet
	SupportLines         geom.PathSet
	SupportInterfaceLines geom.PathSet
	LayerSupportMap      geom.PathSet // flattened PolyTree of this layer's new overhang

	// Transient planner state, cleared once the layer's moves are emitted.
	LastBoundaries         geom.PathSet
	LastCombPaths          geom.PathSet
	PrintedOuterBoundaries geom.PathSet
	PrintedOuterCombPaths  geom.PathSet

	Moves     []Move
	LayerTime float64
}

// AppendSegment adds a raw segment to the layer under the layer's lock;
// spec.md §5 stage 1 requires this critical section because multiple
// triangles from different goroutines write into the same layer bucket.
func (l *Layer) AppendSegment(s Segment) {
	l.mu.Lock()
	l.RawSegments = append(l.RawSegments, s)
	l.mu.Unlock()
}

// LockSupportMap returns an unlock function after acquiring the layer's
// lock, for the stage-5b downward support extension writes into prior
// layers' SupportMap.
func (l *Layer) LockSupportMap() func() {
	l.mu.Lock()
	return l.mu.Unlock
}

// Machine is the planner's model of print-head state.
type Machine struct {
	X, Y, Z      int64
	E            float64
	FeedRate     float64
	IsRetracted  bool
	ForceRetract bool
}

// Move is one abstract motion command appended to a Layer's move list.
type Move struct {
	X, Y, Z   int64
	DeltaE    float64
	FeedRate  float64
	Scalable  bool
	IsTravel  bool
	IsRestart bool
}

// Length returns the 2D Euclidean length of the move from "from".
func (m Move) Length(from Machine) float64 {
	return math.Hypot(float64(m.X-from.X), float64(m.Y-from.Y))
}

// Apply advances the Machine by one Move, updating its state and returning
// the duration the move contributes to layer_time when scalable (spec.md
// §3, §4.8 feed-rate scaling).
func (mach *Machine) Apply(mv Move) (duration float64) {
	length := mv.Length(*mach)
	mach.X, mach.Y, mach.Z = mv.X, mv.Y, mv.Z
	mach.E += mv.DeltaE
	if mv.DeltaE < 0 {
		mach.IsRetracted = true
	} else if mv.IsRestart {
		mach.IsRetracted = false
	}
	if mv.Scalable && mv.FeedRate > 0 {
		return length / mv.FeedRate
	}
	return 0
}
