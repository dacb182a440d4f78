// Package planner turns a Layer's islands, support, brim and raft
// geometry into the ordered Move stream of spec.md §4.8: inset policy,
// closed-path emission with seam/clip/coast/anchor/moving-retract/wipe,
// travel and combing, smoothed solid infill connection, and feed-rate
// scaling.
//
// The island/seam/combing ordering problem here is the same shape as
// CWBudde-Go-Clipper2's polygon-nesting and nearest-neighbor traversal
// utilities; the emission state machine is grounded on the teacher's
// PolyTree walk plus piwi3910-cnc-calculator's toolpath sequencing
// (internal/planner/sequencer.go), adapted to FDM-specific retract/coast/
// wipe semantics.
package planner

import (
	"math"

	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
)

// Extra is the per-layer adjunct geometry the caller (internal/schedule)
// assembles before invoking Plan.
type Extra struct {
	Brim                  geom.PathSet
	RaftBaseLines         geom.PathSet
	RaftInterfaceLines    geom.PathSet
	SupportInterfaceLines geom.PathSet
	SupportLines          geom.PathSet
	IsFirstLayer          bool
}

// Plan appends l's full move sequence (brim, support, islands) and
// updates mach in place, returning the layer's unscaled layer_time.
func Plan(l *layer.Layer, extra Extra, mach *layer.Machine, cfg *config.Settings) float64 {
	p := &planState{layer: l, mach: mach, cfg: cfg, firstLayer: extra.IsFirstLayer}

	if len(extra.RaftInterfaceLines) > 0 {
		p.emitOpenLines(extra.RaftInterfaceLines, cfg.SolidInfillFeedRate)
	}
	if len(extra.RaftBaseLines) > 0 {
		p.emitOpenLines(extra.RaftBaseLines, cfg.SparseInfillFeedRate)
	}

	if len(extra.Brim) > 0 {
		for _, loop := range extra.Brim {
			p.emitClosedLoop(loop, cfg.PerimeterFeedRate)
		}
		p.forceRetract()
	}

	if len(extra.SupportInterfaceLines) > 0 {
		p.emitOpenLines(extra.SupportInterfaceLines, cfg.SupportFeedRate)
	}
	if len(extra.SupportLines) > 0 {
		p.emitOpenLines(extra.SupportLines, cfg.SupportFeedRate)
	}

	islands := orderIslandsByProximity(l.Islands, p.mach)
	for _, isl := range islands {
		p.lastBoundaries = isl.Boundaries
		p.lastCombPaths = isl.CombPaths
		p.printedOuterBoundaries = isl.OuterBoundaries
		p.printedOuterCombPaths = isl.OuterCombPaths

		p.planInsets(isl)
		p.planSolidInfill(isl)
		p.planIroning(isl)
		p.planSparseInfill(isl)
	}

	l.LayerTime = p.layerTime
	return p.layerTime
}

// planState carries the mutable emission context for one layer.
type planState struct {
	layer *layer.Layer
	mach  *layer.Machine
	cfg   *config.Settings

	firstLayer bool
	layerTime  float64

	lastBoundaries         geom.PathSet
	lastCombPaths          geom.PathSet
	printedOuterBoundaries geom.PathSet
	printedOuterCombPaths  geom.PathSet
}

func (p *planState) append(mv layer.Move) {
	p.layer.Moves = append(p.layer.Moves, mv)
	p.layerTime += p.mach.Apply(mv)
}

func (p *planState) forceRetract() {
	if p.mach.IsRetracted {
		return
	}
	p.append(layer.Move{
		X: p.mach.X, Y: p.mach.Y, Z: p.mach.Z,
		DeltaE:   -p.cfg.RetractLen,
		FeedRate: p.cfg.RetractSpeed,
		Scalable: false,
	})
}

func orderIslandsByProximity(islands []*layer.Island, mach *layer.Machine) []*layer.Island {
	remaining := append([]*layer.Island{}, islands...)
	ordered := make([]*layer.Island, 0, len(remaining))
	cur := geom.Point{X: mach.X, Y: mach.Y}
	for len(remaining) > 0 {
		bestIdx, bestDist := 0, math.MaxFloat64
		for i, isl := range remaining {
			d := nearestVertexDistance(isl, cur)
			if d < bestDist {
				bestDist, bestIdx = d, i
			}
		}
		chosen := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		ordered = append(ordered, chosen)
		if len(chosen.Insets) > 0 && len(chosen.Insets[0]) > 0 && len(chosen.Insets[0][0]) > 0 {
			cur = chosen.Insets[0][0][0]
		}
	}
	return ordered
}

func nearestVertexDistance(isl *layer.Island, from geom.Point) float64 {
	if len(isl.Insets) == 0 {
		return math.MaxFloat64
	}
	best := math.MaxFloat64
	for _, path := range isl.Insets[0] {
		for _, pt := range path {
			d := geom.DistanceToPoint(from, pt)
			if d < best {
				best = d
			}
		}
	}
	return best
}
