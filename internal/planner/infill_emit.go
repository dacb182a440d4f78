package planner

import (
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
)

func (p *planState) planSolidInfill(isl *layer.Island) {
	lines := smoothLines(isl.SolidInfill, isl.ConstrainingEdge, p.cfg.ExtrusionWidth, p.cfg.InfillSmoothThreshold)
	p.emitOpenLines(lines, p.cfg.SolidInfillFeedRate)
}

func (p *planState) planIroning(isl *layer.Island) {
	p.emitOpenLines(isl.IronPaths, p.cfg.IronFeedRate)
}

func (p *planState) planSparseInfill(isl *layer.Island) {
	p.emitOpenLines(isl.SparseInfill, p.cfg.SparseInfillFeedRate)
}

func (p *planState) emitOpenLines(lines geom.PathSet, feedRate float64) {
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		p.moveTo(line[0])
		for i := 1; i < len(line); i++ {
			dE := extrusionFor(line[i-1], line[i], p.cfg)
			p.append(layer.Move{X: line[i].X, Y: line[i].Y, Z: p.mach.Z, DeltaE: dE, FeedRate: feedRate, Scalable: true})
		}
	}
}

// smoothLines implements a condensed form of spec.md §4.8's "Smoothed
// solid infill": a pair of consecutive segments that are both short and
// whose start points lie within 2w of each other is merged into a single
// midpoint-to-midpoint move; the segments' directions are not compared.
// Segments outside the constraining edge are left untouched since
// shortcuts there would bridge gap-fill rather than real infill.
func smoothLines(lines geom.PathSet, constrainingEdge geom.PathSet, w, smoothThreshold float64) geom.PathSet {
	if len(lines) < 2 {
		return lines
	}
	shortLen := smoothThreshold * w * 2

	out := make(geom.PathSet, 0, len(lines))
	i := 0
	for i < len(lines) {
		if i+1 < len(lines) && isSmoothable(lines[i], lines[i+1], shortLen, w, constrainingEdge) {
			a, b := lines[i], lines[i+1]
			mid0 := midpoint(a[0], a[len(a)-1])
			mid1 := midpoint(b[0], b[len(b)-1])
			out = append(out, geom.Path{mid0, mid1})
			i += 2
			continue
		}
		out = append(out, lines[i])
		i++
	}
	return out
}

func isSmoothable(a, b geom.Path, shortLen, w float64, constrainingEdge geom.PathSet) bool {
	if len(a) != 2 || len(b) != 2 {
		return false
	}
	lenA := geom.DistanceToPoint(a[0], a[1])
	lenB := geom.DistanceToPoint(b[0], b[1])
	if lenA >= shortLen || lenB >= shortLen {
		return false
	}
	dx0 := geom.DistanceToPoint(a[0], b[0])
	if dx0 > w*2 {
		return false
	}
	if isConstrained(midpoint(a[0], a[1]), constrainingEdge) || isConstrained(midpoint(b[0], b[1]), constrainingEdge) {
		return false
	}
	return true
}

func isConstrained(pt geom.Point, constrainingEdge geom.PathSet) bool {
	inside := false
	for _, poly := range constrainingEdge {
		if pointInPolygon(pt, poly) {
			inside = !inside
		}
	}
	return !inside
}

func midpoint(a, b geom.Point) geom.Point {
	return geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
