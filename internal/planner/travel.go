package planner

import (
	"github.com/latticefab/layerkit/internal/clipper"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
)

func pointInPolygon(pt geom.Point, poly geom.Path) bool {
	return clipper.PointInPolygon(pt, poly, clipper.NonZero) != clipper.Outside
}

// moveTo emits a travel move from the machine's current position to
// target, applying spec.md §4.8's retract and combing rules.
func (p *planState) moveTo(target geom.Point) {
	cur := geom.Point{X: p.mach.X, Y: p.mach.Y}
	if cur == target {
		return
	}

	dist := geom.DistanceToPoint(cur, target)
	crossesShell := p.crossesAny(cur, target, p.lastBoundaries)
	leavingIsland := len(p.lastBoundaries) > 0 && !p.containedIn(target, p.lastBoundaries)

	needsRetract := leavingIsland || dist > p.cfg.RetractMinTravel || crossesShell ||
		(dist > 2*p.cfg.ExtrusionWidth && p.crossesAny(cur, target, p.exposedSurfaces()))

	if needsRetract {
		p.forceRetract()
	}

	if p.cfg.Combing {
		waypoints := p.route(cur, target, leavingIsland)
		for _, wp := range waypoints[1:] {
			p.append(layer.Move{X: wp.X, Y: wp.Y, Z: p.mach.Z, FeedRate: p.cfg.TravelFeedRate, IsTravel: true})
		}
		if leavingIsland {
			p.lastBoundaries = nil
			p.lastCombPaths = nil
		}
		return
	}

	p.append(layer.Move{X: target.X, Y: target.Y, Z: p.mach.Z, FeedRate: p.cfg.TravelFeedRate, IsTravel: true})
}

// route computes the combed waypoint sequence from cur to target, per
// spec.md §4.8's combing algorithm: repeatedly detour around the nearest
// crossed obstacle via the shorter boundary arc projected onto the allowed
// comb paths, stopping when no obstacle is crossed or no progress is made.
func (p *planState) route(cur, target geom.Point, leavingIsland bool) []geom.Point {
	obstacles := p.lastBoundaries
	combPaths := p.lastCombPaths
	if leavingIsland || len(obstacles) == 0 {
		obstacles = p.printedOuterBoundaries
		combPaths = p.printedOuterCombPaths
	}
	if len(obstacles) == 0 || len(combPaths) == 0 {
		return []geom.Point{cur, target}
	}

	waypoints := []geom.Point{cur}
	at := cur
	for iter := 0; iter < 8; iter++ {
		obstacle, crossed := firstCrossedObstacle(at, target, obstacles)
		if !crossed {
			break
		}
		arc := shorterArc(obstacle, at, target)
		progressed := false
		bestDist := geom.DistanceToPoint(at, target)
		for _, v := range arc {
			proj := nearestVertexInPathSet(v, combPaths)
			if d := geom.DistanceToPoint(proj, target); d < bestDist {
				waypoints = append(waypoints, proj)
				at = proj
				bestDist = d
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	waypoints = append(waypoints, target)
	return waypoints
}

func firstCrossedObstacle(a, b geom.Point, obstacles geom.PathSet) (geom.Path, bool) {
	for _, poly := range obstacles {
		n := len(poly)
		for i := 0; i < n; i++ {
			if geom.SegmentsIntersect(a, b, poly[i], poly[(i+1)%n]) {
				return poly, true
			}
		}
	}
	return nil, false
}

// shorterArc returns the vertices of poly between the points nearest a and
// nearest b, walking whichever direction visits fewer vertices.
func shorterArc(poly geom.Path, a, b geom.Point) geom.Path {
	n := len(poly)
	if n == 0 {
		return nil
	}
	ai, bi := nearestIndex(poly, a), nearestIndex(poly, b)

	forward := geom.Path{}
	for i := ai; i != bi; i = (i + 1) % n {
		forward = append(forward, poly[i])
	}
	forward = append(forward, poly[bi])

	backward := geom.Path{}
	for i := ai; i != bi; i = (i - 1 + n) % n {
		backward = append(backward, poly[i])
	}
	backward = append(backward, poly[bi])

	if len(forward) <= len(backward) {
		return forward
	}
	return backward
}

func nearestIndex(poly geom.Path, p geom.Point) int {
	best, bestDist := 0, geom.DistanceToPoint(poly[0], p)
	for i, v := range poly[1:] {
		if d := geom.DistanceToPoint(v, p); d < bestDist {
			best, bestDist = i+1, d
		}
	}
	return best
}

func nearestVertexInPathSet(target geom.Point, paths geom.PathSet) geom.Point {
	best := target
	bestDist := -1.0
	for _, path := range paths {
		for _, v := range path {
			if d := geom.DistanceToPoint(v, target); bestDist < 0 || d < bestDist {
				best, bestDist = v, d
			}
		}
	}
	return best
}

func (p *planState) crossesAny(a, b geom.Point, obstacles geom.PathSet) bool {
	_, crossed := firstCrossedObstacle(a, b, obstacles)
	return crossed
}

func (p *planState) containedIn(pt geom.Point, boundary geom.PathSet) bool {
	for _, poly := range boundary {
		if pointInPolygon(pt, poly) {
			return true
		}
	}
	return false
}

func (p *planState) exposedSurfaces() geom.PathSet {
	var out geom.PathSet
	for _, isl := range p.layer.Islands {
		out = append(out, isl.ExposedSurface...)
	}
	return out
}
