package planner

import (
	"math"

	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
)

type loopRef struct {
	depth int
	path  geom.Path
}

func collectLoops(insets []geom.PathSet) []loopRef {
	var loops []loopRef
	for d, set := range insets {
		for _, path := range set {
			loops = append(loops, loopRef{depth: d, path: path})
		}
	}
	return loops
}

// planInsets emits an island's shell loops using the configured strict or
// weighted depth policy (spec.md §4.8 "Inset policy"); the first layer
// always forces outside-first.
func (p *planState) planInsets(isl *layer.Island) {
	loops := collectLoops(isl.Insets)
	if len(loops) == 0 {
		return
	}
	outsideFirst := p.cfg.InsetOutsideFirst || p.firstLayer
	numDepths := len(isl.Insets)

	if p.cfg.InsetPolicy == "strict" {
		p.planInsetsStrict(loops, outsideFirst, numDepths)
	} else {
		p.planInsetsWeighted(loops, outsideFirst, numDepths)
	}
}

func (p *planState) planInsetsStrict(loops []loopRef, outsideFirst bool, numDepths int) {
	remaining := append([]loopRef{}, loops...)
	order := make([]int, numDepths)
	for i := range order {
		if outsideFirst {
			order[i] = i
		} else {
			order[i] = numDepths - 1 - i
		}
	}
	for _, depth := range order {
		for {
			idx := nearestLoopAtDepth(remaining, depth, p.currentPos())
			if idx < 0 {
				break
			}
			loop := remaining[idx]
			remaining = append(remaining[:idx], remaining[idx+1:]...)
			p.emitClosedLoop(loop.path, p.feedRateForDepth(loop.depth))
		}
	}
}

func (p *planState) planInsetsWeighted(loops []loopRef, outsideFirst bool, numDepths int) {
	remaining := append([]loopRef{}, loops...)
	for len(remaining) > 0 {
		cur := p.currentPos()
		bestIdx, bestWeight := -1, math.MaxFloat64
		for i, l := range remaining {
			d := nearestVertexDistanceInPath(l.path, cur)
			var depthWeight float64
			if outsideFirst {
				depthWeight = float64(l.depth + 1)
			} else {
				depthWeight = float64(numDepths - l.depth)
			}
			weight := d*depthWeight + p.cfg.RetractMinTravel
			if weight < bestWeight {
				bestWeight, bestIdx = weight, i
			}
		}
		loop := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		p.emitClosedLoop(loop.path, p.feedRateForDepth(loop.depth))
	}
}

func (p *planState) feedRateForDepth(depth int) float64 {
	if depth == 0 {
		return p.cfg.PerimeterFeedRate
	}
	return p.cfg.LoopFeedRate
}

func (p *planState) currentPos() geom.Point {
	return geom.Point{X: p.mach.X, Y: p.mach.Y}
}

func nearestLoopAtDepth(loops []loopRef, depth int, from geom.Point) int {
	best, bestDist := -1, math.MaxFloat64
	for i, l := range loops {
		if l.depth != depth {
			continue
		}
		d := nearestVertexDistanceInPath(l.path, from)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func nearestVertexDistanceInPath(path geom.Path, from geom.Point) float64 {
	best := math.MaxFloat64
	for _, pt := range path {
		if d := geom.DistanceToPoint(from, pt); d < best {
			best = d
		}
	}
	return best
}

// emitClosedLoop emits one shell loop per spec.md §4.8 "Closed-path
// emission": seam rotation, end clipping (shell_clip + anchor allowance),
// optional coast, anchor extrusion, moving retract, and wipe.
func (p *planState) emitClosedLoop(path geom.Path, feedRate float64) {
	if len(path) < 2 {
		return
	}
	w := p.cfg.ExtrusionWidth
	length := closedPathLength(path)

	totalClip := 0.0
	if length > p.cfg.ShellClip*w*2 {
		totalClip += p.cfg.ShellClip * w
	}
	anchoring := p.cfg.AnchorEnabled
	if anchoring {
		totalClip += (w / 2) * (math.Pi / 4)
	}

	seamIdx := p.chooseSeamIndex(path)
	rotated := rotateStart(path, seamIdx)
	closed := append(append(geom.Path{}, rotated...), rotated[0])

	printPath, coastPath := trimFromEnd(closed, totalClip)
	if p.cfg.CoastLen > 0 && length > p.cfg.CoastLen*2 {
		var extraCoast geom.Path
		printPath, extraCoast = trimFromEnd(printPath, p.cfg.CoastLen)
		coastPath = append(extraCoast, coastPath...)
	}
	if len(printPath) < 2 {
		return
	}

	p.moveTo(printPath[0])

	var anchorE float64
	if anchoring {
		anchorE = (w / 2) * (math.Pi / 4) * p.cfg.ExtrusionArea / p.cfg.MaterialArea
	}
	for i := 1; i < len(printPath); i++ {
		dE := extrusionFor(printPath[i-1], printPath[i], p.cfg)
		if i == 1 {
			dE += anchorE
		}
		p.append(layer.Move{X: printPath[i].X, Y: printPath[i].Y, Z: p.mach.Z, DeltaE: dE, FeedRate: feedRate, Scalable: true})
	}
	for i := 1; i < len(coastPath); i++ {
		p.append(layer.Move{X: coastPath[i].X, Y: coastPath[i].Y, Z: p.mach.Z, FeedRate: feedRate, Scalable: true})
	}

	if p.cfg.MovingRetract {
		p.emitMovingRetract(rotated, feedRate)
	}
	if p.cfg.WipeLen > 0 {
		p.emitWipe(rotated)
	}
}

func (p *planState) chooseSeamIndex(path geom.Path) int {
	if p.cfg.SeamAlign {
		return 0
	}
	cur := p.currentPos()
	best, bestDist := 0, math.MaxFloat64
	for i, pt := range path {
		if d := geom.DistanceToPoint(cur, pt); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func rotateStart(path geom.Path, idx int) geom.Path {
	if idx == 0 {
		out := make(geom.Path, len(path))
		copy(out, path)
		return out
	}
	out := make(geom.Path, len(path))
	copy(out, path[idx:])
	copy(out[len(path)-idx:], path[:idx])
	return out
}

func closedPathLength(path geom.Path) float64 {
	total := 0.0
	for i := 0; i < len(path); i++ {
		total += geom.DistanceToPoint(path[i], path[(i+1)%len(path)])
	}
	return total
}

// trimFromEnd walks backward from path's last point by clipLen, returning
// the shortened path and the trimmed tail (with the cut point shared by
// both, matching spec.md §4.8's backward-clip recipe).
func trimFromEnd(path geom.Path, clipLen float64) (kept geom.Path, trimmed geom.Path) {
	if clipLen <= 0 || len(path) < 2 {
		return path, nil
	}
	n := len(path)
	remaining := clipLen
	idx := n - 1
	cut := path[n-1]
	for i := n - 1; i > 0; i-- {
		segLen := geom.DistanceToPoint(path[i], path[i-1])
		if segLen <= 0 {
			idx = i - 1
			continue
		}
		if remaining <= segLen {
			t := remaining / segLen
			cut = lerpPoint(path[i], path[i-1], t)
			idx = i - 1
			remaining = -1
			break
		}
		remaining -= segLen
		idx = i - 1
	}
	if remaining > 0 {
		return geom.Path{path[0]}, append(geom.Path{}, path...)
	}
	kept = append(append(geom.Path{}, path[:idx+1]...), cut)
	trimmed = append(geom.Path{cut}, path[idx+1:]...)
	return kept, trimmed
}

func lerpPoint(a, b geom.Point, t float64) geom.Point {
	return geom.Point{
		X: a.X + int64(math.Round(t*float64(b.X-a.X))),
		Y: a.Y + int64(math.Round(t*float64(b.Y-a.Y))),
	}
}

func extrusionFor(a, b geom.Point, cfg *config.Settings) float64 {
	dist := geom.DistanceToPoint(a, b)
	if cfg.MaterialArea <= 0 {
		return 0
	}
	return dist * cfg.ExtrusionArea / cfg.MaterialArea
}

// emitMovingRetract walks forward from the seam along the loop, emitting
// retraction spread proportionally over the configured arc (spec.md §4.8's
// moving-retract bullet).
func (p *planState) emitMovingRetract(loop geom.Path, feedRate float64) {
	if len(loop) < 2 || p.cfg.MovingRetractSpeed <= 0 {
		return
	}
	arcLen := p.cfg.RetractLen / (p.cfg.MovingRetractSpeed / feedRate)
	remaining := arcLen
	eRemaining := p.cfg.RetractLen
	n := len(loop)
	for i := 0; i < n && remaining > 0; i++ {
		a, b := loop[i], loop[(i+1)%n]
		segLen := geom.DistanceToPoint(a, b)
		if segLen <= 0 {
			continue
		}
		use := math.Min(segLen, remaining)
		frac := use / segLen
		target := lerpPoint(a, b, frac)
		eHere := -p.cfg.RetractLen * (use / arcLen)
		if -eHere > eRemaining {
			eHere = -eRemaining
		}
		eRemaining += eHere
		p.append(layer.Move{X: target.X, Y: target.Y, Z: p.mach.Z, DeltaE: eHere, FeedRate: p.cfg.MovingRetractSpeed})
		remaining -= use
	}
}

// emitWipe emits additional zero-extrusion travel moves forward along the
// loop for wipe_len (spec.md §4.8's wipe bullet).
func (p *planState) emitWipe(loop geom.Path) {
	remaining := p.cfg.WipeLen
	n := len(loop)
	if n < 2 {
		return
	}
	for i := 0; i < n && remaining > 0; i++ {
		a, b := loop[i], loop[(i+1)%n]
		segLen := geom.DistanceToPoint(a, b)
		if segLen <= 0 {
			continue
		}
		use := math.Min(segLen, remaining)
		frac := use / segLen
		target := lerpPoint(a, b, frac)
		p.append(layer.Move{X: target.X, Y: target.Y, Z: p.mach.Z, FeedRate: p.cfg.TravelFeedRate, IsTravel: true})
		remaining -= use
	}
}
