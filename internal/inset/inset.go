// Package inset synthesizes shell loops, gap-fill regions, comb boundaries
// and seam alignment for each island (spec.md §4.4), built on top of
// internal/clipper's offset and boolean operations.
package inset

import (
	"github.com/latticefab/layerkit/internal/clipper"
	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
)

// Build fills in island.Insets[1:], InsetGaps, InfillInsets, Boundaries,
// CombPaths, OuterBoundaries, OuterCombPaths, SolidInfillClip and
// ConstrainingEdge for a single island.
func Build(island *layer.Island, cfg *config.Settings) {
	w := cfg.ExtrusionWidth

	for i := 1; i < cfg.NumShells; i++ {
		prev := island.Insets[i-1]
		next := offsetOverlapRemoved(prev, -w, w/2)
		if len(next) == 0 {
			break
		}
		island.Insets = append(island.Insets, next)
	}

	last := island.Insets[len(island.Insets)-1]
	island.InfillInsets = offset(last, -(0.5-cfg.InfillOverlap)*w)

	island.Boundaries = simplifyCoarse(offset(island.Insets[0], w/8), cfg)

	island.OuterBoundaries = offset(island.Insets[0], 0.5*cfg.EdgeWidth-cfg.EdgeOffset)
	island.OuterCombPaths = offset(island.OuterBoundaries, w/8)

	island.CombPaths = island.Insets[0]

	if cfg.SolidInfillClipOffset > 0 {
		island.SolidInfillClip = offset(island.InfillInsets, cfg.SolidInfillClipOffset)
	}
	island.ConstrainingEdge = offset(island.InfillInsets, -w/8)

	buildInsetGaps(island, cfg)

	if cfg.SeamAlign {
		alignSeams(island)
	}
}

// offsetOverlapRemoved offsets base by delta, then performs the
// overlap-removal round trip (offset by -roundTrip then +roundTrip) so
// nearly touching features do not over-extrude (spec.md §4.4 bullet 1).
func offsetOverlapRemoved(base geom.PathSet, delta, roundTrip float64) geom.PathSet {
	shelled := offset(base, delta)
	if len(shelled) == 0 {
		return nil
	}
	shrunk := offset(shelled, -roundTrip)
	if len(shrunk) == 0 {
		return nil
	}
	return offset(shrunk, roundTrip)
}

func offset(paths geom.PathSet, delta float64) geom.PathSet {
	if len(paths) == 0 {
		return nil
	}
	result, err := clipper.InflatePaths64(paths, delta, clipper.Miter, clipper.ClosedPolygon)
	if err != nil {
		return nil
	}
	return result
}

func simplifyCoarse(paths geom.PathSet, cfg *config.Settings) geom.PathSet {
	out, err := clipper.SimplifyPaths64(paths, cfg.Coarseness*float64(cfg.ScaleConstant)*4, true)
	if err != nil || len(out) == 0 {
		return paths
	}
	return out
}

// buildInsetGaps computes the printable band in insets[i] not covered by
// insets[i+1], via the double offset spec.md §4.4's last bullet describes:
// shrink to drop narrow slivers, then grow back to a printable band.
func buildInsetGaps(island *layer.Island, cfg *config.Settings) {
	w := cfg.ExtrusionWidth
	shrink := -(0.5 + cfg.FillThreshold/2) * w
	grow := (cfg.InfillOverlap + cfg.FillThreshold/2) * w

	island.InsetGaps = make([]geom.PathSet, 0, len(island.Insets)-1)
	for i := 0; i < len(island.Insets)-1; i++ {
		covered := island.Insets[i+1]
		uncovered, err := clipper.Difference64(island.Insets[i], covered, clipper.NonZero)
		if err != nil {
			island.InsetGaps = append(island.InsetGaps, nil)
			continue
		}
		gap := offset(uncovered, shrink)
		gap = offset(gap, grow)
		island.InsetGaps = append(island.InsetGaps, gap)
	}
}

// alignSeams rotates each inset path's starting index to the vertex
// minimizing X+Y (nearest the lower-left), per spec.md §4.4's seam
// alignment bullet.
func alignSeams(island *layer.Island) {
	for _, inset := range island.Insets {
		for i, path := range inset {
			inset[i] = rotateToMinXY(path)
		}
	}
}

func rotateToMinXY(path geom.Path) geom.Path {
	if len(path) == 0 {
		return path
	}
	best := 0
	bestSum := path[0].X + path[0].Y
	for i, p := range path {
		sum := p.X + p.Y
		if sum < bestSum {
			bestSum, best = sum, i
		}
	}
	if best == 0 {
		return path
	}
	out := make(geom.Path, len(path))
	copy(out, path[best:])
	copy(out[len(path)-best:], path[:best])
	return out
}
