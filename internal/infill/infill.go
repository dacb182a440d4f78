// Package infill builds each island's top-surface exposure, solid/sparse
// region decomposition, and line patterns (spec.md §4.5).
package infill

import (
	"github.com/latticefab/layerkit/internal/clipper"
	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
)

// Context gives an island access to the neighboring layers' islands its
// roof/floor bands and solid-infill-clip intersections need.
type Context struct {
	Layers     []*layer.Layer
	LayerIndex int
	Cfg        *config.Settings
}

// Build populates island's ExposedSurface, IronPaths, SolidInfill and
// SparseInfill fields for one island on one layer.
func Build(island *layer.Island, ctx Context) {
	cfg := ctx.Cfg
	w := cfg.ExtrusionWidth

	if cfg.RoofLayers > 0 {
		buildExposedSurface(island, ctx)
	}

	solidBand := isWithinFloorRoofBand(ctx)
	if cfg.InfillDensity >= 1.0 || solidBand {
		island.SolidInfill = emitPattern(island.InfillInsets, cfg, ctx.LayerIndex, cfg.InfillDensity)
		if cfg.InfillDensity < 1.0 && solidBand {
			island.SolidInfill = emitPattern(island.InfillInsets, cfg, ctx.LayerIndex, 1.0)
		}
		if cfg.InsetGapFill {
			addInsetGapFill(island, cfg, ctx.LayerIndex)
		}
		return
	}

	solidMask := solidInfillClipIntersection(island, ctx)
	var sparseBase geom.PathSet
	if len(solidMask) == 0 {
		sparseBase = island.InfillInsets
	} else {
		grown, err := clipper.InflatePaths64(solidMask, cfg.SolidInfillClipOffset+cfg.SolidFillExpansion*w, clipper.Square, clipper.ClosedPolygon)
		if err == nil {
			grown, err = clipper.Intersect64(grown, island.InfillInsets, clipper.NonZero)
		}
		if err != nil {
			grown = nil
		}
		island.SolidInfillBoundaries = grown
		sparseBase, _ = clipper.Difference64(island.InfillInsets, grown, clipper.NonZero)
	}

	if len(island.SolidInfillBoundaries) > 0 {
		island.SolidInfill = emitPattern(island.SolidInfillBoundaries, cfg, ctx.LayerIndex, 1.0)
	}
	island.SparseInfill = emitPattern(sparseBase, cfg, ctx.LayerIndex, cfg.InfillDensity)
	island.SparseInfill = dropShortLines(island.SparseInfill, cfg)

	if cfg.InsetGapFill {
		addInsetGapFill(island, cfg, ctx.LayerIndex)
	}
}

func isWithinFloorRoofBand(ctx Context) bool {
	cfg := ctx.Cfg
	n := len(ctx.Layers)
	if ctx.LayerIndex < cfg.FloorLayers {
		return true
	}
	if ctx.LayerIndex >= n-cfg.RoofLayers {
		return true
	}
	return false
}

// buildExposedSurface computes the top-facing band (spec.md §4.5 step 1):
// this island's infill_insets minus the union of insets[0] from the layer
// above whose bbox overlaps, offset inward by -w to leave an extrudable
// band.
func buildExposedSurface(island *layer.Island, ctx Context) {
	cfg := ctx.Cfg
	above := ctx.LayerIndex + 1
	if above >= len(ctx.Layers) {
		island.ExposedSurface = island.InfillInsets
		return
	}
	var coveringAbove geom.PathSet
	for _, other := range ctx.Layers[above].Islands {
		if !island.Box.Intersects(other.Box) {
			continue
		}
		coveringAbove = append(coveringAbove, other.Insets[0]...)
	}
	exposed, err := clipper.Difference64(island.InfillInsets, coveringAbove, clipper.NonZero)
	if err != nil {
		exposed = island.InfillInsets
	}
	band, err := clipper.InflatePaths64(exposed, -cfg.ExtrusionWidth, clipper.Miter, clipper.ClosedPolygon)
	if err == nil {
		island.ExposedSurface = band
	} else {
		island.ExposedSurface = exposed
	}

	if cfg.IronTopSurface {
		ironMask, err := clipper.InflatePaths64(exposed, -cfg.ExtrusionWidth/2, clipper.Miter, clipper.ClosedPolygon)
		if err != nil {
			return
		}
		lines := geom.GenerateLines(island.Box, cfg.SolidInfillAngle, cfg.ExtrusionWidth/cfg.IronDensity)
		_, clipped, err := clipper.BooleanOp64(clipper.Intersection, clipper.NonZero, nil, lines, ironMask)
		if err == nil {
			island.IronPaths = clipped
		}
	}
}

// solidInfillClipIntersection intersects the solid_infill_clip regions of
// every bbox-overlapping neighbor within the floor/roof window, per
// spec.md §4.5 step 2.
func solidInfillClipIntersection(island *layer.Island, ctx Context) geom.PathSet {
	cfg := ctx.Cfg
	var result geom.PathSet
	first := true
	for k := -cfg.FloorLayers; k <= cfg.RoofLayers; k++ {
		if k == 0 {
			continue
		}
		li := ctx.LayerIndex + k
		if li < 0 || li >= len(ctx.Layers) {
			return nil
		}
		var clipsAtLayer geom.PathSet
		for _, other := range ctx.Layers[li].Islands {
			if !island.Box.Intersects(other.Box) {
				continue
			}
			clipsAtLayer = append(clipsAtLayer, other.SolidInfillClip...)
		}
		if first {
			result = clipsAtLayer
			first = false
			continue
		}
		intersected, err := clipper.Intersect64(result, clipsAtLayer, clipper.NonZero)
		if err != nil {
			return nil
		}
		result = intersected
	}
	return result
}

// emitPattern generates the line family for region according to cfg's
// configured infill pattern and density, clipped to region (spec.md §4.5
// step 3).
func emitPattern(region geom.PathSet, cfg *config.Settings, layerIndex int, density float64) geom.PathSet {
	if len(region) == 0 || density <= 0 {
		return nil
	}
	box := boxOfPathSet(region)
	w := cfg.ExtrusionWidth

	var lines geom.PathSet
	switch cfg.InfillPattern {
	case config.InfillGrid:
		spacing := w / (density / 2)
		lines = append(lines, geom.GenerateLines(box, cfg.SolidInfillAngle, spacing)...)
		lines = append(lines, geom.GenerateLines(box, cfg.SolidInfillAngle+90, spacing)...)
	case config.InfillTriangle:
		spacing := w / (density / 3)
		lines = append(lines, geom.GenerateLines(box, cfg.SolidInfillAngle, spacing)...)
		lines = append(lines, geom.GenerateLines(box, cfg.SolidInfillAngle+60, spacing)...)
		lines = append(lines, geom.GenerateLines(box, cfg.SolidInfillAngle+120, spacing)...)
	case config.InfillTriangle2:
		spacing := w / density
		lines = geom.GenerateLines(box, cfg.SolidInfillAngle+float64(layerIndex)*60, spacing)
	case config.InfillRectilinear:
		spacing := w / density
		lines = geom.GenerateLines(box, cfg.SolidInfillAngle+float64(layerIndex)*90, spacing)
	default:
		spacing := w / density
		lines = geom.GenerateLines(box, cfg.SolidInfillAngle, spacing)
	}

	_, clipped, err := clipper.BooleanOp64(clipper.Intersection, clipper.NonZero, nil, lines, region)
	if err != nil {
		return nil
	}
	return clipped
}

func addInsetGapFill(island *layer.Island, cfg *config.Settings, layerIndex int) {
	for _, gap := range island.InsetGaps {
		if len(gap) == 0 {
			continue
		}
		pattern := emitPattern(gap, cfg, layerIndex, 1.0)
		if len(pattern) == 0 {
			continue
		}
		union, err := clipper.Union64(append(geom.PathSet{}, island.SolidInfill...), pattern, clipper.NonZero)
		if err == nil {
			island.SolidInfill = union
		} else {
			island.SolidInfill = append(island.SolidInfill, pattern...)
		}
	}
}

func dropShortLines(lines geom.PathSet, cfg *config.Settings) geom.PathSet {
	minLenSq := cfg.MinSparseInfillLen * float64(cfg.ScaleConstant)
	minLenSq *= minLenSq
	out := lines[:0]
	for _, l := range lines {
		if len(l) != 2 {
			out = append(out, l)
			continue
		}
		if float64(geom.DistanceSquared(l[0], l[1])) < minLenSq {
			continue
		}
		out = append(out, l)
	}
	return out
}

func boxOfPathSet(paths geom.PathSet) geom.Box {
	var box geom.Box
	first := true
	for _, p := range paths {
		b := geom.BoxOfPath(p)
		if first {
			box, first = b, false
			continue
		}
		if b.Left < box.Left {
			box.Left = b.Left
		}
		if b.Right > box.Right {
			box.Right = b.Right
		}
		if b.Top > box.Top {
			box.Top = b.Top
		}
		if b.Bottom < box.Bottom {
			box.Bottom = b.Bottom
		}
	}
	return box
}
