// Package outline stitches a layer's raw segment bucket into closed
// polygons (spec.md §4.3), unions them, offsets by the edge offset, and
// extracts islands from the resulting PolyTree.
//
// The segment-chaining loop is grounded on the same shape of problem
// piwi3910-cnc-calculator's DXF importer solves when it reassembles
// disconnected LINE entities into closed outlines (chainSegments in
// internal/importer/dxf.go): repeatedly pull a segment, then search the
// remaining pool for one whose endpoint matches the growing chain's tail.
package outline

import (
	"github.com/latticefab/layerkit/internal/clipper"
	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
	"github.com/rs/zerolog"
)

// Result is one closed polygon recovered from a layer's raw segments, plus
// bookkeeping used by the post-close heuristics in spec.md §4.3.
type Result struct {
	Path      geom.Path
	FlipCount int
	Segments  int
}

// Build stitches l.RawSegments into closed polygons, unions and offsets
// them, and populates l.Islands. log receives mesh-hole and reversed-
// outline diagnostics (spec.md §4.3 step 5, §7 "mesh topology warning").
func Build(l *layer.Layer, cfg *config.Settings, log zerolog.Logger) {
	raw := l.RawSegments
	stitched := stitchSegments(raw, cfg, log, l.Index)

	var outlines geom.PathSet
	for _, r := range stitched {
		outlines = append(outlines, r.Path)
	}
	if len(outlines) == 0 {
		l.Islands = nil
		return
	}

	fillRule := clipper.NonZero
	if cfg.CombineAll {
		fillRule = clipper.EvenOdd
	}
	unioned, err := clipper.SimplifyPaths64(outlines, 1, true)
	if err != nil || len(unioned) == 0 {
		unioned = outlines
	}
	merged, err := clipper.Union64(unioned, nil, fillRule)
	if err != nil {
		log.Warn().Int("layer", l.Index).Err(err).Msg("outline union failed, using unsimplified outlines")
		merged = unioned
	}

	if cfg.CombineAll {
		merged = reverseClockwiseContours(merged)
	}

	totalOffset := cfg.EdgeOffset
	tree, _, err := applyEdgeOffsetTree(merged, totalOffset, fillRule)
	if err != nil {
		log.Warn().Int("layer", l.Index).Err(err).Msg("edge offset failed")
		return
	}

	l.Islands = extractIslands(tree)
}

// applyEdgeOffsetTree offsets merged by delta and returns the resulting
// PolyTree, used to recover outer/hole nesting for island extraction.
func applyEdgeOffsetTree(merged geom.PathSet, delta float64, fillRule clipper.FillRule) (*clipper.PolyTree64, geom.PathSet, error) {
	offset, err := clipper.InflatePaths64(merged, delta, clipper.Miter, clipper.ClosedPolygon)
	if err != nil {
		return nil, nil, err
	}
	tree, open, err := clipper.Union64Tree(offset, nil, fillRule)
	return tree, open, err
}

// extractIslands converts PolyTree children at nesting depth 0 into
// Islands, each owning its outer contour and its immediate hole children
// as Insets[0]; deeper descendants become separate islands recursively
// (spec.md §4.3's last sentence).
func extractIslands(tree *clipper.PolyTree64) []*layer.Island {
	if tree == nil {
		return nil
	}
	var islands []*layer.Island
	for _, outer := range tree.Children() {
		islands = append(islands, islandFromOuter(outer))
		for _, hole := range outer.Children() {
			for _, nested := range hole.Children() {
				islands = append(islands, extractIslandsRecursive(nested)...)
			}
		}
	}
	return islands
}

func extractIslandsRecursive(node *clipper.PolyPath64) []*layer.Island {
	islands := []*layer.Island{islandFromOuter(node)}
	for _, hole := range node.Children() {
		for _, nested := range hole.Children() {
			islands = append(islands, extractIslandsRecursive(nested)...)
		}
	}
	return islands
}

func islandFromOuter(outer *clipper.PolyPath64) *layer.Island {
	inset0 := geom.PathSet{outer.Polygon()}
	for _, hole := range outer.Children() {
		inset0 = append(inset0, hole.Polygon())
	}
	return &layer.Island{
		Insets: []geom.PathSet{inset0},
		Box:    geom.BoxOfPath(outer.Polygon()),
	}
}

func reverseClockwiseContours(paths geom.PathSet) geom.PathSet {
	out := make(geom.PathSet, len(paths))
	for i, p := range paths {
		if clipper.IsPositive64(p) {
			out[i] = p
		} else {
			out[i] = clipper.Reverse64(p)
		}
	}
	return out
}
