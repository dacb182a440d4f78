// Package support builds the downward-extending support columns of
// spec.md §4.6: per-layer overhang detection, synchronized descent through
// prior layers, and the interface/body line patterns.
package support

import (
	"math"

	"github.com/latticefab/layerkit/internal/clipper"
	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
)

// BuildBoundaries computes support_boundaries[i] for one layer; it only
// reads the layer's own islands, so it is safe to call concurrently across
// layers.
func BuildBoundaries(l *layer.Layer, cfg *config.Settings) {
	insets0 := collectInsets0(l)
	offsetAmt := (0.5+cfg.SupportMargin)*cfg.EdgeWidth - cfg.EdgeOffset
	b, err := clipper.InflatePaths64(insets0, offsetAmt, clipper.Square, clipper.ClosedPolygon)
	if err == nil {
		l.SupportBoundaries = b
	}
}

// DetectOverhang computes layer_support_map[i] (the new-overhang region
// introduced at this layer), comparing against the previous layer's
// insets[0]. Safe to call concurrently across layers; writes only l's own
// field.
func DetectOverhang(l *layer.Layer, prev *layer.Layer, cfg *config.Settings) {
	if prev == nil {
		return
	}
	curInsets0 := collectInsets0(l)
	prevInsets0 := collectInsets0(prev)
	if len(curInsets0) == 0 {
		return
	}

	grownPrev, err := clipper.InflatePaths64(prevInsets0, math.Tan(cfg.SupportAngleRadians())*cfg.LayerHeight, clipper.Square, clipper.ClosedPolygon)
	if err != nil {
		return
	}
	overhang, err := clipper.Difference64(curInsets0, grownPrev, clipper.NonZero)
	if err != nil || len(overhang) == 0 {
		return
	}

	expandAmt := cfg.SupportXYExpansion + (0.5+cfg.SupportMargin)*cfg.EdgeWidth - cfg.EdgeOffset
	expanded, err := clipper.InflatePaths64(overhang, expandAmt, clipper.Square, clipper.ClosedPolygon)
	if err != nil {
		return
	}
	l.LayerSupportMap = expanded
}

// ExtendDownward implements spec.md §4.6's downward-extension step: for
// each layer i with a nonempty overhang, descend k = i..0 subtracting the
// union of neighboring support_boundaries, writing the remainder into
// support_map of each visited layer with the layer's lock held.
func ExtendDownward(layers []*layer.Layer, cfg *config.Settings) {
	for i := len(layers) - 1; i >= 0; i-- {
		column := layers[i].LayerSupportMap
		if len(column) == 0 {
			continue
		}
		descendColumn(layers, i, column, cfg)
	}
}

func descendColumn(layers []*layer.Layer, top int, column geom.PathSet, cfg *config.Settings) {
	reachedPlate := false
	var stopK = -1
	visited := make([]geom.PathSet, 0, top+1)

	clip := column
	for k := top; k >= 0; k-- {
		window := neighborBoundaries(layers, k, cfg.SupportVertMargin)
		remainder, err := clipper.Difference64(clip, window, clipper.NonZero)
		if err != nil || len(remainder) == 0 {
			stopK = k
			break
		}
		clip = remainder
		visited = append(visited, remainder)
		if k == 0 {
			reachedPlate = true
		}
	}

	if !cfg.SupportEverywhere && !reachedPlate {
		return
	}

	for idx, region := range visited {
		k := top - idx
		if k <= stopK {
			continue
		}
		unlock := layers[k].LockSupportMap()
		layers[k].SupportMap = append(layers[k].SupportMap, region...)
		unlock()
	}
}

func neighborBoundaries(layers []*layer.Layer, k int, margin int) geom.PathSet {
	var acc geom.PathSet
	for d := -margin; d <= margin; d++ {
		li := k + d
		if li < 0 || li >= len(layers) {
			continue
		}
		acc = append(acc, layers[li].SupportBoundaries...)
	}
	return acc
}

// Simplify unions each layer's accumulated support_map into a clean set of
// contours, per spec.md §4.6.
func Simplify(l *layer.Layer) {
	if len(l.SupportMap) == 0 {
		return
	}
	merged, err := clipper.Union64(l.SupportMap, nil, clipper.NonZero)
	if err == nil {
		l.SupportMap = merged
	}
}

// BuildInterfaceClip computes support_interface_clip[i], the band used by
// neighboring layers to classify interface vs body support.
func BuildInterfaceClip(l *layer.Layer, cfg *config.Settings) {
	if len(l.SupportMap) == 0 {
		return
	}
	clip, err := clipper.InflatePaths64(l.SupportMap, cfg.InterfaceClipOffset, clipper.Square, clipper.ClosedPolygon)
	if err == nil {
		l.SupportInterfaceClip = clip
	}
}

// ClassifyAndEmit splits support_map into interface and body regions and
// generates their line patterns (spec.md §4.6 last two bullets).
func ClassifyAndEmit(layers []*layer.Layer, index int, cfg *config.Settings) {
	l := layers[index]
	if len(l.SupportMap) == 0 {
		return
	}

	var interfaceClip geom.PathSet
	if index == 0 && cfg.SolidSupportBase {
		interfaceClip = l.SupportMap
	} else {
		for k := -cfg.FloorLayers; k <= cfg.RoofLayers; k++ {
			if k == 0 {
				continue
			}
			li := index + k
			if li < 0 || li >= len(layers) {
				continue
			}
			interfaceClip = append(interfaceClip, layers[li].SupportInterfaceClip...)
		}
	}

	iface, err := clipper.Intersect64(l.SupportMap, interfaceClip, clipper.NonZero)
	if err != nil {
		iface = nil
	}
	if len(iface) > 0 {
		grown, err := clipper.InflatePaths64(iface, cfg.ExtrusionWidth/cfg.SupportDensity, clipper.Square, clipper.ClosedPolygon)
		if err == nil {
			if reintersected, err := clipper.Intersect64(grown, l.SupportMap, clipper.NonZero); err == nil {
				iface = reintersected
			}
		}
	}
	body, err := clipper.Difference64(l.SupportMap, iface, clipper.NonZero)
	if err != nil {
		body = nil
	}

	box := boxOfPathSet(l.SupportMap)
	if len(iface) > 0 {
		lines := geom.GenerateLines(box, cfg.SolidInfillAngle+45, cfg.ExtrusionWidth/cfg.InterfaceDensity)
		_, clipped, err := clipper.BooleanOp64(clipper.Intersection, clipper.NonZero, nil, lines, iface)
		if err == nil {
			l.SupportInterfaceLines = clipped
		}
	}
	if len(body) > 0 {
		lines := geom.GenerateLines(box, cfg.SolidInfillAngle-45, cfg.ExtrusionWidth/cfg.SupportDensity)
		_, clipped, err := clipper.BooleanOp64(clipper.Intersection, clipper.NonZero, nil, lines, body)
		if err == nil {
			l.SupportLines = clipped
		}
	}
}

func collectInsets0(l *layer.Layer) geom.PathSet {
	var out geom.PathSet
	for _, isl := range l.Islands {
		if len(isl.Insets) > 0 {
			out = append(out, isl.Insets[0]...)
		}
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
