// Package adhesion builds the brim and raft adjuncts of spec.md §4.7.
package adhesion

import (
	"github.com/latticefab/layerkit/internal/clipper"
	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
)

// BuildBrim returns the nested brim loops around layer 0, unioning its
// insets[0] (and support_map when support is enabled) then offsetting
// outward i*w plus the adhesion-factor term, for i = 1..brim_lines.
func BuildBrim(layer0Insets0, layer0SupportMap geom.PathSet, cfg *config.Settings) geom.PathSet {
	if cfg.BrimLines <= 0 {
		return nil
	}
	base, err := clipper.Union64(layer0Insets0, layer0SupportMap, clipper.NonZero)
	if err != nil {
		base = layer0Insets0
	}

	w := cfg.ExtrusionWidth
	adhesionTerm := (-2*cfg.EdgeOffset - w) * (1 - cfg.BrimAdhesionFactor) * 2

	var brim geom.PathSet
	for i := 1; i <= cfg.BrimLines; i++ {
		loop, err := clipper.InflatePaths64(base, w*float64(i)+adhesionTerm, clipper.Square, clipper.ClosedPolygon)
		if err != nil {
			continue
		}
		simplified, err := clipper.SimplifyPaths64(loop, cfg.Coarseness*float64(cfg.ScaleConstant), true)
		if err == nil {
			loop = simplified
		}
		brim = append(brim, loop...)
	}
	return brim
}

// Raft is the two-layer footprint printed beneath the object when enabled.
type Raft struct {
	BaseLines      geom.PathSet
	InterfaceLines geom.PathSet
}

// BuildRaft generates the raft base (low-density line pattern) and
// interface (solid fill rotated 90° from the object's solid angle) from
// layer 0's insets[0] footprint.
func BuildRaft(layer0Insets0 geom.PathSet, cfg *config.Settings) Raft {
	if !cfg.RaftEnabled || len(layer0Insets0) == 0 {
		return Raft{}
	}
	box := boxOfPathSet(layer0Insets0)

	baseSpacing := cfg.ExtrusionWidth / cfg.InfillDensity
	baseLines := geom.GenerateLines(box, cfg.SolidInfillAngle, baseSpacing)
	_, clippedBase, err := clipper.BooleanOp64(clipper.Intersection, clipper.NonZero, nil, baseLines, layer0Insets0)
	if err != nil {
		clippedBase = nil
	}

	interfaceSpacing := cfg.ExtrusionWidth
	interfaceLines := geom.GenerateLines(box, cfg.SolidInfillAngle+90, interfaceSpacing)
	_, clippedInterface, err := clipper.BooleanOp64(clipper.Intersection, clipper.NonZero, nil, interfaceLines, layer0Insets0)
	if err != nil {
		clippedInterface = nil
	}

	return Raft{BaseLines: clippedBase, InterfaceLines: clippedInterface}
}

// ZOffset returns the upward Z shift applied to the whole object when a
// raft is enabled (spec.md §4.7's last sentence).
func ZOffset(cfg *config.Settings) float64 {
	if !cfg.RaftEnabled {
		return 0
	}
	return cfg.RaftBaseLayerHeight + cfg.LayerHeight*float64(cfg.RaftVertMargin+cfg.RaftInterfaceLayers)
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
