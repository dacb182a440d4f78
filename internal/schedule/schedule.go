// Package schedule runs the bulk-synchronous-parallel pipeline of spec.md
// §5: each stage is a global barrier, parallel within the stage over the
// layer index, grounded on the teacher's goroutine-per-chunk dispatch
// pattern (CWBudde-Go-Clipper2's parallel path processing) generalized to
// golang.org/x/sync/errgroup for structured fan-out/error propagation.
package schedule

import (
	"context"

	"github.com/latticefab/layerkit/internal/adhesion"
	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/infill"
	"github.com/latticefab/layerkit/internal/inset"
	"github.com/latticefab/layerkit/internal/layer"
	"github.com/latticefab/layerkit/internal/mesh"
	"github.com/latticefab/layerkit/internal/outline"
	"github.com/latticefab/layerkit/internal/planner"
	"github.com/latticefab/layerkit/internal/slicer"
	"github.com/latticefab/layerkit/internal/support"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Run executes every stage of the pipeline and returns the fully planned
// layers, ready for serialized G-code emission.
func Run(ctx context.Context, m *mesh.Mesh, cfg *config.Settings, log zerolog.Logger) ([]*layer.Layer, error) {
	numLayers := slicer.NumLayers(m, cfg)
	layers := make([]*layer.Layer, numLayers)
	for i := range layers {
		layers[i] = &layer.Layer{Index: i, Z: float64(i)*cfg.LayerHeight + cfg.LayerHeight/2}
	}

	if err := stageSlice(ctx, m, layers, cfg); err != nil {
		return nil, err
	}
	if err := forEachLayer(ctx, layers, func(l *layer.Layer) error {
		outline.Build(l, cfg, log)
		return nil
	}); err != nil {
		return nil, err
	}
	if err := forEachLayer(ctx, layers, func(l *layer.Layer) error {
		for _, isl := range l.Islands {
			inset.Build(isl, cfg)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if err := forEachLayer(ctx, layers, func(l *layer.Layer) error {
		for _, isl := range l.Islands {
			infill.Build(isl, infill.Context{Layers: layers, LayerIndex: l.Index, Cfg: cfg})
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if cfg.GenerateSupport {
		if err := runSupportStages(ctx, layers, cfg); err != nil {
			return nil, err
		}
	}

	brim, raft := runAdhesionStage(layers, cfg)

	if err := runPlanningStage(ctx, layers, brim, raft, cfg); err != nil {
		return nil, err
	}
	planner.ScaleFeedRates(layers, cfg)

	return layers, nil
}

func stageSlice(ctx context.Context, m *mesh.Mesh, layers []*layer.Layer, cfg *config.Settings) error {
	g, _ := errgroup.WithContext(ctx)
	const chunkSize = 2048
	for start := 0; start < len(m.Triangles); start += chunkSize {
		end := start + chunkSize
		if end > len(m.Triangles) {
			end = len(m.Triangles)
		}
		chunk := m.Triangles[start:end]
		g.Go(func() error {
			for _, tri := range chunk {
				slicer.SliceTriangle(tri, layers, cfg)
			}
			return nil
		})
	}
	return g.Wait()
}

func forEachLayer(ctx context.Context, layers []*layer.Layer, fn func(l *layer.Layer) error) error {
	g, _ := errgroup.WithContext(ctx)
	for _, l := range layers {
		l := l
		g.Go(func() error { return fn(l) })
	}
	return g.Wait()
}

func runSupportStages(ctx context.Context, layers []*layer.Layer, cfg *config.Settings) error {
	if err := forEachLayer(ctx, layers, func(l *layer.Layer) error {
		support.BuildBoundaries(l, cfg)
		return nil
	}); err != nil {
		return err
	}
	if err := forEachLayer(ctx, layers, func(l *layer.Layer) error {
		if l.Index == 0 {
			return nil
		}
		support.DetectOverhang(l, layers[l.Index-1], cfg)
		return nil
	}); err != nil {
		return err
	}

	support.ExtendDownward(layers, cfg)

	if err := forEachLayer(ctx, layers, func(l *layer.Layer) error {
		support.Simplify(l)
		support.BuildInterfaceClip(l, cfg)
		return nil
	}); err != nil {
		return err
	}
	return forEachLayer(ctx, layers, func(l *layer.Layer) error {
		support.ClassifyAndEmit(layers, l.Index, cfg)
		return nil
	})
}

func runAdhesionStage(layers []*layer.Layer, cfg *config.Settings) (geom.PathSet, adhesion.Raft) {
	if len(layers) == 0 {
		return nil, adhesion.Raft{}
	}
	l0 := layers[0]
	var insets0 geom.PathSet
	for _, isl := range l0.Islands {
		if len(isl.Insets) > 0 {
			insets0 = append(insets0, isl.Insets[0]...)
		}
	}
	brim := adhesion.BuildBrim(insets0, l0.SupportMap, cfg)
	raft := adhesion.BuildRaft(insets0, cfg)
	return brim, raft
}

func runPlanningStage(ctx context.Context, layers []*layer.Layer, brim geom.PathSet, raft adhesion.Raft, cfg *config.Settings) error {
	origin := lowerLeftOrigin(layers, cfg)
	return forEachLayer(ctx, layers, func(l *layer.Layer) error {
		mach := &layer.Machine{X: origin.X, Y: origin.Y, Z: geom.ToScaled(l.Z, cfg.ScaleConstant)}
		extra := planner.Extra{IsFirstLayer: l.Index == 0}
		if l.Index == 0 {
			extra.Brim = brim
			extra.RaftBaseLines = raft.BaseLines
			extra.RaftInterfaceLines = raft.InterfaceLines
		}
		extra.SupportInterfaceLines = l.SupportInterfaceLines
		extra.SupportLines = l.SupportLines
		planner.Plan(l, extra, mach, cfg)
		return nil
	})
}

func lowerLeftOrigin(layers []*layer.Layer, cfg *config.Settings) geom.Point {
	var box geom.Box
	first := true
	for _, l := range layers {
		for _, isl := range l.Islands {
			if first {
				box, first = isl.Box, false
				continue
			}
			if isl.Box.Left < box.Left {
				box.Left = isl.Box.Left
			}
			if isl.Box.Bottom < box.Bottom {
				box.Bottom = isl.Box.Bottom
			}
		}
	}
	margin := geom.ToScaled(cfg.XYExtra, cfg.ScaleConstant)
	return geom.Point{X: box.Left - margin, Y: box.Bottom - margin}
}
