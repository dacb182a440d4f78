package infill

import (
	"testing"

	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
	"github.com/stretchr/testify/require"
)

func square(side int64) geom.Path {
	return geom.Path{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}}
}

func TestBuildFullDensityProducesSolidInfillOnly(t *testing.T) {
	cfg := config.Default()
	cfg.ScaleConstant = 1000
	cfg.ExtrusionWidth = 450
	cfg.InfillDensity = 1.0
	cfg.FloorLayers = 0
	cfg.RoofLayers = 0

	island := &layer.Island{InfillInsets: geom.PathSet{square(20000)}}
	layers := []*layer.Layer{{Index: 0, Islands: []*layer.Island{island}}}

	Build(island, Context{Layers: layers, LayerIndex: 0, Cfg: cfg})

	require.NotEmpty(t, island.SolidInfill)
	require.Empty(t, island.SparseInfill)
}

func TestBuildSparseDensityProducesSparseInfill(t *testing.T) {
	cfg := config.Default()
	cfg.ScaleConstant = 1000
	cfg.ExtrusionWidth = 450
	cfg.InfillDensity = 0.2
	cfg.FloorLayers = 0
	cfg.RoofLayers = 0
	cfg.MinSparseInfillLen = 0

	island := &layer.Island{InfillInsets: geom.PathSet{square(20000)}}
	layers := []*layer.Layer{{Index: 0, Islands: []*layer.Island{island}}}

	Build(island, Context{Layers: layers, LayerIndex: 0, Cfg: cfg})

	require.NotEmpty(t, island.SparseInfill)
}

func TestDropShortLinesFiltersBelowThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.ScaleConstant = 1000
	cfg.MinSparseInfillLen = 1.0

	lines := geom.PathSet{
		{{X: 0, Y: 0}, {X: 100, Y: 0}},
		{{X: 0, Y: 0}, {X: 5000, Y: 0}},
	}
	out := dropShortLines(lines, cfg)
	require.Len(t, out, 1)
}
