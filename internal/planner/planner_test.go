package planner

import (
	"testing"

	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 int64) geom.Path {
	return geom.Path{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func TestPlanEmitsMovesForSingleIsland(t *testing.T) {
	cfg := config.Default()
	cfg.ScaleConstant = 1000
	cfg.ExtrusionWidth = 450
	cfg.MaterialDiameter = 1.75
	cfg.ExtrusionArea = cfg.ExtrusionWidth * cfg.LayerHeight
	cfg.MaterialArea = cfg.MaterialDiameter * cfg.MaterialDiameter
	// Default keeps feed rates as multipliers that Load resolves; set an absolute one.
	cfg.PerimeterFeedRate = 25

	isl := &layer.Island{Insets: []geom.PathSet{{square(0, 0, 20000, 20000)}}}
	l := &layer.Layer{Islands: []*layer.Island{isl}}
	mach := &layer.Machine{}

	Plan(l, Extra{}, mach, cfg)

	require.NotEmpty(t, l.Moves)
	require.Greater(t, l.LayerTime, 0.0)
}

func TestTrimFromEndShortensPathByClipLength(t *testing.T) {
	path := geom.Path{{X: 0, Y: 0}, {X: 10000, Y: 0}, {X: 10000, Y: 10000}}
	kept, trimmed := trimFromEnd(path, 5000)
	require.NotEmpty(t, kept)
	require.NotEmpty(t, trimmed)
	require.Equal(t, kept[len(kept)-1], trimmed[0])
}

func TestScaleFeedRatesAppliesFirstLayerMultiplier(t *testing.T) {
	cfg := config.Default()
	cfg.FirstLayerMult = 0.5
	cfg.MinFeedRate = 1
	cfg.MinLayerTime = 1 // layer time already exceeds min_layer_time; only first-layer mult matters here

	l0 := &layer.Layer{
		LayerTime: 100,
		Moves:     []layer.Move{{FeedRate: 50, Scalable: true}},
	}
	layers := []*layer.Layer{l0}
	ScaleFeedRates(layers, cfg)

	require.Less(t, l0.Moves[0].FeedRate, 50.0)
}
