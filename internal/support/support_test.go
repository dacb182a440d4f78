package support

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

func TestDetectOverhangFindsNewRegion(t *testing.T) {
	cfg := config.Default()
	cfg.ScaleConstant = 1000
	cfg.ExtrusionWidth = 450
	cfg.EdgeWidth = 450
	cfg.SupportAngleDegrees = 60

	prev := &layer.Layer{Islands: []*layer.Island{{Insets: []geom.PathSet{{square(0, 0, 10000, 10000)}}}}}
	cur := &layer.Layer{Islands: []*layer.Island{{Insets: []geom.PathSet{{square(0, 0, 30000, 30000)}}}}}

	DetectOverhang(cur, prev, cfg)
	require.NotEmpty(t, cur.LayerSupportMap)
}

func TestDetectOverhangNilPrevIsNoop(t *testing.T) {
	cfg := config.Default()
	cur := &layer.Layer{Islands: []*layer.Island{{Insets: []geom.PathSet{{square(0, 0, 30000, 30000)}}}}}
	DetectOverhang(cur, nil, cfg)
	require.Empty(t, cur.LayerSupportMap)
}

func TestExtendDownwardReachesPlateWhenUnobstructed(t *testing.T) {
	cfg := config.Default()
	cfg.SupportVertMargin = 1
	cfg.SupportEverywhere = false

	layers := []*layer.Layer{
		{Index: 0},
		{Index: 1},
		{Index: 2, LayerSupportMap: geom.PathSet{square(0, 0, 10000, 10000)}},
	}
	ExtendDownward(layers, cfg)

	require.NotEmpty(t, layers[0].SupportMap)
	require.NotEmpty(t, layers[1].SupportMap)
}
