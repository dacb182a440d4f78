package outline

import (
	"testing"

	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 int64) []layer.Segment {
	a := geom.Point{X: x0, Y: y0}
	b := geom.Point{X: x1, Y: y0}
	c := geom.Point{X: x1, Y: y1}
	d := geom.Point{X: x0, Y: y1}
	return []layer.Segment{{A: a, B: b}, {B: c, A: b}, {A: c, B: d}, {A: d, B: a}}
}

func TestStitchSegmentsClosesExactSquare(t *testing.T) {
	cfg := config.Default()
	results := stitchSegments(square(0, 0, 10000, 10000), cfg, zerolog.Nop(), 0)
	require.Len(t, results, 1)
	require.Len(t, results[0].Path, 4)
}

func TestStitchSegmentsRecoversWithinTolerance(t *testing.T) {
	cfg := config.Default()
	cfg.Coarseness = 0.02
	segs := square(0, 0, 10000, 10000)
	// nudge one endpoint slightly so it no longer matches exactly
	segs[1].A = geom.Point{X: 10000, Y: 1}
	results := stitchSegments(segs, cfg, zerolog.Nop(), 0)
	require.Len(t, results, 1)
}
