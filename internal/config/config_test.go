package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadParsesSettingsAndDerivesValues(t *testing.T) {
	src := strings.NewReader(`
# comment
layer_height = 0.2
extrusion_width = 0.45
shells = 3
infill_density = 0.3
gcode_variable = nozzle_temp=210
at_layer = 5:M117 halfway
`)
	s, err := Load(src, Default())
	require.NoError(t, err)

	require.Equal(t, 0.2, s.LayerHeight)
	require.Equal(t, 0.45, s.ExtrusionWidth)
	require.Equal(t, 3, s.NumShells)
	require.Equal(t, 0.3, s.InfillDensity)
	require.Equal(t, "210", s.GCodeVariables["nozzle_temp"])
	require.Equal(t, "M117 halfway", s.AtLayer[5])

	require.Greater(t, s.ExtrusionArea, 0.0)
	require.Greater(t, s.EdgeWidth, 0.0)
}

func TestLoadParsesInfillSmoothThreshold(t *testing.T) {
	s, err := Load(strings.NewReader("infill_smooth_threshold = 1.25"), Default())
	require.NoError(t, err)
	require.Equal(t, 1.25, s.InfillSmoothThreshold)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(strings.NewReader("not_a_real_setting = 1"), Default())
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "not_a_real_setting", cfgErr.Key)
}

func TestLoadRejectsOutOfRangeValue(t *testing.T) {
	_, err := Load(strings.NewReader("packing_density = 1.5"), Default())
	require.Error(t, err)
}

func TestNegativeFeedRatesResolveToMultipleOfBase(t *testing.T) {
	s := Default()
	s.FeedRate = 50
	s.PerimeterFeedRate = -0.5
	s.resolveFeedRates()
	require.Equal(t, 25.0, s.PerimeterFeedRate)
}

func TestInfillFeedRateAliasSetsBothSparseAndSolid(t *testing.T) {
	s, err := Load(strings.NewReader("infill_feed_rate = 40"), Default())
	require.NoError(t, err)
	require.Equal(t, 40.0, s.SolidInfillFeedRate)
	require.Equal(t, 40.0, s.SparseInfillFeedRate)
}
