package planner

import (
	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/layer"
)

// ScaleFeedRates applies spec.md §4.8's feed-rate scaling pass once every
// layer's moves and unscaled LayerTime are known: each layer's scalable
// feed rates are multiplied by the ratio of the rolling average layer time
// (over the last layer_time_samples layers, padding earlier layers with
// layer 0's time) to min_layer_time, when that average falls short, floored
// at min_feed_rate. Layer 0 is further scaled by first_layer_mult.
func ScaleFeedRates(layers []*layer.Layer, cfg *config.Settings) {
	if len(layers) == 0 {
		return
	}
	for i, l := range layers {
		factor := rollingAverageFactor(layers, i, cfg)
		if i == 0 {
			factor *= cfg.FirstLayerMult
		}
		if factor >= 1 {
			continue
		}
		for idx := range l.Moves {
			mv := &l.Moves[idx]
			if !mv.Scalable {
				continue
			}
			scaled := mv.FeedRate * factor
			if scaled < cfg.MinFeedRate {
				scaled = cfg.MinFeedRate
			}
			mv.FeedRate = scaled
		}
	}
}

func rollingAverageFactor(layers []*layer.Layer, i int, cfg *config.Settings) float64 {
	window := cfg.LayerTimeSamples
	if window <= 0 {
		window = 1
	}
	sum, count := 0.0, 0
	for k := i - window + 1; k <= i; k++ {
		var t float64
		if k < 0 {
			t = layers[0].LayerTime
		} else {
			t = layers[k].LayerTime
		}
		sum += t
		count++
	}
	avg := sum / float64(count)
	if avg <= 0 || avg >= cfg.MinLayerTime {
		return 1
	}
	return avg / cfg.MinLayerTime
}
