package outline

import (
	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
	"github.com/rs/zerolog"
)

// stitchSegments implements spec.md §4.3's chain-building loop: pull a
// segment, then repeatedly seek a segment whose first endpoint equals the
// running polygon's last endpoint (exact match preferred; reversed-match
// and tolerance fallback next), closing when the tail meets the head.
func stitchSegments(raw []layer.Segment, cfg *config.Settings, log zerolog.Logger, layerIndex int) []Result {
	pool := make([]layer.Segment, len(raw))
	copy(pool, raw)

	toleranceSq := int64(cfg.Coarseness * float64(cfg.ScaleConstant) * cfg.Coarseness * float64(cfg.ScaleConstant))

	var results []Result
	for len(pool) > 0 {
		seg := pool[0]
		pool = swapRemove(pool, 0)

		path := geom.Path{seg.A, seg.B}
		flips := 0
		segCount := 1

		for len(pool) > 0 {
			tail := path[len(path)-1]
			head := path[0]

			if tail == head {
				break // closed exactly
			}

			bestIdx := -1
			bestReverse := false
			bestDistSq := int64(-1)
			exactFound := false

			for i, cand := range pool {
				if cand.A == tail {
					bestIdx, bestReverse, exactFound = i, false, true
					break
				}
				if cand.B == tail {
					bestIdx, bestReverse, exactFound = i, true, true
					break
				}
			}

			if !exactFound {
				for i, cand := range pool {
					dA := geom.DistanceSquared(tail, cand.A)
					dB := geom.DistanceSquared(tail, cand.B)
					d, rev := dA, false
					if dB < dA {
						d, rev = dB, true
					}
					if bestDistSq < 0 || d < bestDistSq {
						bestDistSq, bestIdx, bestReverse = d, i, rev
					}
				}
				closeDistSq := geom.DistanceSquared(tail, head)
				if closeDistSq <= toleranceSq && closeDistSq <= bestDistSq {
					break // close within tolerance
				}
				if bestIdx < 0 || bestDistSq > toleranceSq {
					log.Warn().Int("layer", layerIndex).Msg("outline stitching: no match within tolerance, probable mesh hole")
					break
				}
			}

			cand := pool[bestIdx]
			pool = swapRemove(pool, bestIdx)
			segCount++
			if bestReverse {
				flips++
				path = append(path, cand.A)
			} else {
				path = append(path, cand.B)
			}
		}

		if len(path) > 2 && path[len(path)-1] == path[0] {
			path = path[:len(path)-1] // an exact closure repeats the head; paths are implicitly closed
		}
		results = append(results, postProcess(path, flips, segCount, cfg))
	}
	return results
}

// postProcess applies spec.md §4.3's post-close steps 2-3 (RDP simplify,
// reverse-if-mostly-flipped); step 4 (combine_all self-union) is applied
// across all outlines together by the caller, and step 1 (scaled rounding)
// is already done at segment-emission time in the slicer.
func postProcess(path geom.Path, flips, segCount int, cfg *config.Settings) Result {
	if cfg.Coarseness > 0 {
		epsilon := cfg.Coarseness * float64(cfg.ScaleConstant)
		closed := append(geom.Path{}, path...)
		closed = append(closed, path[0])
		simplified := geom.RDPSimplify(closed, epsilon)
		if len(simplified) > 1 {
			path = simplified[:len(simplified)-1]
		}
	}
	if flips*2 > segCount {
		path = reversePath(path)
	}
	return Result{Path: path, FlipCount: flips, Segments: segCount}
}

func reversePath(p geom.Path) geom.Path {
	out := make(geom.Path, len(p))
	for i, j := 0, len(p)-1; i < len(p); i, j = i+1, j-1 {
		out[i] = p[j]
	}
	return out
}

func swapRemove(s []layer.Segment, i int) []layer.Segment {
	last := len(s) - 1
	s[i] = s[last]
	return s[:last]
}
