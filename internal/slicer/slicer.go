// Package slicer implements spec.md §4.2: intersecting each mesh triangle
// with evenly spaced horizontal planes to produce the raw, unordered
// segment buckets each Layer starts from.
package slicer

import (
	"math"

	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
	"github.com/latticefab/layerkit/internal/mesh"
)

// NumLayers returns how many layers are needed to cover the mesh's Z
// extent at the configured layer height.
func NumLayers(m *mesh.Mesh, cfg *config.Settings) int {
	if cfg.LayerHeight <= 0 || len(m.Triangles) == 0 {
		return 0
	}
	zmax := math.Max(0, m.Max.Z)
	return int(math.Floor(zmax/cfg.LayerHeight+0.5001)) + 1
}

// SliceTriangle intersects one triangle against every plane it spans and
// appends the resulting segments to the corresponding Layer. Safe to call
// concurrently across triangles: each append goes through the target
// Layer's own lock (spec.md §5 stage 1).
func SliceTriangle(t mesh.Triangle, layers []*layer.Layer, cfg *config.Settings) {
	h := cfg.LayerHeight
	if h <= 0 {
		return
	}

	zmin, zmax := t.ZBounds()
	zmin = math.Max(0, zmin)
	zmax = math.Max(0, zmax)

	iStart := int(math.Floor(zmin/h + 0.4999))
	iEnd := int(math.Floor(zmax/h + 0.5001))

	for i := iStart; i < iEnd; i++ {
		if i < 0 || i >= len(layers) {
			continue
		}
		z := (float64(i) + 0.5) * h
		seg, ok := intersectPlane(t, z, cfg.ScaleConstant)
		if !ok {
			continue
		}
		layers[i].AppendSegment(seg)
	}
}

// intersectPlane computes the segment where triangle t crosses the
// horizontal plane at height z, by finding the minority-side vertex and
// interpolating along its two outgoing edges. Returns ok=false for
// non-manifold triangles that yield fewer than two usable edges, or for a
// degenerate (zero-length) result — both are silently skipped per spec.md
// §4.2's failure model.
func intersectPlane(t mesh.Triangle, z float64, scale int64) (layer.Segment, bool) {
	verts := t.Vertices()

	above := [3]bool{verts[0].Z > z, verts[1].Z > z, verts[2].Z > z}
	numAbove := 0
	for _, a := range above {
		if a {
			numAbove++
		}
	}
	if numAbove == 0 || numAbove == 3 {
		return layer.Segment{}, false
	}

	// minority is the single vertex on the smaller side.
	minoritySide := numAbove == 1
	var minority int
	for i, a := range above {
		if a == minoritySide {
			minority = i
			break
		}
	}
	other1 := (minority + 1) % 3
	other2 := (minority + 2) % 3

	p0 := interpolateEdge(verts[minority], verts[other1], z)
	p1 := interpolateEdge(verts[minority], verts[other2], z)

	a := geom.Point{X: geom.ToScaled(p0.X, scale), Y: geom.ToScaled(p0.Y, scale)}
	b := geom.Point{X: geom.ToScaled(p1.X, scale), Y: geom.ToScaled(p1.Y, scale)}
	if a == b {
		return layer.Segment{}, false
	}
	return layer.Segment{A: a, B: b}, true
}

func interpolateEdge(from, to mesh.Vec3, z float64) mesh.Vec3 {
	if from.Z == to.Z {
		return from
	}
	t := (z - from.Z) / (to.Z - from.Z)
	return mesh.Vec3{
		X: from.X + t*(to.X-from.X),
		Y: from.Y + t*(to.Y-from.Y),
		Z: z,
	}
}
