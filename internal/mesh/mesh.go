// Package mesh holds the in-memory triangle soup the slicer consumes. A
// Mesh is read once (see internal/stl) and released after the slice-segment
// stage, per spec's lifecycle note.
package mesh

import "math"

// Vec3 is a floating-point 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Triangle is three 3D vertices; the surface normal is not retained, the
// core only consumes vertex positions.
type Triangle struct {
	V0, V1, V2 Vec3
}

// ZBounds returns the triangle's minimum and maximum Z coordinate.
func (t Triangle) ZBounds() (zmin, zmax float64) {
	zmin = math.Min(t.V0.Z, math.Min(t.V1.Z, t.V2.Z))
	zmax = math.Max(t.V0.Z, math.Max(t.V1.Z, t.V2.Z))
	return
}

// Vertices returns the triangle's three vertices as a fixed-size array, for
// iteration convenience.
func (t Triangle) Vertices() [3]Vec3 {
	return [3]Vec3{t.V0, t.V1, t.V2}
}

// Mesh is an ordered sequence of Triangles plus its bounding box and
// centroid, computed once at load time.
type Mesh struct {
	Triangles []Triangle
	Min, Max  Vec3
	Centroid  Vec3
}

// New computes bounding box and centroid for the given triangles and
// returns the assembled Mesh.
func New(triangles []Triangle) *Mesh {
	m := &Mesh{Triangles: triangles}
	if len(triangles) == 0 {
		return m
	}
	m.Min = triangles[0].V0
	m.Max = triangles[0].V0
	var sum Vec3
	count := 0
	for _, tr := range triangles {
		for _, v := range tr.Vertices() {
			m.Min.X = math.Min(m.Min.X, v.X)
			m.Min.Y = math.Min(m.Min.Y, v.Y)
			m.Min.Z = math.Min(m.Min.Z, v.Z)
			m.Max.X = math.Max(m.Max.X, v.X)
			m.Max.Y = math.Max(m.Max.Y, v.Y)
			m.Max.Z = math.Max(m.Max.Z, v.Z)
			sum.X += v.X
			sum.Y += v.Y
			sum.Z += v.Z
			count++
		}
	}
	m.Centroid = Vec3{sum.X / float64(count), sum.Y / float64(count), sum.Z / float64(count)}
	return m
}
