// Package geom provides the fixed-scale integer 2D primitives the rest of
// layerkit builds on: points, paths, path sets, and the distance/orientation
// predicates the outline, inset, infill, support and planner stages share.
//
// Coordinates are scaled integers: a floating value x becomes round(x*S) for
// a configured scale constant S, matching internal/clipper's Point64/Path64
// representation (geom's types are aliases over it so clipper operations
// take geom values directly).
package geom

import (
	"math"

	"github.com/latticefab/layerkit/internal/clipper"
)

// Point is an integer 2D point in scaled units.
type Point = clipper.Point64

// Path is an ordered, implicitly-closed sequence of Points.
type Path = clipper.Path64

// PathSet is a collection of independent Paths.
type PathSet = clipper.Paths64

// ToScaled converts a floating-point coordinate to scaled integer units.
func ToScaled(x float64, scale int64) int64 {
	return int64(math.Round(x * float64(scale)))
}

// FromScaled converts a scaled integer coordinate back to floating point.
func FromScaled(v int64, scale int64) float64 {
	return float64(v) / float64(scale)
}

// DistanceToPoint returns the Euclidean distance between a and b.
func DistanceToPoint(a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Hypot(dx, dy)
}

// DistanceSquared returns the squared Euclidean distance, useful for
// tolerance comparisons that avoid a sqrt.
func DistanceSquared(a, b Point) int64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// DistanceToLine returns the distance from p to the segment [a,b], clamped
// to the segment's endpoints (not the infinite line).
func DistanceToLine(p, a, b Point) float64 {
	abx := float64(b.X - a.X)
	aby := float64(b.Y - a.Y)
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return DistanceToPoint(p, a)
	}
	t := (float64(p.X-a.X)*abx + float64(p.Y-a.Y)*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	projX := float64(a.X) + t*abx
	projY := float64(a.Y) + t*aby
	return math.Hypot(float64(p.X)-projX, float64(p.Y)-projY)
}

// PerpendicularDistanceToLine returns the unclamped perpendicular distance
// from p to the infinite line through a and b, used by RDP simplification.
func PerpendicularDistanceToLine(p, a, b Point) float64 {
	abx := float64(b.X - a.X)
	aby := float64(b.Y - a.Y)
	if abx == 0 && aby == 0 {
		return DistanceToPoint(p, a)
	}
	num := math.Abs(aby*float64(p.X-a.X) - abx*float64(p.Y-a.Y))
	return num / math.Hypot(abx, aby)
}

// Orientation is the sign of the cross product (b-a) x (c-a).
type Orientation int

const (
	Collinear Orientation = 0
	Clockwise Orientation = -1
	CounterClockwise Orientation = 1
)

// TripletOrientation returns the orientation of the ordered triplet (a,b,c).
func TripletOrientation(a, b, c Point) Orientation {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	switch {
	case cross > 0:
		return CounterClockwise
	case cross < 0:
		return Clockwise
	default:
		return Collinear
	}
}

func onSegment(a, b, p Point) bool {
	return p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X) &&
		p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
}

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// SegmentsIntersect reports whether segment ab crosses segment cd, via the
// standard four-orientation test with collinear-on-segment special cases.
func SegmentsIntersect(a, b, c, d Point) bool {
	o1 := TripletOrientation(a, b, c)
	o2 := TripletOrientation(a, b, d)
	o3 := TripletOrientation(c, d, a)
	o4 := TripletOrientation(c, d, b)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == Collinear && onSegment(a, b, c) {
		return true
	}
	if o2 == Collinear && onSegment(a, b, d) {
		return true
	}
	if o3 == Collinear && onSegment(c, d, a) {
		return true
	}
	if o4 == Collinear && onSegment(c, d, b) {
		return true
	}
	return false
}

// RDPSimplify runs Ramer-Douglas-Peucker simplification on an open path.
// For closed paths, the caller duplicates the first point at the end before
// calling, and drops the duplicate from the result (per spec).
func RDPSimplify(path Path, epsilon float64) Path {
	if len(path) < 3 {
		out := make(Path, len(path))
		copy(out, path)
		return out
	}
	keep := make([]bool, len(path))
	keep[0] = true
	keep[len(path)-1] = true
	rdpRange(path, 0, len(path)-1, epsilon, keep)

	out := make(Path, 0, len(path))
	for i, k := range keep {
		if k {
			out = append(out, path[i])
		}
	}
	return out
}

func rdpRange(path Path, start, end int, epsilon float64, keep []bool) {
	if end <= start+1 {
		return
	}
	maxDist := -1.0
	maxIdx := -1
	for i := start + 1; i < end; i++ {
		d := PerpendicularDistanceToLine(path[i], path[start], path[end])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist <= epsilon || maxIdx < 0 {
		return
	}
	keep[maxIdx] = true
	rdpRange(path, start, maxIdx, epsilon, keep)
	rdpRange(path, maxIdx, end, epsilon, keep)
}

// Box is an axis-aligned bounding box in scaled integer units. Top > Bottom
// (Y increases upward), the convention layerkit commits to throughout —
// see SPEC_FULL.md §10 for why this resolves the source's dueling
// Y-conventions.
type Box struct {
	Left, Top, Right, Bottom int64
}

// BoxOfPath returns the bounding box of path, or the zero Box if empty.
func BoxOfPath(path Path) Box {
	if len(path) == 0 {
		return Box{}
	}
	b := Box{Left: path[0].X, Right: path[0].X, Top: path[0].Y, Bottom: path[0].Y}
	for _, pt := range path[1:] {
		if pt.X < b.Left {
			b.Left = pt.X
		}
		if pt.X > b.Right {
			b.Right = pt.X
		}
		if pt.Y > b.Top {
			b.Top = pt.Y
		}
		if pt.Y < b.Bottom {
			b.Bottom = pt.Y
		}
	}
	return b
}

// Intersects reports whether two boxes overlap, boundaries inclusive.
func (b Box) Intersects(o Box) bool {
	return b.Left <= o.Right && o.Left <= b.Right &&
		b.Bottom <= o.Top && o.Bottom <= b.Top
}

// Expand grows the box by margin on all sides.
func (b Box) Expand(margin int64) Box {
	return Box{Left: b.Left - margin, Top: b.Top + margin, Right: b.Right + margin, Bottom: b.Bottom - margin}
}
