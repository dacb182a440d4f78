package clipper

import "errors"

var (
	// ErrInvalidParameter indicates an invalid numeric parameter (epsilon <= 0, etc.)
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidOptions indicates invalid offset option values (miterLimit <= 0, etc.)
	ErrInvalidOptions = errors.New("invalid offset options")

	// ErrDegeneratePolygon indicates a polygon with fewer than 3 points
	ErrDegeneratePolygon = errors.New("degenerate polygon: fewer than 3 points")

	// ErrInvalidClipType indicates a ClipType value outside its defined range
	ErrInvalidClipType = errors.New("invalid clip type")

	// ErrInvalidFillRule indicates a FillRule value outside its defined range
	ErrInvalidFillRule = errors.New("invalid fill rule")

	// ErrInvalidJoinType indicates a JoinType value outside its defined range
	ErrInvalidJoinType = errors.New("invalid join type")

	// ErrInvalidEndType indicates an EndType value outside its defined range
	ErrInvalidEndType = errors.New("invalid end type")

	// ErrEmptyPath indicates a nil or empty path where a valid path is required
	ErrEmptyPath = errors.New("empty path")
)

func validateClipType(clipType ClipType) error {
	if clipType > Xor {
		return ErrInvalidClipType
	}
	return nil
}

func validateFillRule(fillRule FillRule) error {
	if fillRule > Negative {
		return ErrInvalidFillRule
	}
	return nil
}

func validateJoinType(joinType JoinType) error {
	if joinType > Bevel {
		return ErrInvalidJoinType
	}
	return nil
}

func validateEndType(endType EndType) error {
	if endType > OpenButt {
		return ErrInvalidEndType
	}
	return nil
}

// filterValidPaths drops paths with fewer than minPoints points, returning the
// surviving paths and how many were dropped.
func filterValidPaths(paths Paths64, minPoints int) (Paths64, int) {
	if len(paths) == 0 {
		return paths, 0
	}
	kept := make(Paths64, 0, len(paths))
	dropped := 0
	for _, path := range paths {
		if len(path) >= minPoints {
			kept = append(kept, path)
		} else {
			dropped++
		}
	}
	return kept, dropped
}

// Rect64 is an axis-aligned bounding rectangle with 64-bit integer coordinates.
type Rect64 struct {
	Left, Top, Right, Bottom int64
}

// AsPath returns the rectangle as a closed four-point path, wound
// counter-clockwise starting at the top-left corner.
func (r Rect64) AsPath() Path64 {
	return Path64{
		{r.Left, r.Top},
		{r.Right, r.Top},
		{r.Right, r.Bottom},
		{r.Left, r.Bottom},
	}
}

func (r Rect64) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

func (r Rect64) Width() int64 {
	return r.Right - r.Left
}

func (r Rect64) Height() int64 {
	return r.Bottom - r.Top
}

func (r Rect64) MidPoint() Point64 {
	return Point64{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Contains reports whether pt lies strictly inside the rectangle, excluding
// its boundary.
func (r Rect64) Contains(pt Point64) bool {
	return pt.X > r.Left && pt.X < r.Right && pt.Y > r.Top && pt.Y < r.Bottom
}

// ContainsRect reports whether other lies within r, boundaries inclusive.
func (r Rect64) ContainsRect(other Rect64) bool {
	return other.Left >= r.Left && other.Right <= r.Right &&
		other.Top >= r.Top && other.Bottom <= r.Bottom
}

// Intersects reports whether r and other overlap, boundaries inclusive.
func (r Rect64) Intersects(other Rect64) bool {
	return r.Left <= other.Right && other.Left <= r.Right &&
		r.Top <= other.Bottom && other.Top <= r.Bottom
}

func bounds64Impl(path Path64) Rect64 {
	if len(path) == 0 {
		return Rect64{}
	}
	r := Rect64{Left: path[0].X, Right: path[0].X, Top: path[0].Y, Bottom: path[0].Y}
	for _, pt := range path[1:] {
		if pt.X < r.Left {
			r.Left = pt.X
		}
		if pt.X > r.Right {
			r.Right = pt.X
		}
		if pt.Y < r.Top {
			r.Top = pt.Y
		}
		if pt.Y > r.Bottom {
			r.Bottom = pt.Y
		}
	}
	return r
}

func boundsPaths64Impl(paths Paths64) Rect64 {
	var r Rect64
	first := true
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		pr := bounds64Impl(path)
		if first {
			r = pr
			first = false
			continue
		}
		if pr.Left < r.Left {
			r.Left = pr.Left
		}
		if pr.Right > r.Right {
			r.Right = pr.Right
		}
		if pr.Top < r.Top {
			r.Top = pr.Top
		}
		if pr.Bottom > r.Bottom {
			r.Bottom = pr.Bottom
		}
	}
	return r
}

// simplifyPath64Impl runs Ramer-Douglas-Peucker simplification against epsilon.
// Closed paths are simplified as a ring: the first point is appended as a
// sentinel so the algorithm sees the closing segment, then the duplicate is
// dropped from the result.
func simplifyPath64Impl(path Path64, epsilon float64, isClosedPath bool) Path64 {
	if len(path) < 3 {
		return append(Path64{}, path...)
	}

	work := path
	if isClosedPath && (path[0] != path[len(path)-1]) {
		work = make(Path64, len(path)+1)
		copy(work, path)
		work[len(path)] = path[0]
	}

	keep := rdpSimplify(work, epsilon)

	if isClosedPath && len(keep) > 1 && keep[0] == keep[len(keep)-1] {
		keep = keep[:len(keep)-1]
	}
	return keep
}

func rdpSimplify(points Path64, epsilon float64) Path64 {
	if len(points) < 3 {
		return append(Path64{}, points...)
	}

	keepIdx := make([]bool, len(points))
	keepIdx[0] = true
	keepIdx[len(points)-1] = true
	rdpRecurse(points, 0, len(points)-1, epsilon, keepIdx)

	result := make(Path64, 0, len(points))
	for i, keep := range keepIdx {
		if keep {
			result = append(result, points[i])
		}
	}
	return result
}

func rdpRecurse(points Path64, start, end int, epsilon float64, keep []bool) {
	if end <= start+1 {
		return
	}

	maxDist := -1.0
	maxIdx := -1
	for i := start + 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[start], points[end])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon || maxIdx < 0 {
		return
	}

	keep[maxIdx] = true
	rdpRecurse(points, start, maxIdx, epsilon, keep)
	rdpRecurse(points, maxIdx, end, epsilon, keep)
}

func perpendicularDistance(pt, lineStart, lineEnd Point64) float64 {
	dx := float64(lineEnd.X - lineStart.X)
	dy := float64(lineEnd.Y - lineStart.Y)
	if dx == 0 && dy == 0 {
		ddx := float64(pt.X - lineStart.X)
		ddy := float64(pt.Y - lineStart.Y)
		return hypot(ddx, ddy)
	}
	num := dy*float64(pt.X-lineStart.X) - dx*float64(pt.Y-lineStart.Y)
	if num < 0 {
		num = -num
	}
	return num / hypot(dx, dy)
}

func minkowskiSum64Impl(pattern, path Path64, isClosed bool) (Paths64, error) {
	return Union64(minkowskiInternal(pattern, path, true, isClosed), nil, NonZero)
}

func minkowskiDiff64Impl(pattern, path Path64, isClosed bool) (Paths64, error) {
	return Union64(minkowskiInternal(pattern, path, false, isClosed), nil, NonZero)
}

// booleanOp64TreeImpl runs the flat boolean op and nests the resulting paths
// by containment: each path's parent is the smallest-area surviving path that
// contains one of its points. Paths keep the orientation the flat operation
// gave them; nesting does not reverse holes.
func booleanOp64TreeImpl(clipType ClipType, fillRule FillRule, subjects, clips Paths64) (*PolyTree64, Paths64, error) {
	flat, _, err := booleanOp64Impl(clipType, fillRule, subjects, nil, clips)
	if err != nil {
		return nil, nil, err
	}

	tree := NewPolyTree64()
	nestPathsByContainment(tree, flat)
	return tree, Paths64{}, nil
}

type nestCandidate struct {
	path Path64
	area float64
	node *PolyPath64
}

// nestPathsByContainment inserts each path under the smallest enclosing path
// already in the tree, largest-area-first so parents exist before children.
func nestPathsByContainment(tree *PolyTree64, flat Paths64) {
	candidates := make([]*nestCandidate, 0, len(flat))
	for _, p := range flat {
		if len(p) < 3 {
			continue
		}
		a := Area64(p)
		if a < 0 {
			a = -a
		}
		candidates = append(candidates, &nestCandidate{path: p, area: a})
	}

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if candidates[j].area > candidates[i].area {
				candidates[i], candidates[j] = candidates[j], candidates[i]
			}
		}
	}

	for _, c := range candidates {
		parent := tree
		var parentArea float64 = -1
		for _, other := range candidates {
			if other == c || other.node == nil {
				continue
			}
			if other.area <= c.area {
				continue
			}
			if len(c.path) == 0 {
				continue
			}
			if PointInPolygon(c.path[0], other.path, EvenOdd) == Outside {
				continue
			}
			if parentArea < 0 || other.area < parentArea {
				parent = other.node
				parentArea = other.area
			}
		}
		c.node = parent.AddChild(c.path)
	}
}
