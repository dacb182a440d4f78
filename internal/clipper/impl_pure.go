
package clipper

// Pure Go implementation of Clipper2 polygon operations using Vatti's polygon clipping algorithm.
// Based on "A generic solution to polygon clipping" by Bala R. Vatti (1992).
//
// Algorithm Overview:
// 1. Build local minima list (event queue) from input polygons
// 2. Process scanlines from bottom to top
// 3. Maintain active edge list (AEL) sorted by X coordinate
// 4. Handle edge intersections and build output polygons
// 5. Apply fill rules and clip types to determine final result

// PathType represents the type of a path (subject or clip)
type PathType uint8

const (
	PathTypeSubject PathType = iota
	PathTypeClip
)

// Edge represents a polygon edge in the active edge list
type Edge struct {
	Bot        Point64      // bottom point of the edge
	Top        Point64      // top point of the edge
	Curr       Point64      // current position during scanline processing
	Dx         float64      // delta X per unit Y (horizontal slope)
	WindDelta  int          // +1 or -1 depending on edge direction
	WindCount  int          // accumulated winding count
	WindCount2 int          // accumulated winding count for clip polygons
	OutRec     *OutRec      // output record this edge contributes to
	Next       *Edge        // next edge in active edge list
	Prev       *Edge        // previous edge in active edge list
	NextInLML  *Edge        // next edge in local minima list
	PathType   PathType     // subject or clip path
	LocalMin   *LocalMinima // local minima this edge belongs to
}

// LocalMinima represents a local minimum point where edges start
type LocalMinima struct {
	Y          int64        // Y coordinate of the local minimum
	LeftBound  *Edge        // leftmost edge starting at this minimum
	RightBound *Edge        // rightmost edge starting at this minimum
	Next       *LocalMinima // next local minima (sorted by Y)
}

// OutRec represents an output polygon record
type OutRec struct {
	Idx      int     // index in the output record list
	Owner    *OutRec // parent polygon for holes
	State    OutRecState
	Pts      *OutPt    // linked list of output points
	BottomPt *OutPt    // bottommost point
	PolyPath *PolyPath // hierarchical path structure
}

// OutRecState represents the state of an output record
type OutRecState uint8

const (
	OutRecStateUndefined OutRecState = iota
	OutRecStateOpen
	OutRecStateOuter
	OutRecStateHole
)

// OutPt represents a point in an output polygon
type OutPt struct {
	Pt   Point64 // the point coordinates
	Next *OutPt  // next point in the polygon
	Prev *OutPt  // previous point in the polygon
	Idx  int     // index for debugging
}

// PolyPath represents a hierarchical polygon path structure
type PolyPath struct {
	Path     Path64      // the polygon path
	Children []*PolyPath // child paths (holes)
	Parent   *PolyPath   // parent path
}

// Clipper64 implements the Vatti polygon clipping algorithm
type Clipper64 struct {
	minimaList     *LocalMinima // sorted list of local minima
	activeEdgeList *Edge        // active edge list during scanline
	scanY          int64        // current scanline Y position
	outRecList     []*OutRec    // list of output records
	fillRule       FillRule     // fill rule for polygon interiors
	clipType       ClipType     // boolean operation type
}

//==============================================================================
// Local Minima Detection and Event Queue Building
//==============================================================================

// buildLocalMinimaList creates a sorted list of local minima from input paths
func (c *Clipper64) buildLocalMinimaList(subjects, clips Paths64) error {
	// Process subject paths
	for _, path := range subjects {
		if err := c.addPath(path, PathTypeSubject); err != nil {
			return err
		}
	}

	// Process clip paths
	for _, path := range clips {
		if err := c.addPath(path, PathTypeClip); err != nil {
			return err
		}
	}

	// Sort local minima by Y coordinate
	c.sortLocalMinima()
	return nil
}

// addPath processes a single path and adds its edges to the local minima list
func (c *Clipper64) addPath(path Path64, pathType PathType) error {
	if len(path) < 2 {
		return nil // Skip degenerate paths
	}

	// Remove duplicate points and ensure proper orientation
	cleanPath := c.cleanPath(path)
	if len(cleanPath) < 3 {
		return nil // Need at least 3 points for a polygon
	}

	// Find local minima in the path
	minima := c.findPathMinima(cleanPath, pathType)

	// Add minima to the sorted list
	for _, lm := range minima {
		c.insertLocalMinima(lm)
	}

	return nil
}

// cleanPath removes duplicate consecutive points and ensures minimum point count
func (c *Clipper64) cleanPath(path Path64) Path64 {
	if len(path) < 2 {
		return path
	}

	result := make(Path64, 0, len(path))
	prev := path[len(path)-1] // Start with last point for closed polygon check

	for _, pt := range path {
		// Only add if different from previous point
		if pt.X != prev.X || pt.Y != prev.Y {
			result = append(result, pt)
			prev = pt
		}
	}

	return result
}

// findPathMinima finds all local minima in a path and creates edges
func (c *Clipper64) findPathMinima(path Path64, pathType PathType) []*LocalMinima {
	var minimaList []*LocalMinima

	n := len(path)
	if n < 3 {
		return minimaList
	}

	// Process each vertex to find local minima
	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		curr := i
		next := (i + 1) % n

		// Check if current point is a local minimum
		if path[curr].Y < path[prev].Y && path[curr].Y <= path[next].Y {
			// This is a local minimum - create edges going up from here
			leftEdge, rightEdge := c.createEdgesFromMinimum(path, curr, pathType)

			if leftEdge != nil && rightEdge != nil {
				lm := &LocalMinima{
					Y:          path[curr].Y,
					LeftBound:  leftEdge,
					RightBound: rightEdge,
				}

				leftEdge.LocalMin = lm
				rightEdge.LocalMin = lm

				minimaList = append(minimaList, lm)
			}
		}
	}

	return minimaList
}

// createEdgesFromMinimum creates left and right edges from a local minimum point
func (c *Clipper64) createEdgesFromMinimum(path Path64, minIdx int, pathType PathType) (*Edge, *Edge) {
	// Find the left edge (going backwards/clockwise from minimum)
	leftEdge := c.createEdge(path, minIdx, -1, pathType)

	// Find the right edge (going forwards/counter-clockwise from minimum)
	rightEdge := c.createEdge(path, minIdx, 1, pathType)

	// Ensure we have valid edges
	if leftEdge == nil || rightEdge == nil {
		return nil, nil
	}

	// Set up the linked list connections
	leftEdge.NextInLML = rightEdge

	return leftEdge, rightEdge
}

// createEdge creates a single edge from a starting vertex in a given direction
func (c *Clipper64) createEdge(path Path64, startIdx, direction int, pathType PathType) *Edge {
	n := len(path)
	curr := startIdx

	// Find the next point that creates a valid edge (not horizontal at start)
	for i := 0; i < n; i++ {
		next := (curr + direction + n) % n
		if next == startIdx {
			break // Completed full circle
		}

		if path[next].Y != path[curr].Y {
			// Found a non-horizontal edge
			bot := path[curr]
			top := path[next]

			// Ensure bot is actually below top
			if bot.Y > top.Y {
				bot, top = top, bot
			}

			edge := &Edge{
				Bot:       bot,
				Top:       top,
				Curr:      bot,
				PathType:  pathType,
				WindDelta: c.getWindDelta(bot, top, direction > 0),
			}

			// Calculate slope (dx/dy)
			if top.Y != bot.Y {
				edge.Dx = float64(top.X-bot.X) / float64(top.Y-bot.Y)
			} else {
				edge.Dx = 0 // Horizontal edge
			}

			return edge
		}

		curr = next
	}

	return nil // No valid edge found
}

// getWindDelta determines the winding direction contribution of an edge
func (c *Clipper64) getWindDelta(bot, top Point64, isLeftToRight bool) int {
	if bot.Y < top.Y {
		// Edge going up
		if isLeftToRight {
			return 1 // Left-to-right upward edge
		}
		return -1 // Right-to-left upward edge
	}
	return 0 // Horizontal edge (shouldn't happen in this context)
}

// insertLocalMinima inserts a local minimum into the sorted list
func (c *Clipper64) insertLocalMinima(lm *LocalMinima) {
	if c.minimaList == nil || lm.Y < c.minimaList.Y {
		// Insert at beginning
		lm.Next = c.minimaList
		c.minimaList = lm
		return
	}

	// Find correct position and insert
	curr := c.minimaList
	for curr.Next != nil && curr.Next.Y < lm.Y {
		curr = curr.Next
	}

	lm.Next = curr.Next
	curr.Next = lm
}

// sortLocalMinima ensures the local minima list is sorted by Y coordinate
func (c *Clipper64) sortLocalMinima() {
	// The insertLocalMinima function maintains sort order during insertion,
	// so this is a no-op for now. Could add additional sorting verification here.
}

//==============================================================================
// Boolean Operations Implementation
//==============================================================================

// booleanOp64Impl drives the Vatti scanline engine: build the local minima
// list from subject and clip paths, sweep it, then read the result back off
// the output records.
func booleanOp64Impl(clipType ClipType, fillRule FillRule, subjects, subjectsOpen, clips Paths64) (solution Paths64, solutionOpen Paths64, err error) {
	if len(subjects) == 0 {
		if clipType == Union || clipType == Xor {
			return clips, Paths64{}, nil
		}
		return Paths64{}, Paths64{}, nil
	}
	if len(clips) == 0 {
		if clipType == Union || clipType == Difference || clipType == Xor {
			return subjects, Paths64{}, nil
		}
		return Paths64{}, Paths64{}, nil
	}

	c := &Clipper64{fillRule: fillRule, clipType: clipType}
	if err := c.buildLocalMinimaList(subjects, clips); err != nil {
		return nil, nil, err
	}
	if err := c.executeClipping(); err != nil {
		return nil, nil, err
	}
	return c.buildSolution(), Paths64{}, nil
}

//==============================================================================
// Active Edge List Management
//==============================================================================

// insertEdgesFromMinima adds edges from current local minima to the active edge list
func (c *Clipper64) insertEdgesFromMinima(lm *LocalMinima) {
	// Insert left edge
	if lm.LeftBound != nil {
		c.insertEdgeIntoAEL(lm.LeftBound)
	}

	// Insert right edge
	if lm.RightBound != nil {
		c.insertEdgeIntoAEL(lm.RightBound)
	}
}

// insertEdgeIntoAEL inserts an edge into the active edge list in sorted X order
func (c *Clipper64) insertEdgeIntoAEL(edge *Edge) {
	// Initialize edge position at current scanline
	c.updateEdgePosition(edge, c.scanY)

	if c.activeEdgeList == nil {
		// First edge in AEL
		c.activeEdgeList = edge
		edge.Prev = nil
		edge.Next = nil
		return
	}

	// Find correct insertion position (sorted by X coordinate)
	if edge.Curr.X < c.activeEdgeList.Curr.X {
		// Insert at beginning
		edge.Next = c.activeEdgeList
		edge.Prev = nil
		c.activeEdgeList.Prev = edge
		c.activeEdgeList = edge
		return
	}

	// Find insertion point in middle or end
	curr := c.activeEdgeList
	for curr.Next != nil && curr.Next.Curr.X < edge.Curr.X {
		curr = curr.Next
	}

	// Insert after curr
	edge.Next = curr.Next
	edge.Prev = curr
	if curr.Next != nil {
		curr.Next.Prev = edge
	}
	curr.Next = edge
}

// removeEdgeFromAEL removes an edge from the active edge list
func (c *Clipper64) removeEdgeFromAEL(edge *Edge) {
	if edge.Prev != nil {
		edge.Prev.Next = edge.Next
	} else {
		c.activeEdgeList = edge.Next
	}

	if edge.Next != nil {
		edge.Next.Prev = edge.Prev
	}

	edge.Next = nil
	edge.Prev = nil
}

// updateEdgePosition calculates edge X position at given Y coordinate
func (c *Clipper64) updateEdgePosition(edge *Edge, y int64) {
	if edge.Top.Y <= y {
		// Edge has reached its top - position at top point
		edge.Curr = edge.Top
	} else {
		// Calculate current X using linear interpolation
		dy := y - edge.Bot.Y
		if dy == 0 {
			edge.Curr = edge.Bot
		} else {
			// Use robust arithmetic for intersection calculation
			deltaX := NewInt128(edge.Top.X - edge.Bot.X).Mul64(dy)
			deltaY := edge.Top.Y - edge.Bot.Y

			x := float64(edge.Bot.X) + deltaX.ToFloat64()/float64(deltaY)
			edge.Curr = Point64{X: int64(x + 0.5), Y: y} // Round to nearest integer
		}
	}
}

// updateActiveEdges updates all edge positions and removes completed edges
func (c *Clipper64) updateActiveEdges() {
	edge := c.activeEdgeList

	for edge != nil {
		next := edge.Next // Save next before potential removal

		if edge.Top.Y <= c.scanY {
			// Edge has reached its top - remove from AEL
			c.removeEdgeFromAEL(edge)
		} else {
			// Update edge position for current scanline
			c.updateEdgePosition(edge, c.scanY)
		}

		edge = next
	}

	// Re-sort AEL by X coordinate (edges may have crossed)
	c.sortActiveEdgeList()
}

// sortActiveEdgeList maintains AEL sorted by X coordinate using bubble sort
// (Bubble sort is efficient here since the list is nearly sorted most of the time)
func (c *Clipper64) sortActiveEdgeList() {
	if c.activeEdgeList == nil || c.activeEdgeList.Next == nil {
		return // Empty or single-element list
	}

	swapped := true
	for swapped {
		swapped = false
		edge := c.activeEdgeList

		for edge.Next != nil {
			if edge.Curr.X > edge.Next.Curr.X {
				// Swap edges
				c.swapAdjacentEdges(edge, edge.Next)
				swapped = true
			} else {
				edge = edge.Next
			}
		}
	}
}

// swapAdjacentEdges swaps two adjacent edges in the AEL
func (c *Clipper64) swapAdjacentEdges(e1, e2 *Edge) {
	// e1 and e2 are adjacent with e1 before e2
	// After swap: ... - prev - e2 - e1 - next - ...

	if e1.Prev != nil {
		e1.Prev.Next = e2
	} else {
		c.activeEdgeList = e2
	}

	if e2.Next != nil {
		e2.Next.Prev = e1
	}

	e2.Prev = e1.Prev
	e1.Next = e2.Next
	e1.Prev = e2
	e2.Next = e1
}

//==============================================================================
// Intersection Processing
//==============================================================================

func (c *Clipper64) processIntersections() error {
	if c.activeEdgeList == nil || c.activeEdgeList.Next == nil {
		return nil // Need at least 2 edges to intersect
	}

	// Find all intersections at current scanline
	intersections := c.findIntersections()

	// Process intersections in order
	for _, intersection := range intersections {
		if err := c.processIntersection(intersection.e1, intersection.e2, intersection.pt); err != nil {
			return err
		}
	}

	return nil
}

// intersection represents an edge intersection point
type intersection struct {
	e1, e2 *Edge
	pt     Point64
}

// findIntersections finds all edge intersections at current scanline
func (c *Clipper64) findIntersections() []intersection {
	var intersections []intersection

	// Check all adjacent edge pairs for intersections
	edge1 := c.activeEdgeList
	for edge1 != nil && edge1.Next != nil {
		edge2 := edge1.Next

		// Check if edges intersect
		pt, intersectionType, err := SegmentIntersection(
			edge1.Bot, edge1.Top,
			edge2.Bot, edge2.Top,
		)

		if err == nil && intersectionType == PointIntersection {
			// Found intersection - check if it's at current scanline
			if pt.Y == c.scanY {
				intersections = append(intersections, intersection{
					e1: edge1,
					e2: edge2,
					pt: pt,
				})
			}
		}

		edge1 = edge1.Next
	}

	return intersections
}

// processIntersection handles a single edge intersection
func (c *Clipper64) processIntersection(e1, e2 *Edge, pt Point64) error {
	// Swap edge positions in AEL
	c.swapAdjacentEdges(e1, e2)

	// Update winding counts
	c.updateWindCounts(e1, e2)

	// Add intersection point to output if needed
	c.addIntersectionToOutput(e1, e2, pt)

	return nil
}


//==============================================================================
// Fill Rules and Clip Type Logic
//==============================================================================

// isContributing determines if an edge contributes to the output based on fill rule and clip type
func (c *Clipper64) isContributing(edge *Edge) bool {
	// Simplified logic for basic boolean operations
	switch c.clipType {
	case Union:
		return c.isFilledByFillRule(edge.WindCount, edge.WindCount2)
	case Intersection:
		return edge.WindCount != 0 && edge.WindCount2 != 0
	case Difference:
		// Subject - Clip: contribute if in subject but not in clip
		return edge.WindCount != 0 && edge.WindCount2 == 0
	case Xor:
		return (edge.WindCount != 0) != (edge.WindCount2 != 0)
	default:
		return false
	}
}

// isFilledByFillRule applies fill rule to determine if a region is filled
func (c *Clipper64) isFilledByFillRule(windCount int, windCount2 int) bool {
	combined := windCount + windCount2
	switch c.fillRule {
	case EvenOdd:
		return combined%2 != 0
	case NonZero:
		return combined != 0
	case Positive:
		return combined > 0
	case Negative:
		return combined < 0
	default:
		return false
	}
}

//==============================================================================
// Output Polygon Building System
//==============================================================================

// addIntersectionToOutput adds intersection point to output polygon if needed
func (c *Clipper64) addIntersectionToOutput(e1, e2 *Edge, pt Point64) {
	// Determine if edges should contribute to output
	e1Contributing := c.isContributing(e1)
	e2Contributing := c.isContributing(e2)
	
	// Add point to output polygons based on contribution status
	if e1Contributing {
		c.addPointToOutput(e1, pt)
	}
	if e2Contributing {
		c.addPointToOutput(e2, pt)
	}
	
	// Update edge output records based on new contribution status after intersection
	c.updateEdgeOutputRecs(e1, e2)
}

// addPointToOutput adds a point to the edge's output polygon
func (c *Clipper64) addPointToOutput(edge *Edge, pt Point64) {
	if edge.OutRec == nil {
		edge.OutRec = c.createOutRec()
	}
	
	// Create new output point
	newPt := &OutPt{
		Pt: pt,
		Idx: len(c.outRecList), // Simple indexing for debugging
	}
	
	if edge.OutRec.Pts == nil {
		// First point in polygon
		edge.OutRec.Pts = newPt
		newPt.Next = newPt
		newPt.Prev = newPt
	} else {
		// Insert point into circular linked list
		c.insertPointIntoList(edge.OutRec.Pts, newPt)
	}
}

// createOutRec creates a new output record
func (c *Clipper64) createOutRec() *OutRec {
	outRec := &OutRec{
		Idx: len(c.outRecList),
		State: OutRecStateOuter, // Simplified - assume all are outer polygons for now
	}
	
	c.outRecList = append(c.outRecList, outRec)
	return outRec
}

// insertPointIntoList inserts a new point into the circular linked list after the given point
func (c *Clipper64) insertPointIntoList(after, newPt *OutPt) {
	newPt.Next = after.Next
	newPt.Prev = after
	after.Next.Prev = newPt
	after.Next = newPt
}

// updateEdgeOutputRecs updates output record assignments after edge intersection
func (c *Clipper64) updateEdgeOutputRecs(e1, e2 *Edge) {
	// Simplified logic - in a full implementation, this would handle polygon merging
	// and splitting based on the intersection
	
	e1NewContrib := c.isContributing(e1)
	e2NewContrib := c.isContributing(e2)
	
	// If edge stops contributing, close its output record
	if !e1NewContrib && e1.OutRec != nil {
		e1.OutRec = nil
	}
	if !e2NewContrib && e2.OutRec != nil {
		e2.OutRec = nil
	}
}

// updateWindCounts updates winding counts after edge intersection (improved version)
func (c *Clipper64) updateWindCounts(e1, e2 *Edge) {
	// Save old values
	oldE1WindCount := e1.WindCount
	oldE1WindCount2 := e1.WindCount2
	oldE2WindCount := e2.WindCount
	oldE2WindCount2 := e2.WindCount2
	
	// Update winding counts based on edge types and directions
	if e1.PathType == PathTypeSubject {
		e2.WindCount = oldE2WindCount + e1.WindDelta
		e2.WindCount2 = oldE2WindCount2
		e1.WindCount = oldE1WindCount
		e1.WindCount2 = oldE1WindCount2 + e2.WindDelta
	} else {
		e1.WindCount = oldE1WindCount + e2.WindDelta  
		e1.WindCount2 = oldE1WindCount2
		e2.WindCount = oldE2WindCount
		e2.WindCount2 = oldE2WindCount2 + e1.WindDelta
	}
}

//==============================================================================
// Solution Building and Extraction
//==============================================================================

func (c *Clipper64) buildSolution() Paths64 {
	var solution Paths64
	
	// Convert output records to paths
	for _, outRec := range c.outRecList {
		if outRec.Pts != nil && outRec.State == OutRecStateOuter {
			path := c.buildPathFromOutRec(outRec)
			if len(path) >= 3 { // Only include valid polygons
				solution = append(solution, path)
			}
		}
	}
	
	return solution
}

// buildPathFromOutRec converts an output record to a Path64
func (c *Clipper64) buildPathFromOutRec(outRec *OutRec) Path64 {
	if outRec.Pts == nil {
		return nil
	}
	
	var path Path64
	start := outRec.Pts
	current := start
	
	// Traverse circular linked list to build path
	for {
		path = append(path, current.Pt)
		current = current.Next
		if current == start {
			break
		}
	}
	
	return path
}

// Enhanced executeClipping with better edge processing
func (c *Clipper64) executeClipping() error {
	if c.minimaList == nil {
		return nil // No input to process
	}
	
	// Process each scanline from bottom to top
	currentLM := c.minimaList
	
	for currentLM != nil {
		c.scanY = currentLM.Y
		
		// Insert edges from current local minima into active edge list
		c.insertEdgesFromMinima(currentLM)
		
		// Initialize winding counts for new edges
		c.initializeWindCounts()
		
		// Process intersections and update active edge list
		if err := c.processIntersections(); err != nil {
			return err
		}
		
		// Add contributing edges to output
		c.processContributingEdges()
		
		// Update edge positions for next scanline
		c.updateActiveEdges()
		
		// Move to next local minima or advance scanline
		if currentLM.Next != nil && currentLM.Next.Y > currentLM.Y {
			// Advance to next scanline with different Y
			c.scanY = currentLM.Next.Y
		}
		currentLM = currentLM.Next
	}
	
	return nil
}

// initializeWindCounts sets up initial winding counts for new edges
func (c *Clipper64) initializeWindCounts() {
	edge := c.activeEdgeList
	windCount := 0
	windCount2 := 0
	
	// Traverse active edge list and accumulate winding counts
	for edge != nil {
		if edge.PathType == PathTypeSubject {
			windCount += edge.WindDelta
			edge.WindCount = windCount
			edge.WindCount2 = windCount2
		} else {
			windCount2 += edge.WindDelta
			edge.WindCount = windCount
			edge.WindCount2 = windCount2
		}
		edge = edge.Next
	}
}

// processContributingEdges adds points from contributing edges to output
func (c *Clipper64) processContributingEdges() {
	edge := c.activeEdgeList
	
	for edge != nil {
		if c.isContributing(edge) {
			c.addPointToOutput(edge, edge.Curr)
		}
		edge = edge.Next
	}
}

// inflatePathsImpl offsets paths by delta using the ClipperOffset engine.
func inflatePathsImpl(paths Paths64, delta float64, joinType JoinType, endType EndType, opts OffsetOptions) (Paths64, error) {
	co := NewClipperOffset(opts.MiterLimit, opts.ArcTolerance)
	co.AddPaths(paths, joinType, endType)
	return co.Execute(delta)
}

// rectClipImpl pure Go implementation using Sutherland-Hodgman style clipping
func rectClipImpl(rect Path64, paths Paths64) (Paths64, error) {
	if len(rect) != 4 {
		return nil, ErrInvalidRectangle
	}

	// Extract all rectangle coordinates to find bounds
	left := rect[0].X
	right := rect[0].X
	top := rect[0].Y
	bottom := rect[0].Y

	// Find actual bounds from all 4 points (handles any orientation)
	for _, pt := range rect {
		if pt.X < left {
			left = pt.X
		}
		if pt.X > right {
			right = pt.X
		}
		if pt.Y < top {
			top = pt.Y
		}
		if pt.Y > bottom {
			bottom = pt.Y
		}
	}

	// Check for degenerate rectangle (zero area)
	if left >= right || top >= bottom {
		return Paths64{}, nil // Empty result for degenerate rectangle
	}

	clipper := &rectClipper{
		left:   left,
		top:    top,
		right:  right,
		bottom: bottom,
	}

	result := make(Paths64, 0, len(paths))
	for _, path := range paths {
		if len(path) < 2 {
			continue // Skip degenerate paths
		}

		clipped := clipper.clipPath(path)
		cleaned := cleanPath(clipped)
		if len(cleaned) >= 2 { // Need at least 2 points for a valid path
			result = append(result, cleaned)
		}
	}

	return result, nil
}

// rectClipper implements rectangle clipping for a single rectangular bounds
type rectClipper struct {
	left, top, right, bottom int64
}

// Location represents which side of the rectangle a point is on
type location uint8

const (
	locInside location = iota
	locLeft
	locTop
	locRight
	locBottom
)

// getLocation determines which region a point is in relative to the rectangle
func (rc *rectClipper) getLocation(pt Point64) location {
	if pt.X < rc.left {
		return locLeft
	}
	if pt.X > rc.right {
		return locRight
	}
	if pt.Y < rc.top {
		return locTop
	}
	if pt.Y > rc.bottom {
		return locBottom
	}
	return locInside
}

// clipPath clips a single path against the rectangle
func (rc *rectClipper) clipPath(path Path64) Path64 {
	if len(path) == 0 {
		return nil
	}

	// Check if entire path is inside rectangle for quick accept
	allInside := true
	for _, pt := range path {
		if rc.getLocation(pt) != locInside {
			allInside = false
			break
		}
	}
	if allInside {
		return path
	}

	// Apply Sutherland-Hodgman clipping against each edge
	clipped := path

	// Clip against left edge
	clipped = rc.clipAgainstEdge(clipped, locLeft)
	if len(clipped) == 0 {
		return nil
	}

	// Clip against top edge
	clipped = rc.clipAgainstEdge(clipped, locTop)
	if len(clipped) == 0 {
		return nil
	}

	// Clip against right edge
	clipped = rc.clipAgainstEdge(clipped, locRight)
	if len(clipped) == 0 {
		return nil
	}

	// Clip against bottom edge
	clipped = rc.clipAgainstEdge(clipped, locBottom)

	return clipped
}

// clipAgainstEdge clips a path against a single edge of the rectangle
func (rc *rectClipper) clipAgainstEdge(path Path64, edge location) Path64 {
	if len(path) == 0 {
		return nil
	}

	var result Path64

	for i := 0; i < len(path); i++ {
		curr := path[i]
		prev := path[(i+len(path)-1)%len(path)]

		currInside := rc.isInsideEdge(curr, edge)
		prevInside := rc.isInsideEdge(prev, edge)

		if currInside {
			if !prevInside {
				// Entering: add intersection then current point
				if intersection, ok := rc.getIntersection(prev, curr, edge); ok {
					result = append(result, intersection)
				}
			}
			result = append(result, curr)
		} else if prevInside {
			// Exiting: add intersection only
			if intersection, ok := rc.getIntersection(prev, curr, edge); ok {
				result = append(result, intersection)
			}
		}
		// Both outside: add nothing
	}

	return result
}

// isInsideEdge checks if a point is on the inside of a specific edge
func (rc *rectClipper) isInsideEdge(pt Point64, edge location) bool {
	switch edge {
	case locLeft:
		return pt.X >= rc.left
	case locTop:
		return pt.Y >= rc.top
	case locRight:
		return pt.X <= rc.right
	case locBottom:
		return pt.Y <= rc.bottom
	default:
		return true
	}
}

// getIntersection calculates intersection of line segment with rectangle edge
func (rc *rectClipper) getIntersection(p1, p2 Point64, edge location) (Point64, bool) {
	switch edge {
	case locLeft:
		return rc.intersectWithVerticalLine(p1, p2, rc.left)
	case locRight:
		return rc.intersectWithVerticalLine(p1, p2, rc.right)
	case locTop:
		return rc.intersectWithHorizontalLine(p1, p2, rc.top)
	case locBottom:
		return rc.intersectWithHorizontalLine(p1, p2, rc.bottom)
	default:
		return Point64{}, false
	}
}

// intersectWithVerticalLine finds intersection with vertical line x = lineX
// Uses more robust arithmetic to avoid precision issues
func (rc *rectClipper) intersectWithVerticalLine(p1, p2 Point64, lineX int64) (Point64, bool) {
	if p1.X == p2.X {
		return Point64{}, false // Line is vertical, no intersection
	}

	// Use integer arithmetic when possible for better precision
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y

	// Calculate y = p1.Y + dy * (lineX - p1.X) / dx
	// Use 128-bit intermediate to avoid overflow
	numerator := NewInt128(dy).Mul64(lineX - p1.X)
	denominator := dx

	// Convert to float64 for final division (still more precise than original)
	t := numerator.ToFloat64() / float64(denominator)
	y := float64(p1.Y) + t

	return Point64{X: lineX, Y: int64(y + 0.5)}, true // Round to nearest integer
}

// intersectWithHorizontalLine finds intersection with horizontal line y = lineY
// Uses more robust arithmetic to avoid precision issues
func (rc *rectClipper) intersectWithHorizontalLine(p1, p2 Point64, lineY int64) (Point64, bool) {
	if p1.Y == p2.Y {
		return Point64{}, false // Line is horizontal, no intersection
	}

	// Use integer arithmetic when possible for better precision
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y

	// Calculate x = p1.X + dx * (lineY - p1.Y) / dy
	// Use 128-bit intermediate to avoid overflow
	numerator := NewInt128(dx).Mul64(lineY - p1.Y)
	denominator := dy

	// Convert to float64 for final division (still more precise than original)
	t := numerator.ToFloat64() / float64(denominator)
	x := float64(p1.X) + t

	return Point64{X: int64(x + 0.5), Y: lineY}, true // Round to nearest integer
}

// cleanPath removes duplicate consecutive points and returns a clean path
func cleanPath(path Path64) Path64 {
	if len(path) <= 1 {
		return path
	}

	var cleaned Path64
	prev := path[0]
	cleaned = append(cleaned, prev)

	for i := 1; i < len(path); i++ {
		curr := path[i]
		if curr.X != prev.X || curr.Y != prev.Y { // Only add if different from previous
			cleaned = append(cleaned, curr)
			prev = curr
		}
	}

	// Remove final duplicate if path is closed and first/last points are same
	if len(cleaned) > 2 && cleaned[0].X == cleaned[len(cleaned)-1].X && cleaned[0].Y == cleaned[len(cleaned)-1].Y {
		cleaned = cleaned[:len(cleaned)-1]
	}

	return cleaned
}

// areaImpl calculates area using robust 128-bit arithmetic
func areaImpl(path Path64) float64 {
	if len(path) < 3 {
		return 0.0
	}

	// Use robust 128-bit area calculation
	area128 := Area128(path)
	return area128.ToFloat64() / 2.0
}
