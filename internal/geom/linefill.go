package geom

import "math"

// GenerateLines emits a family of parallel open 2-point paths spanning box,
// at the given angle (degrees) and spacing (scaled units), per spec.md
// §4.5's line-generation recipe: rotate the bounding box by -angle, stride
// the rotated y-range by spacing, emit one full-width segment per stride,
// then rotate back. The rotation origin is always (0,0) so patterns drawn
// for different regions/layers at the same angle stay in registration.
func GenerateLines(box Box, angleDegrees, spacing float64) PathSet {
	if spacing <= 0 {
		return nil
	}
	angle := angleDegrees * math.Pi / 180
	cosA, sinA := math.Cos(angle), math.Sin(angle)

	corners := [4][2]float64{
		{float64(box.Left), float64(box.Bottom)},
		{float64(box.Right), float64(box.Bottom)},
		{float64(box.Right), float64(box.Top)},
		{float64(box.Left), float64(box.Top)},
	}

	xMinR, xMaxR := math.Inf(1), math.Inf(-1)
	yMinR, yMaxR := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		xr, yr := rotate(c[0], c[1], -angle)
		xMinR, xMaxR = math.Min(xMinR, xr), math.Max(xMaxR, xr)
		yMinR, yMaxR = math.Min(yMinR, yr), math.Max(yMaxR, yr)
	}

	startIdx := int64(math.Floor(yMinR / spacing))
	endIdx := int64(math.Ceil(yMaxR / spacing))

	var lines PathSet
	for k := startIdx; k <= endIdx; k++ {
		yr := float64(k) * spacing
		x0, y0 := rotateBack(xMinR, yr, cosA, sinA)
		x1, y1 := rotateBack(xMaxR, yr, cosA, sinA)
		lines = append(lines, Path{
			{X: int64(math.Round(x0)), Y: int64(math.Round(y0))},
			{X: int64(math.Round(x1)), Y: int64(math.Round(y1))},
		})
	}
	return lines
}

func rotate(x, y, angle float64) (float64, float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	return x*c - y*s, x*s + y*c
}

func rotateBack(x, y float64, cosA, sinA float64) (float64, float64) {
	return x*cosA - y*sinA, x*sinA + y*cosA
}
