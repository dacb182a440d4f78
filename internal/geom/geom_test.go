package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTripletOrientation(t *testing.T) {
	cases := []struct {
		name    string
		a, b, c Point
		want    Orientation
	}{
		{"collinear", Point{0, 0}, Point{1, 1}, Point{2, 2}, Collinear},
		{"ccw", Point{0, 0}, Point{1, 0}, Point{1, 1}, CounterClockwise},
		{"cw", Point{0, 0}, Point{1, 1}, Point{1, 0}, Clockwise},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, TripletOrientation(c.a, c.b, c.c))
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	require.True(t, SegmentsIntersect(Point{0, 0}, Point{10, 10}, Point{0, 10}, Point{10, 0}))
	require.False(t, SegmentsIntersect(Point{0, 0}, Point{1, 0}, Point{0, 5}, Point{1, 5}))
}

func TestRDPSimplifyDropsColinearPoints(t *testing.T) {
	path := Path{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {3, 3}}
	out := RDPSimplify(path, 0.5)
	require.Equal(t, Path{{0, 0}, {3, 0}, {3, 3}}, out)
}

func TestBoxOfPathAndIntersects(t *testing.T) {
	box := BoxOfPath(Path{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	require.Equal(t, Box{Left: 0, Top: 10, Right: 10, Bottom: 0}, box)

	other := Box{Left: 5, Top: 15, Right: 15, Bottom: 5}
	require.True(t, box.Intersects(other))

	far := Box{Left: 100, Top: 110, Right: 110, Bottom: 100}
	require.False(t, box.Intersects(far))
}

func TestToScaledFromScaledRoundTrip(t *testing.T) {
	const scale = 1000
	v := ToScaled(1.2345, scale)
	require.Equal(t, int64(1235), v)
	require.InDelta(t, 1.235, FromScaled(v, scale), 1e-9)
}
