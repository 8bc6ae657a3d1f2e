package geom_test

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/royalcat/polyquad/geom"
)

func pts(xy ...int32) []geom.Point {
	out := make([]geom.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geom.Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func mustPolygon(t testing.TB, vs []geom.Point) geom.Polygon {
	t.Helper()
	p, err := geom.NewPolygon(vs)
	if err != nil {
		t.Fatalf("NewPolygon(%v): %v", vs, err)
	}
	return p
}

func TestNewBound(t *testing.T) {
	for _, tc := range []struct {
		name                   string
		minX, minY, maxX, maxY int32
		ok                     bool
	}{
		{"zero", 0, 0, 0, 0, false},
		{"inverted y", 0, 0, 1, -1, false},
		{"inverted x", 0, 0, -1, 1, false},
		{"flat", 0, 0, 10, 0, false},
		{"unit", 0, 0, 1, 1, true},
		{"small", 0, 0, 10, 10, true},
		{"negative", -10, -10, 10, 10, true},
		{"screen", 0, 0, 800, 600, true},
		{"wide", math.MinInt32, math.MinInt32, math.MaxInt32, math.MaxInt32, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := geom.NewBound(tc.minX, tc.minY, tc.maxX, tc.maxY)
			if tc.ok && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if !tc.ok && !errors.Is(err, geom.ErrInvalidBounds) {
				t.Fatalf("expected ErrInvalidBounds, got %v", err)
			}
		})
	}
}

func TestBoundContainsHalfOpen(t *testing.T) {
	b, _ := geom.NewBound(0, 0, 10, 10)
	inside := pts(0, 0, 9, 9, 0, 9, 5, 5)
	outside := pts(10, 0, 0, 10, 10, 10, -1, 5)
	for _, p := range inside {
		if !b.Contains(p) {
			t.Fatalf("expected %s in %s", p, b)
		}
	}
	for _, p := range outside {
		if b.Contains(p) {
			t.Fatalf("expected %s not in %s", p, b)
		}
	}
	if !b.ContainsClosed(geom.Point{X: 10, Y: 10}) {
		t.Fatalf("closed bound must contain its max corner")
	}
}

func TestBoundIntersects(t *testing.T) {
	a, _ := geom.NewBound(0, 0, 10, 10)
	for _, tc := range []struct {
		b    geom.Bound
		want bool
	}{
		{geom.Bound{Min: geom.Point{X: 5, Y: 5}, Max: geom.Point{X: 15, Y: 15}}, true},
		{geom.Bound{Min: geom.Point{X: 10, Y: 0}, Max: geom.Point{X: 20, Y: 10}}, true},
		{geom.Bound{Min: geom.Point{X: 11, Y: 0}, Max: geom.Point{X: 20, Y: 10}}, false},
		{geom.Bound{Min: geom.Point{X: 2, Y: 2}, Max: geom.Point{X: 3, Y: 3}}, true},
		{geom.Bound{Min: geom.Point{X: 0, Y: -5}, Max: geom.Point{X: 10, Y: -1}}, false},
	} {
		if got := a.Intersects(tc.b); got != tc.want {
			t.Fatalf("%s intersects %s: expected %v, got %v", a, tc.b, tc.want, got)
		}
		if got := tc.b.Intersects(a); got != tc.want {
			t.Fatalf("intersects must be symmetric for %s", tc.b)
		}
	}
}

func TestBoundOf(t *testing.T) {
	b, err := geom.BoundOf(pts(3, 3, 800, 0, 0, 600))
	if err != nil {
		t.Fatal(err)
	}
	want := geom.Bound{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 800, Y: 600}}
	if b != want {
		t.Fatalf("expected %s, got %s", want, b)
	}

	if _, err := geom.BoundOf(pts(0, 0, 1, 1)); !errors.Is(err, geom.ErrInvalidPolygon) {
		t.Fatalf("expected ErrInvalidPolygon for two vertices, got %v", err)
	}
	if _, err := geom.BoundOf(pts(0, 0, 1, 0, 5, 0)); !errors.Is(err, geom.ErrInvalidPolygon) {
		t.Fatalf("expected ErrInvalidPolygon for collinear vertices, got %v", err)
	}
}

func TestNewPolygonCopiesVertices(t *testing.T) {
	vs := pts(0, 0, 8, 0, 0, 8)
	p := mustPolygon(t, vs)
	vs[0] = geom.Point{X: 100, Y: 100}
	if p.Vertices[0] != (geom.Point{}) {
		t.Fatalf("polygon aliases the caller's slice")
	}
}

func TestPolygonContainsRect(t *testing.T) {
	rect := mustPolygon(t, pts(2, 2, 8, 2, 8, 8, 2, 8))
	for _, tc := range []struct {
		p    geom.Point
		want bool
	}{
		{geom.Point{X: 0, Y: 0}, false},
		{geom.Point{X: 3, Y: 3}, true},
		// left and bottom edges are inside
		{geom.Point{X: 2, Y: 2}, true},
		{geom.Point{X: 4, Y: 2}, true},
		{geom.Point{X: 2, Y: 4}, true},
		// right and top edges are outside
		{geom.Point{X: 2, Y: 8}, false},
		{geom.Point{X: 8, Y: 2}, false},
		{geom.Point{X: 4, Y: 8}, false},
		{geom.Point{X: 8, Y: 4}, false},
		{geom.Point{X: 8, Y: 8}, false},
	} {
		if got := rect.Contains(tc.p); got != tc.want {
			t.Errorf("rect contains %s: expected %v, got %v", tc.p, tc.want, got)
		}
	}
}

func TestPolygonContainsTriangle(t *testing.T) {
	tri := mustPolygon(t, pts(0, 0, 8, 0, 0, 8))
	for _, tc := range []struct {
		p    geom.Point
		want bool
	}{
		{geom.Point{X: -1, Y: -1}, false},
		{geom.Point{X: 3, Y: 3}, true},
		{geom.Point{X: 0, Y: 0}, true},
		{geom.Point{X: 0, Y: 4}, true},
		{geom.Point{X: 4, Y: 0}, true},
		{geom.Point{X: 3, Y: 4}, true},
		{geom.Point{X: 4, Y: 3}, true},
		{geom.Point{X: 0, Y: 8}, false},
		{geom.Point{X: 8, Y: 0}, false},
		// on the hypotenuse, which faces +x+y
		{geom.Point{X: 4, Y: 4}, false},
	} {
		if got := tri.Contains(tc.p); got != tc.want {
			t.Errorf("triangle contains %s: expected %v, got %v", tc.p, tc.want, got)
		}
	}
}

func TestPolygonContainsConcave(t *testing.T) {
	// U shape opening upwards
	u := mustPolygon(t, pts(0, 0, 9, 0, 9, 9, 6, 9, 6, 3, 3, 3, 3, 9, 0, 9))
	if !u.Contains(geom.Point{X: 1, Y: 5}) || !u.Contains(geom.Point{X: 7, Y: 5}) {
		t.Fatalf("expected the arms of the U to be inside")
	}
	if u.Contains(geom.Point{X: 4, Y: 5}) {
		t.Fatalf("expected the gap of the U to be outside")
	}
}

func TestPolygonContainsExtremeCoordinates(t *testing.T) {
	tri := mustPolygon(t, []geom.Point{
		{X: math.MinInt32, Y: math.MinInt32},
		{X: math.MaxInt32, Y: math.MinInt32},
		{X: math.MinInt32, Y: math.MaxInt32},
	})
	if !tri.Contains(geom.Point{X: 0, Y: -10}) {
		t.Fatalf("expected point below the diagonal to be inside")
	}
	if tri.Contains(geom.Point{X: 10, Y: 10}) {
		t.Fatalf("expected point above the diagonal to be outside")
	}
}

func TestRingRoundTrip(t *testing.T) {
	p := mustPolygon(t, pts(0, 0, 8, 0, 0, 8))
	r := p.Ring()
	if !r.Closed() || len(r) != 4 {
		t.Fatalf("expected closed ring of 4 points, got %v", r)
	}
	vs, err := geom.VerticesFromRing(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 3 || vs[1] != (geom.Point{X: 8, Y: 0}) {
		t.Fatalf("unexpected vertices %v", vs)
	}

	if _, err := geom.VerticesFromRing(orb.Ring{{0, 0}, {1e12, 0}, {0, 1}}); err == nil {
		t.Fatalf("expected error for coordinate overflow")
	}
}

func FuzzRectContains(f *testing.F) {
	f.Add(int32(0), int32(0), int32(10), int32(10), int32(5), int32(5))
	f.Add(int32(0), int32(0), int32(10), int32(10), int32(15), int32(15))
	f.Add(int32(-5), int32(-5), int32(5), int32(5), int32(-4), int32(4))

	f.Fuzz(func(t *testing.T, minX, minY, maxX, maxY, x, y int32) {
		if minX >= maxX || minY >= maxY {
			t.Skip()
		}
		if x == minX || x == maxX || y == minY || y == maxY {
			t.Skip()
		}
		poly, err := geom.NewPolygon(pts(minX, minY, maxX, minY, maxX, maxY, minX, maxY))
		if err != nil {
			t.Fatal(err)
		}
		p := geom.Point{X: x, Y: y}

		expected := planar.RingContains(poly.Ring(), p.Orb())
		if got := poly.Contains(p); got != expected {
			t.Fatalf("%s in %s: expected %v, got %v", p, poly.Bound, expected, got)
		}
	})
}
