package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

func (p Point) Orb() orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

func (b Bound) Orb() orb.Bound {
	return orb.Bound{Min: b.Min.Orb(), Max: b.Max.Orb()}
}

// Ring returns the polygon as a closed orb ring.
func (poly Polygon) Ring() orb.Ring {
	r := make(orb.Ring, 0, len(poly.Vertices)+1)
	for _, v := range poly.Vertices {
		r = append(r, v.Orb())
	}
	return append(r, poly.Vertices[0].Orb())
}

// PointFromOrb rounds p to the nearest integer point.
func PointFromOrb(p orb.Point) (Point, error) {
	x, y := math.Round(p.X()), math.Round(p.Y())
	if !inInt32(x) || !inInt32(y) {
		return Point{}, fmt.Errorf("coordinate %v does not fit int32", p)
	}
	return Point{X: int32(x), Y: int32(y)}, nil
}

// VerticesFromRing converts an orb ring to polygon vertices. The closing
// point of a closed ring is dropped.
func VerticesFromRing(r orb.Ring) ([]Point, error) {
	if r.Closed() && len(r) > 1 {
		r = r[:len(r)-1]
	}
	vs := make([]Point, 0, len(r))
	for _, p := range r {
		v, err := PointFromOrb(p)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func inInt32(v float64) bool {
	return !math.IsNaN(v) && v >= math.MinInt32 && v <= math.MaxInt32
}
