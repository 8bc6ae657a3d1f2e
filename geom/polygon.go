package geom

import (
	"errors"
	"fmt"
	"math/bits"
)

var ErrInvalidPolygon = errors.New("invalid polygon")

// MinVertices is the smallest vertex count of a polygon.
const MinVertices = 3

// Polygon is a simple closed polygon. The closing edge from the last vertex
// back to the first is implicit.
type Polygon struct {
	Vertices []Point
	Bound    Bound
}

// NewPolygon copies vertices and precomputes their bound.
func NewPolygon(vertices []Point) (Polygon, error) {
	b, err := BoundOf(vertices)
	if err != nil {
		return Polygon{}, err
	}
	return Polygon{
		Vertices: append([]Point(nil), vertices...),
		Bound:    b,
	}, nil
}

// BoundOf returns the min/max extent of vertices. Fewer than MinVertices
// points, or points spanning no area, give ErrInvalidPolygon.
func BoundOf(vertices []Point) (Bound, error) {
	if len(vertices) < MinVertices {
		return Bound{}, fmt.Errorf("%w: %d vertices, need at least %d", ErrInvalidPolygon, len(vertices), MinVertices)
	}

	b := Bound{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b.Min.X = min(b.Min.X, v.X)
		b.Min.Y = min(b.Min.Y, v.Y)
		b.Max.X = max(b.Max.X, v.X)
		b.Max.Y = max(b.Max.Y, v.Y)
	}
	if !b.Valid() {
		return Bound{}, fmt.Errorf("%w: degenerate extent %s", ErrInvalidPolygon, b)
	}
	return b, nil
}

// Contains is the crossing-number test: a ray cast from p towards +x
// crosses an odd number of edges iff p is inside.
//
// Edges are half-open the same way Bound.Contains is: points on a left or
// bottom edge are inside, points on a right or top edge are outside. The
// comparison is exact, no division is performed.
func (poly Polygon) Contains(p Point) bool {
	if !poly.Bound.ContainsClosed(p) {
		return false
	}

	inside := false
	vs := poly.Vertices
	j := len(vs) - 1
	for i := range vs {
		a, b := vs[i], vs[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			// p.X < a.X + (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)
			dy := int64(b.Y) - int64(a.Y)
			c := cmpProducts(
				int64(p.X)-int64(a.X), dy,
				int64(b.X)-int64(a.X), int64(p.Y)-int64(a.Y),
			)
			if dy < 0 {
				c = -c
			}
			if c < 0 {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// cmpProducts returns the sign of a*b - c*d. Operands are differences of
// int32 values, so the products need up to 66 bits.
func cmpProducts(a, b, c, d int64) int {
	ls, lhi, llo := mul128(a, b)
	rs, rhi, rlo := mul128(c, d)
	if ls != rs {
		if ls < rs {
			return -1
		}
		return 1
	}
	m := cmpMagnitude(lhi, llo, rhi, rlo)
	if ls < 0 {
		return -m
	}
	return m
}

func mul128(a, b int64) (sign int, hi, lo uint64) {
	if a == 0 || b == 0 {
		return 0, 0, 0
	}
	sign = 1
	if (a < 0) != (b < 0) {
		sign = -1
	}
	hi, lo = bits.Mul64(absU64(a), absU64(b))
	return sign, hi, lo
}

func cmpMagnitude(ahi, alo, bhi, blo uint64) int {
	switch {
	case ahi < bhi:
		return -1
	case ahi > bhi:
		return 1
	case alo < blo:
		return -1
	case alo > blo:
		return 1
	}
	return 0
}

func absU64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}
