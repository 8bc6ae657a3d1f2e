package geom

import (
	"errors"
	"fmt"
)

var ErrInvalidBounds = errors.New("invalid bounds")

// Point is a location on the integer plane.
type Point struct {
	X, Y int32
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Bound is an axis-aligned rectangle. A valid bound has Min strictly below
// Max on both axes.
type Bound struct {
	Min, Max Point
}

// NewBound returns the bound spanning [minX, maxX] x [minY, maxY], or
// ErrInvalidBounds if it has zero area or is inverted.
func NewBound(minX, minY, maxX, maxY int32) (Bound, error) {
	b := Bound{Min: Point{minX, minY}, Max: Point{maxX, maxY}}
	if !b.Valid() {
		return Bound{}, fmt.Errorf("%w: %s", ErrInvalidBounds, b)
	}
	return b, nil
}

func (b Bound) Valid() bool {
	return b.Min.X < b.Max.X && b.Min.Y < b.Max.Y
}

func (b Bound) String() string {
	return fmt.Sprintf("[%d %d %d %d]", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

func (b Bound) Width() int64 {
	return int64(b.Max.X) - int64(b.Min.X)
}

func (b Bound) Height() int64 {
	return int64(b.Max.Y) - int64(b.Min.Y)
}

// Center returns the split point of the bound, rounded towards Min.
func (b Bound) Center() Point {
	return Point{
		X: int32(int64(b.Min.X) + b.Width()/2),
		Y: int32(int64(b.Min.Y) + b.Height()/2),
	}
}

// Intersects reports whether the two closed rectangles overlap. Touching
// edges count as overlap.
func (b Bound) Intersects(o Bound) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

// Contains reports whether p lies in the half-open region
// [Min.X, Max.X) x [Min.Y, Max.Y). Sibling quadrants never both contain
// a point on their shared edge.
func (b Bound) Contains(p Point) bool {
	return b.Min.X <= p.X && p.X < b.Max.X &&
		b.Min.Y <= p.Y && p.Y < b.Max.Y
}

// ContainsClosed is Contains with the Max edges included.
func (b Bound) ContainsClosed(p Point) bool {
	return b.Min.X <= p.X && p.X <= b.Max.X &&
		b.Min.Y <= p.Y && p.Y <= b.Max.Y
}

// ContainsBound reports whether o lies inside b, edges included.
func (b Bound) ContainsBound(o Bound) bool {
	return b.Min.X <= o.Min.X && o.Max.X <= b.Max.X &&
		b.Min.Y <= o.Min.Y && o.Max.Y <= b.Max.Y
}
