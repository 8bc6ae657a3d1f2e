package quadtree

import (
	"errors"

	"github.com/royalcat/polyquad/geom"
	"github.com/royalcat/polyquad/polystore"
)

var (
	ErrInvalidBounds  = geom.ErrInvalidBounds
	ErrInvalidPolygon = geom.ErrInvalidPolygon
	ErrDuplicateID    = polystore.ErrDuplicateID
	ErrNotFound       = polystore.ErrNotFound

	// ErrOutOfBounds is returned when a polygon or a query point lies
	// outside the tree universe.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrOutOfMemory is returned when the node budget set with
	// WithMaxNodes is exhausted.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrDestroyed is returned by every operation on a tree that was
	// destroyed or never created with New.
	ErrDestroyed = errors.New("quadtree destroyed")
)
