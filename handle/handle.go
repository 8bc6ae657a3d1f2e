// Package handle exposes a Tree through a flat status-code interface:
// integer coordinates in parallel arrays, named status values instead of
// errors and a query result buffer the caller reuses between calls.
package handle

import (
	"errors"
	"log/slog"

	"github.com/royalcat/polyquad/geom"
	"github.com/royalcat/polyquad/quadtree"
)

type Status int32

const (
	StatusSuccess     Status = 0
	StatusError       Status = 1
	StatusOutOfMemory Status = 2
	StatusOutOfBounds Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusError:
		return "ERROR"
	case StatusOutOfMemory:
		return "ERROR_OUT_OF_MEMORY"
	case StatusOutOfBounds:
		return "ERROR_OUT_OF_BOUNDS"
	}
	return "UNKNOWN"
}

// StatusOf maps an error returned by the tree to its status code.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, quadtree.ErrOutOfMemory):
		return StatusOutOfMemory
	case errors.Is(err, quadtree.ErrOutOfBounds):
		return StatusOutOfBounds
	}
	return StatusError
}

// Handle owns one tree. It must not be used after Destroy.
type Handle struct {
	tree *quadtree.Tree
}

// Create returns a handle for the universe, or nil when the corners do not
// describe a non-empty rectangle.
func Create(minX, minY, maxX, maxY int32, opts ...quadtree.Option) *Handle {
	tree, err := quadtree.Create(minX, minY, maxX, maxY, opts...)
	if err != nil {
		slog.Default().With("component", "handle").Debug("create failed", "error", err)
		return nil
	}
	return &Handle{tree: tree}
}

// Tree gives access to the underlying tree.
func (h *Handle) Tree() *quadtree.Tree {
	if h == nil {
		return nil
	}
	return h.tree
}

func Destroy(h *Handle) {
	if h == nil {
		return
	}
	h.tree.Destroy()
}

// Add indexes the polygon whose corners are (xs[i], ys[i]) for i below
// vertexCount.
func Add(h *Handle, id int64, vertexCount int32, xs, ys []int32) Status {
	if h == nil {
		return StatusError
	}
	if vertexCount < 0 || int(vertexCount) > len(xs) || int(vertexCount) > len(ys) {
		return StatusError
	}

	vs := make([]geom.Point, vertexCount)
	for i := range vs {
		vs[i] = geom.Point{X: xs[i], Y: ys[i]}
	}
	return StatusOf(h.tree.Add(id, vs))
}

func Remove(h *Handle, id int64) Status {
	if h == nil {
		return StatusError
	}
	return StatusOf(h.tree.Remove(id))
}

// Query writes the ids of every polygon containing (x, y) into out. On
// failure out.Count is -1 and out.IDs is emptied.
func Query(h *Handle, x, y int32, out *QueryResult) Status {
	if out == nil {
		return StatusError
	}
	if h == nil {
		out.fail()
		return StatusError
	}

	ids, err := h.tree.Query(geom.Point{X: x, Y: y})
	if err != nil {
		out.fail()
		return StatusOf(err)
	}
	out.set(ids)
	return StatusSuccess
}
