// Package quadtree indexes simple polygons in a fixed rectangular universe
// and answers which polygons contain a point.
//
// A Tree has a single owner: it does no locking, and callers sharing one
// between goroutines must synchronize access themselves.
package quadtree

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/royalcat/polyquad/geom"
	"github.com/royalcat/polyquad/polystore"
)

// Tree is a region quadtree over polygon bounding boxes. Every polygon id
// is held by exactly one node: the deepest node whose single child
// quadrant cannot contain the polygon bound, or a leaf.
type Tree struct {
	universe geom.Bound
	store    *polystore.Store

	nodes []node
	free  []int
	live  int

	capacity int
	maxDepth int
	maxNodes int

	log *slog.Logger
}

// New creates a tree covering universe. The universe cannot change over the
// lifetime of the tree.
func New(universe geom.Bound, opts ...Option) (*Tree, error) {
	if !universe.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBounds, universe)
	}
	o, err := loadOptions(opts...)
	if err != nil {
		return nil, err
	}

	t := &Tree{
		universe: universe,
		store:    polystore.New(),
		nodes:    []node{{bound: universe, ids: idSet{}}},
		live:     1,
		capacity: o.capacity,
		maxDepth: o.maxDepth,
		maxNodes: o.maxNodes,
		log:      o.logger.With("component", "quadtree"),
	}
	if t.maxNodes == 1 {
		t.log.Warn("node budget only covers the root, the tree will never split")
	}
	return t, nil
}

// Create is New for a universe given by its corners.
func Create(minX, minY, maxX, maxY int32, opts ...Option) (*Tree, error) {
	universe, err := geom.NewBound(minX, minY, maxX, maxY)
	if err != nil {
		return nil, err
	}
	return New(universe, opts...)
}

func (t *Tree) usable() error {
	if t == nil || t.nodes == nil {
		return ErrDestroyed
	}
	return nil
}

// Add indexes the polygon given by vertices under id. The polygon bound must
// lie inside the universe, edges included. On error the tree is left as it
// was before the call.
func (t *Tree) Add(id int64, vertices []geom.Point) error {
	if err := t.usable(); err != nil {
		return err
	}

	b, err := geom.BoundOf(vertices)
	if err != nil {
		return fmt.Errorf("add polygon %d: %w", id, err)
	}
	if !t.universe.ContainsBound(b) {
		return fmt.Errorf("add polygon %d: %w: %s exceeds universe %s", id, ErrOutOfBounds, b, t.universe)
	}
	if _, err := t.store.Insert(id, vertices); err != nil {
		return fmt.Errorf("add polygon %d: %w", id, err)
	}

	if err := t.insert(rootIndex, id, b); err != nil {
		t.remove(rootIndex, id, b)
		t.store.Remove(id)
		t.log.Warn("add rolled back", "id", id, "error", err)
		return fmt.Errorf("add polygon %d: %w", id, err)
	}
	return nil
}

// Remove deletes the polygon id from the tree.
func (t *Tree) Remove(id int64) error {
	if err := t.usable(); err != nil {
		return err
	}

	b, err := t.store.Remove(id)
	if err != nil {
		return fmt.Errorf("remove polygon %d: %w", id, err)
	}
	if !t.remove(rootIndex, id, b) {
		panic(fmt.Sprintf("quadtree: polygon %d stored but not indexed", id))
	}
	return nil
}

// Candidates returns the ids whose bounding box may hold p, before the
// exact containment test.
func (t *Tree) Candidates(p geom.Point) ([]int64, error) {
	if err := t.queryable(p); err != nil {
		return nil, err
	}

	var ids []int64
	t.candidates(p, func(id int64) {
		ids = append(ids, id)
	})
	slices.Sort(ids)
	return ids, nil
}

// Query returns the ids of every polygon containing p in ascending order.
// The slice is freshly allocated and owned by the caller.
func (t *Tree) Query(p geom.Point) ([]int64, error) {
	if err := t.queryable(p); err != nil {
		return nil, err
	}

	ids := []int64{}
	t.candidates(p, func(id int64) {
		poly, err := t.store.Get(id)
		if err != nil {
			panic("quadtree: indexed id missing from store: " + err.Error())
		}
		if poly.Contains(p) {
			ids = append(ids, id)
		}
	})
	slices.Sort(ids)
	return ids, nil
}

func (t *Tree) queryable(p geom.Point) error {
	if err := t.usable(); err != nil {
		return err
	}
	if !t.universe.ContainsClosed(p) {
		return fmt.Errorf("query %s: %w: universe %s", p, ErrOutOfBounds, t.universe)
	}
	return nil
}

// Polygon returns the stored geometry of id.
func (t *Tree) Polygon(id int64) (geom.Polygon, error) {
	if err := t.usable(); err != nil {
		return geom.Polygon{}, err
	}
	return t.store.Get(id)
}

// IDs returns all stored ids in ascending order.
func (t *Tree) IDs() []int64 {
	if t.usable() != nil {
		return nil
	}
	ids := make([]int64, 0, t.store.Len())
	t.store.Ascend(func(id int64, _ geom.Polygon) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

func (t *Tree) Len() int {
	if t.usable() != nil {
		return 0
	}
	return t.store.Len()
}

func (t *Tree) Bound() geom.Bound {
	if t == nil {
		return geom.Bound{}
	}
	return t.universe
}

// Destroy releases the polygons and nodes of the tree. Every later call
// fails with ErrDestroyed. Destroying twice is a no-op.
func (t *Tree) Destroy() {
	if t.usable() != nil {
		return
	}
	t.store.Clear()
	t.nodes = nil
	t.free = nil
	t.live = 0
	t.log.Debug("tree destroyed", "universe", t.universe.String())
}
