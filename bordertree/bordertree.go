// Package bordertree is a flat reference index: polygon bounds live in a
// float64 bounding box quadtree and every candidate is checked with the
// exact containment test. It answers the same queries as quadtree.Tree
// without its node bookkeeping and is used to verify it.
package bordertree

import (
	"slices"
	"sync"

	"github.com/royalcat/polyquad/geom"
	"github.com/tidwall/qtree"
)

type BorderTree struct {
	mu       sync.RWMutex
	polygons map[int64]geom.Polygon
	qt       qtree.QTree
}

func NewBorderTree() *BorderTree {
	return &BorderTree{
		polygons: map[int64]geom.Polygon{},
	}
}

func bounds(b geom.Bound) (min, max [2]float64) {
	return b.Min.Orb(), b.Max.Orb()
}

// InsertBorder stores poly under id, replacing any polygon with that id.
func (bt *BorderTree) InsertBorder(id int64, poly geom.Polygon) {
	bt.mu.Lock()
	defer bt.mu.Unlock()

	if old, ok := bt.polygons[id]; ok {
		min, max := bounds(old.Bound)
		bt.qt.Delete(min, max, id)
	}
	bt.polygons[id] = poly
	min, max := bounds(poly.Bound)
	bt.qt.Insert(min, max, id)
}

func (bt *BorderTree) RemoveBorder(id int64) bool {
	bt.mu.Lock()
	defer bt.mu.Unlock()

	poly, ok := bt.polygons[id]
	if !ok {
		return false
	}
	delete(bt.polygons, id)
	min, max := bounds(poly.Bound)
	bt.qt.Delete(min, max, id)
	return true
}

// QueryPoint returns the ids of every polygon containing point in
// ascending order.
func (bt *BorderTree) QueryPoint(point geom.Point) []int64 {
	bt.mu.RLock()
	defer bt.mu.RUnlock()

	ids := []int64{}
	p := point.Orb()
	bt.qt.Search(p, p, func(_, _ [2]float64, data interface{}) bool {
		id := data.(int64)
		if bt.polygons[id].Contains(point) {
			ids = append(ids, id)
		}
		return true
	})
	slices.Sort(ids)
	return ids
}

func (bt *BorderTree) Len() int {
	bt.mu.RLock()
	defer bt.mu.RUnlock()
	return len(bt.polygons)
}
