// Package polystore owns polygon geometry keyed by caller supplied ids.
package polystore

import (
	"errors"
	"fmt"

	"github.com/google/btree"
	"github.com/royalcat/polyquad/geom"
)

var (
	ErrDuplicateID = errors.New("duplicate polygon id")
	ErrNotFound    = errors.New("polygon not found")
)

const degree = 32

type entry struct {
	id      int64
	polygon geom.Polygon
}

func lessEntry(a, b entry) bool {
	return a.id < b.id
}

// Store maps polygon ids to polygons. It is not safe for concurrent use.
type Store struct {
	items *btree.BTreeG[entry]
}

func New() *Store {
	return &Store{
		items: btree.NewG(degree, lessEntry),
	}
}

// Insert stores a copy of vertices under id and returns its bound.
func (s *Store) Insert(id int64, vertices []geom.Point) (geom.Bound, error) {
	if s.items.Has(entry{id: id}) {
		return geom.Bound{}, fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	poly, err := geom.NewPolygon(vertices)
	if err != nil {
		return geom.Bound{}, err
	}
	s.items.ReplaceOrInsert(entry{id: id, polygon: poly})
	return poly.Bound, nil
}

// Remove deletes id and returns the bound it was stored with.
func (s *Store) Remove(id int64) (geom.Bound, error) {
	e, ok := s.items.Delete(entry{id: id})
	if !ok {
		return geom.Bound{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return e.polygon.Bound, nil
}

func (s *Store) Get(id int64) (geom.Polygon, error) {
	e, ok := s.items.Get(entry{id: id})
	if !ok {
		return geom.Polygon{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return e.polygon, nil
}

func (s *Store) Has(id int64) bool {
	return s.items.Has(entry{id: id})
}

func (s *Store) Len() int {
	return s.items.Len()
}

// Ascend calls it for every polygon in increasing id order until it
// returns false.
func (s *Store) Ascend(it func(id int64, poly geom.Polygon) bool) {
	s.items.Ascend(func(e entry) bool {
		return it(e.id, e.polygon)
	})
}

func (s *Store) Clear() {
	s.items.Clear(false)
}
