package quadtree

import (
	"github.com/royalcat/polyquad/geom"
)

type quadrant int

const (
	northWest quadrant = iota
	northEast
	southWest
	southEast

	numQuadrants = 4
)

// root always lives at index 0 and is never freed, so a zero child index
// marks a leaf.
const rootIndex = 0

type idSet map[int64]struct{}

func (s idSet) add(id int64) {
	s[id] = struct{}{}
}

func (s idSet) has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s idSet) remove(id int64) {
	delete(s, id)
}

type node struct {
	bound    geom.Bound
	depth    int
	ids      idSet
	count    int // ids held by this node and all of its descendants
	children [numQuadrants]int
}

func (n *node) leaf() bool {
	return n.children[0] == rootIndex
}

// quadrants returns the four child regions split at the bound center.
func quadrants(b geom.Bound) [numQuadrants]geom.Bound {
	c := b.Center()
	return [numQuadrants]geom.Bound{
		northWest: {Min: geom.Point{X: b.Min.X, Y: c.Y}, Max: geom.Point{X: c.X, Y: b.Max.Y}},
		northEast: {Min: c, Max: b.Max},
		southWest: {Min: b.Min, Max: c},
		southEast: {Min: geom.Point{X: c.X, Y: b.Min.Y}, Max: geom.Point{X: b.Max.X, Y: c.Y}},
	}
}

// choose returns the single child quadrant that holds all of b. A bound
// touching either center line belongs to no child and stays with the node.
func (n *node) choose(b geom.Bound) (quadrant, bool) {
	c := n.bound.Center()
	west, east := b.Max.X < c.X, b.Min.X > c.X
	south, north := b.Max.Y < c.Y, b.Min.Y > c.Y

	switch {
	case west && north:
		return northWest, true
	case east && north:
		return northEast, true
	case west && south:
		return southWest, true
	case east && south:
		return southEast, true
	}
	return 0, false
}

// route returns the child whose half-open region holds p.
func (n *node) route(p geom.Point) quadrant {
	c := n.bound.Center()
	switch {
	case p.X < c.X && p.Y >= c.Y:
		return northWest
	case p.Y >= c.Y:
		return northEast
	case p.X < c.X:
		return southWest
	}
	return southEast
}

func (t *Tree) splittable(n *node) bool {
	return n.depth < t.maxDepth && n.bound.Width() >= 2 && n.bound.Height() >= 2
}

// allocChildren takes four nodes from the free list or the end of the
// arena and initializes them as the quadrants of parent.
func (t *Tree) allocChildren(parent int) ([numQuadrants]int, error) {
	var idx [numQuadrants]int
	if t.maxNodes > 0 && t.live+numQuadrants > t.maxNodes {
		return idx, ErrOutOfMemory
	}

	bounds := quadrants(t.nodes[parent].bound)
	depth := t.nodes[parent].depth + 1
	for q := range idx {
		n := node{bound: bounds[q], depth: depth, ids: idSet{}}
		if last := len(t.free) - 1; last >= 0 {
			idx[q] = t.free[last]
			t.free = t.free[:last]
			t.nodes[idx[q]] = n
		} else {
			idx[q] = len(t.nodes)
			t.nodes = append(t.nodes, n)
		}
	}
	t.live += numQuadrants
	return idx, nil
}

// release returns i and its whole subtree to the free list.
func (t *Tree) release(i int) {
	n := &t.nodes[i]
	children := n.children
	*n = node{}
	t.free = append(t.free, i)
	t.live--

	if children[0] == rootIndex {
		return
	}
	for _, c := range children {
		t.release(c)
	}
}

func (t *Tree) insert(i int, id int64, b geom.Bound) error {
	n := &t.nodes[i]
	n.count++

	if !n.leaf() {
		if q, ok := n.choose(b); ok {
			return t.insert(n.children[q], id, b)
		}
		n.ids.add(id)
		return nil
	}

	n.ids.add(id)
	if len(n.ids) <= t.capacity || !t.splittable(n) {
		return nil
	}
	return t.split(i)
}

// split turns leaf i into an internal node and pushes every id that fits a
// single quadrant down. A failed nested split leaves that child an
// oversized leaf; every id still ends up held exactly once.
func (t *Tree) split(i int) error {
	children, err := t.allocChildren(i)
	if err != nil {
		return err
	}

	n := &t.nodes[i]
	held := n.ids
	n.ids = idSet{}
	n.children = children
	t.log.Debug("node split", "bound", n.bound.String(), "depth", n.depth, "ids", len(held))

	var firstErr error
	for id := range held {
		poly, err := t.store.Get(id)
		if err != nil {
			panic("quadtree: indexed id missing from store: " + err.Error())
		}

		n := &t.nodes[i]
		q, ok := n.choose(poly.Bound)
		if !ok {
			n.ids.add(id)
			continue
		}
		if err := t.insert(n.children[q], id, poly.Bound); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *Tree) remove(i int, id int64, b geom.Bound) bool {
	n := &t.nodes[i]
	if n.ids.has(id) {
		n.ids.remove(id)
		n.count--
		t.merge(i)
		return true
	}
	if n.leaf() {
		return false
	}

	for _, c := range n.children {
		if !t.nodes[c].bound.Intersects(b) {
			continue
		}
		if t.remove(c, id, b) {
			t.nodes[i].count--
			t.merge(i)
			return true
		}
	}
	return false
}

// merge collapses internal node i back into a leaf once its descendants
// are empty or the whole subtree has shrunk to half the capacity.
func (t *Tree) merge(i int) {
	n := &t.nodes[i]
	if n.leaf() {
		return
	}
	if descendants := n.count - len(n.ids); descendants > 0 && n.count > t.capacity/2 {
		return
	}

	for _, c := range n.children {
		t.collect(c, n.ids)
	}
	children := n.children
	n.children = [numQuadrants]int{}
	for _, c := range children {
		t.release(c)
	}
	t.log.Debug("node merged", "bound", n.bound.String(), "depth", n.depth, "ids", len(n.ids))
}

func (t *Tree) collect(i int, into idSet) {
	n := &t.nodes[i]
	for id := range n.ids {
		into.add(id)
	}
	if n.leaf() {
		return
	}
	for _, c := range n.children {
		t.collect(c, into)
	}
}

// candidates walks from the root to the leaf holding p and gathers every id
// on the way. The result is a superset of the polygons containing p.
func (t *Tree) candidates(p geom.Point, visit func(id int64)) {
	i := rootIndex
	for {
		n := &t.nodes[i]
		for id := range n.ids {
			visit(id)
		}
		if n.leaf() {
			return
		}
		i = n.children[n.route(p)]
	}
}
