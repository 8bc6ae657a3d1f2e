package quadtree

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/royalcat/polyquad/geom"
	"github.com/tidwall/qtree"
)

// checkInvariants walks the tree and verifies the structural rules every
// mutation must preserve.
func checkInvariants(t *testing.T, tr *Tree) {
	t.Helper()

	seen := map[int64]int{}
	var check func(i int) int
	check = func(i int) int {
		n := &tr.nodes[i]
		for id := range n.ids {
			seen[id]++
			poly, err := tr.store.Get(id)
			if err != nil {
				t.Fatalf("node %d holds unknown id %d", i, id)
			}
			if !n.bound.ContainsBound(poly.Bound) {
				t.Fatalf("node %d %s holds id %d with bound %s outside of it", i, n.bound, id, poly.Bound)
			}
			if !n.leaf() {
				if q, ok := n.choose(poly.Bound); ok {
					t.Fatalf("internal node %d keeps id %d that fits quadrant %d", i, id, q)
				}
			}
		}

		total := len(n.ids)
		if !n.leaf() {
			for q, c := range n.children {
				child := &tr.nodes[c]
				if child.depth != n.depth+1 {
					t.Fatalf("child %d of node %d has depth %d, parent %d", c, i, child.depth, n.depth)
				}
				if child.bound != quadrants(n.bound)[q] {
					t.Fatalf("child %d of node %d has bound %s", c, i, child.bound)
				}
				total += check(c)
			}
		}
		if total != n.count {
			t.Fatalf("node %d counts %d ids, subtree holds %d", i, n.count, total)
		}
		return total
	}
	check(rootIndex)

	if len(seen) != tr.store.Len() {
		t.Fatalf("tree indexes %d ids, store holds %d", len(seen), tr.store.Len())
	}
	for id, c := range seen {
		if c != 1 {
			t.Fatalf("id %d held by %d nodes", id, c)
		}
	}

	live := 0
	tr.walk(rootIndex, func(*node) { live++ })
	if live != tr.live {
		t.Fatalf("reachable nodes %d, live counter %d", live, tr.live)
	}
	if live+len(tr.free) != len(tr.nodes) {
		t.Fatalf("arena leaks: %d live + %d free != %d slots", live, len(tr.free), len(tr.nodes))
	}
}

func randomTriangle(rnd *rand.Rand, b geom.Bound, maxSize int32) []geom.Point {
	x := b.Min.X + rnd.Int31n(b.Max.X-b.Min.X-maxSize+1)
	y := b.Min.Y + rnd.Int31n(b.Max.Y-b.Min.Y-maxSize+1)
	vs := make([]geom.Point, 3)
	for i := range vs {
		vs[i] = geom.Point{X: x + rnd.Int31n(maxSize+1), Y: y + rnd.Int31n(maxSize+1)}
	}
	return vs
}

func TestQuadrantsPartitionBound(t *testing.T) {
	b, _ := geom.NewBound(0, 0, 800, 600)
	n := node{bound: b}
	qs := quadrants(b)
	for _, p := range []geom.Point{{X: 0, Y: 0}, {X: 399, Y: 299}, {X: 400, Y: 300}, {X: 400, Y: 0}, {X: 0, Y: 300}, {X: 799, Y: 599}} {
		in := 0
		for _, q := range qs {
			if q.Contains(p) {
				in++
			}
		}
		if in != 1 {
			t.Fatalf("%s lies in %d quadrants", p, in)
		}
		if !qs[n.route(p)].Contains(p) {
			t.Fatalf("%s routed to quadrant %d not containing it", p, n.route(p))
		}
	}
}

func TestChooseMidlineStaysAtParent(t *testing.T) {
	b, _ := geom.NewBound(0, 0, 800, 600)
	n := node{bound: b}

	for _, tc := range []struct {
		name string
		b    geom.Bound
		q    quadrant
		ok   bool
	}{
		{"south west", geom.Bound{Min: geom.Point{X: 10, Y: 10}, Max: geom.Point{X: 20, Y: 20}}, southWest, true},
		{"north east", geom.Bound{Min: geom.Point{X: 500, Y: 400}, Max: geom.Point{X: 800, Y: 600}}, northEast, true},
		{"north west", geom.Bound{Min: geom.Point{X: 0, Y: 301}, Max: geom.Point{X: 399, Y: 600}}, northWest, true},
		{"south east", geom.Bound{Min: geom.Point{X: 401, Y: 0}, Max: geom.Point{X: 800, Y: 299}}, southEast, true},
		{"touches vertical midline from west", geom.Bound{Min: geom.Point{X: 10, Y: 10}, Max: geom.Point{X: 400, Y: 20}}, 0, false},
		{"touches vertical midline from east", geom.Bound{Min: geom.Point{X: 400, Y: 10}, Max: geom.Point{X: 500, Y: 20}}, 0, false},
		{"touches horizontal midline", geom.Bound{Min: geom.Point{X: 10, Y: 10}, Max: geom.Point{X: 20, Y: 300}}, 0, false},
		{"straddles", geom.Bound{Min: geom.Point{X: 300, Y: 200}, Max: geom.Point{X: 500, Y: 400}}, 0, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			q, ok := n.choose(tc.b)
			if ok != tc.ok || (ok && q != tc.q) {
				t.Fatalf("expected (%d, %v), got (%d, %v)", tc.q, tc.ok, q, ok)
			}
		})
	}
}

func TestSplitKeepsStraddlersAtParent(t *testing.T) {
	tr, err := Create(0, 0, 800, 600, WithCapacity(2))
	if err != nil {
		t.Fatal(err)
	}

	// touches x=400, the root's vertical midline
	straddler := []geom.Point{{X: 390, Y: 10}, {X: 400, Y: 10}, {X: 390, Y: 20}}
	if err := tr.Add(1, straddler); err != nil {
		t.Fatal(err)
	}
	if err := tr.Add(2, []geom.Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 10, Y: 20}}); err != nil {
		t.Fatal(err)
	}
	if err := tr.Add(3, []geom.Point{{X: 700, Y: 500}, {X: 710, Y: 500}, {X: 700, Y: 510}}); err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, tr)

	root := &tr.nodes[rootIndex]
	if root.leaf() {
		t.Fatalf("expected root to split past capacity")
	}
	if len(root.ids) != 1 || !root.ids.has(1) {
		t.Fatalf("expected root to keep only the straddler, got %v", root.ids)
	}
	if !tr.nodes[root.children[southWest]].ids.has(2) || !tr.nodes[root.children[northEast]].ids.has(3) {
		t.Fatalf("expected small polygons pushed into their quadrants")
	}
}

func TestRemovingStraddlersCollapsesEmptySplit(t *testing.T) {
	tr, err := Create(0, 0, 800, 600, WithCapacity(1))
	if err != nil {
		t.Fatal(err)
	}

	// both touch the root midlines, so the split leaves every child empty
	for id, vs := range [][]geom.Point{
		{{X: 390, Y: 290}, {X: 410, Y: 290}, {X: 390, Y: 310}},
		{{X: 380, Y: 280}, {X: 420, Y: 280}, {X: 380, Y: 320}},
	} {
		if err := tr.Add(int64(id), vs); err != nil {
			t.Fatal(err)
		}
	}
	if tr.nodes[rootIndex].leaf() {
		t.Fatal("expected root to split")
	}

	if err := tr.Remove(0); err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, tr)
	if s := tr.Stats(); s.Nodes != 1 || s.FreeNodes != 4 {
		t.Fatalf("expected the empty split to collapse, got %+v", s)
	}
}

func TestMaxDepthStopsSplitting(t *testing.T) {
	tr, err := Create(0, 0, 1024, 1024, WithCapacity(1), WithMaxDepth(3))
	if err != nil {
		t.Fatal(err)
	}
	for i := range int64(20) {
		if err := tr.Add(i, []geom.Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 1, Y: 3}}); err != nil {
			t.Fatal(err)
		}
	}
	checkInvariants(t, tr)

	if s := tr.Stats(); s.Depth != 3 {
		t.Fatalf("expected depth 3, got %+v", s)
	}
	ids, err := tr.Query(geom.Point{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 20 {
		t.Fatalf("expected all 20 overlapping polygons, got %v", ids)
	}
}

func TestMinSizeStopsSplitting(t *testing.T) {
	// one unit wide, the root can never be halved along x
	tr, err := Create(0, 0, 1, 1000, WithCapacity(1))
	if err != nil {
		t.Fatal(err)
	}
	for i := range int64(4) {
		y := int32(i) * 100
		if err := tr.Add(i, []geom.Point{{X: 0, Y: y}, {X: 1, Y: y}, {X: 0, Y: y + 10}}); err != nil {
			t.Fatal(err)
		}
	}
	checkInvariants(t, tr)

	if s := tr.Stats(); s.Nodes != 1 || s.Leaves != 1 {
		t.Fatalf("expected a single leaf, got %+v", s)
	}
	ids, err := tr.Query(geom.Point{X: 0, Y: 305})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(ids, []int64{3}) {
		t.Fatalf("expected [3], got %v", ids)
	}
}

func TestOutOfMemoryInNestedSplit(t *testing.T) {
	// room for the root and one split only
	tr, err := Create(0, 0, 800, 600, WithCapacity(1), WithMaxNodes(5))
	if err != nil {
		t.Fatal(err)
	}

	first := []geom.Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 10, Y: 20}}
	if err := tr.Add(1, first); err != nil {
		t.Fatal(err)
	}
	// lands in the same south west quadrant, whose own split cannot allocate
	err = tr.Add(2, []geom.Point{{X: 30, Y: 30}, {X: 40, Y: 30}, {X: 30, Y: 40}})
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("expected ErrOutOfMemory, got %v", err)
	}
	checkInvariants(t, tr)

	if ids := tr.IDs(); !slices.Equal(ids, []int64{1}) {
		t.Fatalf("expected only id 1 after rollback, got %v", ids)
	}
	got, err := tr.Query(geom.Point{X: 12, Y: 12})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int64{1}) {
		t.Fatalf("expected [1], got %v", got)
	}
	got, err = tr.Query(geom.Point{X: 32, Y: 32})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("rolled back polygon still found: %v", got)
	}
}

func TestRandomAgainstBoundsOracle(t *testing.T) {
	for _, capacity := range []int{1, 2, 4, 8} {
		rnd := rand.New(rand.NewSource(int64(capacity)))
		tr, err := Create(0, 0, 800, 600, WithCapacity(capacity))
		if err != nil {
			t.Fatal(err)
		}
		oracle := qtree.New([2]float64{0, 0}, [2]float64{800, 600})

		polys := map[int64]geom.Polygon{}
		add := func(id int64) {
			vs := randomTriangle(rnd, tr.Bound(), 1+rnd.Int31n(300))
			if err := tr.Add(id, vs); err != nil {
				if errors.Is(err, ErrInvalidPolygon) {
					return
				}
				t.Fatal(err)
			}
			p, _ := tr.Polygon(id)
			polys[id] = p
			oracle.Insert(p.Bound.Min.Orb(), p.Bound.Max.Orb(), id)
		}
		remove := func(id int64) {
			p := polys[id]
			if err := tr.Remove(id); err != nil {
				t.Fatal(err)
			}
			oracle.Delete(p.Bound.Min.Orb(), p.Bound.Max.Orb(), id)
			delete(polys, id)
		}

		for id := range int64(200) {
			add(id)
		}
		checkInvariants(t, tr)
		for id := int64(0); id < 200; id += 3 {
			if _, ok := polys[id]; ok {
				remove(id)
			}
		}
		checkInvariants(t, tr)

		for range 500 {
			p := geom.Point{X: rnd.Int31n(801), Y: rnd.Int31n(601)}

			var want []int64
			oracle.Search(p.Orb(), p.Orb(), func(_, _ [2]float64, data interface{}) bool {
				id := data.(int64)
				if polys[id].Contains(p) {
					want = append(want, id)
				}
				return true
			})
			slices.Sort(want)

			got, err := tr.Query(p)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, want) && !(len(got) == 0 && len(want) == 0) {
				t.Fatalf("capacity %d query %s: expected %v, got %v", capacity, p, want, got)
			}

			candidates, _ := tr.Candidates(p)
			for _, id := range want {
				if _, found := slices.BinarySearch(candidates, id); !found {
					t.Fatalf("capacity %d query %s: match %d missing from candidates", capacity, p, id)
				}
			}
		}

		for id := range polys {
			remove(id)
		}
		checkInvariants(t, tr)
		if s := tr.Stats(); s.Nodes != 1 || s.Polygons != 0 {
			t.Fatalf("expected tree to shrink to its root, got %+v", s)
		}
	}
}
