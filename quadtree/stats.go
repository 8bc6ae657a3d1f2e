package quadtree

// Stats describes the shape of a tree.
type Stats struct {
	Polygons  int `json:"polygons"`
	Nodes     int `json:"nodes"`
	Leaves    int `json:"leaves"`
	Depth     int `json:"depth"`
	FreeNodes int `json:"free_nodes"`
	// Arena is the number of node slots allocated, live or free.
	Arena int `json:"arena"`
}

func (t *Tree) Stats() Stats {
	if t.usable() != nil {
		return Stats{}
	}

	s := Stats{
		Polygons:  t.store.Len(),
		Nodes:     t.live,
		FreeNodes: len(t.free),
		Arena:     len(t.nodes),
	}
	t.walk(rootIndex, func(n *node) {
		if n.leaf() {
			s.Leaves++
		}
		s.Depth = max(s.Depth, n.depth)
	})
	return s
}

func (t *Tree) walk(i int, visit func(n *node)) {
	n := &t.nodes[i]
	visit(n)
	if n.leaf() {
		return
	}
	for _, c := range n.children {
		t.walk(c, visit)
	}
}
