package parray

// reroot performs Baker's re-rooting trick: it walks from n to the
// tree's current Root recording the path, then replays that path in
// reverse, swapping each ChangeSet's (index, value) into the Root's
// backing storage and flipping the impl-kind of the two cells. After
// it returns, n is the tree's Root.
//
// The walk and the replay are both plain loops — never recursion — so
// a lineage with millions of accumulated versions cannot blow the
// call stack here, matching the destructor-discipline requirement
// that chain traversal stay iterative.
func reroot[E any](n *node[E]) {
	if n.kind == kindRoot {
		return
	}

	var path []*node[E]
	for cur := n; cur.kind != kindRoot; cur = cur.parent {
		path = append(path, cur)
	}

	// path[0] == n, path[len-1] is the ChangeSet whose parent is the
	// real Root. Replay outermost-first so the Root's storage always
	// reflects a valid intermediate version before the next swap.
	for i := len(path) - 1; i >= 0; i-- {
		c := path[i]
		r := c.parent

		idx := c.index
		v := c.value
		old := r.storage[idx]
		r.storage[idx] = v

		c.kind = kindRoot
		c.storage = r.storage
		c.parent = nil

		r.kind = kindChangeSet
		r.index = idx
		r.value = old
		r.parent = c
		r.storage = nil
	}
}
