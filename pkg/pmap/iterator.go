package pmap

import "github.com/nikan1234/persistent-data-structures/internal/contract"

// Category identifies an iterator's traversal capability.
type Category int

const (
	// Forward is the only category PMap's iterator supports: trie
	// order has no meaningful notion of "position" to seek or
	// compare, unlike PArray's random-access indices.
	Forward Category = iota
)

// Iterator performs a depth-first walk of a PMap snapshot, visiting
// each entry exactly once in an unspecified order. It holds an
// explicit stack of unvisited subtrees, pushing a Bitmap's children
// or a Collision's leaves as it descends — the HAMT analogue of the
// teacher's stack-based Seq iterators. Grounded on the ctrie package's
// stack-of-frames Iterator.
type Iterator[K comparable, V any] struct {
	stack   []hnode[K, V]
	current *valueNode[K, V]
}

// NewIterator returns an iterator positioned before the first entry
// of m.
func (m PMap[K, V]) NewIterator() *Iterator[K, V] {
	it := &Iterator[K, V]{}
	if m.root != nil {
		it.stack = append(it.stack, m.root)
	}
	return it
}

// Category reports this iterator's traversal capability.
func (it *Iterator[K, V]) Category() Category { return Forward }

// Next advances to the next entry and reports whether one exists.
func (it *Iterator[K, V]) Next() bool {
	for len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		switch t := n.(type) {
		case *valueNode[K, V]:
			it.current = t
			return true
		case *bitmapNode[K, V]:
			for _, c := range t.children {
				it.stack = append(it.stack, c)
			}
		case *collisionNode[K, V]:
			for _, c := range t.children {
				it.stack = append(it.stack, hnode[K, V](c))
			}
		}
	}
	it.current = nil
	return false
}

// Current returns the key/value pair at the iterator's current
// position. Valid only after Next has returned true.
func (it *Iterator[K, V]) Current() (K, V) {
	contract.Require(it.current != nil, "Next() has returned true")
	return it.current.key, it.current.value
}

// Seq adapts the map for Go 1.23+ range-over-func iteration:
//
//	for k, v := range pmap.Seq(m) { ... }
func Seq[K comparable, V any](m PMap[K, V]) func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		it := m.NewIterator()
		for it.Next() {
			k, v := it.Current()
			if !yield(k, v) {
				return
			}
		}
	}
}
