// Package pmap implements a fully persistent hash map as a hash
// array mapped trie (HAMT). Every mutating operation path-copies only
// the nodes on the route to the affected key and returns a new PMap
// that shares the rest of the structure with its predecessor, with
// its own undo/redo history.
package pmap

import (
	"fmt"
	"strings"

	"github.com/nikan1234/persistent-data-structures/internal/contract"
	"github.com/nikan1234/persistent-data-structures/pkg/history"
)

// PMap is a persistent hash map from K to V. The zero value is not
// usable directly — construct one with New, NewAuto, or FromPairs so
// a hash function is attached.
type PMap[K comparable, V any] struct {
	size int
	root hnode[K, V]
	hash func(K) uint32
	hist history.Manager[PMap[K, V]]
}

// Pair is a key/value pair used by FromPairs's initializer-list
// constructor.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// New returns an empty PMap that hashes keys with hash.
func New[K comparable, V any](hash func(K) uint32) PMap[K, V] {
	contract.Require(hash != nil, "hash != nil")
	return PMap[K, V]{hash: hash}
}

// NewAuto returns an empty PMap using a built-in hash function for
// string or int keys. Precondition: K is string or int.
func NewAuto[K comparable, V any]() PMap[K, V] {
	hash, ok := defaultHash[K]()
	contract.Require(ok, "K has a built-in default hash function")
	return PMap[K, V]{hash: hash}
}

// FromPairs builds a PMap from pairs, first key wins on duplicates.
// The returned map has no undo history.
func FromPairs[K comparable, V any](hash func(K) uint32, pairs ...Pair[K, V]) PMap[K, V] {
	m := New[K, V](hash)
	for _, p := range pairs {
		hv := m.hash(p.Key)
		m.root, _ = insert(m.root, 0, p.Key, hv, p.Value, false)
	}
	m.size = countLeaves[K, V](m.root)
	return m
}

func countLeaves[K comparable, V any](n hnode[K, V]) int {
	count := 0
	walk(n, func(K, V) { count++ })
	return count
}

// Size returns the number of entries in the map.
func (m PMap[K, V]) Size() int { return m.size }

// Empty reports whether the map has no entries.
func (m PMap[K, V]) Empty() bool { return m.size == 0 }

// Search returns the value bound to key, if present.
func (m PMap[K, V]) Search(key K) (V, bool) {
	leaf, ok := search[K, V](m.root, 0, key, m.hash(key))
	if !ok {
		var zero V
		return zero, false
	}
	return leaf.value, true
}

// Contains reports whether key is bound in the map.
func (m PMap[K, V]) Contains(key K) bool {
	_, ok := m.Search(key)
	return ok
}

// Insert returns a new map with key bound to value, recording a
// reversible history action. If key is already present and replace
// is false, the returned map is equal to m but still records a
// (no-op) history entry, so Undo/Redo stay symmetric regardless of
// whether the insert actually changed anything.
func (m PMap[K, V]) Insert(key K, value V, replace bool) PMap[K, V] {
	hash := m.hash(key)
	newRoot, st := insert(m.root, 0, key, hash, value, replace)

	newSize := m.size
	if st == resized {
		newSize++
	}

	oldRoot, oldSize, hashFn := m.root, m.size, m.hash
	action := history.Action[PMap[K, V]]{
		Undo: func(mgr history.Manager[PMap[K, V]]) PMap[K, V] {
			return PMap[K, V]{size: oldSize, root: oldRoot, hash: hashFn, hist: mgr}
		},
		Redo: func(mgr history.Manager[PMap[K, V]]) PMap[K, V] {
			return PMap[K, V]{size: newSize, root: newRoot, hash: hashFn, hist: mgr}
		},
	}
	return PMap[K, V]{size: newSize, root: newRoot, hash: hashFn, hist: m.hist.Push(action)}
}

// Erase returns a new map with key unbound, recording a reversible
// history action. Erasing an absent key is a no-op that still
// records a history entry.
func (m PMap[K, V]) Erase(key K) PMap[K, V] {
	hash := m.hash(key)
	newRoot, st := erase[K, V](m.root, 0, key, hash)

	newSize := m.size
	if st == resized {
		newSize--
	}

	oldRoot, oldSize, hashFn := m.root, m.size, m.hash
	action := history.Action[PMap[K, V]]{
		Undo: func(mgr history.Manager[PMap[K, V]]) PMap[K, V] {
			return PMap[K, V]{size: oldSize, root: oldRoot, hash: hashFn, hist: mgr}
		},
		Redo: func(mgr history.Manager[PMap[K, V]]) PMap[K, V] {
			return PMap[K, V]{size: newSize, root: newRoot, hash: hashFn, hist: mgr}
		},
	}
	return PMap[K, V]{size: newSize, root: newRoot, hash: hashFn, hist: m.hist.Push(action)}
}

// HasUndo reports whether Undo can be called.
func (m PMap[K, V]) HasUndo() bool { return m.hist.HasUndo() }

// HasRedo reports whether Redo can be called.
func (m PMap[K, V]) HasRedo() bool { return m.hist.HasRedo() }

// Undo returns the map as it was before the most recent mutation.
// Precondition: HasUndo().
func (m PMap[K, V]) Undo() PMap[K, V] { return m.hist.Undo() }

// Redo re-applies the most recently undone mutation. Precondition:
// HasRedo().
func (m PMap[K, V]) Redo() PMap[K, V] { return m.hist.Redo() }

// Depth returns the maximum number of bitmap-node hops from the root
// to any entry currently in the map (0 for an empty or single-entry
// map). A diagnostic query only — it never affects any other
// operation — useful for confirming the trie actually branches under
// load rather than degenerating into collision chains.
func (m PMap[K, V]) Depth() int { return depth[K, V](m.root) }

func depth[K comparable, V any](n hnode[K, V]) int {
	switch t := n.(type) {
	case nil, *valueNode[K, V], *collisionNode[K, V]:
		return 0
	case *bitmapNode[K, V]:
		maxChild := 0
		for _, c := range t.children {
			if d := depth[K, V](c); d > maxChild {
				maxChild = d
			}
		}
		return maxChild + 1
	default:
		panic("pmap: unreachable node kind")
	}
}

func walk[K comparable, V any](n hnode[K, V], fn func(K, V)) {
	switch t := n.(type) {
	case nil:
		return
	case *valueNode[K, V]:
		fn(t.key, t.value)
	case *bitmapNode[K, V]:
		for _, c := range t.children {
			walk(c, fn)
		}
	case *collisionNode[K, V]:
		for _, c := range t.children {
			fn(c.key, c.value)
		}
	default:
		panic("pmap: unreachable node kind")
	}
}

// ForEach eagerly visits every entry. Order is unspecified.
func (m PMap[K, V]) ForEach(fn func(key K, value V)) { walk(m.root, fn) }

// String renders the map's entries for debugging. Order is
// unspecified.
func (m PMap[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	m.ForEach(func(k K, v V) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", k, v)
	})
	b.WriteByte('}')
	return b.String()
}

// Equal reports whether a and b contain the same key/value pairs,
// independent of trie shape or key order.
func Equal[K comparable, V comparable](a, b PMap[K, V]) bool {
	if a.size != b.size {
		return false
	}
	eq := true
	a.ForEach(func(k K, v V) {
		if bv, ok := b.Search(k); !ok || bv != v {
			eq = false
		}
	})
	return eq
}
