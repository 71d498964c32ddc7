package pmap

import "github.com/nikan1234/persistent-data-structures/pkg/cow"

// insert returns the subtree that results from binding key to value
// under n, path-copying every node it descends through. Grounded on
// the ctrie cNode insert/updated pattern, adapted to return the new
// immutable subtree instead of mutating in place.
func insert[K comparable, V any](n hnode[K, V], level int, key K, hash uint32, value V, replace bool) (hnode[K, V], status) {
	if n == nil {
		return &valueNode[K, V]{key: key, value: value, hash: hash}, resized
	}

	switch t := n.(type) {
	case *valueNode[K, V]:
		if t.key == key {
			if !replace {
				return t, unchanged
			}
			return &valueNode[K, V]{key: key, value: value, hash: hash}, modifiedExisting
		}
		// The replacement subtree discriminates by this level's hash
		// chunk — the one after the chunk the parent bitmap used to
		// route to this leaf.
		return resolveCollision(t, &valueNode[K, V]{key: key, value: value, hash: hash}, level), resized

	case *bitmapNode[K, V]:
		bit := bitFor(hash, level)
		idx := indexFor(t.bitmap, bit)
		if t.bitmap&bit == 0 {
			leaf := hnode[K, V](&valueNode[K, V]{key: key, value: value, hash: hash})
			return &bitmapNode[K, V]{bitmap: t.bitmap | bit, children: cow.InsertedAt(t.children, idx, leaf)}, resized
		}
		child, st := insert(t.children[idx], level+1, key, hash, value, replace)
		if st == unchanged {
			return t, unchanged
		}
		return &bitmapNode[K, V]{bitmap: t.bitmap, children: cow.ReplacedAt(t.children, idx, child)}, st

	case *collisionNode[K, V]:
		for i, c := range t.children {
			if c.key == key {
				if !replace {
					return t, unchanged
				}
				leaf := &valueNode[K, V]{key: key, value: value, hash: hash}
				children := make([]*valueNode[K, V], len(t.children))
				copy(children, t.children)
				children[i] = leaf
				return &collisionNode[K, V]{children: children}, modifiedExisting
			}
		}
		leaf := &valueNode[K, V]{key: key, value: value, hash: hash}
		children := append(append([]*valueNode[K, V]{}, t.children...), leaf)
		return &collisionNode[K, V]{children: children}, resized

	default:
		panic("pmap: unreachable node kind")
	}
}

// resolveCollision builds the subtree that replaces a single leaf
// `old` once `next` is discovered to hash into the same slot. Levels
// 0 through MaxDepth consume 30 of the 32 hash bits; beyond MaxDepth
// less than a full chunk remains and the last two bits are not used,
// so the two leaves settle into a Collision node instead of a deeper
// Bitmap.
func resolveCollision[K comparable, V any](old, next *valueNode[K, V], level int) hnode[K, V] {
	if level > MaxDepth {
		return &collisionNode[K, V]{children: []*valueNode[K, V]{old, next}}
	}

	oldBit := bitFor(old.hash, level)
	newBit := bitFor(next.hash, level)
	if oldBit == newBit {
		child := resolveCollision(old, next, level+1)
		return &bitmapNode[K, V]{bitmap: newBit, children: []hnode[K, V]{child}}
	}
	if newBit < oldBit {
		return &bitmapNode[K, V]{bitmap: oldBit | newBit, children: []hnode[K, V]{next, old}}
	}
	return &bitmapNode[K, V]{bitmap: oldBit | newBit, children: []hnode[K, V]{old, next}}
}

// erase returns the subtree with key removed, or n unchanged if key
// is absent.
func erase[K comparable, V any](n hnode[K, V], level int, key K, hash uint32) (hnode[K, V], status) {
	if n == nil {
		return nil, unchanged
	}

	switch t := n.(type) {
	case *valueNode[K, V]:
		if t.key != key {
			return t, unchanged
		}
		return nil, resized

	case *bitmapNode[K, V]:
		bit := bitFor(hash, level)
		if t.bitmap&bit == 0 {
			return t, unchanged
		}
		idx := indexFor(t.bitmap, bit)
		child, st := erase[K, V](t.children[idx], level+1, key, hash)
		if st == unchanged {
			return t, unchanged
		}
		if child == nil {
			if len(t.children) == 1 {
				return nil, resized
			}
			// Collapse only when the lone survivor is a leaf: its key
			// comparison doesn't depend on trie depth, unlike a
			// bitmapNode, whose bit positions are computed from the
			// level it sits at.
			if len(t.children) == 2 {
				if leaf, ok := t.children[1-idx].(*valueNode[K, V]); ok {
					return leaf, resized
				}
			}
			return &bitmapNode[K, V]{bitmap: t.bitmap &^ bit, children: cow.ErasedAt(t.children, idx)}, resized
		}
		if leaf, ok := child.(*valueNode[K, V]); ok && len(t.children) == 1 {
			// A single-child chain built by resolveCollision unwinds
			// once the recursion below it has collapsed to a leaf.
			return leaf, resized
		}
		return &bitmapNode[K, V]{bitmap: t.bitmap, children: cow.ReplacedAt(t.children, idx, child)}, resized

	case *collisionNode[K, V]:
		for i, c := range t.children {
			if c.key != key {
				continue
			}
			if len(t.children) == 2 {
				if i == 0 {
					return t.children[1], resized
				}
				return t.children[0], resized
			}
			children := make([]*valueNode[K, V], 0, len(t.children)-1)
			children = append(children, t.children[:i]...)
			children = append(children, t.children[i+1:]...)
			return &collisionNode[K, V]{children: children}, resized
		}
		return t, unchanged

	default:
		panic("pmap: unreachable node kind")
	}
}

// search returns the leaf bound to key under n, if any.
func search[K comparable, V any](n hnode[K, V], level int, key K, hash uint32) (*valueNode[K, V], bool) {
	for {
		switch t := n.(type) {
		case nil:
			return nil, false
		case *valueNode[K, V]:
			if t.key == key {
				return t, true
			}
			return nil, false
		case *bitmapNode[K, V]:
			bit := bitFor(hash, level)
			if t.bitmap&bit == 0 {
				return nil, false
			}
			n = t.children[indexFor(t.bitmap, bit)]
			level++
		case *collisionNode[K, V]:
			for _, c := range t.children {
				if c.key == key {
					return c, true
				}
			}
			return nil, false
		default:
			panic("pmap: unreachable node kind")
		}
	}
}
