// Package parray implements a fully persistent indexed sequence using
// Baker's re-rooting trick over a modification tree. Every mutating
// operation returns a new PArray value that shares storage with its
// predecessor and carries its own undo/redo history.
package parray

import (
	"fmt"
	"strings"

	"github.com/nikan1234/persistent-data-structures/internal/contract"
	"github.com/nikan1234/persistent-data-structures/pkg/history"
)

// PArray is a persistent, indexed sequence of E. The zero value is
// the empty array.
type PArray[E any] struct {
	size int
	node *node[E]
	hist history.Manager[PArray[E]]
}

// New returns an empty PArray.
func New[E any]() PArray[E] {
	return PArray[E]{}
}

// FromValues builds a PArray from the given values in order. The
// returned array has no undo history, matching the rest of this
// module's initializer-list constructors.
func FromValues[E any](values ...E) PArray[E] {
	if len(values) == 0 {
		return New[E]()
	}
	storage := make([]E, len(values))
	copy(storage, values)
	return PArray[E]{size: len(values), node: &node[E]{kind: kindRoot, storage: storage}}
}

// WithCount builds a PArray of n copies of value. The returned array
// has no undo history.
func WithCount[E any](n int, value E) PArray[E] {
	contract.Require(n >= 0, "n >= 0")
	if n == 0 {
		return New[E]()
	}
	storage := make([]E, n)
	for i := range storage {
		storage[i] = value
	}
	return PArray[E]{size: n, node: &node[E]{kind: kindRoot, storage: storage}}
}

// Size returns the number of elements in the array.
func (a PArray[E]) Size() int { return a.size }

// Empty reports whether the array has no elements.
func (a PArray[E]) Empty() bool { return a.size == 0 }

// Value returns the element at index i, re-rooting the modification
// tree at this array's node if it is not already positioned to answer
// the query directly.
func (a PArray[E]) Value(i int) E {
	contract.Require(i >= 0 && i < a.size, "0 <= i < size")
	n := a.node
	contract.Assert(n != nil, "node present when size > 0")

	if n.kind == kindChangeSet && n.index == i {
		return n.value
	}
	if n.kind == kindRoot && i < len(n.storage) {
		return n.storage[i]
	}

	reroot(n)
	contract.Assert(n.kind == kindRoot, "n is root after reroot")
	contract.Assert(i < len(n.storage), "root storage covers index after reroot")
	return n.storage[i]
}

// Front returns the first element. Precondition: !Empty().
func (a PArray[E]) Front() E {
	contract.Require(!a.Empty(), "!empty()")
	return a.Value(0)
}

// Back returns the last element. Precondition: !Empty().
func (a PArray[E]) Back() E {
	contract.Require(!a.Empty(), "!empty()")
	return a.Value(a.size - 1)
}

// Set returns a new array with the element at index i replaced by v,
// recording a reversible history action. Precondition: i < Size().
func (a PArray[E]) Set(i int, v E) PArray[E] {
	contract.Require(i >= 0 && i < a.size, "0 <= i < size")

	oldNode := a.node
	newNode := &node[E]{kind: kindChangeSet, index: i, value: v, parent: oldNode}
	size := a.size

	action := history.Action[PArray[E]]{
		Undo: func(m history.Manager[PArray[E]]) PArray[E] {
			return PArray[E]{size: size, node: oldNode, hist: m}
		},
		Redo: func(m history.Manager[PArray[E]]) PArray[E] {
			return PArray[E]{size: size, node: newNode, hist: m}
		},
	}
	return PArray[E]{size: size, node: newNode, hist: a.hist.Push(action)}
}

// PushBack returns a new array with v appended, recording a
// reversible history action.
func (a PArray[E]) PushBack(v E) PArray[E] {
	var newNode *node[E]

	switch {
	case a.node == nil:
		newNode = &node[E]{kind: kindRoot, storage: []E{v}}
	default:
		root := findRoot(a.node)
		if a.size < len(root.storage) {
			// The slot at `size` is already occupied by a sibling
			// version's value; record this append as a diff instead
			// of clobbering the shared backing vector.
			newNode = &node[E]{kind: kindChangeSet, index: a.size, value: v, parent: a.node}
		} else {
			contract.Assert(a.size == len(root.storage), "push_back target sits at the root storage frontier")
			root.storage = append(root.storage, v)
			newNode = a.node
		}
	}

	size := a.size
	oldNode := a.node
	action := history.Action[PArray[E]]{
		Undo: func(m history.Manager[PArray[E]]) PArray[E] {
			return PArray[E]{size: size, node: oldNode, hist: m}
		},
		Redo: func(m history.Manager[PArray[E]]) PArray[E] {
			return PArray[E]{size: size + 1, node: newNode, hist: m}
		},
	}
	return PArray[E]{size: size + 1, node: newNode, hist: a.hist.Push(action)}
}

// PopBack returns a new array without its last element. The
// backing storage is left untouched — sibling versions may still
// need the dropped element. Precondition: !Empty().
func (a PArray[E]) PopBack() PArray[E] {
	contract.Require(!a.Empty(), "!empty()")

	size := a.size
	n := a.node
	action := history.Action[PArray[E]]{
		Undo: func(m history.Manager[PArray[E]]) PArray[E] {
			return PArray[E]{size: size, node: n, hist: m}
		},
		Redo: func(m history.Manager[PArray[E]]) PArray[E] {
			return PArray[E]{size: size - 1, node: n, hist: m}
		},
	}
	return PArray[E]{size: size - 1, node: n, hist: a.hist.Push(action)}
}

// HasUndo reports whether Undo can be called.
func (a PArray[E]) HasUndo() bool { return a.hist.HasUndo() }

// HasRedo reports whether Redo can be called.
func (a PArray[E]) HasRedo() bool { return a.hist.HasRedo() }

// Undo returns the array as it was before the most recent mutation.
// Precondition: HasUndo().
func (a PArray[E]) Undo() PArray[E] { return a.hist.Undo() }

// Redo re-applies the most recently undone mutation. Precondition:
// HasRedo().
func (a PArray[E]) Redo() PArray[E] { return a.hist.Redo() }

// Depth returns the number of ChangeSet hops from this array's node
// to the modification tree's Root, without triggering a re-root. A
// diagnostic query only; it never affects any other operation.
func (a PArray[E]) Depth() int { return depth(a.node) }

// ForEach eagerly visits every element in order.
func (a PArray[E]) ForEach(fn func(index int, value E)) {
	for i := 0; i < a.size; i++ {
		fn(i, a.Value(i))
	}
}

// String renders the array's elements for debugging.
func (a PArray[E]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < a.size; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", a.Value(i))
	}
	b.WriteByte(']')
	return b.String()
}

// Equal reports whether a and b have the same size and are
// element-wise equal. Re-rooting performed while answering this never
// changes the result.
func Equal[E comparable](a, b PArray[E]) bool {
	if a.Size() != b.Size() {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		if a.Value(i) != b.Value(i) {
			return false
		}
	}
	return true
}
