// Package plist implements a fully persistent doubly-linked sequence
// using fat-node versioning over a shared persistent order
// (pkg/order). Every mutating operation allocates a new version id,
// writes at most a handful of fat-node entries, and returns a new
// PList that shares every node with its predecessor, with its own
// undo/redo history.
package plist

import (
	"fmt"
	"strings"

	"github.com/nikan1234/persistent-data-structures/internal/contract"
	"github.com/nikan1234/persistent-data-structures/pkg/history"
	"github.com/nikan1234/persistent-data-structures/pkg/order"
)

// PList is a persistent doubly-linked sequence of E. The zero value
// is not usable directly — construct one with New or FromValues so
// it has its own order and sentinel nodes.
type PList[E any] struct {
	order      *order.Order
	head, tail *ListNode[E]
	version    int
	size       int
	hist       history.Manager[PList[E]]
}

// New returns an empty PList.
func New[E any]() PList[E] {
	o := order.New()
	head, tail := newSentinel[E](), newSentinel[E]()
	head.SetNext(o, 0, tail)
	tail.SetPrev(o, 0, head)
	return PList[E]{order: o, head: head, tail: tail}
}

// FromValues builds a PList from the given values in order. The
// returned list has no undo history.
func FromValues[E any](values ...E) PList[E] {
	p := New[E]()
	for _, v := range values {
		p = p.PushBack(v)
	}
	return PList[E]{order: p.order, head: p.head, tail: p.tail, version: p.version, size: p.size}
}

// Size returns the number of elements in the list.
func (p PList[E]) Size() int { return p.size }

// Empty reports whether the list has no elements.
func (p PList[E]) Empty() bool { return p.size == 0 }

// find walks i+1 next edges from head at version, landing on the
// node holding element i.
func (p PList[E]) find(version, i int) *ListNode[E] {
	n := p.head
	for step := 0; step <= i; step++ {
		next, ok := n.GetNext(p.order, version)
		contract.Assert(ok, "next link present while walking to index")
		n = next
	}
	return n
}

// Value returns the element at index i. Precondition: i < Size().
func (p PList[E]) Value(i int) E {
	contract.Require(i >= 0 && i < p.size, "0 <= i < size")
	n := p.find(p.version, i)
	v, ok := n.GetValue(p.order, p.version)
	contract.Assert(ok, "value present at the node found for this index")
	return v
}

// Front returns the first element. Precondition: !Empty().
func (p PList[E]) Front() E {
	contract.Require(!p.Empty(), "!empty()")
	return p.Value(0)
}

// Back returns the last element. Precondition: !Empty().
func (p PList[E]) Back() E {
	contract.Require(!p.Empty(), "!empty()")
	return p.Value(p.size - 1)
}

func (p PList[E]) withVersion(version, size int, hist history.Manager[PList[E]]) PList[E] {
	return PList[E]{order: p.order, head: p.head, tail: p.tail, version: version, size: size, hist: hist}
}

// Set returns a new list with the element at index i replaced by v,
// recording a reversible history action. Precondition: i < Size().
func (p PList[E]) Set(i int, v E) PList[E] {
	contract.Require(i >= 0 && i < p.size, "0 <= i < size")

	vNew := p.order.Add(p.version)
	target := p.find(p.version, i)
	setValueAt(p.order, target, vNew, v)

	oldVersion, size := p.version, p.size
	action := history.Action[PList[E]]{
		Undo: func(m history.Manager[PList[E]]) PList[E] { return p.withVersion(oldVersion, size, m) },
		Redo: func(m history.Manager[PList[E]]) PList[E] { return p.withVersion(vNew, size, m) },
	}
	return p.withVersion(vNew, size, p.hist.Push(action))
}

// Insert returns a new list with v inserted at index i, shifting
// elements at and after i one position later. Precondition: i <=
// Size().
func (p PList[E]) Insert(i int, v E) PList[E] {
	contract.Require(i >= 0 && i <= p.size, "0 <= i <= size")

	vNew := p.order.Add(p.version)
	var before *ListNode[E]
	if i == 0 {
		before = p.head
	} else {
		before = p.find(p.version, i-1)
	}
	after, ok := before.GetNext(p.order, p.version)
	contract.Assert(ok, "next link present at the insertion point")

	fresh := &ListNode[E]{}
	fresh.SetValue(p.order, vNew, v)
	linkBetween(p.order, before, fresh, after, vNew)

	oldVersion, oldSize := p.version, p.size
	newSize := oldSize + 1
	action := history.Action[PList[E]]{
		Undo: func(m history.Manager[PList[E]]) PList[E] { return p.withVersion(oldVersion, oldSize, m) },
		Redo: func(m history.Manager[PList[E]]) PList[E] { return p.withVersion(vNew, newSize, m) },
	}
	return p.withVersion(vNew, newSize, p.hist.Push(action))
}

// Erase returns a new list with the element at index i removed.
// Precondition: i < Size().
func (p PList[E]) Erase(i int) PList[E] {
	contract.Require(i >= 0 && i < p.size, "0 <= i < size")

	vNew := p.order.Add(p.version)
	target := p.find(p.version, i)
	before, ok := target.GetPrev(p.order, p.version)
	contract.Assert(ok, "prev link present on the node being erased")
	after, ok := target.GetNext(p.order, p.version)
	contract.Assert(ok, "next link present on the node being erased")
	spliceOut(p.order, before, after, vNew)

	oldVersion, oldSize := p.version, p.size
	newSize := oldSize - 1
	action := history.Action[PList[E]]{
		Undo: func(m history.Manager[PList[E]]) PList[E] { return p.withVersion(oldVersion, oldSize, m) },
		Redo: func(m history.Manager[PList[E]]) PList[E] { return p.withVersion(vNew, newSize, m) },
	}
	return p.withVersion(vNew, newSize, p.hist.Push(action))
}

// PushFront returns a new list with v prepended.
func (p PList[E]) PushFront(v E) PList[E] { return p.Insert(0, v) }

// PushBack returns a new list with v appended.
func (p PList[E]) PushBack(v E) PList[E] { return p.Insert(p.size, v) }

// PopFront returns a new list without its first element.
// Precondition: !Empty().
func (p PList[E]) PopFront() PList[E] {
	contract.Require(!p.Empty(), "!empty()")
	return p.Erase(0)
}

// PopBack returns a new list without its last element. Precondition:
// !Empty().
func (p PList[E]) PopBack() PList[E] {
	contract.Require(!p.Empty(), "!empty()")
	return p.Erase(p.size - 1)
}

// HasUndo reports whether Undo can be called.
func (p PList[E]) HasUndo() bool { return p.hist.HasUndo() }

// HasRedo reports whether Redo can be called.
func (p PList[E]) HasRedo() bool { return p.hist.HasRedo() }

// Undo returns the list as it was before the most recent mutation.
// Precondition: HasUndo().
func (p PList[E]) Undo() PList[E] { return p.hist.Undo() }

// Redo re-applies the most recently undone mutation. Precondition:
// HasRedo().
func (p PList[E]) Redo() PList[E] { return p.hist.Redo() }

// FatNodeOccupancy returns, for every node reachable at this list's
// current version, how many version entries it carries across its
// next/prev/value histories combined. A diagnostic query only — it
// never affects any other operation — useful for confirming the
// MaxFatNodeSize cap is actually being exercised rather than every
// mutation happening to land on a fresh node.
func (p PList[E]) FatNodeOccupancy() []int {
	occupancy := []int{len(p.head.nextEntries) + len(p.head.prevEntries)}
	n := p.head
	for {
		next, ok := n.GetNext(p.order, p.version)
		contract.Assert(ok, "next link present while walking the occupancy report")
		occupancy = append(occupancy, len(next.nextEntries)+len(next.prevEntries)+len(next.valueEntries))
		if next == p.tail {
			break
		}
		n = next
	}
	return occupancy
}

// ForEach eagerly visits every element in order.
func (p PList[E]) ForEach(fn func(index int, value E)) {
	for i := 0; i < p.size; i++ {
		fn(i, p.Value(i))
	}
}

// String renders the list's elements for debugging.
func (p PList[E]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < p.size; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", p.Value(i))
	}
	b.WriteByte(']')
	return b.String()
}

// Equal reports whether a and b have the same size and are
// element-wise equal.
func Equal[E comparable](a, b PList[E]) bool {
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
