// Package order implements an order-maintenance (list-labeling)
// structure: it assigns a real-valued label to each integer id it is
// asked to record, so that comparing two ids answers "which was
// inserted first along this path" in O(1), without walking any
// chain. A single Order is shared by every version spawned from one
// collection lineage — it is not itself a persistent value.
package order

import "github.com/nikan1234/persistent-data-structures/internal/contract"

// W bounds the label space to [-W, W]. Chosen large enough that a
// full relabel (which spreads every recorded id evenly across this
// range) leaves ample room for further ⅓/⅔ subdivision before the
// next relabel is needed.
const W = 1 << 30

// point is one entry in the internal doubly linked label sequence.
// Two points are recorded per id added: a "forward" point (queried
// when the id is used as a positive argument to Less) and a
// "reverse" point (queried when it's used negated).
type point struct {
	label      float64
	prev, next *point
}

// Order is a shared, mutable order-maintenance structure. The zero
// value is not usable; construct one with New.
type Order struct {
	head, tail *point
	forward    map[int]*point
	reverse    map[int]*point
	nextID     int
}

// New returns an empty Order.
func New() *Order {
	head := &point{label: -W}
	tail := &point{label: W}
	head.next = tail
	tail.prev = head
	return &Order{head: head, tail: tail, forward: map[int]*point{}, reverse: map[int]*point{}, nextID: 1}
}

// Add allocates a new id, inserting it (and its negative companion)
// immediately after parent in the labeling sequence; parent == 0
// anchors the insertion at the sequence's virtual head, which is how
// the very first id is recorded in an empty Order. Returns the new
// id, always positive.
func (o *Order) Add(parent int) int {
	anchor := o.head
	if parent != 0 {
		p, ok := o.forward[parent]
		contract.Require(ok, "parent is a previously recorded id")
		anchor = p
	}

	v := o.nextID
	o.nextID++

	labelV, labelNegV, ok := o.computeLabels(anchor)
	if !ok {
		o.relabelAll()
		labelV, labelNegV, ok = o.computeLabels(anchor)
		contract.Assert(ok, "labels fit immediately after a full relabel")
	}

	vPoint := &point{label: labelV}
	negPoint := &point{label: labelNegV}
	insertBetween(anchor, vPoint, anchor.next)
	insertBetween(vPoint, negPoint, vPoint.next)

	o.forward[v] = vPoint
	o.reverse[v] = negPoint
	return v
}

// computeLabels returns the ⅓ and ⅔ gap labels that would be
// assigned after anchor, and whether they are distinct from anchor's
// and its successor's labels (false means the gap is exhausted).
func (o *Order) computeLabels(anchor *point) (labelV, labelNegV float64, ok bool) {
	successor := anchor.next
	gap := successor.label - anchor.label
	labelV = anchor.label + gap/3
	labelNegV = anchor.label + 2*gap/3
	if labelV <= anchor.label || labelNegV <= labelV || labelNegV >= successor.label {
		return 0, 0, false
	}
	return labelV, labelNegV, true
}

// relabelAll spreads every recorded point's label evenly across
// [-W, W], restoring room for further subdivision.
func (o *Order) relabelAll() {
	n := 0
	for p := o.head.next; p != o.tail; p = p.next {
		n++
	}
	step := (2 * W) / float64(n+1)
	label := -W + step
	for p := o.head.next; p != o.tail; p = p.next {
		p.label = label
		label += step
	}
}

func insertBetween(before, n, after *point) {
	n.prev, n.next = before, after
	before.next, after.prev = n, n
}

// Less reports whether a's label comes before b's in this order's
// labeling. Along one chain of Add(parent) calls that is creation
// order; an id added later after the same parent sorts before that
// parent's earlier children. A negative argument reads its absolute
// value's reverse (companion) label.
func (o *Order) Less(a, b int) bool {
	return o.labelOf(a) < o.labelOf(b)
}

// LessOrEqual reports whether a == b or Less(a, b).
func (o *Order) LessOrEqual(a, b int) bool {
	return a == b || o.Less(a, b)
}

func (o *Order) labelOf(id int) float64 {
	if id == 0 {
		// 0 denotes "before any real id" — the bootstrap version a
		// fresh PList starts at, and the implicit anchor Add(0) inserts
		// after.
		return -W
	}
	if id >= 0 {
		p, ok := o.forward[id]
		contract.Require(ok, "id is a previously recorded id")
		return p.label
	}
	p, ok := o.reverse[-id]
	contract.Require(ok, "|id| is a previously recorded id")
	return p.label
}
