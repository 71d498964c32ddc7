package plist

import "github.com/nikan1234/persistent-data-structures/pkg/order"

// MaxFatNodeSize bounds how many distinct versions any non-sentinel
// ListNode may record in each of its three maps before it must split
// into a fresh node. The head and tail sentinels are exempt (see
// CanSetNext).
const MaxFatNodeSize = 10

type verEntry[V any] struct {
	version int
	val     V
}

// ListNode is a fat node: next, prev, and value are each a small,
// version-keyed history rather than a single mutable field. Reading a
// field at version v returns the entry with the greatest version <= v
// under the shared order. The two sentinel nodes (head, tail) never
// carry value entries.
//
// A write at version v is valid for the interval [v, -v]: the write
// also records the previously visible value at the companion -v, so
// versions outside v's subtree — whose labels fall past -v — keep
// reading the old state. Without the closing entry, a branch forked
// later (which the order gives a smaller label) would leak its writes
// into every earlier branch's "greatest version <= v" reads.
type ListNode[E any] struct {
	isSentinel   bool
	nextEntries  []verEntry[*ListNode[E]]
	prevEntries  []verEntry[*ListNode[E]]
	valueEntries []verEntry[E]
}

func newSentinel[E any]() *ListNode[E] { return &ListNode[E]{isSentinel: true} }

func hasVersion[V any](entries []verEntry[V], version int) bool {
	for _, e := range entries {
		if e.version == version {
			return true
		}
	}
	return false
}

// findEntry returns the entry with the greatest version <= v under
// o's order, or false if no recorded version qualifies.
func findEntry[V any](entries []verEntry[V], o *order.Order, v int) (V, bool) {
	bestIdx := -1
	for i, e := range entries {
		if !o.LessOrEqual(e.version, v) {
			continue
		}
		if bestIdx == -1 || o.Less(entries[bestIdx].version, e.version) {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		var zero V
		return zero, false
	}
	return entries[bestIdx].val, true
}

// writeEntry records val at version, first closing the interval at
// -version with the value that was visible there, so only versions
// inside [version, -version] observe the write. Writing the same
// version twice replaces the entry in place and leaves the closing
// companion untouched.
func writeEntry[V any](entries []verEntry[V], o *order.Order, version int, val V) []verEntry[V] {
	for i, e := range entries {
		if e.version == version {
			out := append([]verEntry[V]{}, entries...)
			out[i] = verEntry[V]{version: version, val: val}
			return out
		}
	}
	out := append([]verEntry[V]{}, entries...)
	if version > 0 && !hasVersion(entries, -version) {
		if old, ok := findEntry(entries, o, -version); ok {
			out = append(out, verEntry[V]{version: -version, val: old})
		}
	}
	return append(out, verEntry[V]{version: version, val: val})
}

// slotsNeeded reports how many fresh entries a write at version would
// cost: one for the entry itself plus one for its closing companion,
// when each is not already recorded.
func slotsNeeded[V any](entries []verEntry[V], o *order.Order, version int) int {
	if hasVersion(entries, version) {
		return 0
	}
	n := 1
	if version > 0 && !hasVersion(entries, -version) {
		if _, ok := findEntry(entries, o, -version); ok {
			n++
		}
	}
	return n
}

func canAccept[V any](entries []verEntry[V], o *order.Order, version int) bool {
	return len(entries)+slotsNeeded(entries, o, version) <= MaxFatNodeSize
}

// CanSetNext and CanSetPrev always succeed for a sentinel: head and
// tail are the two stable anchors every PList in a lineage shares, so
// they must never need to split (nothing in PList holds a handle that
// could be invalidated by a sentinel taking on a new identity).
func (n *ListNode[E]) CanSetNext(o *order.Order, version int) bool {
	return n.isSentinel || canAccept(n.nextEntries, o, version)
}
func (n *ListNode[E]) CanSetPrev(o *order.Order, version int) bool {
	return n.isSentinel || canAccept(n.prevEntries, o, version)
}
func (n *ListNode[E]) CanSetValue(o *order.Order, version int) bool {
	return !n.isSentinel && canAccept(n.valueEntries, o, version)
}

func (n *ListNode[E]) SetNext(o *order.Order, version int, next *ListNode[E]) {
	n.nextEntries = writeEntry(n.nextEntries, o, version, next)
}
func (n *ListNode[E]) SetPrev(o *order.Order, version int, prev *ListNode[E]) {
	n.prevEntries = writeEntry(n.prevEntries, o, version, prev)
}
func (n *ListNode[E]) SetValue(o *order.Order, version int, value E) {
	n.valueEntries = writeEntry(n.valueEntries, o, version, value)
}

func (n *ListNode[E]) GetNext(o *order.Order, v int) (*ListNode[E], bool) { return findEntry(n.nextEntries, o, v) }
func (n *ListNode[E]) GetPrev(o *order.Order, v int) (*ListNode[E], bool) { return findEntry(n.prevEntries, o, v) }
func (n *ListNode[E]) GetValue(o *order.Order, v int) (E, bool)           { return findEntry(n.valueEntries, o, v) }

// setNextAt sets node.next[version] = next, splitting node into a
// fresh copy that takes over its role from version onward if it
// lacks the capacity to record another next entry. On split, node's
// predecessor is re-pointed to the fresh copy (cascading into the
// predecessor's own split if it too is full) — the make_new_node
// cascade, walking outward only as far as necessary. Only the
// predecessor side is touched: the caller is always in the middle of
// also fixing up node's successor itself (linkBetween, spliceOut), so
// reaching further in that direction here would race with it.
func setNextAt[E any](o *order.Order, node *ListNode[E], version int, next *ListNode[E]) *ListNode[E] {
	if node.CanSetNext(o, version) {
		node.SetNext(o, version, next)
		return node
	}
	fresh := seedSplit(o, node, version)
	fresh.SetNext(o, version, next)
	if prev, ok := findEntry(node.prevEntries, o, version); ok {
		newPrev := setNextAt(o, prev, version, fresh)
		fresh.SetPrev(o, version, newPrev)
	}
	return fresh
}

// setPrevAt mirrors setNextAt for the backward direction, relinking
// node's successor on split instead of its predecessor.
func setPrevAt[E any](o *order.Order, node *ListNode[E], version int, prev *ListNode[E]) *ListNode[E] {
	if node.CanSetPrev(o, version) {
		node.SetPrev(o, version, prev)
		return node
	}
	fresh := seedSplit(o, node, version)
	fresh.SetPrev(o, version, prev)
	if next, ok := findEntry(node.nextEntries, o, version); ok {
		newNext := setPrevAt(o, next, version, fresh)
		fresh.SetNext(o, version, newNext)
	}
	return fresh
}

// setValueAt sets node.value[version] = value, splitting node if it
// lacks capacity. A value change has no direction, so on split both
// neighbors are re-pointed at the fresh copy.
func setValueAt[E any](o *order.Order, node *ListNode[E], version int, value E) *ListNode[E] {
	if node.CanSetValue(o, version) {
		node.SetValue(o, version, value)
		return node
	}
	fresh := seedSplit(o, node, version)
	fresh.SetValue(o, version, value)
	if prev, ok := findEntry(node.prevEntries, o, version); ok {
		newPrev := setNextAt(o, prev, version, fresh)
		fresh.SetPrev(o, version, newPrev)
	}
	if next, ok := findEntry(node.nextEntries, o, version); ok {
		newNext := setPrevAt(o, next, version, fresh)
		fresh.SetNext(o, version, newNext)
	}
	return fresh
}

// seedSplit creates the fresh copy that will take over node's role
// from version onward, carrying forward the next/prev/value visible
// at version as its own entries. The split copy needs no closing
// companions of its own: versions outside the subtree keep routing
// through the old node, whose entries are untouched.
func seedSplit[E any](o *order.Order, node *ListNode[E], version int) *ListNode[E] {
	fresh := &ListNode[E]{isSentinel: node.isSentinel}
	if v, ok := findEntry(node.nextEntries, o, version); ok {
		fresh.SetNext(o, version, v)
	}
	if v, ok := findEntry(node.prevEntries, o, version); ok {
		fresh.SetPrev(o, version, v)
	}
	if !node.isSentinel {
		if v, ok := findEntry(node.valueEntries, o, version); ok {
			fresh.SetValue(o, version, v)
		}
	}
	return fresh
}

// linkBetween threads a fresh node between before and after at
// version, leaving before and after's prior entries (and target, if
// this is replacing one — see spliceOut) untouched for older
// versions.
func linkBetween[E any](o *order.Order, before, node, after *ListNode[E], version int) {
	newBefore := setNextAt(o, before, version, node)
	node.SetPrev(o, version, newBefore)
	newAfter := setPrevAt(o, after, version, node)
	node.SetNext(o, version, newAfter)
}

// spliceOut connects before directly to after at version, dropping
// whatever node used to sit between them. That node remains readable
// at older versions — the closing entries written here bound the
// splice to version's own subtree.
func spliceOut[E any](o *order.Order, before, after *ListNode[E], version int) {
	newBefore := setNextAt(o, before, version, after)
	setPrevAt(o, after, version, newBefore)
}
