// Package cow provides copy-on-write sequence helpers: each operation
// returns a new slice with the requested change applied and never
// mutates its input. PMap's HAMT bitmap nodes are built out of
// InsertedAt, ReplacedAt and ErasedAt, the same splice-a-new-slice shape used by
// cNode.inserted/updated/removed in a classic hash-array-mapped trie.
package cow

// InsertedAt returns a new slice with value spliced in at pos. pos may
// equal len(seq) to append. The input seq is never mutated.
func InsertedAt[T any](seq []T, pos int, value T) []T {
	out := make([]T, len(seq)+1)
	copy(out, seq[:pos])
	out[pos] = value
	copy(out[pos+1:], seq[pos:])
	return out
}

// ReplacedAt returns a new slice with the element at pos replaced by
// value. The input seq is never mutated.
func ReplacedAt[T any](seq []T, pos int, value T) []T {
	out := make([]T, len(seq))
	copy(out, seq)
	out[pos] = value
	return out
}

// ErasedAt returns a new slice with the element at pos removed. The
// input seq is never mutated.
func ErasedAt[T any](seq []T, pos int) []T {
	out := make([]T, len(seq)-1)
	copy(out, seq[:pos])
	copy(out[pos:], seq[pos+1:])
	return out
}

// Appended returns a new slice with value appended. The input seq is
// never mutated, unlike the built-in append when seq has spare
// capacity.
func Appended[T any](seq []T, value T) []T {
	out := make([]T, len(seq)+1)
	copy(out, seq)
	out[len(seq)] = value
	return out
}
