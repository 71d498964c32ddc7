package pmap

import "hash/maphash"

var seed = maphash.MakeSeed()

// HashString hashes a string key into the 32-bit space the trie
// indexes by BitSize-wide chunks. Grounded on the
// rogpeppe-generic/ctrie StringHash helper, truncated to 32 bits to
// match this trie's Capacity-32 alphabet.
func HashString(key string) uint32 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(key)
	return uint32(h.Sum64())
}

// HashBytes hashes a []byte key the same way HashString does.
func HashBytes(key []byte) uint32 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.Write(key)
	return uint32(h.Sum64())
}

// HashInt hashes an int key by feeding its bytes through maphash,
// which mixes better across the trie's chunks than using the integer
// value directly.
func HashInt(key int) uint32 {
	var h maphash.Hash
	h.SetSeed(seed)
	var buf [8]byte
	u := uint64(key)
	for i := range buf {
		buf[i] = byte(u >> (8 * i))
	}
	h.Write(buf[:])
	return uint32(h.Sum64())
}

// defaultHash returns the built-in hash function for common key
// types, mirroring the type switch ctrie.NewWithFuncs uses to pick a
// default hasher when the caller doesn't supply one.
func defaultHash[K comparable]() (func(K) uint32, bool) {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(k K) uint32 { return HashString(any(k).(string)) }, true
	case int:
		return func(k K) uint32 { return HashInt(any(k).(int)) }, true
	default:
		return nil, false
	}
}
