package pmap

import (
	"testing"

	"pgregory.net/rapid"
)

func buildMap(keys []int) PMap[int, int] {
	m := NewAuto[int, int]()
	for _, k := range keys {
		m = m.Insert(k, k*2, true)
	}
	return m
}

// TestPMap_PersistenceProperty checks spec §8's persistence
// invariant: mutating a derived map never changes the receiver's
// observable state.
func TestPMap_PersistenceProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		keys := rapid.SliceOfN(rapid.IntRange(0, 200), 1, 30).Draw(rt, "keys")
		base := buildMap(keys)
		before := map[int]int{}
		base.ForEach(func(k, v int) { before[k] = v })

		switch rapid.IntRange(0, 1).Draw(rt, "op") {
		case 0:
			k := rapid.IntRange(0, 200).Draw(rt, "k")
			base.Insert(k, 999, true)
		case 1:
			k := keys[rapid.IntRange(0, len(keys)-1).Draw(rt, "idx")]
			base.Erase(k)
		}

		after := map[int]int{}
		base.ForEach(func(k, v int) { after[k] = v })
		if len(after) != len(before) {
			rt.Fatalf("receiver size changed: got %d want %d", len(after), len(before))
		}
		for k, v := range before {
			if after[k] != v {
				rt.Fatalf("receiver mutated at key %d", k)
			}
		}
	})
}

// TestPMap_UndoRoundTripProperty checks spec §8's history round-trip
// invariant for Insert/Erase.
func TestPMap_UndoRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		keys := rapid.SliceOfN(rapid.IntRange(0, 200), 1, 30).Draw(rt, "keys")
		m := buildMap(keys)

		var mutated PMap[int, int]
		switch rapid.IntRange(0, 1).Draw(rt, "op") {
		case 0:
			k := rapid.IntRange(0, 200).Draw(rt, "k")
			mutated = m.Insert(k, 999, true)
		case 1:
			k := keys[rapid.IntRange(0, len(keys)-1).Draw(rt, "idx")]
			mutated = m.Erase(k)
		}

		if !Equal(mutated.Undo(), m) {
			rt.Fatalf("undo did not restore the pre-mutation map")
		}
		if !Equal(mutated.Undo().Redo(), mutated) {
			rt.Fatalf("undo().redo() did not restore the post-mutation map")
		}
	})
}

// TestPMap_EraseInsertIdempotence checks that erasing a freshly
// inserted key restores the original map.
func TestPMap_EraseInsertIdempotence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		keys := rapid.SliceOfN(rapid.IntRange(0, 200), 0, 30).Draw(rt, "keys")
		m := buildMap(keys)
		k := rapid.IntRange(201, 400).Draw(rt, "k")

		if !Equal(m.Insert(k, 7, true).Erase(k), m) {
			rt.Fatalf("erase(insert(m, k, v)) != m for a fresh key")
		}
	})
}

// TestPMap_RedoInvalidatedAfterInsert checks spec §8's history
// invalidation invariant.
func TestPMap_RedoInvalidatedAfterInsert(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		keys := rapid.SliceOfN(rapid.IntRange(0, 200), 1, 30).Draw(rt, "keys")
		m := buildMap(keys)
		mutated := m.Insert(keys[0], 12345, true)
		afterUndo := mutated.Undo()

		if !afterUndo.HasRedo() {
			rt.Fatalf("expected redo to be available after undo")
		}
		again := afterUndo.Insert(keys[0], 777, true)
		if again.HasRedo() {
			rt.Fatalf("redo should be invalidated after a new mutation")
		}
	})
}
