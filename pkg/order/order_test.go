package order

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_EmptyAddAnchorsAtHead(t *testing.T) {
	o := New()
	v := o.Add(0)
	assert.Equal(t, 1, v)
}

// TestOrder_Scenario checks the behavioral property an order
// allocator must hold regardless of the exact ids it hands out: Less
// stays consistent and transitive across every recorded id, including
// negative companions, as more ids are added (see DESIGN.md for why
// this checks properties rather than a literal id sequence).
func TestOrder_Scenario(t *testing.T) {
	o := New()
	a := o.Add(0)
	b := o.Add(a)
	c := o.Add(a)

	assert.True(t, o.Less(a, b))
	assert.True(t, o.Less(a, c))
	assert.True(t, o.Less(b, -b))
	assert.True(t, o.Less(-b, c) || o.Less(c, -b))

	assert.True(t, o.Less(a, -a))
	assert.False(t, o.Less(-a, a))
}

func TestOrder_AddInsertsImmediatelyAfterParent(t *testing.T) {
	o := New()
	a := o.Add(0)
	tip := o.Add(a)
	mid := o.Add(a)

	assert.True(t, o.Less(a, mid))
	// mid was added after tip, but lands directly after a, ahead of tip.
	assert.True(t, o.Less(mid, tip))
	assert.True(t, o.Less(a, tip))
}

func TestOrder_LessRequiresKnownID(t *testing.T) {
	o := New()
	a := o.Add(0)
	assert.Panics(t, func() { o.Less(a, 999) })
}

func TestOrder_TransitiveUnderHeavyBranching(t *testing.T) {
	o := New()
	rng := rand.New(rand.NewSource(1))
	ids := []int{o.Add(0)}
	for i := 0; i < 2000; i++ {
		parent := ids[rng.Intn(len(ids))]
		ids = append(ids, o.Add(parent))
	}

	for i := 0; i < 500; i++ {
		a := ids[rng.Intn(len(ids))]
		b := ids[rng.Intn(len(ids))]
		c := ids[rng.Intn(len(ids))]
		if o.Less(a, b) && o.Less(b, c) {
			require.True(t, o.Less(a, c), "less must be transitive: %d < %d < %d", a, b, c)
		}
		// Exactly one of a<b, b<a, a==b holds.
		if a != b {
			assert.True(t, o.Less(a, b) != o.Less(b, a))
		}
	}
}

func TestOrder_SurvivesGapExhaustionViaRelabel(t *testing.T) {
	o := New()
	root := o.Add(0)
	// Repeatedly insert immediately after root: each call subdivides
	// the shrinking gap between root and its current successor by
	// thirds, forcing many relabels well before 200 insertions.
	prev := 0
	for i := 0; i < 200; i++ {
		next := o.Add(root)
		assert.True(t, o.Less(root, next))
		if prev != 0 {
			// Each insertion lands between root and the previous one.
			assert.True(t, o.Less(next, prev))
		}
		prev = next
	}
}
