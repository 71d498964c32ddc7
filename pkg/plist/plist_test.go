package plist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPList_EmptyDefaults(t *testing.T) {
	p := New[int]()
	assert.True(t, p.Empty())
	assert.Equal(t, 0, p.Size())
	assert.False(t, p.HasUndo())
	assert.False(t, p.HasRedo())
}

func TestPList_FrontBackOnEmptyPanics(t *testing.T) {
	p := New[int]()
	assert.Panics(t, func() { p.Front() })
	assert.Panics(t, func() { p.Back() })
	assert.Panics(t, func() { p.Value(0) })
}

func TestPList_UndoOnEmptyHistoryPanics(t *testing.T) {
	p := New[int]()
	assert.Panics(t, func() { p.Undo() })
}

// TestPList_Scenario builds several sibling and descendant versions
// from one base list and checks each one's contents and undo/redo
// chain independently.
func TestPList_Scenario(t *testing.T) {
	v1 := FromValues(1, 2, 3, 4)
	v2 := v1.Insert(1, 5)
	v3 := v1.Insert(1, 6)
	v4 := v2.Insert(1, 7)

	assert.True(t, Equal(v1, FromValues(1, 2, 3, 4)))
	assert.True(t, Equal(v2, FromValues(1, 5, 2, 3, 4)))
	assert.True(t, Equal(v3, FromValues(1, 6, 2, 3, 4)))
	assert.True(t, Equal(v4, FromValues(1, 7, 5, 2, 3, 4)))

	assert.True(t, Equal(v4.Undo().Undo(), FromValues(1, 2, 3, 4)))
	assert.True(t, Equal(v4.Undo().Undo().Redo(), FromValues(1, 5, 2, 3, 4)))
}

func TestPList_SetOutOfBoundsPanics(t *testing.T) {
	p := FromValues(1, 2, 3)
	assert.Panics(t, func() { p.Set(3, 99) })
	assert.Panics(t, func() { p.Set(-1, 99) })
}

func TestPList_InsertOutOfBoundsPanics(t *testing.T) {
	p := FromValues(1, 2, 3)
	assert.Panics(t, func() { p.Insert(4, 99) })
}

func TestPList_PopBackUndoesPushBack(t *testing.T) {
	p := FromValues(1, 2, 3)
	pushed := p.PushBack(42)
	popped := pushed.PopBack()
	assert.True(t, Equal(p, popped))
}

func TestPList_PopFrontUndoesPushFront(t *testing.T) {
	p := FromValues(1, 2, 3)
	pushed := p.PushFront(42)
	popped := pushed.PopFront()
	assert.True(t, Equal(p, popped))
}

func TestPList_PersistenceAcrossSiblingBranches(t *testing.T) {
	base := FromValues(1, 2, 3)
	left := base.Set(0, 100)
	right := base.Set(0, 200)

	assert.True(t, Equal(base, FromValues(1, 2, 3)))
	assert.True(t, Equal(left, FromValues(100, 2, 3)))
	assert.True(t, Equal(right, FromValues(200, 2, 3)))
}

// TestPList_LaterBranchDoesNotLeakIntoEarlier pins down the interval
// bound on fat-node entries: `right` is forked after `left` (so the
// order gives its version a smaller label) and writes to a node that
// `left` never touched. Without the closing entry at the negative
// companion version, `left`'s greatest-version-at-most reads would
// pick up `right`'s write.
func TestPList_LaterBranchDoesNotLeakIntoEarlier(t *testing.T) {
	base := FromValues(1, 2, 3)
	left := base.Set(0, 100)
	right := base.Set(2, 300)

	assert.True(t, Equal(base, FromValues(1, 2, 3)))
	assert.True(t, Equal(left, FromValues(100, 2, 3)))
	assert.True(t, Equal(right, FromValues(1, 2, 300)))

	laterInsert := base.Insert(1, 9)
	assert.True(t, Equal(laterInsert, FromValues(1, 9, 2, 3)))
	assert.True(t, Equal(left, FromValues(100, 2, 3)))
	assert.True(t, Equal(base, FromValues(1, 2, 3)))
}

// TestPList_FatNodeSplitsUnderHeavyTraffic repeatedly mutates through
// the same position so a single node's version maps exceed
// MaxFatNodeSize and must split, then checks every prior version
// still reads correctly.
func TestPList_FatNodeSplitsUnderHeavyTraffic(t *testing.T) {
	const n = 50
	versions := make([]PList[int], 0, n+1)
	p := FromValues(1, 2, 3)
	versions = append(versions, p)
	for i := 0; i < n; i++ {
		p = p.Set(1, i)
		versions = append(versions, p)
	}

	for i, v := range versions {
		if i == 0 {
			assert.True(t, Equal(v, FromValues(1, 2, 3)))
			continue
		}
		assert.True(t, Equal(v, FromValues(1, i-1, 3)), "version %d", i)
	}
}

func TestPList_ManyInsertsAndErasesPreserveOrder(t *testing.T) {
	p := New[int]()
	const n = 300
	for i := 0; i < n; i++ {
		p = p.PushBack(i)
	}
	require.Equal(t, n, p.Size())
	for i := 0; i < n; i++ {
		assert.Equal(t, i, p.Value(i))
	}

	for i := 0; i < n/2; i++ {
		p = p.PopFront()
	}
	require.Equal(t, n/2, p.Size())
	for i := 0; i < p.Size(); i++ {
		assert.Equal(t, n/2+i, p.Value(i))
	}
}

func TestPList_IteratorForwardAndBackward(t *testing.T) {
	p := FromValues(1, 2, 3)

	it := p.NewIterator()
	var got []int
	for it.Next() {
		got = append(got, it.Current())
	}
	assert.Equal(t, []int{1, 2, 3}, got)

	rit := p.NewReverseIterator()
	var gotRev []int
	for rit.Prev() {
		gotRev = append(gotRev, rit.Current())
	}
	assert.Equal(t, []int{3, 2, 1}, gotRev)
}

func TestPList_CurrentWithoutAdvancingPanics(t *testing.T) {
	p := FromValues(1, 2, 3)
	it := p.NewIterator()
	assert.Panics(t, func() { it.Current() })
}

func TestPList_FatNodeOccupancyReportsEveryNode(t *testing.T) {
	p := FromValues(1, 2, 3)
	occupancy := p.FatNodeOccupancy()
	// head, 3 value nodes, tail.
	assert.Len(t, occupancy, 5)
	for _, n := range occupancy {
		assert.LessOrEqual(t, n, 3*MaxFatNodeSize)
	}
}

func TestPList_Seq(t *testing.T) {
	p := FromValues(10, 20, 30)
	var got []int
	for _, v := range Seq(p) {
		got = append(got, v)
	}
	assert.Equal(t, []int{10, 20, 30}, got)
}
