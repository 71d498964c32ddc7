// Package history implements the shared undo/redo engine every
// collection in this module embeds: two persistent singly-linked
// action stacks, pushed and popped the same way whether the caller is
// a PArray, a PMap, or a PList.
//
// Manager is generic over the collection type T it manages history
// for. An Action's thunks are plain closures over a T value — in Go,
// unlike the C++ source this generalizes, closing over a value type is
// already a cheap, GC-tracked copy, so there is no benefit to
// reshaping thunks into hand-rolled "old size, old node" records; see
// DESIGN.md's Open Question decision on this point.
package history

import "github.com/nikan1234/persistent-data-structures/internal/contract"

// Thunk rebuilds a full collection value of type T given the
// HistoryManager it should carry. Applying a.Undo to the manager
// produced by popping a yields the receiver's pre-mutation state;
// applying a.Redo to the manager produced by popping a from the redo
// stack yields the post-mutation state.
type Thunk[T any] func(Manager[T]) T

// Action pairs the undo and redo thunks pushed for a single mutating
// operation.
type Action[T any] struct {
	Undo Thunk[T]
	Redo Thunk[T]
}

func (a Action[T]) present() bool { return a.Undo != nil && a.Redo != nil }

// Manager is an immutable pair of persistent action stacks. The zero
// value is a manager with no undo or redo history.
type Manager[T any] struct {
	undo stack[Action[T]]
	redo stack[Action[T]]
}

// New returns an empty history manager.
func New[T any]() Manager[T] {
	return Manager[T]{}
}

// Push returns a new manager whose undo stack has action on top and
// whose redo stack is empty: pushing a new action always invalidates
// any previously available redo.
func (m Manager[T]) Push(action Action[T]) Manager[T] {
	contract.Require(action.present(), "action present")
	return Manager[T]{undo: m.undo.push(action), redo: stack[Action[T]]{}}
}

// HasUndo reports whether Undo can be called.
func (m Manager[T]) HasUndo() bool { return !m.undo.empty() }

// HasRedo reports whether Redo can be called.
func (m Manager[T]) HasRedo() bool { return !m.redo.empty() }

// UndoDepth returns the number of actions available to undo.
func (m Manager[T]) UndoDepth() int { return m.undo.len }

// RedoDepth returns the number of actions available to redo.
func (m Manager[T]) RedoDepth() int { return m.redo.len }

// Undo pops the top undo action, pushes it onto the redo stack, and
// applies its undo thunk to the resulting manager, returning the
// collection value that thunk builds.
func (m Manager[T]) Undo() T {
	contract.Require(m.HasUndo(), "has_undo()")
	action, rest, ok := m.undo.pop()
	contract.Assert(ok, "undo stack non-empty after HasUndo check")
	next := Manager[T]{undo: rest, redo: m.redo.push(action)}
	return action.Undo(next)
}

// Redo is the mirror image of Undo: pops the top redo action, pushes
// it back onto the undo stack, and applies its redo thunk.
func (m Manager[T]) Redo() T {
	contract.Require(m.HasRedo(), "has_redo()")
	action, rest, ok := m.redo.pop()
	contract.Assert(ok, "redo stack non-empty after HasRedo check")
	next := Manager[T]{undo: m.undo.push(action), redo: rest}
	return action.Redo(next)
}
