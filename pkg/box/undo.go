package box

import "fmt"

// Kind identifies the structural edit an UndoItem reverts.
type Kind int

const (
	Add Kind = iota
	Delete
	Change
	Join
	Split
	Replace
)

var kindNames = [...]string{"add", "delete", "change", "join", "split", "replace"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// NoRow marks an UndoItem without an extra row.
const NoRow = -1

// UndoItem records enough state to invert one structural edit.
//
// Applying an item performs the inverse of the edit that produced it and
// yields the item that re-does that edit:
//
//	Add      remove OrigRow                              -> Delete
//	Delete   insert SnapshotOrig at OrigRow              -> Add
//	Change   restore SnapshotOrig at OrigRow             -> Change
//	Join     restore OrigRow, insert SnapshotExtra after -> Split
//	Split    remove ExtraRow, restore OrigRow            -> Join
//	Replace  restore OrigRow and ExtraRow                -> Replace
type UndoItem struct {
	Kind          Kind
	OrigRow       int
	ExtraRow      int // NoRow when unused
	SnapshotOrig  Box
	SnapshotExtra Box
}

// History is a pair of LIFO stacks of UndoItems. The zero value is empty
// and ready to use.
type History struct {
	undo []UndoItem
	redo []UndoItem
}

// push records a freshly committed edit and drops everything redoable.
func (h *History) push(it UndoItem) {
	h.undo = append(h.undo, it)
	h.redo = h.redo[:0]
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoLen returns the number of undoable edits.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen returns the number of redoable edits.
func (h *History) RedoLen() int { return len(h.redo) }

// Peek returns the item Undo would apply next.
func (h *History) Peek() (UndoItem, bool) {
	if len(h.undo) == 0 {
		return UndoItem{}, false
	}
	return h.undo[len(h.undo)-1], true
}

// Clear forgets all undo and redo state.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// Undo reverts the most recent edit. It returns false when there is
// nothing to undo.
func (t *Table) Undo() bool {
	h := &t.history
	if len(h.undo) == 0 {
		return false
	}
	it := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	inv := t.apply(it)
	h.redo = append(h.redo, inv)
	t.notify(it.Kind, it.OrigRow)
	return true
}

// Redo re-applies the most recently undone edit. It returns false when
// there is nothing to redo.
func (t *Table) Redo() bool {
	h := &t.history
	if len(h.redo) == 0 {
		return false
	}
	it := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	inv := t.apply(it)
	h.undo = append(h.undo, inv)
	t.notify(it.Kind, it.OrigRow)
	return true
}

// apply executes it against the table and returns the item that reverts
// what apply just did.
func (t *Table) apply(it UndoItem) UndoItem {
	switch it.Kind {
	case Add:
		removed := t.rows[it.OrigRow]
		t.remove(it.OrigRow)
		return UndoItem{Kind: Delete, OrigRow: it.OrigRow, ExtraRow: NoRow, SnapshotOrig: removed}
	case Delete:
		t.insert(it.OrigRow, it.SnapshotOrig)
		return UndoItem{Kind: Add, OrigRow: it.OrigRow, ExtraRow: NoRow, SnapshotOrig: it.SnapshotOrig}
	case Change:
		cur := t.rows[it.OrigRow]
		t.rows[it.OrigRow] = it.SnapshotOrig
		return UndoItem{Kind: Change, OrigRow: it.OrigRow, ExtraRow: NoRow, SnapshotOrig: cur}
	case Join:
		merged := t.rows[it.OrigRow]
		t.rows[it.OrigRow] = it.SnapshotOrig
		t.insert(it.OrigRow+1, it.SnapshotExtra)
		return UndoItem{Kind: Split, OrigRow: it.OrigRow, ExtraRow: it.OrigRow + 1, SnapshotOrig: merged}
	case Split:
		extra := t.rows[it.ExtraRow]
		cur := t.rows[it.OrigRow]
		t.remove(it.ExtraRow)
		t.rows[it.OrigRow] = it.SnapshotOrig
		return UndoItem{Kind: Join, OrigRow: it.OrigRow, ExtraRow: it.ExtraRow, SnapshotOrig: cur, SnapshotExtra: extra}
	case Replace:
		a, b := t.rows[it.OrigRow], t.rows[it.ExtraRow]
		t.rows[it.OrigRow] = it.SnapshotOrig
		t.rows[it.ExtraRow] = it.SnapshotExtra
		return UndoItem{Kind: Replace, OrigRow: it.OrigRow, ExtraRow: it.ExtraRow, SnapshotOrig: a, SnapshotExtra: b}
	}
	panic(fmt.Sprintf("box: unknown undo kind %v", it.Kind))
}
