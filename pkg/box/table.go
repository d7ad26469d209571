package box

// Observer is notified after every successful change to a Table, including
// changes made by Undo and Redo. row is the first row affected.
type Observer interface {
	TableChanged(kind Kind, row int)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(kind Kind, row int)

func (f ObserverFunc) TableChanged(kind Kind, row int) { f(kind, row) }

// Table is the ordered sequence of boxes of one page. Row order is the
// reading order used for text reconstruction and is never re-sorted.
//
// All mutation goes through the structural operations below. Each one
// either commits completely and pushes exactly one UndoItem, or, when given
// an out-of-range row, does nothing and returns false.
type Table struct {
	rows     []Box
	history  History
	observer Observer
}

// NewTable returns a table holding a copy of rows and an empty history.
func NewTable(rows []Box) *Table {
	t := &Table{rows: make([]Box, len(rows))}
	copy(t.rows, rows)
	return t
}

// SetObserver registers o to be told about changes. A nil o removes the
// current observer.
func (t *Table) SetObserver(o Observer) { t.observer = o }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the box at index i.
func (t *Table) Row(i int) (Box, bool) {
	if !t.valid(i) {
		return Box{}, false
	}
	return t.rows[i], true
}

// Rows returns a copy of all rows in table order.
func (t *Table) Rows() []Box {
	out := make([]Box, len(t.rows))
	copy(out, t.rows)
	return out
}

// History exposes the undo state of the table.
func (t *Table) History() *History { return &t.history }

func (t *Table) valid(i int) bool { return i >= 0 && i < len(t.rows) }

func (t *Table) insert(i int, b Box) {
	t.rows = append(t.rows, Box{})
	copy(t.rows[i+1:], t.rows[i:])
	t.rows[i] = b
}

func (t *Table) remove(i int) {
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
}

func (t *Table) commit(it UndoItem) {
	t.history.push(it)
	t.notify(it.Kind, it.OrigRow)
}

func (t *Table) notify(kind Kind, row int) {
	if t.observer != nil {
		t.observer.TableChanged(kind, row)
	}
}

// InsertSymbol adds a placeholder box to the right of row after.
//
// The new box starts one pixel past after.Right and ends one pixel before
// the next row's left edge. When that leaves no room, or there is no next
// row, the new box mirrors the distance from after.Left to its own left.
func (t *Table) InsertSymbol(after int) bool {
	if !t.valid(after) {
		return false
	}
	prev := t.rows[after]
	left := prev.Right + 1
	right := left - 1
	if t.valid(after + 1) {
		right = t.rows[after+1].Left - 1
	}
	if right < left {
		right = left + (left - prev.Left)
	}
	nb := Box{
		Symbol:    Placeholder,
		Left:      left,
		Bottom:    prev.Bottom,
		Right:     right,
		Top:       prev.Top,
		Page:      prev.Page,
		Italic:    prev.Italic,
		Bold:      prev.Bold,
		Underline: prev.Underline,
	}
	row := after + 1
	t.insert(row, nb)
	t.commit(UndoItem{Kind: Add, OrigRow: row, ExtraRow: NoRow, SnapshotOrig: nb})
	return true
}

// SplitSymbol cuts a box in two at its horizontal midpoint. The right half
// becomes a new row directly below; both halves keep the original symbol.
func (t *Table) SplitSymbol(row int) bool {
	if !t.valid(row) {
		return false
	}
	orig := t.rows[row]
	width := orig.Right - orig.Left
	nb := orig
	nb.Left = orig.Right - width/2
	t.rows[row].Right = nb.Left
	t.insert(row+1, nb)
	t.commit(UndoItem{Kind: Split, OrigRow: row, ExtraRow: row + 1, SnapshotOrig: orig})
	return true
}

// JoinSymbol merges row with the row after it. The result covers both
// boxes, concatenates the symbols and carries every style either had.
func (t *Table) JoinSymbol(row int) bool {
	if !t.valid(row) || !t.valid(row+1) {
		return false
	}
	a, b := t.rows[row], t.rows[row+1]
	t.rows[row] = a.merge(b)
	t.remove(row + 1)
	t.commit(UndoItem{Kind: Join, OrigRow: row, ExtraRow: row + 1, SnapshotOrig: a, SnapshotExtra: b})
	return true
}

// DeleteSymbol removes a row.
func (t *Table) DeleteSymbol(row int) bool {
	if !t.valid(row) {
		return false
	}
	removed := t.rows[row]
	t.remove(row)
	t.commit(UndoItem{Kind: Delete, OrigRow: row, ExtraRow: NoRow, SnapshotOrig: removed})
	return true
}

// MoveSymbolRow swaps the contents of row and row+direction. Moving the
// first row up or the last row down does nothing.
func (t *Table) MoveSymbolRow(row, direction int) bool {
	if direction == 0 || !t.valid(row) || !t.valid(row+direction) {
		return false
	}
	other := row + direction
	a, b := t.rows[row], t.rows[other]
	t.rows[row], t.rows[other] = b, a
	t.commit(UndoItem{Kind: Replace, OrigRow: row, ExtraRow: other, SnapshotOrig: a, SnapshotExtra: b})
	return true
}

// SetSymbol replaces the symbol of a row. Like the other Set methods it
// returns false, records nothing and does not notify when the row already
// holds the value.
func (t *Table) SetSymbol(row int, symbol string) bool {
	return t.change(row, func(b *Box) { b.Symbol = symbol })
}

// SetField sets one integer column of a row. It returns false when the row
// is out of range or the column already holds v.
func (t *Table) SetField(row int, f Field, v int) bool {
	return t.change(row, func(b *Box) { b.set(f, v) })
}

// SetStyle switches one style flag of a row. It returns false when the row
// is out of range or the flag already has that state.
func (t *Table) SetStyle(row int, s Style, on bool) bool {
	return t.change(row, func(b *Box) { b.setStyle(s, on) })
}

// SetBox replaces every field of a row at once.
func (t *Table) SetBox(row int, nb Box) bool {
	return t.change(row, func(b *Box) { *b = nb })
}

// change applies edit to a copy of the row and commits it when the row
// actually differs afterwards.
func (t *Table) change(row int, edit func(*Box)) bool {
	if !t.valid(row) {
		return false
	}
	orig := t.rows[row]
	nb := orig
	edit(&nb)
	if nb == orig {
		return false
	}
	t.rows[row] = nb
	t.commit(UndoItem{Kind: Change, OrigRow: row, ExtraRow: NoRow, SnapshotOrig: orig})
	return true
}
