package box

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUndoRedoInverseLaws(t *testing.T) {
	ops := []struct {
		name string
		kind Kind
		op   func(*Table) bool
	}{
		{"insert middle", Add, func(t *Table) bool { return t.InsertSymbol(1) }},
		{"insert last", Add, func(t *Table) bool { return t.InsertSymbol(2) }},
		{"split", Split, func(t *Table) bool { return t.SplitSymbol(1) }},
		{"join", Join, func(t *Table) bool { return t.JoinSymbol(0) }},
		{"delete first", Delete, func(t *Table) bool { return t.DeleteSymbol(0) }},
		{"delete last", Delete, func(t *Table) bool { return t.DeleteSymbol(2) }},
		{"move down", Replace, func(t *Table) bool { return t.MoveSymbolRow(0, 1) }},
		{"move up", Replace, func(t *Table) bool { return t.MoveSymbolRow(2, -1) }},
		{"symbol", Change, func(t *Table) bool { return t.SetSymbol(1, "fi") }},
		{"field", Change, func(t *Table) bool { return t.SetField(2, FieldTop, 3) }},
		{"style", Change, func(t *Table) bool { return t.SetStyle(0, Bold, true) }},
		{"box", Change, func(t *Table) bool { return t.SetBox(0, Box{Symbol: "z", Right: 4}) }},
	}
	for _, tc := range ops {
		t.Run(tc.name, func(t *testing.T) {
			tbl := NewTable(sample())
			before := tbl.Rows()
			if !tc.op(tbl) {
				t.Fatal("operation returned false")
			}
			it, _ := tbl.History().Peek()
			if it.Kind != tc.kind {
				t.Errorf("pushed %v; want %v", it.Kind, tc.kind)
			}
			after := tbl.Rows()

			if !tbl.Undo() {
				t.Fatal("Undo returned false")
			}
			if diff := cmp.Diff(before, tbl.Rows()); diff != "" {
				t.Errorf("undo(op(t)) != t (-want +got):\n%s", diff)
			}
			if !tbl.Redo() {
				t.Fatal("Redo returned false")
			}
			if diff := cmp.Diff(after, tbl.Rows()); diff != "" {
				t.Errorf("redo(undo(op(t))) != op(t) (-want +got):\n%s", diff)
			}
			// A second cycle exercises the items produced by apply.
			tbl.Undo()
			if diff := cmp.Diff(before, tbl.Rows()); diff != "" {
				t.Errorf("second undo mismatch (-want +got):\n%s", diff)
			}
			tbl.Redo()
			if diff := cmp.Diff(after, tbl.Rows()); diff != "" {
				t.Errorf("second redo mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUndoSequence(t *testing.T) {
	tbl := NewTable(sample())
	states := [][]Box{tbl.Rows()}
	tbl.SplitSymbol(0)
	states = append(states, tbl.Rows())
	tbl.InsertSymbol(3)
	states = append(states, tbl.Rows())
	tbl.JoinSymbol(1)
	states = append(states, tbl.Rows())
	tbl.MoveSymbolRow(0, 1)
	states = append(states, tbl.Rows())
	tbl.DeleteSymbol(2)
	states = append(states, tbl.Rows())

	for i := len(states) - 2; i >= 0; i-- {
		tbl.Undo()
		if diff := cmp.Diff(states[i], tbl.Rows()); diff != "" {
			t.Fatalf("undo to state %d (-want +got):\n%s", i, diff)
		}
	}
	if tbl.Undo() {
		t.Error("Undo on an empty stack returned true")
	}
	for i := 1; i < len(states); i++ {
		tbl.Redo()
		if diff := cmp.Diff(states[i], tbl.Rows()); diff != "" {
			t.Fatalf("redo to state %d (-want +got):\n%s", i, diff)
		}
	}
	if tbl.Redo() {
		t.Error("Redo on an empty stack returned true")
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	tbl := NewTable(sample())
	tbl.DeleteSymbol(0)
	tbl.DeleteSymbol(0)
	tbl.Undo()
	if !tbl.History().CanRedo() {
		t.Fatal("expected a redoable edit")
	}
	tbl.SetSymbol(0, "q")
	if tbl.History().CanRedo() {
		t.Error("a new edit must clear the redo stack")
	}
	if got := tbl.History().UndoLen(); got != 2 {
		t.Errorf("UndoLen = %d; want 2", got)
	}
}

func TestRedoKeepsUndoStack(t *testing.T) {
	tbl := NewTable(sample())
	tbl.SetSymbol(0, "x")
	tbl.SetSymbol(1, "y")
	tbl.Undo()
	tbl.Redo()
	if got := tbl.History().UndoLen(); got != 2 {
		t.Errorf("UndoLen after redo = %d; want 2", got)
	}
}
