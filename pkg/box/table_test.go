package box

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample() []Box {
	return []Box{
		{Symbol: "a", Left: 10, Bottom: 50, Right: 20, Top: 40},
		{Symbol: "b", Left: 20, Bottom: 52, Right: 30, Top: 38, Bold: true},
		{Symbol: "c", Left: 40, Bottom: 50, Right: 48, Top: 41, Italic: true, Page: 1},
	}
}

func TestCoordinateTransform(t *testing.T) {
	bottom, top := ToMemory(50, 60, 100)
	if bottom != 50 || top != 40 {
		t.Fatalf("ToMemory(50, 60, 100) = %d, %d; want 50, 40", bottom, top)
	}
	for _, h := range []int{0, 1, 100, 4096} {
		for _, raw := range [][2]int{{0, 0}, {50, 60}, {-3, 7}, {5000, 12}} {
			b, tp := ToMemory(raw[0], raw[1], h)
			rb, rt := ToDisk(b, tp, h)
			if rb != raw[0] || rt != raw[1] {
				t.Errorf("h=%d: round trip of %v gave %d,%d", h, raw, rb, rt)
			}
		}
	}
}

func TestInsertSymbol(t *testing.T) {
	tests := []struct {
		name  string
		rows  []Box
		after int
		want  Box
	}{
		{
			name:  "gap to next row",
			rows:  []Box{{Symbol: "a", Left: 10, Right: 20, Top: 40, Bottom: 50}, {Symbol: "b", Left: 30, Right: 40}},
			after: 0,
			want:  Box{Symbol: Placeholder, Left: 21, Right: 29, Top: 40, Bottom: 50},
		},
		{
			name:  "overlapping next row mirrors width",
			rows:  []Box{{Symbol: "a", Left: 10, Right: 20, Top: 40, Bottom: 50, Italic: true, Page: 2}, {Symbol: "b", Left: 20, Right: 30}},
			after: 0,
			want:  Box{Symbol: Placeholder, Left: 21, Right: 32, Top: 40, Bottom: 50, Italic: true, Page: 2},
		},
		{
			name:  "last row mirrors width",
			rows:  []Box{{Symbol: "a", Left: 10, Right: 20, Top: 40, Bottom: 50, Underline: true}},
			after: 0,
			want:  Box{Symbol: Placeholder, Left: 21, Right: 32, Top: 40, Bottom: 50, Underline: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tbl := NewTable(tc.rows)
			if !tbl.InsertSymbol(tc.after) {
				t.Fatal("InsertSymbol returned false")
			}
			got, _ := tbl.Row(tc.after + 1)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("inserted row mismatch (-want +got):\n%s", diff)
			}
			it, _ := tbl.History().Peek()
			if it.Kind != Add || it.OrigRow != tc.after+1 {
				t.Errorf("undo item = %v row %d; want add row %d", it.Kind, it.OrigRow, tc.after+1)
			}
		})
	}
}

func TestSplitJoin(t *testing.T) {
	orig := Box{Symbol: "a", Left: 10, Bottom: 50, Right: 20, Top: 40}
	tbl := NewTable([]Box{orig})
	if !tbl.SplitSymbol(0) {
		t.Fatal("SplitSymbol returned false")
	}
	want := []Box{
		{Symbol: "a", Left: 10, Bottom: 50, Right: 15, Top: 40},
		{Symbol: "a", Left: 15, Bottom: 50, Right: 20, Top: 40},
	}
	if diff := cmp.Diff(want, tbl.Rows()); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
	if !tbl.JoinSymbol(0) {
		t.Fatal("JoinSymbol returned false")
	}
	got, _ := tbl.Row(0)
	got.Symbol = orig.Symbol
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Errorf("join(split(b)) mismatch (-want +got):\n%s", diff)
	}
	if s, _ := tbl.Row(0); s.Symbol != "aa" {
		t.Errorf("joined symbol = %q; want %q", s.Symbol, "aa")
	}
}

func TestSplitOddWidth(t *testing.T) {
	tbl := NewTable([]Box{{Symbol: "m", Left: 10, Right: 21}})
	tbl.SplitSymbol(0)
	a, _ := tbl.Row(0)
	b, _ := tbl.Row(1)
	if a.Right != 16 || b.Left != 16 || b.Right != 21 {
		t.Errorf("split of width 11 gave %v and %v", a, b)
	}
}

func TestJoinMergesFields(t *testing.T) {
	tbl := NewTable(sample())
	tbl.JoinSymbol(1)
	want := Box{Symbol: "bc", Left: 20, Bottom: 52, Right: 48, Top: 38, Page: 0, Bold: true, Italic: true}
	got, _ := tbl.Row(1)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("join mismatch (-want +got):\n%s", diff)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len = %d; want 2", tbl.Len())
	}
}

func TestMoveSymbolRow(t *testing.T) {
	tbl := NewTable(sample())
	before := tbl.Rows()
	if tbl.MoveSymbolRow(0, -1) {
		t.Error("moving first row up should be a no-op")
	}
	if tbl.MoveSymbolRow(2, 1) {
		t.Error("moving last row down should be a no-op")
	}
	if tbl.History().CanUndo() {
		t.Error("no-op moves must not push undo items")
	}
	tbl.MoveSymbolRow(1, 1)
	tbl.MoveSymbolRow(2, -1)
	if diff := cmp.Diff(before, tbl.Rows()); diff != "" {
		t.Errorf("move is not self-inverse (-want +got):\n%s", diff)
	}
}

func TestInvalidIndexIsNoop(t *testing.T) {
	tbl := NewTable(sample())
	before := tbl.Rows()
	ops := map[string]func() bool{
		"insert":     func() bool { return tbl.InsertSymbol(3) },
		"split":      func() bool { return tbl.SplitSymbol(-1) },
		"join":       func() bool { return tbl.JoinSymbol(2) },
		"delete":     func() bool { return tbl.DeleteSymbol(7) },
		"move":       func() bool { return tbl.MoveSymbolRow(5, -1) },
		"symbol":     func() bool { return tbl.SetSymbol(3, "x") },
		"field":      func() bool { return tbl.SetField(-2, FieldLeft, 1) },
		"style":      func() bool { return tbl.SetStyle(9, Bold, true) },
		"same val":   func() bool { return tbl.SetSymbol(0, "a") },
		"same field": func() bool { return tbl.SetField(0, FieldLeft, 10) },
		"same style": func() bool { return tbl.SetStyle(1, Bold, true) },
	}
	for name, op := range ops {
		if op() {
			t.Errorf("%s: returned true", name)
		}
	}
	if diff := cmp.Diff(before, tbl.Rows()); diff != "" {
		t.Errorf("table changed (-want +got):\n%s", diff)
	}
	if tbl.History().UndoLen() != 0 {
		t.Errorf("UndoLen = %d; want 0", tbl.History().UndoLen())
	}
}

func TestObserver(t *testing.T) {
	tbl := NewTable(sample())
	var kinds []Kind
	tbl.SetObserver(ObserverFunc(func(k Kind, _ int) { kinds = append(kinds, k) }))
	tbl.DeleteSymbol(0)
	tbl.SetStyle(0, Underline, true)
	tbl.Undo()
	tbl.Redo()
	tbl.SplitSymbol(-1)
	want := []Kind{Delete, Change, Change, Change}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNames(t *testing.T) {
	for _, f := range []Field{FieldLeft, FieldBottom, FieldRight, FieldTop, FieldPage} {
		if got, ok := ParseField(f.String()); !ok || got != f {
			t.Errorf("ParseField(%q) = %v, %v", f.String(), got, ok)
		}
	}
	for _, s := range []Style{Bold, Italic, Underline} {
		if got, ok := ParseStyle(s.String()); !ok || got != s {
			t.Errorf("ParseStyle(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseField("width"); ok {
		t.Error("ParseField accepted an unknown column")
	}
}
