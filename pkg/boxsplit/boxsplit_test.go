package boxsplit

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gardar/boxedit/pkg/box"
	"github.com/gardar/boxedit/pkg/boxfile"
)

const styled = `@a 0 0 1 1 0
$b 1 0 2 1 0
@$c 2 0 3 1 0
'd 3 0 4 1 0
@'e 4 0 5 1 0
f 5 0 6 1 0
$'g 6 0 7 1 0
@$'h 7 0 8 1 0
`

func TestPartition(t *testing.T) {
	doc := boxfile.Parse(styled, 10, boxfile.FirstPage)
	parts := Partition(doc.Table)

	want := map[Feature]string{
		Bold:       "ae",
		Italic:     "bg",
		BoldItalic: "ch",
		Underline:  "d",
		Plain:      "f",
	}
	total := 0
	for f, syms := range want {
		var got string
		for _, b := range parts[f] {
			got += b.Symbol
		}
		if got != syms {
			t.Errorf("%v bucket = %q; want %q", f, got, syms)
		}
		total += len(parts[f])
	}
	if total != doc.Table.Len() {
		t.Errorf("buckets hold %d rows; table has %d", total, doc.Table.Len())
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		source string
		f      Feature
		want   string
	}{
		{"page.box", Bold, "page_bold.box"},
		{"page", Italic, "page_italic"},
		{"eng.arial.exp0.box", BoldItalic, "eng.arial_bolditalic.exp0.box"},
		{"a.b.c", Underline, "a_underline.b.c"},
		{"/data/x/eng.exp0.box", Plain, "/data/x/eng_plain.exp0.box"},
	}
	for _, tc := range tests {
		if got := FileName(tc.source, tc.f); got != tc.want {
			t.Errorf("FileName(%q, %v) = %q; want %q", tc.source, tc.f, got, tc.want)
		}
	}
}

func TestExport(t *testing.T) {
	tbl := box.NewTable([]box.Box{
		{Symbol: "a", Left: 1, Right: 2, Top: 10, Bottom: 20, Bold: true},
		{Symbol: "b", Left: 3, Right: 4, Top: 10, Bottom: 20},
		{Symbol: "c", Left: 5, Right: 6, Top: 10, Bottom: 20, Bold: true},
	})
	got := Export("scan.box", tbl, 100)
	want := []Output{
		{Feature: Bold, Name: "scan_bold.box", Rows: 2, Text: "@a 1 80 2 90 0\n@c 5 80 6 90 0\n"},
		{Feature: Plain, Name: "scan_plain.box", Rows: 1, Text: "b 3 80 4 90 0\n"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Export mismatch (-want +got):\n%s", diff)
	}
}
