package boxtext

import (
	"fmt"

	"github.com/gardar/boxedit/pkg/box"
)

// ImportMismatchError reports that a text did not have one symbol per row.
// The rows that had a matching symbol were still updated.
type ImportMismatchError struct {
	Symbols int
	Rows    int
}

func (e *ImportMismatchError) Error() string {
	return fmt.Sprintf("text has %d symbols but the table has %d rows", e.Symbols, e.Rows)
}

// ImportText assigns the symbols of text to the rows of t in order, one
// undoable change per row that differs. It returns how many rows were
// given a symbol. When the counts differ the shorter side wins and an
// *ImportMismatchError is returned alongside.
func ImportText(t *box.Table, text string, lig Ligatures) (int, error) {
	symbols := lig.Split(text)
	n := min(len(symbols), t.Len())
	for i := 0; i < n; i++ {
		t.SetSymbol(i, symbols[i])
	}
	if len(symbols) != t.Len() {
		return n, &ImportMismatchError{Symbols: len(symbols), Rows: t.Len()}
	}
	return n, nil
}
