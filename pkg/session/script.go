package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gardar/boxedit/pkg/box"
)

var (
	errNothingToUndo = errors.New("nothing to undo")
	errNothingToRedo = errors.New("nothing to redo")
)

type unknownCmdError string

func (e unknownCmdError) Error() string {
	return fmt.Sprintf("unknown command %q", string(e))
}

type noRowError int

func (e noRowError) Error() string {
	return fmt.Sprintf("no row %d", int(e))
}

// ScriptError locates a failed command in an edit script.
type ScriptError struct {
	Line int    // 1-based line number
	Cmd  string // The command text
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Cmd, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

type cmdtab struct {
	name  string
	nargs int                            // arguments after the command name
	fn    func(*Session, []string) error // called with exactly nargs arguments
}

var cmdtabs = []cmdtab{
	{"insert", 1, func(s *Session, a []string) error { return s.rowOp(a[0], s.doc.Table.InsertSymbol) }},
	{"split", 1, func(s *Session, a []string) error { return s.rowOp(a[0], s.doc.Table.SplitSymbol) }},
	{"join", 1, func(s *Session, a []string) error { return s.rowOp(a[0], s.doc.Table.JoinSymbol) }},
	{"delete", 1, func(s *Session, a []string) error { return s.rowOp(a[0], s.doc.Table.DeleteSymbol) }},
	{"move", 2, cmdMove},
	{"symbol", 2, cmdSymbol},
	{"set", 3, cmdSet},
	{"style", 3, cmdStyle},
	{"undo", 0, func(s *Session, _ []string) error {
		if !s.doc.Table.Undo() {
			return errNothingToUndo
		}
		return nil
	}},
	{"redo", 0, func(s *Session, _ []string) error {
		if !s.doc.Table.Redo() {
			return errNothingToRedo
		}
		return nil
	}},
}

func lookup(name string) (cmdtab, bool) {
	for _, c := range cmdtabs {
		if c.name == name {
			return c, true
		}
	}
	return cmdtab{}, false
}

// Exec runs an edit script against the table, one command per line:
//
//	insert R          add a placeholder after row R
//	split R           split row R in two
//	join R            join row R with the next row
//	delete R          delete row R
//	move R D          swap row R with row R+D
//	symbol R S        set the symbol of row R
//	set R FIELD V     set left, top, right, bottom or page (top-down y)
//	style R NAME on   set or clear bold, italic or underline
//	undo
//	redo
//
// Blank lines and lines starting with '#' are skipped. Each command is
// one undoable edit. Execution stops at the first failing command and
// the error is a *ScriptError; edits made before it stay applied.
func (s *Session) Exec(script string) error {
	for i, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.execLine(line); err != nil {
			return &ScriptError{Line: i + 1, Cmd: line, Err: err}
		}
	}
	return nil
}

func (s *Session) execLine(line string) error {
	f := strings.Fields(line)
	c, ok := lookup(f[0])
	if !ok {
		return unknownCmdError(f[0])
	}
	if len(f)-1 != c.nargs {
		return fmt.Errorf("takes %d arguments, got %d", c.nargs, len(f)-1)
	}
	return c.fn(s, f[1:])
}

// row parses a row argument and checks that it addresses an existing row.
func (s *Session) row(arg string) (int, error) {
	r, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("bad row %q", arg)
	}
	if _, ok := s.doc.Table.Row(r); !ok {
		return 0, noRowError(r)
	}
	return r, nil
}

func (s *Session) rowOp(arg string, op func(int) bool) error {
	r, err := s.row(arg)
	if err != nil {
		return err
	}
	if !op(r) {
		return noRowError(r)
	}
	return nil
}

func cmdMove(s *Session, a []string) error {
	r, err := s.row(a[0])
	if err != nil {
		return err
	}
	d, err := strconv.Atoi(a[1])
	if err != nil {
		return fmt.Errorf("bad direction %q", a[1])
	}
	if d != 0 && !s.doc.Table.MoveSymbolRow(r, d) {
		return noRowError(r + d)
	}
	return nil
}

func cmdSymbol(s *Session, a []string) error {
	r, err := s.row(a[0])
	if err != nil {
		return err
	}
	s.doc.Table.SetSymbol(r, a[1])
	return nil
}

func cmdSet(s *Session, a []string) error {
	r, err := s.row(a[0])
	if err != nil {
		return err
	}
	field, ok := box.ParseField(a[1])
	if !ok {
		return fmt.Errorf("unknown field %q", a[1])
	}
	v, err := strconv.Atoi(a[2])
	if err != nil {
		return fmt.Errorf("bad value %q", a[2])
	}
	s.doc.Table.SetField(r, field, v)
	return nil
}

func cmdStyle(s *Session, a []string) error {
	r, err := s.row(a[0])
	if err != nil {
		return err
	}
	style, ok := box.ParseStyle(a[1])
	if !ok {
		return fmt.Errorf("unknown style %q", a[1])
	}
	var on bool
	switch a[2] {
	case "on":
		on = true
	case "off":
	default:
		return fmt.Errorf("style takes on or off, got %q", a[2])
	}
	s.doc.Table.SetStyle(r, style, on)
	return nil
}
