package session

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/boxedit/pkg/boxfile"
	"github.com/gardar/boxedit/pkg/boxtext"
)

const sampleBox = "a 0 60 10 80 0\nb 12 60 20 80 0\nc 40 60 50 80 0\nx 1 2 3 4 1\n"

func quiet() Options {
	return Options{LogWarnings: true, Logger: &bytes.Buffer{}}
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.box")
	require.NoError(t, os.WriteFile(path, []byte(sampleBox), 0644))
	return path
}

func TestOpenAndSave(t *testing.T) {
	path := writeSample(t)
	s, err := Open(path, 100, boxfile.FirstPage, quiet())
	require.NoError(t, err)

	assert.Equal(t, 0, s.Page())
	assert.Equal(t, 3, s.Table().Len())
	assert.False(t, s.Dirty())
	assert.Equal(t, "ab c", s.Text(boxtext.DefaultConfig()))

	require.NoError(t, s.Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleBox, string(data))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "none.box"), 100, boxfile.FirstPage, quiet())
	assert.Error(t, err)
}

func TestExecScript(t *testing.T) {
	s := Load("", sampleBox, 100, boxfile.FirstPage, quiet())
	script := `# fix the first word
symbol 0 A
style 0 bold on
insert 1
delete 2
undo
redo

set 0 left 1
`
	require.NoError(t, s.Exec(script))
	assert.True(t, s.Dirty())
	assert.Equal(t, 5, s.Table().History().UndoLen())
	assert.Equal(t,
		"@A 1 60 10 80 0\nb 12 60 20 80 0\nc 40 60 50 80 0\nx 1 2 3 4 1\n",
		s.Serialize())
}

func TestExecErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		line   int
	}{
		{"unknown command", "symbol 0 A\nfrobnicate 1", 2},
		{"missing argument", "split", 1},
		{"bad row", "delete x", 1},
		{"row out of range", "\n\ndelete 9", 3},
		{"join last row", "join 2", 1},
		{"move out of range", "move 0 -1", 1},
		{"bad field", "set 0 width 3", 1},
		{"bad style", "style 0 bold maybe", 1},
		{"nothing to redo", "redo", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Load("", sampleBox, 100, boxfile.FirstPage, quiet())
			err := s.Exec(tc.script)
			var se *ScriptError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.line, se.Line)
		})
	}
}

func TestExecStopsAtFirstError(t *testing.T) {
	s := Load("", sampleBox, 100, boxfile.FirstPage, quiet())
	err := s.Exec("symbol 0 A\nundo\nundo\nsymbol 1 B")
	require.True(t, errors.Is(err, errNothingToUndo))

	row, _ := s.Table().Row(1)
	assert.Equal(t, "b", row.Symbol)
	assert.Equal(t, 1, s.Table().History().RedoLen())
}

func TestDirtyFlag(t *testing.T) {
	path := writeSample(t)
	s, err := Open(path, 100, boxfile.FirstPage, quiet())
	require.NoError(t, err)

	require.True(t, s.Table().SplitSymbol(0))
	assert.True(t, s.Dirty())

	out := filepath.Join(t.TempDir(), "out.box")
	require.NoError(t, s.SaveAs(out))
	assert.False(t, s.Dirty())
	assert.Equal(t, out, s.Path)

	require.True(t, s.Table().Undo())
	assert.True(t, s.Dirty())
}

func TestSaveWithoutPath(t *testing.T) {
	s := Load("", sampleBox, 100, boxfile.FirstPage, quiet())
	assert.ErrorIs(t, s.Save(), ErrNoPath)
}

func TestExportFeatures(t *testing.T) {
	path := writeSample(t)
	s, err := Open(path, 100, boxfile.FirstPage, quiet())
	require.NoError(t, err)
	require.NoError(t, s.Exec("style 1 bold on"))

	dir := t.TempDir()
	written, err := s.ExportFeatures(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "page_bold.box"),
		filepath.Join(dir, "page_plain.box"),
	}, written)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Equal(t, "@b 12 60 20 80 0\n", string(data))
}

func TestImportText(t *testing.T) {
	s := Load("", sampleBox, 100, boxfile.FirstPage, quiet())
	n, err := s.ImportText("xyz", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "xy z", s.Text(boxtext.DefaultConfig()))

	n, err = s.ImportText("fi abc", boxtext.ParseLigatures("fi"))
	var mismatch *boxtext.ImportMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, n)
}

func TestLoadLogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	s := Load("", "a 1 2\n", 10, boxfile.FirstPage, Options{LogWarnings: true, Logger: &buf})
	assert.Len(t, s.Warnings(), 3)
	assert.Contains(t, buf.String(), "Warning: line 1")
}
