// Package session ties a box file on disk to an editable box table.
//
// A Session holds the parsed page, the lines of other pages that must be
// written back untouched, and a dirty flag that is raised by every table
// change (undo and redo included) and lowered by a successful save.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gardar/boxedit/pkg/box"
	"github.com/gardar/boxedit/pkg/boxfile"
	"github.com/gardar/boxedit/pkg/boxsplit"
	"github.com/gardar/boxedit/pkg/boxtext"
)

// ErrNoPath is returned by Save when the session has no file name yet.
var ErrNoPath = errors.New("session has no file name; use SaveAs")

// Options holds user options for a session
type Options struct {
	LogWarnings bool      // Whether to print parse warnings
	Logger      io.Writer // Custom logger for warnings (nil = stdout)
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() Options {
	return Options{LogWarnings: true}
}

// Session is one box file open for editing.
type Session struct {
	Path        string
	ImageHeight int

	doc   *boxfile.Document
	opts  Options
	dirty bool
}

// Open reads and parses the box file at path. See boxfile.Parse for the
// meaning of page.
func Open(path string, imageHeight, page int, opts Options) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read box file: %w", err)
	}
	text, err := boxfile.Decode(data)
	if err != nil {
		return nil, err
	}
	return Load(path, text, imageHeight, page, opts), nil
}

// Load builds a session from box file text already in memory. path may be
// empty for text that has no file yet.
func Load(path, text string, imageHeight, page int, opts Options) *Session {
	s := &Session{
		Path:        path,
		ImageHeight: imageHeight,
		doc:         boxfile.Parse(text, imageHeight, page),
		opts:        opts,
	}
	s.doc.Table.SetObserver(box.ObserverFunc(func(box.Kind, int) {
		s.dirty = true
	}))

	if opts.LogWarnings {
		logger := s.logger()
		for _, w := range s.doc.Warnings {
			fmt.Fprintln(logger, "Warning:", w)
		}
	}
	return s
}

func (s *Session) logger() io.Writer {
	if s.opts.Logger == nil {
		return os.Stdout
	}
	return s.opts.Logger
}

// Table returns the table being edited.
func (s *Session) Table() *box.Table { return s.doc.Table }

// Page returns the page number held by the session.
func (s *Session) Page() int { return s.doc.Page }

// Warnings returns the problems found while parsing.
func (s *Session) Warnings() []*boxfile.ParseError { return s.doc.Warnings }

// Dirty reports whether the table changed since it was loaded or saved.
func (s *Session) Dirty() bool { return s.dirty }

// Serialize returns the box file text the session would save.
func (s *Session) Serialize() string {
	return s.doc.Serialize(s.ImageHeight)
}

// Save writes the session back to Path.
func (s *Session) Save() error {
	if s.Path == "" {
		return ErrNoPath
	}
	return s.SaveAs(s.Path)
}

// SaveAs writes the session to path and makes path the session's file.
func (s *Session) SaveAs(path string) error {
	if err := os.WriteFile(path, []byte(s.Serialize()), 0644); err != nil {
		return fmt.Errorf("failed to write box file: %w", err)
	}
	s.Path = path
	s.dirty = false
	return nil
}

// Text reconstructs the plain text of the page.
func (s *Session) Text(cfg boxtext.Config) string {
	return boxtext.Reconstruct(s.doc.Table.Rows(), cfg)
}

// ImportText assigns the symbols of text to the rows in order.
func (s *Session) ImportText(text string, lig boxtext.Ligatures) (int, error) {
	return boxtext.ImportText(s.doc.Table, text, lig)
}

// ExportFeatures writes one box file per style feature into dir, named
// after the session's file, and returns the paths written.
func (s *Session) ExportFeatures(dir string) ([]string, error) {
	name := filepath.Base(s.Path)
	if s.Path == "" {
		name = "untitled.box"
	}
	var written []string
	for _, out := range boxsplit.Export(filepath.Join(dir, name), s.doc.Table, s.ImageHeight) {
		if err := os.WriteFile(out.Name, []byte(out.Text), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s boxes: %w", out.Feature, err)
		}
		written = append(written, out.Name)
	}
	return written, nil
}
