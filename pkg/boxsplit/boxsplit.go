// Package boxsplit partitions a box table by style so that each font
// variant can be written to its own box file, as needed when training an
// OCR engine one font style at a time.
package boxsplit

import (
	"path/filepath"
	"strings"

	"github.com/gardar/boxedit/pkg/box"
	"github.com/gardar/boxedit/pkg/boxfile"
)

// Feature is one of the five style buckets.
type Feature int

const (
	Bold       Feature = iota // bold, not italic
	Italic                    // italic, not bold
	BoldItalic                // bold and italic
	Underline                 // underlined, neither bold nor italic
	Plain                     // everything else
)

// Features lists every bucket in priority order.
var Features = []Feature{Bold, Italic, BoldItalic, Underline, Plain}

var suffixes = [...]string{"_bold", "_italic", "_bolditalic", "_underline", "_plain"}

// Suffix returns the file name suffix of the feature.
func (f Feature) Suffix() string { return suffixes[f] }

func (f Feature) String() string { return strings.TrimPrefix(suffixes[f], "_") }

// Classify returns the bucket of a box.
func Classify(b box.Box) Feature {
	switch {
	case b.Bold && !b.Italic:
		return Bold
	case b.Italic && !b.Bold:
		return Italic
	case b.Italic && b.Bold:
		return BoldItalic
	case b.Underline:
		return Underline
	}
	return Plain
}

// Partition distributes the rows of t over the five buckets, keeping table
// order within each bucket. Every row lands in exactly one bucket.
func Partition(t *box.Table) map[Feature][]box.Box {
	out := make(map[Feature][]box.Box, len(Features))
	for _, b := range t.Rows() {
		f := Classify(b)
		out[f] = append(out[f], b)
	}
	return out
}

// FileName derives the output name of a bucket from the source file name.
//
// With fewer than three dot-separated parts the suffix goes before the last
// extension ("page.box" -> "page_bold.box"). With three or more, the last
// two parts are the extension ("eng.arial.exp0.box" ->
// "eng.arial_bold.exp0.box").
func FileName(source string, f Feature) string {
	dir, name := filepath.Split(source)
	parts := strings.Split(name, ".")
	var base, ext string
	switch {
	case len(parts) == 1:
		base = name
	case len(parts) < 3:
		base = strings.Join(parts[:len(parts)-1], ".")
		ext = parts[len(parts)-1]
	default:
		base = strings.Join(parts[:len(parts)-2], ".")
		ext = parts[len(parts)-2] + "." + parts[len(parts)-1]
	}
	out := base + f.Suffix()
	if ext != "" {
		out += "." + ext
	}
	return dir + out
}

// Output is one serialized bucket.
type Output struct {
	Feature Feature
	Name    string
	Rows    int
	Text    string
}

// Export serializes every non-empty bucket in disk coordinates. Outputs
// come in Features order.
func Export(source string, t *box.Table, imageHeight int) []Output {
	parts := Partition(t)
	var out []Output
	for _, f := range Features {
		rows := parts[f]
		if len(rows) == 0 {
			continue
		}
		out = append(out, Output{
			Feature: f,
			Name:    FileName(source, f),
			Rows:    len(rows),
			Text:    boxfile.SerializeRows(rows, imageHeight),
		})
	}
	return out
}
