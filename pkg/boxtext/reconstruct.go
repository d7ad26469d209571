// Package boxtext turns box tables into plain text and back.
//
// Reconstruct walks the rows in table order, which is assumed to already be
// reading order, and decides from box geometry alone where words, lines and
// paragraphs end. ImportText goes the other way and assigns the symbols of a
// text to existing rows.
package boxtext

import (
	"fmt"
	"strings"

	"github.com/gardar/boxedit/pkg/box"
)

// Mode selects the layout policy of Reconstruct.
type Mode int

const (
	SymbolPerLine    Mode = iota // One symbol per output line
	LineByLine                   // Words separated by spaces, one text line per detected line
	ParagraphPerLine             // Lines of a paragraph joined, one paragraph per output line
)

var modeNames = [...]string{"symbol", "line", "paragraph"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps "symbol", "line" or "paragraph" to a Mode.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown text mode %q", name)
}

// Config holds the thresholds of the reconstruction heuristics, in pixels.
type Config struct {
	Mode       Mode
	WordSpace  int // Minimum horizontal gap that starts a new word
	ParaIndent int // Indent, vertical gap or ragged-edge threshold that starts a paragraph
}

// DefaultConfig returns line-by-line output with thresholds suited to
// scans at around 300 DPI.
func DefaultConfig() Config {
	return Config{
		Mode:       LineByLine,
		WordSpace:  8,
		ParaIndent: 20,
	}
}

// Break is the separator Classify places before a box.
type Break int

const (
	NoBreak   Break = iota
	WordBreak       // A space
	LineBreak       // A new line
)

// Classify decides what separates a box from the previous one, whose right
// edge is prevRight. A gap of at least wordSpace starts a word. A box that
// starts two or more of its own widths left of prevRight starts a line.
func Classify(prevRight int, b box.Box, wordSpace int) Break {
	gap := b.Left - prevRight
	if gap >= wordSpace {
		return WordBreak
	}
	if gap <= 2*(b.Left-b.Right) {
		return LineBreak
	}
	return NoBreak
}

// Reconstruct renders rows as text using the policy in cfg. It is a single
// forward pass over rows. The first row is classified against a right edge
// of -1, so a page whose first box starts at wordSpace-1 or further right
// gets a leading space.
func Reconstruct(rows []box.Box, cfg Config) string {
	var sb strings.Builder
	if cfg.Mode == SymbolPerLine {
		for _, b := range rows {
			sb.WriteString(b.Symbol)
			sb.WriteByte('\n')
		}
		return sb.String()
	}

	var (
		prevRight  = -1
		prevLeft   int // left edge of the previous box
		lastBottom int // bottom edge of the previous box
	)
	for _, b := range rows {
		switch Classify(prevRight, b, cfg.WordSpace) {
		case WordBreak:
			sb.WriteByte(' ')
		case LineBreak:
			if cfg.Mode == ParagraphPerLine && !newParagraph(b, prevLeft, prevRight, lastBottom, cfg.ParaIndent) {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('\n')
			}
		}
		sb.WriteString(b.Symbol)

		prevLeft = b.Left
		prevRight = b.Right
		lastBottom = b.Bottom
	}
	return sb.String()
}

// newParagraph reports whether the line starting at b begins a paragraph.
// Each test compares b with the previous box, which closes the last line.
// The ragged-edge test uses half the indent, truncated.
func newParagraph(b box.Box, prevLeft, prevRight, lastBottom, indent int) bool {
	if b.Left-prevLeft >= indent {
		return true
	}
	if b.Top-lastBottom >= indent {
		return true
	}
	return abs(b.Right-prevRight) >= indent/2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
