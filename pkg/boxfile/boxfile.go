// Package boxfile reads and writes the line-oriented box file format
// produced by OCR engines:
//
//	[prefixes]symbol left bottom right top page
//
// Fields are separated by spaces and y coordinates use the engine's
// bottom-up convention. A symbol may carry style prefixes: '@' for bold,
// '$' for italic and '\'' for underline. A blank line ends the records.
//
// Parsing is lenient: short or malformed lines are kept with zero-valued
// fields and reported as ParseError warnings instead of failing the parse.
package boxfile

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/boxedit/pkg/box"
)

// FirstPage selects the page of the first record in the input.
const FirstPage = -1

// Style prefix characters, in the order they are written.
const (
	BoldPrefix      = '@'
	ItalicPrefix    = '$'
	UnderlinePrefix = '\''
)

// fieldNames are the columns of a box line after the symbol.
var fieldNames = [...]string{"left", "bottom", "right", "top", "page"}

// ParseError describes a line that could not be read completely. The line
// is still loaded, with the offending field set to zero.
type ParseError struct {
	Line  int    // 1-based line number
	Field string // Column that was missing or malformed
	Text  string // The raw line
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: missing or malformed %s in %q", e.Line, e.Field, e.Text)
}

// Document is the result of parsing a box file for one page.
type Document struct {
	Table    *box.Table
	Page     int          // Page held in Table; FirstPage if the input had no records
	Foreign  []string     // Lines of other pages, verbatim
	Warnings []*ParseError
}

// Parse reads box file text for an image of the given height.
//
// Only records of one page are loaded into the table. With targetPage set
// to FirstPage that is the page of the first record; otherwise it is
// targetPage. Records of other pages are kept unparsed in Foreign.
func Parse(text string, imageHeight, targetPage int) *Document {
	doc := &Document{Page: targetPage}
	var rows []box.Box
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			break
		}
		b, warns := parseLine(line, i+1, imageHeight)
		doc.Warnings = append(doc.Warnings, warns...)
		if doc.Page == FirstPage {
			doc.Page = b.Page
		}
		if b.Page != doc.Page {
			doc.Foreign = append(doc.Foreign, strings.TrimRight(line, "\r"))
			continue
		}
		rows = append(rows, b)
	}
	doc.Table = box.NewTable(rows)
	return doc
}

func parseLine(line string, lineNo, imageHeight int) (box.Box, []*ParseError) {
	var warns []*ParseError
	fields := strings.Fields(line)
	var b box.Box
	b.Symbol, b.Bold, b.Italic, b.Underline = splitPrefixes(fields[0])

	var nums [5]int
	for i := range nums {
		if i+1 >= len(fields) {
			warns = append(warns, &ParseError{Line: lineNo, Field: fieldNames[i], Text: line})
			continue
		}
		n, err := strconv.Atoi(fields[i+1])
		if err != nil {
			warns = append(warns, &ParseError{Line: lineNo, Field: fieldNames[i], Text: line})
			continue
		}
		nums[i] = n
	}
	b.Left, b.Right, b.Page = nums[0], nums[2], nums[4]
	b.Bottom, b.Top = box.ToMemory(nums[1], nums[3], imageHeight)
	return b, warns
}

// splitPrefixes strips the style prefixes from a symbol token. Each prefix
// is checked once, in the order bold, italic, underline, and is removed
// only if something is left after it.
func splitPrefixes(tok string) (symbol string, bold, italic, underline bool) {
	strip := func(p byte) bool {
		if len(tok) > 1 && tok[0] == p {
			tok = tok[1:]
			return true
		}
		return false
	}
	bold = strip(BoldPrefix)
	italic = strip(ItalicPrefix)
	underline = strip(UnderlinePrefix)
	return tok, bold, italic, underline
}

// Representable reports whether b survives a write and a read of the box
// file format unchanged. The symbol must be non-empty and hold no white
// space. A longer symbol that starts with a prefix character is read back
// as a style unless a prefix the parser checks at the same point or later is
// written before it, as with italic "@a" written as "$@a".
func Representable(b box.Box) bool {
	s := b.Symbol
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	if len(s) == 1 {
		return true
	}
	last := -1 // position of the last prefix written, in parse order
	if b.Bold {
		last = 0
	}
	if b.Italic {
		last = 1
	}
	if b.Underline {
		last = 2
	}
	switch s[0] {
	case BoldPrefix:
		return last >= 0
	case ItalicPrefix:
		return last >= 1
	case UnderlinePrefix:
		return last >= 2
	}
	return true
}

// Serialize writes the rows of t as box file text for an image of the
// given height.
func Serialize(t *box.Table, imageHeight int) string {
	return SerializeRows(t.Rows(), imageHeight)
}

// SerializeRows is Serialize for a plain slice of boxes.
func SerializeRows(rows []box.Box, imageHeight int) string {
	var sb strings.Builder
	for _, b := range rows {
		writeLine(&sb, b, imageHeight)
	}
	return sb.String()
}

// Serialize writes the table followed by the records of other pages.
func (d *Document) Serialize(imageHeight int) string {
	var sb strings.Builder
	sb.WriteString(Serialize(d.Table, imageHeight))
	for _, line := range d.Foreign {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, b box.Box, imageHeight int) {
	if b.Bold {
		sb.WriteByte(BoldPrefix)
	}
	if b.Italic {
		sb.WriteByte(ItalicPrefix)
	}
	if b.Underline {
		sb.WriteByte(UnderlinePrefix)
	}
	rawBottom, rawTop := box.ToDisk(b.Bottom, b.Top, imageHeight)
	fmt.Fprintf(sb, "%s %d %d %d %d %d\n", b.Symbol, b.Left, rawBottom, b.Right, rawTop, b.Page)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode turns raw file bytes into text. Input that is not valid UTF-8 is
// taken to be ISO-8859-1, the encoding of older box files.
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode box file as ISO-8859-1: %w", err)
	}
	return string(decoded), nil
}
