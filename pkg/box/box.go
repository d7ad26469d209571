// Package box implements the in-memory model of an OCR box file: an ordered
// table of symbol bounding boxes together with the structural edit operations
// and the undo/redo history that records them.
//
// Coordinates held by a Table use the top-down convention (origin at the
// top-left of the image, y growing downward), so for a well-formed box
// Top <= Bottom. Box files on disk use the bottom-up convention of the OCR
// engine; ToMemory and ToDisk convert between the two.
//
// Key Types:
//
// - Box: one symbol with its bounding rectangle, page and style flags
// - Table: the ordered rows of one page, addressed by dense index
// - UndoItem: the record pushed for every committed structural edit
//
// Row identity is positional. Any row index held outside the table is
// invalidated by an insert or a delete and must be re-resolved by the caller.
package box

import "fmt"

// Placeholder is the symbol given to rows created by InsertSymbol.
const Placeholder = "*"

// Box is one row of a box table.
type Box struct {
	Symbol    string // One or more code points; a ligature counts as one symbol
	Left      int    // Left edge in pixels
	Bottom    int    // Bottom edge, top-down convention
	Right     int    // Right edge in pixels
	Top       int    // Top edge, top-down convention
	Page      int    // Page number the box belongs to
	Italic    bool
	Bold      bool
	Underline bool
}

// Width returns Right - Left.
func (b Box) Width() int { return b.Right - b.Left }

// Height returns Bottom - Top.
func (b Box) Height() int { return b.Bottom - b.Top }

// Valid reports whether the box is not inverted on either axis.
// Inverted boxes are kept as loaded; callers may use Valid to flag them.
func (b Box) Valid() bool {
	return b.Left <= b.Right && b.Top <= b.Bottom
}

func (b Box) String() string {
	return fmt.Sprintf("%q [%d,%d %d,%d] p%d", b.Symbol, b.Left, b.Top, b.Right, b.Bottom, b.Page)
}

// ToMemory converts disk (bottom-up) y coordinates to memory (top-down)
// coordinates for an image of the given height.
func ToMemory(rawBottom, rawTop, imageHeight int) (bottom, top int) {
	return imageHeight - rawBottom, imageHeight - rawTop
}

// ToDisk converts memory y coordinates back to disk coordinates. The
// transform is a reflection, so it is its own inverse.
func ToDisk(bottom, top, imageHeight int) (rawBottom, rawTop int) {
	return imageHeight - bottom, imageHeight - top
}

// Field names an integer column of a Box.
type Field int

const (
	FieldLeft Field = iota
	FieldBottom
	FieldRight
	FieldTop
	FieldPage
)

var fieldNames = [...]string{"left", "bottom", "right", "top", "page"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField maps a column name to its Field.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// Style names a style flag of a Box.
type Style int

const (
	Bold Style = iota
	Italic
	Underline
)

var styleNames = [...]string{"bold", "italic", "underline"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// ParseStyle maps a style name to its Style.
func ParseStyle(name string) (Style, bool) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), true
		}
	}
	return 0, false
}

// Get returns the value of an integer field.
func (b Box) Get(f Field) int {
	switch f {
	case FieldLeft:
		return b.Left
	case FieldBottom:
		return b.Bottom
	case FieldRight:
		return b.Right
	case FieldTop:
		return b.Top
	case FieldPage:
		return b.Page
	}
	return 0
}

func (b *Box) set(f Field, v int) {
	switch f {
	case FieldLeft:
		b.Left = v
	case FieldBottom:
		b.Bottom = v
	case FieldRight:
		b.Right = v
	case FieldTop:
		b.Top = v
	case FieldPage:
		b.Page = v
	}
}

// HasStyle reports whether the given style flag is set.
func (b Box) HasStyle(s Style) bool {
	switch s {
	case Bold:
		return b.Bold
	case Italic:
		return b.Italic
	case Underline:
		return b.Underline
	}
	return false
}

func (b *Box) setStyle(s Style, on bool) {
	switch s {
	case Bold:
		b.Bold = on
	case Italic:
		b.Italic = on
	case Underline:
		b.Underline = on
	}
}

// merge returns the union of b and next as JoinSymbol defines it.
func (b Box) merge(next Box) Box {
	return Box{
		Symbol:    b.Symbol + next.Symbol,
		Left:      min(b.Left, next.Left),
		Bottom:    max(b.Bottom, next.Bottom),
		Right:     max(b.Right, next.Right),
		Top:       min(b.Top, next.Top),
		Page:      min(b.Page, next.Page),
		Italic:    b.Italic || next.Italic,
		Bold:      b.Bold || next.Bold,
		Underline: b.Underline || next.Underline,
	}
}
