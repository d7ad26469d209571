package hocr

// HOCR represents the entire hOCR document structure
type HOCR struct {
	Title       string            // Document title
	Description string            // Document description
	Language    string            // Document language
	Metadata    map[string]string // Additional metadata (ocr-system, ocr-capabilities, ...)
	Pages       []Page            // Pages in the document
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID         string            // Unique identifier
	Title      string            // Original title attribute
	PageNumber int               // Page number in document (ppageno)
	ImageName  string            // Source image filename
	Lang       string            // Language code for this page
	BBox       BoundingBox       // Page coordinates
	Areas      []Area            // Content areas (columns)
	Paragraphs []Paragraph       // Paragraphs directly under page
	Lines      []Line            // Lines directly under page (no parent)
	Metadata   map[string]string // Other page properties
}

// Class assign 'ocr_page' to 'Page' struct
func (Page) Class() string { return "ocr_page" }

// Area represents a content area (column or region)
// Corresponds to hOCR element with class: 'ocr_carea'
type Area struct {
	ID         string
	Lang       string
	BBox       BoundingBox
	Paragraphs []Paragraph // Paragraphs in this area
	Lines      []Line      // Text lines directly under area
	Words      []Word      // Words directly under area (no line parent)
	Metadata   map[string]string
}

// Class assign 'ocr_carea' to 'Area' struct
func (Area) Class() string { return "ocr_carea" }

// Paragraph represents a paragraph within an area
// Corresponds to hOCR element with class: 'ocr_par'
type Paragraph struct {
	ID       string
	Lang     string
	BBox     BoundingBox
	Lines    []Line // Text lines in this paragraph
	Words    []Word // Words directly under paragraph (no line parent)
	Metadata map[string]string
}

// Class assign 'ocr_par' to 'Paragraph' struct
func (Paragraph) Class() string { return "ocr_par" }

// Line represents a line of text
// Corresponds to hOCR element with class: 'ocr_line'
type Line struct {
	ID       string
	Lang     string
	BBox     BoundingBox
	Baseline string // Baseline information
	Words    []Word // Words in this line
	Metadata map[string]string
}

// Class assign 'ocr_line' to 'Line' struct
func (Line) Class() string { return "ocr_line" }

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string
	Text       string        // The actual text content
	BBox       BoundingBox   // Word coordinates
	Symbols    []BoundingBox // Per-symbol boxes (x_bboxes), if present
	Confidence float64       // Recognition confidence (0-100)
	Lang       string
	Bold       bool // Text wrapped in <strong> or <b>
	Italic     bool // Text wrapped in <em> or <i>
	Metadata   map[string]string
}

// Class assign 'ocrx_word' to 'Word' struct
func (Word) Class() string { return "ocrx_word" }

// Words returns every word on the page in document order, wherever in the
// hierarchy it sits.
func (p Page) Words() []Word {
	var out []Word
	lineWords := func(lines []Line) {
		for _, l := range lines {
			out = append(out, l.Words...)
		}
	}
	parWords := func(pars []Paragraph) {
		for _, par := range pars {
			lineWords(par.Lines)
			out = append(out, par.Words...)
		}
	}
	for _, a := range p.Areas {
		parWords(a.Paragraphs)
		lineWords(a.Lines)
		out = append(out, a.Words...)
	}
	parWords(p.Paragraphs)
	lineWords(p.Lines)
	return out
}

// BoundingBox represents a rectangle in the document
// Used to store hOCR 'bbox' property values
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// NewBoundingBox creates a bounding box from coordinates.
// x1, y1 represent the top-left corner, while x2, y2 represent the bottom-right corner.
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

// Union returns the smallest box containing both b and o. A zero b is
// treated as empty.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b == (BoundingBox{}) {
		return o
	}
	return BoundingBox{
		X1: min(b.X1, o.X1),
		Y1: min(b.Y1, o.Y1),
		X2: max(b.X2, o.X2),
		Y2: max(b.Y2, o.Y2),
	}
}
