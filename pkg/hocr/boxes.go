package hocr

import (
	"fmt"
	"unicode/utf8"

	"github.com/gardar/boxedit/pkg/box"
	"github.com/gardar/boxedit/pkg/boxtext"
)

// PageOptions describes the page a box table is exported as.
type PageOptions struct {
	Width      int    // Image width in pixels
	Height     int    // Image height in pixels
	ImageName  string // Source image filename
	PageNumber int
	Lang       string
	WordSpace  int // Gap that separates words, as in boxtext.Config
}

// FromTable builds a one-page hOCR document from box rows. Rows are grouped
// into words and lines with the same rules as boxtext.Reconstruct. Every
// word keeps the boxes of its symbols in x_bboxes, and is bold or italic
// when all of its symbols are.
func FromTable(rows []box.Box, opts PageOptions) *HOCR {
	pageNo := opts.PageNumber
	page := Page{
		ID:         fmt.Sprintf("page_%d", pageNo+1),
		PageNumber: pageNo,
		ImageName:  opts.ImageName,
		Lang:       opts.Lang,
		BBox:       NewBoundingBox(0, 0, float64(opts.Width), float64(opts.Height)),
		Metadata:   make(map[string]string),
	}

	var lines []Line
	var line *Line
	var word *Word
	prevRight := -1
	for i, b := range rows {
		brk := boxtext.LineBreak
		if i > 0 {
			brk = boxtext.Classify(prevRight, b, opts.WordSpace)
		}
		if brk == boxtext.LineBreak {
			lines = append(lines, Line{
				ID:       fmt.Sprintf("line_%d_%d", pageNo+1, len(lines)+1),
				Metadata: make(map[string]string),
			})
			line = &lines[len(lines)-1]
		}
		if brk != boxtext.NoBreak {
			line.Words = append(line.Words, Word{
				ID:       fmt.Sprintf("word_%d_%d_%d", pageNo+1, len(lines), len(line.Words)+1),
				Bold:     true,
				Italic:   true,
				Metadata: make(map[string]string),
			})
			word = &line.Words[len(line.Words)-1]
		}
		bb := NewBoundingBox(float64(b.Left), float64(b.Top), float64(b.Right), float64(b.Bottom))
		word.Text += b.Symbol
		word.Symbols = append(word.Symbols, bb)
		word.BBox = word.BBox.Union(bb)
		word.Bold = word.Bold && b.Bold
		word.Italic = word.Italic && b.Italic
		line.BBox = line.BBox.Union(bb)
		prevRight = b.Right
	}

	if len(lines) > 0 {
		par := Paragraph{ID: fmt.Sprintf("par_%d_1", pageNo+1), Lines: lines, Metadata: make(map[string]string)}
		for _, l := range lines {
			par.BBox = par.BBox.Union(l.BBox)
		}
		page.Areas = []Area{{
			ID:         fmt.Sprintf("block_%d_1", pageNo+1),
			BBox:       par.BBox,
			Paragraphs: []Paragraph{par},
			Metadata:   make(map[string]string),
		}}
	}

	lang := opts.Lang
	if lang == "" {
		lang = "unknown"
	}
	return &HOCR{
		Title:    "Box file export",
		Language: lang,
		Metadata: map[string]string{
			"ocr-system":          "boxedit",
			"ocr-number-of-pages": "1",
			"ocr-capabilities":    "ocr_page ocr_carea ocr_par ocr_line ocrx_word",
			"ocr-langs":           lang,
		},
		Pages: []Page{page},
	}
}

// ToTable turns the words of an hOCR page back into box rows. A word whose
// x_bboxes has one box per character yields one row per character; any
// other word becomes a single row.
func ToTable(page Page) *box.Table {
	var rows []box.Box
	for _, w := range page.Words() {
		if w.Text == "" {
			continue
		}
		if len(w.Symbols) > 1 && len(w.Symbols) == utf8.RuneCountInString(w.Text) {
			i := 0
			for _, r := range w.Text {
				rows = append(rows, wordBox(string(r), w.Symbols[i], w, page.PageNumber))
				i++
			}
			continue
		}
		rows = append(rows, wordBox(w.Text, w.BBox, w, page.PageNumber))
	}
	return box.NewTable(rows)
}

func wordBox(symbol string, bb BoundingBox, w Word, pageNo int) box.Box {
	return box.Box{
		Symbol: symbol,
		Left:   int(bb.X1),
		Top:    int(bb.Y1),
		Right:  int(bb.X2),
		Bottom: int(bb.Y2),
		Page:   pageNo,
		Bold:   w.Bold,
		Italic: w.Italic,
	}
}
