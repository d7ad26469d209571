package gdocai

import (
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/boxedit/pkg/ocr"
)

// BoxText converts one page of a Document AI result into box file text.
// The page's symbols are used when the processor returned them, its tokens
// otherwise. Coordinates are scaled to the page dimension in pixels.
// The page argument is the number written into every box line.
func BoxText(doc *documentaipb.Document, pageIndex, page int) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("no document provided")
	}
	if pageIndex < 0 || pageIndex >= len(doc.Pages) {
		return "", fmt.Errorf("page index %d out of range, document has %d pages", pageIndex, len(doc.Pages))
	}
	p := doc.Pages[pageIndex]
	dim := p.GetDimension()
	if dim.GetWidth() <= 0 || dim.GetHeight() <= 0 {
		return "", fmt.Errorf("page %d has no dimension", pageIndex+1)
	}

	var symbols []ocr.Symbol
	if len(p.Symbols) > 0 {
		for _, s := range p.Symbols {
			sym, ok := symbolFromLayout(s.Layout, dim, doc.Text)
			if !ok {
				continue
			}
			if tok := tokenAt(p, layoutStart(s.Layout)); tok != nil {
				applyStyle(&sym, tok)
			}
			symbols = append(symbols, sym)
		}
	} else {
		for _, tok := range p.Tokens {
			sym, ok := symbolFromLayout(tok.Layout, dim, doc.Text)
			if !ok {
				continue
			}
			applyStyle(&sym, tok)
			symbols = append(symbols, sym)
		}
	}

	return ocr.BoxLines(symbols, pixels(dim.GetHeight()), page), nil
}

func pixels(v float32) int {
	return int(math.Round(float64(v)))
}

// symbolFromLayout reads the text and pixel box of a layout. Normalized
// vertices are preferred; absolute vertices are used when they are absent.
func symbolFromLayout(layout *documentaipb.Document_Page_Layout, dim *documentaipb.Document_Page_Dimension, fullText string) (ocr.Symbol, bool) {
	text := strings.TrimSpace(textFromLayout(layout, fullText))
	if text == "" {
		return ocr.Symbol{}, false
	}
	poly := layout.GetBoundingPoly()

	var xs, ys []int
	if nv := poly.GetNormalizedVertices(); len(nv) > 0 {
		for _, v := range nv {
			xs = append(xs, pixels(v.X*dim.Width))
			ys = append(ys, pixels(v.Y*dim.Height))
		}
	} else {
		for _, v := range poly.GetVertices() {
			xs = append(xs, int(v.X))
			ys = append(ys, int(v.Y))
		}
	}
	if len(xs) == 0 {
		return ocr.Symbol{}, false
	}

	sym := ocr.Symbol{Text: text, Left: xs[0], Right: xs[0], Top: ys[0], Bottom: ys[0]}
	for i := range xs {
		sym.Left = min(sym.Left, xs[i])
		sym.Right = max(sym.Right, xs[i])
		sym.Top = min(sym.Top, ys[i])
		sym.Bottom = max(sym.Bottom, ys[i])
	}
	return sym, true
}

// tokenAt finds the token whose text covers index
func tokenAt(p *documentaipb.Document_Page, index int64) *documentaipb.Document_Page_Token {
	if index < 0 {
		return nil
	}
	for _, tok := range p.Tokens {
		for _, seg := range tok.GetLayout().GetTextAnchor().GetTextSegments() {
			if index >= seg.StartIndex && index < seg.EndIndex {
				return tok
			}
		}
	}
	return nil
}

func applyStyle(sym *ocr.Symbol, tok *documentaipb.Document_Page_Token) {
	style := tok.GetStyleInfo()
	sym.Bold = style.GetBold()
	sym.Italic = style.GetItalic()
	sym.Underline = style.GetUnderlined()
}
