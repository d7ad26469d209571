package pdfocr

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/boxedit/pkg/box"
)

// drawBoxLayer draws every symbol onto a layer of the current pdf page.
// The pageNum parameter is used to create unique layer names for each page.
func drawBoxLayer(pdf *fpdf.Fpdf, rows []box.Box, pageNum int, config Config) error {
	layerName := config.LayerName
	if pageNum > 0 {
		layerName = fmt.Sprintf("%s (Page %d)", config.LayerName, pageNum)
	}

	layer := pdf.AddLayer(layerName, true)
	pdf.BeginLayer(layer)
	pdf.SetFont(config.Font.Name, "", config.Font.Size)

	if config.Debug {
		pdf.SetTextColor(255, 0, 0) // highlight text in red
		pdf.SetDrawColor(255, 0, 0)
	} else {
		pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	}

	encodingErrors := 0
	for _, b := range rows {
		if !drawSymbol(pdf, b, config) {
			encodingErrors++
		}
	}

	pdf.EndLayer()

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to draw box layer: %w", err)
	}

	// Report encoding errors if more than a threshold
	if len(rows) > 0 && encodingErrors > len(rows)/10 {
		return fmt.Errorf("character encoding issues in %d of %d symbols",
			encodingErrors, len(rows))
	}
	return nil
}

// fontStyle maps the style flags of a box to an fpdf style string
func fontStyle(b box.Box) string {
	style := ""
	if b.Bold {
		style += "B"
	}
	if b.Italic {
		style += "I"
	}
	if b.Underline {
		style += "U"
	}
	return style
}

// drawSymbol renders a single symbol stretched over its box. It returns
// false when the symbol could not be encoded for the core fonts.
func drawSymbol(pdf *fpdf.Fpdf, b box.Box, config Config) bool {
	ok := true
	// Convert text to ISO-8859-1 to avoid PDF encoding issues
	latin1, err := charmap.ISO8859_1.NewEncoder().String(b.Symbol)
	if err != nil {
		ok = false
		latin1 = b.Symbol // fallback to raw text
	}

	x, y := float64(b.Left), float64(b.Top)
	width := float64(b.Width())

	pdf.SetFontStyle(fontStyle(b))
	pdf.SetFontSize(config.Font.Size)
	if strWidth := pdf.GetStringWidth(latin1); strWidth > 0 && width > 0 {
		pdf.SetFontSize(config.Font.Size * width / strWidth)
	}

	fontSize, _ := pdf.GetFontSize()
	pdf.Text(x, y+fontSize*config.Font.AscentRatio, latin1)

	if config.Debug {
		pdf.Rect(x, y, width, float64(b.Height()), "D")
	}
	return ok
}
