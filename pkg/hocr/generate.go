package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/net/html"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

var hocrTemplate = template.Must(template.New("hocr.tmpl").Funcs(template.FuncMap{
	"esc":       html.EscapeString,
	"bbox":      formatBBox,
	"pageTitle": pageTitle,
	"lineTitle": lineTitle,
	"wordTitle": wordTitle,
	"wordText":  wordText,
}).ParseFS(templateFS, "templates/hocr.tmpl"))

// GenerateHOCRDocument creates an hOCR HTML document from the HOCR struct
// using the embedded template
func GenerateHOCRDocument(doc *HOCR) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("HOCR document is nil")
	}
	var buf bytes.Buffer
	if err := hocrTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}
	return buf.String(), nil
}

func formatBBox(b BoundingBox) string {
	return fmt.Sprintf("bbox %d %d %d %d", int(b.X1), int(b.Y1), int(b.X2), int(b.Y2))
}

func pageTitle(p Page) string {
	parts := []string{}
	if p.ImageName != "" {
		parts = append(parts, fmt.Sprintf("image %q", p.ImageName))
	}
	parts = append(parts, formatBBox(p.BBox), fmt.Sprintf("ppageno %d", p.PageNumber))
	return html.EscapeString(strings.Join(parts, "; "))
}

func lineTitle(l Line) string {
	t := formatBBox(l.BBox)
	if l.Baseline != "" {
		t += "; baseline " + l.Baseline
	}
	return html.EscapeString(t)
}

func wordTitle(w Word) string {
	t := formatBBox(w.BBox)
	if len(w.Symbols) > 0 {
		coords := make([]string, 0, len(w.Symbols))
		for _, s := range w.Symbols {
			coords = append(coords, strings.TrimPrefix(formatBBox(s), "bbox "))
		}
		t += "; x_bboxes " + strings.Join(coords, " ")
	}
	if w.Confidence > 0 {
		t += fmt.Sprintf("; x_wconf %d", int(w.Confidence))
	}
	return html.EscapeString(t)
}

// wordText renders the escaped word text in Tesseract's style markup
func wordText(w Word) string {
	text := html.EscapeString(w.Text)
	if w.Italic {
		text = "<em>" + text + "</em>"
	}
	if w.Bold {
		text = "<strong>" + text + "</strong>"
	}
	return text
}
