// Package ocr runs OCR engines over page images and returns their result as
// box file text, ready to be loaded into a box table.
//
// The Tesseract engine wraps gosseract and is only compiled with the "ocr"
// build tag, since it needs the Tesseract libraries at link time:
//
//	go build -tags ocr ./...
//
// Without the tag NewTesseract returns ErrOCRNotEnabled. Other engines, such
// as the Document AI engine in package gdocai, implement Engine as well.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"unicode"

	"github.com/gardar/boxedit/pkg/box"
	"github.com/gardar/boxedit/pkg/boxfile"
)

// ErrOCRNotEnabled is returned when the Tesseract engine is requested but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Engine recognizes the symbols of a page image.
type Engine interface {
	Name() string
	// BoxText returns one box file line per recognized symbol, with the
	// bottom-up y coordinates of the box file format.
	BoxText(ctx context.Context, image []byte) (string, error)
}

// Symbol is one recognized symbol in image coordinates (y grows downward).
type Symbol struct {
	Text                     string
	Left, Top, Right, Bottom int
	Bold, Italic, Underline  bool
}

// BoxLines formats symbols as box file lines for an image of the given
// height. Blank symbols are dropped. Text that the box file format cannot
// hold as one symbol, such as "$5" or "a b", is split into one box per
// character, each taking an equal share of the width; white space is
// dropped after the split.
func BoxLines(symbols []Symbol, imageHeight, page int) string {
	rows := make([]box.Box, 0, len(symbols))
	for _, s := range symbols {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		if b := s.box(page); boxfile.Representable(b) {
			rows = append(rows, b)
			continue
		}
		for _, c := range splitChars(s) {
			rows = append(rows, c.box(page))
		}
	}
	return boxfile.SerializeRows(rows, imageHeight)
}

func (s Symbol) box(page int) box.Box {
	return box.Box{
		Symbol:    s.Text,
		Left:      s.Left,
		Top:       s.Top,
		Right:     s.Right,
		Bottom:    s.Bottom,
		Page:      page,
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
	}
}

// splitChars divides s into one symbol per non-space character.
func splitChars(s Symbol) []Symbol {
	chars := []rune(s.Text)
	width := s.Right - s.Left
	out := make([]Symbol, 0, len(chars))
	for i, r := range chars {
		if unicode.IsSpace(r) {
			continue
		}
		c := s
		c.Text = string(r)
		c.Left = s.Left + width*i/len(chars)
		c.Right = s.Left + width*(i+1)/len(chars)
		out = append(out, c)
	}
	return out
}

// ImageHeight reads the pixel height from an image header.
func ImageHeight(data []byte) (int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to read image header: %w", err)
	}
	return cfg.Height, nil
}
