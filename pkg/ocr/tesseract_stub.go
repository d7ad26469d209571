//go:build !ocr

package ocr

import "context"

// Tesseract is a stub engine that returns ErrOCRNotEnabled for all
// operations. Rebuild with -tags ocr for the real engine.
type Tesseract struct {
	Languages []string
	Page      int
}

// NewTesseract returns an error indicating OCR support is not enabled.
func NewTesseract(languages ...string) (*Tesseract, error) {
	return nil, ErrOCRNotEnabled
}

func (e *Tesseract) Name() string { return "tesseract" }

// BoxText returns ErrOCRNotEnabled.
func (e *Tesseract) BoxText(ctx context.Context, image []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
