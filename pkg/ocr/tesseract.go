//go:build ocr

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes symbols with the Tesseract engine via gosseract.
type Tesseract struct {
	Languages []string // e.g. "eng", "isl"; empty means Tesseract's default
	Page      int      // Page number written into every box line

	clientFactory func() *gosseract.Client
}

// NewTesseract constructs a Tesseract-backed engine.
func NewTesseract(languages ...string) (*Tesseract, error) {
	return &Tesseract{Languages: languages, clientFactory: gosseract.NewClient}, nil
}

func (e *Tesseract) Name() string { return "tesseract" }

// BoxText runs Tesseract at symbol level over the image.
func (e *Tesseract) BoxText(ctx context.Context, image []byte) (string, error) {
	height, err := ImageHeight(image)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(e.Languages) > 0 {
		if err := c.SetLanguage(e.Languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_SYMBOL)
	if err != nil {
		return "", fmt.Errorf("recognize symbols: %w", err)
	}
	symbols := make([]Symbol, 0, len(boxes))
	for _, b := range boxes {
		symbols = append(symbols, Symbol{
			Text:   b.Word,
			Left:   b.Box.Min.X,
			Top:    b.Box.Min.Y,
			Right:  b.Box.Max.X,
			Bottom: b.Box.Max.Y,
		})
	}
	return BoxLines(symbols, height, e.Page), nil
}
