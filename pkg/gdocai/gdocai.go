// Package gdocai runs Google Document AI OCR over page images and converts
// the result into box file text.
//
// Document AI reports text positions as normalized polygons over the page
// dimension. This package scales them back to pixels and emits one box line
// per symbol (or per token when the processor returned no symbols), carrying
// bold, italic and underline from the token style info when present.
//
// Main Functions:
//
// - ProcessImage: Sends an image to Google Document AI for processing
// - BoxText: Converts one page of the Document AI response to box file text
// - Engine: An ocr.Engine backed by Document AI
// - ToJSON: Dumps the raw response for debugging
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS environment variable
package gdocai

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/boxedit/pkg/ocr"
)

// Engine recognizes page images with Document AI.
type Engine struct {
	Config *Config
	Page   int // Page number written into every box line

	// Raw holds the last response, for debugging
	Raw *documentaipb.Document
}

var _ ocr.Engine = (*Engine)(nil)

// NewEngine returns an engine for the processor described by cfg.
func NewEngine(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{Config: cfg}, nil
}

func (e *Engine) Name() string { return "gdocai" }

// BoxText sends the image to Document AI and converts its first page.
func (e *Engine) BoxText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("no image data provided")
	}
	doc, err := ProcessImage(ctx, image, http.DetectContentType(image), e.Config)
	if err != nil {
		return "", err
	}
	e.Raw = doc
	return BoxText(doc, 0, e.Page)
}
