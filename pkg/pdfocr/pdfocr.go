// Package pdfocr renders a box table as a searchable PDF text layer.
//
// Every symbol of the table is written as text positioned exactly over its
// bounding box, in a named optional content layer, so the result is
// searchable and selectable and the layer can be toggled in PDF readers.
// Bold, italic and underlined symbols use the matching core font variant.
//
// Main Functions:
//
// - Assemble: Creates a one-page PDF from a page image and its box table
// - Apply: Adds the text layer to a page of an existing PDF
package pdfocr

import (
	"fmt"

	"github.com/gardar/boxedit/pkg/box"
)

// Assemble creates a PDF whose single page is the given image with the box
// text layered over it. The page measures one point per image pixel.
func Assemble(imageData []byte, rows []box.Box, config Config) ([]byte, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("no image data provided")
	}
	imageType, width, height, err := detectImage(imageData)
	if err != nil {
		return nil, fmt.Errorf("image has invalid format: %w", err)
	}
	if config.Debug {
		fmt.Fprintf(getLogger(config), "Image is of type %s, %dx%d\n", imageType, width, height)
	}

	finalPDF, err := createPDFFromImage(imageData, imageType, width, height, rows, config)
	if err != nil {
		return nil, fmt.Errorf("error creating PDF from image: %w", err)
	}
	return finalPDF, nil
}

// Apply imports page pageNum (1-based) of an existing PDF, scales it to the
// image size the boxes were measured on and layers the box text over it.
// It refuses PDFs that already carry a layer named like config.LayerName
// unless config.Force is set.
func Apply(inputPDFData []byte, pageNum int, rows []box.Box, width, height int, config Config) ([]byte, error) {
	if len(inputPDFData) == 0 {
		return nil, fmt.Errorf("input PDF data is empty")
	}
	if pageNum < 1 {
		return nil, fmt.Errorf("page must be at least 1, got %d", pageNum)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}

	logger := getLogger(config)
	if config.DumpPDF {
		dumpPDFStructure(inputPDFData, 2000, logger)
	}

	layerResult, err := CheckExistingLayers(inputPDFData, config.LayerName)
	if err != nil {
		return nil, fmt.Errorf("layer detection failed: %w", err)
	}
	if config.LogWarnings {
		for _, warning := range layerResult.Warnings {
			fmt.Fprintln(logger, "Warning:", warning)
		}
	}
	if layerResult.HasLayer && !config.Force {
		return nil, fmt.Errorf("file already has a box text layer ('%s') - use -force to reapply",
			layerResult.LayerName)
	} else if layerResult.HasLayer && config.LogWarnings {
		fmt.Fprintln(logger, "Warning: file already has a box text layer; reapplying will duplicate the text")
	}

	finalPDF, err := modifyExistingPDF(inputPDFData, pageNum, rows, float64(width), float64(height), config)
	if err != nil {
		return nil, fmt.Errorf("error modifying existing PDF: %w", err)
	}
	return finalPDF, nil
}
