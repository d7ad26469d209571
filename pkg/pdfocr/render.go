package pdfocr

import (
	"bytes"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/boxedit/pkg/box"
)

// createPDFFromImage builds a one-page PDF from an image and its boxes.
// This function assumes inputs have been validated by the caller.
func createPDFFromImage(
	imageData []byte,
	imageType string,
	width, height int,
	rows []box.Box,
	config Config,
) ([]byte, error) {
	w, h := float64(width), float64(height)
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
	pdf.RegisterImageOptionsReader("page", opts, bytes.NewReader(imageData))
	pdf.ImageOptions("page", 0, 0, w, h, false, opts, 0, "")

	if err := drawBoxLayer(pdf, rows, 1, config); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// modifyExistingPDF imports one page of an existing PDF and overlays the
// box text layer on it.
func modifyExistingPDF(
	inputPDFData []byte,
	pageNum int,
	rows []box.Box,
	w, h float64,
	config Config,
) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(inputPDFData))

	pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
	tpl := importer.ImportPageFromStream(pdf, &rs, pageNum, "/MediaBox")
	importer.UseImportedTemplate(pdf, tpl, 0, 0, w, h)

	if err := drawBoxLayer(pdf, rows, 1, config); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
