// Package hocr implements parsing and generation of hOCR data, the
// HTML-based standard format for representing OCR results, and conversion
// between hOCR pages and box tables.
//
// The package implements the hierarchical structure defined in the hOCR format:
// Document → Pages → Areas → Paragraphs → Lines → Words, with metadata at each level.
// Word styles follow Tesseract's markup: bold text sits in <strong>, italic
// text in <em>. Per-symbol boxes are carried in the x_bboxes property.
//
// Main Functions:
//
// - ParseHOCR: Parses hOCR data from HTML into the object model
// - GenerateHOCRDocument: Generates valid hOCR HTML from the object model
// - FromTable: Groups box rows into words and lines of one hOCR page
// - ToTable: Turns the words of an hOCR page back into box rows
package hocr
