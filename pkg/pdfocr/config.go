package pdfocr

import (
	"io"
)

// Config holds user options for rendering box text into a PDF
type Config struct {
	Debug       bool      // Draw visible text and box outlines
	Force       bool      // Apply even if the PDF already has a box text layer
	LayerName   string    // Base name of the text layer (page number will be appended)
	DumpPDF     bool      // Dump PDF structure for debugging
	LogWarnings bool      // Whether to print warnings
	Logger      io.Writer // Custom logger for warnings (nil = stdout)
	Font        FontConfig
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		LayerName:   "Box Text", // Will be formatted as "Box Text (Page X)" in the final PDF
		LogWarnings: true,
		Font:        DefaultFont,
	}
}

// FontConfig contains font settings for the text layer
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Size        float64 // Default font size
	AscentRatio float64 // Vertical positioning ratio
}

// DefaultFont sets the default font to Helvetica, one of the PDF core
// fonts, which has bold, italic and underlined variants built in
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Size:        10,
	AscentRatio: 0.718,
}
