package pdfocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"
)

// detectImage reads the image header for its format and size.
func detectImage(data []byte) (string, int, int, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), cfg.Width, cfg.Height, nil
}

func unescapePDFString(s string) string {
	s = strings.ReplaceAll(s, "\\(", "(")
	s = strings.ReplaceAll(s, "\\)", ")")
	s = strings.ReplaceAll(s, "\\\\", "\\")
	return s
}

func decodeUTF16BE(b []byte) (string, error) {
	if len(b) < 2 || b[0] != 0xFE || b[1] != 0xFF {
		return "", fmt.Errorf("no BOM detected, cannot confirm UTF-16BE")
	}
	b = b[2:]
	runes := make([]rune, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		runes = append(runes, rune(uint16(b[i])<<8|uint16(b[i+1])))
	}
	return string(runes), nil
}

// getLogger returns the io.Writer to use for logging, defaulting to
// os.Stdout if the config has none.
func getLogger(config Config) io.Writer {
	if config.Logger == nil {
		return os.Stdout
	}
	return config.Logger
}

// dumpPDFStructure is a debug utility that prints out
// the first N bytes of the PDF plus any /OCG layer references.
func dumpPDFStructure(pdfData []byte, byteCount int, logger io.Writer) {
	byteCount = min(byteCount, len(pdfData))

	fmt.Fprintln(logger, "===== PDF STRUCTURE DUMP (FIRST", byteCount, "BYTES) =====")
	fmt.Fprintln(logger, string(pdfData[:byteCount]))
	fmt.Fprintln(logger, "===== END PDF STRUCTURE DUMP =====")

	if ocgIndex := bytes.Index(pdfData, []byte("/OCG")); ocgIndex >= 0 {
		start := max(ocgIndex-20, 0)
		end := min(ocgIndex+100, len(pdfData))
		fmt.Fprintln(logger, "===== OCG CONTEXT =====")
		fmt.Fprintln(logger, string(pdfData[start:end]))
		fmt.Fprintln(logger, "===== END OCG CONTEXT =====")
	}
}
