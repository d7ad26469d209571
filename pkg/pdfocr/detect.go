package pdfocr

import (
	"fmt"
	"regexp"
	"strings"
)

var ocgPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/Type\s*/OCG\s*/Name\s*\(([^)]+)\)`),
	regexp.MustCompile(`/OCG\s*<<[^>]*?/Name\s*\(([^)]+)\)`),
	regexp.MustCompile(`<</Type/OCG/Name\(([^)]+)\)`),
	regexp.MustCompile(`/Name\s*\(([^)]+)\)[\s\S]{1,50}/Type\s*/OCG`),
}

// detectPDFLayers attempts to find optional content layer names in the raw PDF data.
func detectPDFLayers(pdfData []byte) ([]string, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("empty PDF data")
	}

	content := string(pdfData)
	var layers []string
	seen := make(map[string]bool)
	for _, re := range ocgPatterns {
		for _, match := range re.FindAllStringSubmatch(content, -1) {
			name := unescapePDFString(match[1])
			if strings.HasPrefix(name, "\xfe\xff") {
				if decoded, err := decodeUTF16BE([]byte(name)); err == nil {
					name = decoded
				}
			}
			if !seen[name] {
				seen[name] = true
				layers = append(layers, name)
			}
		}
	}
	return layers, nil
}

// LayerCheckResult contains the results of checking for box text layers
type LayerCheckResult struct {
	Layers    []string // All detected layers
	HasLayer  bool     // True if a layer with the configured name exists
	LayerName string   // Name of the detected layer (if any)
	Warnings  []string // Any warnings about layers that may already hold text
}

// CheckExistingLayers checks whether a PDF already carries a text layer
// named layerName, with or without a "(Page N)" suffix.
func CheckExistingLayers(pdfData []byte, layerName string) (LayerCheckResult, error) {
	result := LayerCheckResult{}

	layers, err := detectPDFLayers(pdfData)
	if err != nil {
		return result, fmt.Errorf("cannot analyze layers: %w", err)
	}
	result.Layers = layers

	pageLayerPattern := regexp.MustCompile(fmt.Sprintf(`^%s\s*\(Page\s*\d+.*`, regexp.QuoteMeta(layerName)))
	for _, layer := range layers {
		if layer == layerName || pageLayerPattern.MatchString(layer) {
			result.HasLayer = true
			result.LayerName = layer
			break
		}
		if strings.Contains(strings.ToLower(layer), "ocr") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Existing layer detected that might contain OCR text: %s", layer))
		}
	}
	return result, nil
}
