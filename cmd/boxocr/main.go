// boxocr is a command-line tool that runs OCR over a page image and saves
// the result as a box file, ready for editing with boxedit.
//
// Two engines are available. Tesseract runs locally and needs the binary
// built with the "ocr" tag. Google Document AI needs a YAML configuration
// file with the processor settings:
//
//	gdocai:
//	  project_id: "your-gcp-project-id"
//	  location: "us"
//	  processor_id: "your-processor-id"
//
// Usage:
//
//	boxocr -image page.png -output page.box [options]
//
// Flags:
//
//	-image string      Path to the page image (required)
//	-output string     Path to save the box file (required)
//	-engine string     OCR engine: tesseract or gdocai (default "tesseract")
//	-config string     Path to the YAML configuration file (gdocai only)
//	-lang string       Tesseract languages, "+" separated (default "eng")
//	-page int          Page number written into every box line
//	-debug-api string  Path to save the raw Document AI response as JSON
//
// Authentication:
//
// The gdocai engine uses the GOOGLE_APPLICATION_CREDENTIALS environment
// variable for authentication with Google Cloud.
//
// Example:
//
//	boxocr -image scan.png -output scan.box -lang eng+isl
//	boxocr -engine gdocai -config config.yml -image scan.png -output scan.box
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gardar/boxedit/pkg/gdocai"
	"github.com/gardar/boxedit/pkg/ocr"
)

type yamlConfig struct {
	GDocAI struct {
		ProjectID   string `yaml:"project_id"`
		Location    string `yaml:"location"`
		ProcessorID string `yaml:"processor_id"`
	} `yaml:"gdocai"`
}

// loadConfig reads a YAML file and converts it to our Google Document AI config
func loadConfig(path string) (*gdocai.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, err
	}
	return &gdocai.Config{
		ProjectID:   yc.GDocAI.ProjectID,
		Location:    yc.GDocAI.Location,
		ProcessorID: yc.GDocAI.ProcessorID,
	}, nil
}

// newEngine builds the engine named on the command line
func newEngine(name, configPath, lang string, page int) (ocr.Engine, error) {
	switch name {
	case "tesseract":
		var langs []string
		if lang != "" {
			langs = strings.Split(lang, "+")
		}
		e, err := ocr.NewTesseract(langs...)
		if err != nil {
			return nil, err
		}
		e.Page = page
		return e, nil
	case "gdocai":
		if configPath == "" {
			return nil, fmt.Errorf("-config flag is required for the gdocai engine")
		}
		cfg, err := loadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		e, err := gdocai.NewEngine(cfg)
		if err != nil {
			return nil, err
		}
		e.Page = page
		return e, nil
	}
	return nil, fmt.Errorf("unknown engine %q", name)
}

func main() {
	imagePath := flag.String("image", "", "Path to the page image (required)")
	outputPath := flag.String("output", "", "Path to save the box file (required)")
	engineName := flag.String("engine", "tesseract", "OCR engine: tesseract or gdocai")
	configPath := flag.String("config", "", "Path to the config YAML file (gdocai only)")
	lang := flag.String("lang", "eng", "Tesseract languages, '+' separated")
	page := flag.Int("page", 0, "Page number written into every box line")
	debugAPIPath := flag.String("debug-api", "", "Path to save API response as JSON for debugging purposes")
	flag.Parse()

	if *imagePath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -image and -output flags are required")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	engine, err := newEngine(*engineName, *configPath, *lang, *page)
	if err != nil {
		log.Fatalf("Failed to set up OCR engine: %v", err)
	}

	image, err := os.ReadFile(*imagePath)
	if err != nil {
		log.Fatalf("Failed to read image file: %v", err)
	}

	fmt.Printf("Recognizing %s with %s\n", *imagePath, engine.Name())
	text, err := engine.BoxText(context.Background(), image)
	if err != nil {
		log.Fatalf("Error recognizing image: %v", err)
	}

	if err := os.WriteFile(*outputPath, []byte(text), 0644); err != nil {
		log.Fatalf("Failed to write box file: %v", err)
	}
	fmt.Printf("Box file with %d symbols saved to: %s\n", strings.Count(text, "\n"), *outputPath)

	// Write API response JSON if flag is provided.
	if *debugAPIPath != "" {
		e, ok := engine.(*gdocai.Engine)
		if !ok || e.Raw == nil {
			fmt.Println("Warning: Raw API response is only available with the gdocai engine")
			return
		}
		apiJSON, err := gdocai.ToJSON(e.Raw)
		if err != nil {
			log.Fatalf("Failed to convert API response to JSON: %v", err)
		}
		if err := os.WriteFile(*debugAPIPath, []byte(apiJSON), 0644); err != nil {
			log.Fatalf("Failed to write API response JSON: %v", err)
		}
		fmt.Println("API response JSON saved to:", *debugAPIPath)
	}
}
