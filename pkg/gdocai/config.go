package gdocai

import "fmt"

// Config identifies the Document AI processor to call
type Config struct {
	ProjectID   string // Google Cloud project
	Location    string // Processor region, e.g. "us" or "eu"
	ProcessorID string // OCR processor ID
}

// Validate checks that every field needed to address a processor is set
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("no Document AI config provided")
	}
	switch {
	case c.ProjectID == "":
		return fmt.Errorf("Document AI config: project_id is required")
	case c.Location == "":
		return fmt.Errorf("Document AI config: location is required")
	case c.ProcessorID == "":
		return fmt.Errorf("Document AI config: processor_id is required")
	}
	return nil
}
