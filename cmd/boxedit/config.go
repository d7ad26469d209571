package main

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gardar/boxedit/pkg/boxfile"
	"github.com/gardar/boxedit/pkg/boxtext"
	"github.com/gardar/boxedit/pkg/pdfocr"
)

type pdfSettings struct {
	Font      string  `yaml:"font"`
	FontSize  float64 `yaml:"font_size"`
	LayerName string  `yaml:"layer_name"`
}

type settings struct {
	WordSpace  int         `yaml:"word_space"`
	ParaIndent int         `yaml:"para_indent"`
	Mode       string      `yaml:"mode"`
	Page       int         `yaml:"page"`
	Ligatures  []string    `yaml:"ligatures"`
	PDF        pdfSettings `yaml:"pdf"`
}

func defaultSettings() settings {
	text := boxtext.DefaultConfig()
	pdf := pdfocr.DefaultConfig()
	return settings{
		WordSpace:  text.WordSpace,
		ParaIndent: text.ParaIndent,
		Mode:       text.Mode.String(),
		Page:       boxfile.FirstPage,
		PDF: pdfSettings{
			Font:      pdf.Font.Name,
			FontSize:  pdf.Font.Size,
			LayerName: pdf.LayerName,
		},
	}
}

// loadSettings reads a YAML file over the defaults; keys missing from the
// file keep their default value
func loadSettings(path string) (settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, err
	}
	return s, nil
}

func (s settings) textConfig(mode string) (boxtext.Config, error) {
	if mode == "" {
		mode = s.Mode
	}
	m, err := boxtext.ParseMode(mode)
	if err != nil {
		return boxtext.Config{}, err
	}
	return boxtext.Config{Mode: m, WordSpace: s.WordSpace, ParaIndent: s.ParaIndent}, nil
}

func (s settings) ligatures() boxtext.Ligatures {
	return boxtext.ParseLigatures(strings.Join(s.Ligatures, "\n"))
}

func (s settings) pdfConfig() pdfocr.Config {
	cfg := pdfocr.DefaultConfig()
	if s.PDF.Font != "" {
		cfg.Font.Name = s.PDF.Font
	}
	if s.PDF.FontSize > 0 {
		cfg.Font.Size = s.PDF.FontSize
	}
	if s.PDF.LayerName != "" {
		cfg.LayerName = s.PDF.LayerName
	}
	return cfg
}
