// boxedit is a command-line tool for editing OCR box files.
//
// It loads one page of a box file, optionally applies an edit script, and
// writes the result back as a box file, plain text, one box file per style
// feature, hOCR or a searchable PDF.
//
// Usage:
//
//	boxedit -box page.box -image page.png [options]
//
// Input flags:
//
//	-box string        Path to the box file (required unless -from-hocr is set)
//	-from-hocr string  Build the box file from an hOCR file instead
//	-image string      Page image; its height converts coordinates
//	-height int        Image height, when no image is given
//	-page int          Page to load (default: first page in the file)
//	-config string     Path to a YAML settings file
//
// Editing flags:
//
//	-import string     Text file whose symbols replace the row symbols in order
//	-ligatures string  File listing ligatures, one per line
//	-script string     Edit script to run (see session.Exec)
//	-save              Write the edited box file back to -box
//	-out string        Write the edited box file to this path
//
// Output flags:
//
//	-text string       Path to save the reconstructed text
//	-mode string       Text mode: symbol, line or paragraph
//	-split string      Directory to save one box file per style feature
//	-hocr string       Path to save hOCR output
//	-pdf string        Path to save a searchable PDF
//	-source-pdf string Existing PDF to layer the text onto instead of the image
//	-source-page int   Page of -source-pdf to use (default 1)
//	-force             Reapply the text layer even if one exists
//	-debug             Show the PDF text layer and box outlines
//
// Configuration:
//
//	word_space: 8
//	para_indent: 20
//	mode: line
//	ligatures: ["ff", "fi", "fl"]
//	pdf:
//	  font: Helvetica
//	  font_size: 10
//	  layer_name: Box Text
//
// Example:
//
//	boxedit -box eng.arial.exp0.box -image eng.arial.exp0.tif -script fixes.txt -save -text page.txt
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gardar/boxedit/pkg/boxfile"
	"github.com/gardar/boxedit/pkg/boxtext"
	"github.com/gardar/boxedit/pkg/hocr"
	"github.com/gardar/boxedit/pkg/pdfocr"
	"github.com/gardar/boxedit/pkg/session"
)

type options struct {
	boxPath, fromHOCR, imagePath, configPath string
	height, page                             int
	pageSet                                  bool

	importPath, ligaturesPath, scriptPath, outPath string
	save                                           bool

	textPath, mode, splitDir, hocrPath, pdfPath, sourcePDF string
	sourcePage                                             int
	force, debug                                           bool
}

func main() {
	var o options
	flag.StringVar(&o.boxPath, "box", "", "Path to the box file")
	flag.StringVar(&o.fromHOCR, "from-hocr", "", "Build the box file from this hOCR file")
	flag.StringVar(&o.imagePath, "image", "", "Path to the page image")
	flag.IntVar(&o.height, "height", 0, "Image height in pixels, when no image is given")
	flag.IntVar(&o.page, "page", boxfile.FirstPage, "Page to load (default: first page in the file)")
	flag.StringVar(&o.configPath, "config", "", "Path to the YAML settings file")
	flag.StringVar(&o.importPath, "import", "", "Text file whose symbols replace the row symbols")
	flag.StringVar(&o.ligaturesPath, "ligatures", "", "File listing ligatures, one per line")
	flag.StringVar(&o.scriptPath, "script", "", "Edit script to run")
	flag.BoolVar(&o.save, "save", false, "Write the edited box file back to -box")
	flag.StringVar(&o.outPath, "out", "", "Write the edited box file to this path")
	flag.StringVar(&o.textPath, "text", "", "Path to save the reconstructed text")
	flag.StringVar(&o.mode, "mode", "", "Text mode: symbol, line or paragraph")
	flag.StringVar(&o.splitDir, "split", "", "Directory to save one box file per style feature")
	flag.StringVar(&o.hocrPath, "hocr", "", "Path to save hOCR output")
	flag.StringVar(&o.pdfPath, "pdf", "", "Path to save a searchable PDF")
	flag.StringVar(&o.sourcePDF, "source-pdf", "", "Existing PDF to layer the text onto")
	flag.IntVar(&o.sourcePage, "source-page", 1, "Page of -source-pdf to use (1-based)")
	flag.BoolVar(&o.force, "force", false, "Reapply the text layer even if one exists")
	flag.BoolVar(&o.debug, "debug", false, "Show the PDF text layer and box outlines")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "page" {
			o.pageSet = true
		}
	})

	if o.boxPath == "" && o.fromHOCR == "" {
		fmt.Fprintln(os.Stderr, "Error: -box or -from-hocr flag is required")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(o, os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(o options, stdout io.Writer) error {
	cfg, err := loadSettings(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	page := cfg.Page
	if o.pageSet {
		page = o.page
	}

	var imageData []byte
	var width, height int
	if o.imagePath != "" {
		if imageData, err = os.ReadFile(o.imagePath); err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		if width, height, err = imageSize(imageData); err != nil {
			return err
		}
	}
	if o.height > 0 {
		height = o.height
	}

	s, err := openSession(o, height, page, stdout)
	if err != nil {
		return err
	}
	// An hOCR source may have supplied the height itself.
	height = s.ImageHeight
	fmt.Fprintf(stdout, "Loaded %d boxes of page %d\n", s.Table().Len(), s.Page())

	lig := cfg.ligatures()
	if o.ligaturesPath != "" {
		data, err := os.ReadFile(o.ligaturesPath)
		if err != nil {
			return fmt.Errorf("failed to read ligatures: %w", err)
		}
		lig = boxtext.ParseLigatures(string(data))
	}

	if o.importPath != "" {
		data, err := os.ReadFile(o.importPath)
		if err != nil {
			return fmt.Errorf("failed to read import text: %w", err)
		}
		n, err := s.ImportText(string(data), lig)
		var mismatch *boxtext.ImportMismatchError
		if errors.As(err, &mismatch) {
			fmt.Fprintln(stdout, "Warning:", err)
		} else if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Imported %d symbols\n", n)
	}

	if o.scriptPath != "" {
		script, err := os.ReadFile(o.scriptPath)
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
		if err := s.Exec(string(script)); err != nil {
			return fmt.Errorf("script failed: %w", err)
		}
	}

	if o.save {
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Box file saved to:", s.Path)
	}
	if o.outPath != "" {
		if err := s.SaveAs(o.outPath); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Box file saved to:", o.outPath)
	}

	if o.textPath != "" {
		tc, err := cfg.textConfig(o.mode)
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.textPath, []byte(s.Text(tc)), 0644); err != nil {
			return fmt.Errorf("failed to write text output: %w", err)
		}
		fmt.Fprintln(stdout, "Text saved to:", o.textPath)
	}

	if o.splitDir != "" {
		if err := os.MkdirAll(o.splitDir, 0755); err != nil {
			return fmt.Errorf("failed to create split directory: %w", err)
		}
		written, err := s.ExportFeatures(o.splitDir)
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Fprintln(stdout, "Feature boxes saved to:", path)
		}
	}

	if o.hocrPath != "" {
		rows := s.Table().Rows()
		if width == 0 {
			for _, b := range rows {
				width = max(width, b.Right)
			}
		}
		po := hocr.PageOptions{
			Width:      width,
			Height:     height,
			PageNumber: s.Page(),
			WordSpace:  cfg.WordSpace,
		}
		if o.imagePath != "" {
			po.ImageName = filepath.Base(o.imagePath)
		}
		html, err := hocr.GenerateHOCRDocument(hocr.FromTable(rows, po))
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.hocrPath, []byte(html), 0644); err != nil {
			return fmt.Errorf("failed to write hOCR output: %w", err)
		}
		fmt.Fprintln(stdout, "Rendered hOCR output saved to:", o.hocrPath)
	}

	if o.pdfPath != "" {
		pc := cfg.pdfConfig()
		pc.Debug = o.debug
		pc.Force = o.force
		pc.Logger = stdout

		var out []byte
		switch {
		case o.sourcePDF != "":
			if width == 0 || height == 0 {
				return fmt.Errorf("-source-pdf needs -image for the page size")
			}
			data, err := os.ReadFile(o.sourcePDF)
			if err != nil {
				return fmt.Errorf("failed to read input PDF: %w", err)
			}
			out, err = pdfocr.Apply(data, o.sourcePage, s.Table().Rows(), width, height, pc)
			if err != nil {
				return fmt.Errorf("error applying text layer to PDF: %w", err)
			}
		case imageData != nil:
			out, err = pdfocr.Assemble(imageData, s.Table().Rows(), pc)
			if err != nil {
				return fmt.Errorf("error creating PDF from image: %w", err)
			}
		default:
			return fmt.Errorf("-pdf needs -image or -source-pdf")
		}
		if err := os.WriteFile(o.pdfPath, out, 0644); err != nil {
			return fmt.Errorf("failed to write output PDF: %w", err)
		}
		fmt.Fprintln(stdout, "Searchable PDF saved to:", o.pdfPath)
	}

	if s.Dirty() {
		fmt.Fprintln(stdout, "Warning: edits were not saved; use -save or -out")
	}
	return nil
}

// openSession loads the box file, or converts the first page of an hOCR
// file into one.
func openSession(o options, height, page int, stdout io.Writer) (*session.Session, error) {
	opts := session.DefaultOptions()
	opts.Logger = stdout

	if o.fromHOCR == "" {
		if height <= 0 {
			return nil, fmt.Errorf("need -image or -height to convert box coordinates")
		}
		return session.Open(o.boxPath, height, page, opts)
	}

	data, err := os.ReadFile(o.fromHOCR)
	if err != nil {
		return nil, fmt.Errorf("failed to read hOCR file: %w", err)
	}
	doc, err := hocr.ParseHOCR(data)
	if err != nil {
		return nil, err
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("hOCR file has no pages")
	}
	p := doc.Pages[0]
	if height <= 0 {
		height = int(p.BBox.Y2)
	}
	text := boxfile.Serialize(hocr.ToTable(p), height)
	return session.Load(o.boxPath, text, height, boxfile.FirstPage, opts), nil
}

func imageSize(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
