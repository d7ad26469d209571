package pdfocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gardar/boxedit/pkg/box"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetectImage(t *testing.T) {
	typ, w, h, err := detectImage(testPNG(t, 40, 30))
	if err != nil {
		t.Fatal(err)
	}
	if typ != "PNG" || w != 40 || h != 30 {
		t.Errorf("got %s %dx%d, want PNG 40x30", typ, w, h)
	}

	if _, _, _, err := detectImage([]byte("not an image")); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestAssemble(t *testing.T) {
	rows := []box.Box{
		{Symbol: "H", Left: 2, Top: 2, Right: 10, Bottom: 14},
		{Symbol: "i", Left: 11, Top: 2, Right: 14, Bottom: 14, Bold: true},
		{Symbol: "!", Left: 15, Top: 2, Right: 18, Bottom: 14, Italic: true, Underline: true},
	}
	for _, debug := range []bool{false, true} {
		cfg := DefaultConfig()
		cfg.Debug = debug
		cfg.Logger = &bytes.Buffer{}
		out, err := Assemble(testPNG(t, 40, 20), rows, cfg)
		if err != nil {
			t.Fatalf("debug=%v: %v", debug, err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF")) {
			t.Errorf("debug=%v: output is not a PDF", debug)
		}
		if !bytes.Contains(out, []byte("/OCG")) {
			t.Errorf("debug=%v: output has no optional content layer", debug)
		}
	}
}

func TestAssembleErrors(t *testing.T) {
	if _, err := Assemble(nil, nil, DefaultConfig()); err == nil {
		t.Error("expected error for empty image")
	}
	if _, err := Assemble([]byte("GIF"), nil, DefaultConfig()); err == nil {
		t.Error("expected error for unreadable image")
	}

	// Symbols outside Latin-1 cannot be drawn with the core fonts.
	rows := []box.Box{
		{Symbol: "ж", Left: 0, Top: 0, Right: 5, Bottom: 5},
		{Symbol: "д", Left: 6, Top: 0, Right: 10, Bottom: 5},
	}
	cfg := DefaultConfig()
	cfg.Logger = &bytes.Buffer{}
	if _, err := Assemble(testPNG(t, 20, 20), rows, cfg); err == nil {
		t.Error("expected encoding error")
	}
}

func TestApplyValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger = &bytes.Buffer{}
	tests := []struct {
		name string
		pdf  []byte
		page int
		w, h int
	}{
		{"empty", nil, 1, 10, 10},
		{"page zero", []byte("%PDF-1.4"), 0, 10, 10},
		{"no size", []byte("%PDF-1.4"), 1, 0, 10},
	}
	for _, tc := range tests {
		if _, err := Apply(tc.pdf, tc.page, nil, tc.w, tc.h, cfg); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestApplyRefusesExistingLayer(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj <</Type /OCG /Name (Box Text (Page 1))>> endobj\n")
	cfg := DefaultConfig()
	cfg.Logger = &bytes.Buffer{}
	_, err := Apply(pdf, 1, nil, 10, 10, cfg)
	if err == nil || !strings.Contains(err.Error(), "already has a box text layer") {
		t.Errorf("got %v, want existing layer error", err)
	}
}

func TestCheckExistingLayers(t *testing.T) {
	pdf := []byte("<</Type /OCG /Name (OCR Text)>>\n<</Type /OCG /Name (Box Text)>>")
	got, err := CheckExistingLayers(pdf, "Box Text")
	if err != nil {
		t.Fatal(err)
	}
	want := LayerCheckResult{
		Layers:    []string{"OCR Text", "Box Text"},
		HasLayer:  true,
		LayerName: "Box Text",
		Warnings:  []string{"Existing layer detected that might contain OCR text: OCR Text"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CheckExistingLayers mismatch (-want +got):\n%s", diff)
	}

	if _, err := CheckExistingLayers(nil, "Box Text"); err == nil {
		t.Error("expected error for empty PDF")
	}
}

func TestFontStyle(t *testing.T) {
	tests := []struct {
		b    box.Box
		want string
	}{
		{box.Box{}, ""},
		{box.Box{Bold: true}, "B"},
		{box.Box{Italic: true, Underline: true}, "IU"},
		{box.Box{Bold: true, Italic: true, Underline: true}, "BIU"},
	}
	for _, tc := range tests {
		if got := fontStyle(tc.b); got != tc.want {
			t.Errorf("fontStyle(%+v) = %q, want %q", tc.b, got, tc.want)
		}
	}
}

func TestDumpPDFStructure(t *testing.T) {
	var buf bytes.Buffer
	dumpPDFStructure([]byte("%PDF-1.4 /OCG x"), 4, &buf)
	out := buf.String()
	if !strings.Contains(out, "FIRST 4 BYTES") || !strings.Contains(out, "OCG CONTEXT") {
		t.Errorf("unexpected dump:\n%s", out)
	}
}
