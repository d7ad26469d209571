package ocr

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBoxLines(t *testing.T) {
	symbols := []Symbol{
		{Text: "H", Left: 10, Top: 20, Right: 18, Bottom: 40},
		{Text: " ", Left: 18, Top: 20, Right: 22, Bottom: 40},
		{Text: "i", Left: 22, Top: 22, Right: 25, Bottom: 40},
	}
	got := BoxLines(symbols, 100, 2)
	want := "H 10 60 18 80 2\ni 22 60 25 78 2\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BoxLines mismatch (-want +got):\n%s", diff)
	}

	if got := BoxLines(nil, 100, 0); got != "" {
		t.Errorf("BoxLines(nil) = %q, want empty", got)
	}
}

func TestBoxLinesSplitsUnwritableText(t *testing.T) {
	symbols := []Symbol{
		{Text: "$5", Left: 30, Top: 20, Right: 40, Bottom: 40},
		{Text: "a b", Left: 50, Top: 20, Right: 62, Bottom: 40, Bold: true},
		{Text: "@x", Left: 70, Top: 20, Right: 80, Bottom: 40, Italic: true},
	}
	got := BoxLines(symbols, 100, 0)
	want := "$ 30 60 35 80 0\n" +
		"5 35 60 40 80 0\n" +
		"@a 50 60 54 80 0\n" +
		"@b 58 60 62 80 0\n" +
		"$@x 70 60 80 80 0\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BoxLines mismatch (-want +got):\n%s", diff)
	}
}

func TestImageHeight(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 7))); err != nil {
		t.Fatal(err)
	}
	h, err := ImageHeight(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if h != 7 {
		t.Errorf("ImageHeight = %d, want 7", h)
	}

	if _, err := ImageHeight([]byte("nope")); err == nil {
		t.Error("expected error for garbage data")
	}
}

var _ Engine = (*Tesseract)(nil)
