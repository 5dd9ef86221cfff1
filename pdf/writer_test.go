package pdf

import (
	"bytes"
	"image"
	"image/color"
	"strconv"
	"strings"
	"testing"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func finalize(t *testing.T, images ...image.Image) []byte {
	t.Helper()
	w := NewWriter()
	for _, img := range images {
		if err := w.AddImagePage(img, 595.28, 841.89, 841.89); err != nil {
			t.Fatalf("AddImagePage: %v", err)
		}
	}
	data, err := w.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return data
}

func TestWriter_Header(t *testing.T) {
	data := finalize(t, testImage(10, 10))
	if !bytes.HasPrefix(data, []byte("%PDF-1.4\n")) {
		t.Errorf("missing PDF header, got %q", data[:16])
	}
	if !bytes.HasSuffix(data, []byte("%%EOF\n")) {
		t.Error("missing EOF trailer")
	}
}

func TestWriter_PageCount(t *testing.T) {
	data := finalize(t, testImage(10, 20), testImage(10, 20), testImage(10, 5))

	if got := bytes.Count(data, []byte("/Subtype /Image")); got != 3 {
		t.Errorf("found %d image XObjects, want 3", got)
	}
	if !bytes.Contains(data, []byte("/Count 3")) {
		t.Error("page tree does not declare 3 pages")
	}
}

func TestWriter_XRefOffset(t *testing.T) {
	data := finalize(t, testImage(8, 8))

	idx := bytes.LastIndex(data, []byte("startxref\n"))
	if idx < 0 {
		t.Fatal("startxref not found")
	}
	rest := string(data[idx+len("startxref\n"):])
	line := strings.SplitN(rest, "\n", 2)[0]
	offset, err := strconv.Atoi(line)
	if err != nil {
		t.Fatalf("parsing startxref value %q: %v", line, err)
	}
	if !bytes.HasPrefix(data[offset:], []byte("xref")) {
		t.Errorf("startxref %d does not point at the xref table", offset)
	}
}

func TestWriter_SubImageOffsetBounds(t *testing.T) {
	// Band slices arrive as sub-images whose bounds do not start at the
	// origin; pixel extraction must honor Bounds, not assume (0,0).
	full := image.NewRGBA(image.Rect(0, 0, 4, 8))
	sub := full.SubImage(image.Rect(0, 4, 4, 8))

	data, w, h, err := encodeRGB(sub)
	if err != nil {
		t.Fatalf("encodeRGB: %v", err)
	}
	if w != 4 || h != 4 {
		t.Errorf("encoded %dx%d, want 4x4", w, h)
	}
	if len(data) == 0 {
		t.Error("empty compressed stream")
	}
}

func TestWriter_AddImagePage_Invalid(t *testing.T) {
	w := NewWriter()
	img := testImage(4, 4)

	if err := w.AddImagePage(img, 0, 841.89, 100); err == nil {
		t.Error("expected error for zero page width")
	}
	if err := w.AddImagePage(img, 595.28, 841.89, 0); err == nil {
		t.Error("expected error for zero image height")
	}
	if err := w.AddImagePage(img, 595.28, 841.89, 900); err == nil {
		t.Error("expected error for image taller than the page")
	}
	if err := w.AddImagePage(image.NewRGBA(image.Rect(0, 0, 4, 0)), 595.28, 841.89, 100); err == nil {
		t.Error("expected error for empty image")
	}
	if w.PageCount() != 0 {
		t.Errorf("rejected pages were recorded: PageCount = %d", w.PageCount())
	}
}

func TestWriter_Finalize_Empty(t *testing.T) {
	if _, err := NewWriter().Finalize(); err == nil {
		t.Error("expected error for document with no pages")
	}
}
