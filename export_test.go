package croreport

import (
	"bytes"
	"context"
	"errors"
	"image"
	"sync"
	"testing"
)

// stubCapturer returns a canned raster or error without a browser.
type stubCapturer struct {
	raster *Raster
	err    error

	started   chan struct{} // closed on the first CaptureHTML, if non-nil
	startOnce sync.Once
	release   chan struct{} // blocks CaptureHTML until closed, if non-nil
}

func (s *stubCapturer) CaptureHTML(ctx context.Context, html string) (*Raster, error) {
	if s.started != nil {
		s.startOnce.Do(func() { close(s.started) })
	}
	if s.release != nil {
		<-s.release
	}
	return s.raster, s.err
}

func testRaster(width, height int) *Raster {
	return &Raster{
		Img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		Width:  width,
		Height: height,
		Scale:  2,
	}
}

func countImages(data []byte) int {
	return bytes.Count(data, []byte("/Subtype /Image"))
}

func TestExport_TwoExactPages(t *testing.T) {
	// 1240px wide at A4 gives a 1753px page; 3506px tall is exactly two
	// pages and must not gain a blank third.
	stub := &stubCapturer{raster: testRaster(1240, 3506)}
	e := newExporter(stub, A4Portrait)

	artifact, err := e.Export(context.Background(), "<html></html>")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if artifact.Name() != ArtifactName {
		t.Errorf("artifact name = %q, want %q", artifact.Name(), ArtifactName)
	}
	if !bytes.HasPrefix(artifact.Bytes(), []byte("%PDF-")) {
		t.Fatal("artifact is not a PDF")
	}
	if got := countImages(artifact.Bytes()); got != 2 {
		t.Errorf("artifact has %d page images, want 2", got)
	}
}

func TestExport_ShortSurfaceSinglePage(t *testing.T) {
	stub := &stubCapturer{raster: testRaster(1240, 600)}
	e := newExporter(stub, A4Portrait)

	artifact, err := e.Export(context.Background(), "<html></html>")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got := countImages(artifact.Bytes()); got != 1 {
		t.Errorf("artifact has %d page images, want 1", got)
	}
}

func TestExport_EmptyCapture(t *testing.T) {
	stub := &stubCapturer{raster: testRaster(1240, 0)}
	e := newExporter(stub, A4Portrait)

	artifact, err := e.Export(context.Background(), "<html></html>")
	if !errors.Is(err, ErrEmptyCapture) {
		t.Fatalf("expected ErrEmptyCapture, got %v", err)
	}
	if artifact != nil {
		t.Error("expected no artifact on failure")
	}
}

func TestExport_CaptureErrorPassthrough(t *testing.T) {
	want := &CaptureError{Cause: errors.New("tab crashed")}
	stub := &stubCapturer{err: want}
	e := newExporter(stub, A4Portrait)

	_, err := e.Export(context.Background(), "<html></html>")
	var capErr *CaptureError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *CaptureError, got %v", err)
	}
}

func TestExport_RejectsOverlappingExport(t *testing.T) {
	stub := &stubCapturer{
		raster:  testRaster(1240, 600),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	e := newExporter(stub, A4Portrait)

	done := make(chan error, 1)
	go func() {
		_, err := e.Export(context.Background(), "<html></html>")
		done <- err
	}()

	<-stub.started
	if _, err := e.Export(context.Background(), "<html></html>"); !errors.Is(err, ErrExportInFlight) {
		t.Errorf("expected ErrExportInFlight, got %v", err)
	}

	close(stub.release)
	if err := <-done; err != nil {
		t.Fatalf("first export failed: %v", err)
	}

	// The flag is cleared once the first export finishes.
	if _, err := e.Export(context.Background(), "<html></html>"); err != nil {
		t.Fatalf("sequential export failed: %v", err)
	}
}

func TestExport_Idempotent(t *testing.T) {
	stub := &stubCapturer{raster: testRaster(1240, 3509)}
	e := newExporter(stub, A4Portrait)

	first, err := e.Export(context.Background(), "<html></html>")
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Export(context.Background(), "<html></html>")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("exporting the same raster twice produced different artifacts")
	}
	if countImages(first.Bytes()) != 3 {
		t.Errorf("artifact has %d page images, want 3", countImages(first.Bytes()))
	}
}

func TestExport_FullPageBandFitsPage(t *testing.T) {
	// A raster one row taller than one page must produce two pages. The
	// first band is full height; placed on the page it must fit inside the
	// page box even when the derived pixel height involves rounding, as it
	// does for the default 1280px viewport at 2x (width 2560).
	for _, width := range []int{1240, 2560} {
		pagePx := A4Portrait.PixelPageHeight(width)
		stub := &stubCapturer{raster: testRaster(width, pagePx+1)}
		e := newExporter(stub, A4Portrait)

		artifact, err := e.Export(context.Background(), "<html></html>")
		if err != nil {
			t.Fatalf("width %d: Export: %v", width, err)
		}
		if got := countImages(artifact.Bytes()); got != 2 {
			t.Errorf("width %d: artifact has %d page images, want 2", width, got)
		}
	}
}

func TestExport_ZeroFormatDefaultsToA4(t *testing.T) {
	stub := &stubCapturer{raster: testRaster(1240, 1753)}
	e := newExporter(stub, PageFormat{})

	artifact, err := e.Export(context.Background(), "<html></html>")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got := countImages(artifact.Bytes()); got != 1 {
		t.Errorf("artifact has %d page images, want 1", got)
	}
}
