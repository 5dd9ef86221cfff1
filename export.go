package croreport

import (
	"context"
	"sync/atomic"

	"github.com/crolens/cro-report/pdf"
)

// ArtifactName is the fixed file name of the exported document.
const ArtifactName = "CRO_Analysis_Report.pdf"

// surfaceCapturer is the capture seam the Exporter depends on.
type surfaceCapturer interface {
	CaptureHTML(ctx context.Context, html string) (*Raster, error)
}

// Exporter produces the multi-page PDF artifact for a report surface.
//
// Each export rasterizes the surface once, slices the raster into
// page-sized bands, and emits one document page per band. Exports carry no
// state between invocations; a second Export while one is in flight fails
// with [ErrExportInFlight].
type Exporter struct {
	capturer surfaceCapturer
	format   PageFormat
	inFlight atomic.Bool
}

// NewExporter creates an Exporter that captures with c and paginates to
// format. A zero-value format falls back to [A4Portrait].
func NewExporter(c *Capturer, format PageFormat) *Exporter {
	return newExporter(c, format)
}

func newExporter(c surfaceCapturer, format PageFormat) *Exporter {
	if format == (PageFormat{}) {
		format = A4Portrait
	}
	return &Exporter{capturer: c, format: format}
}

// Export captures surfaceHTML, paginates the raster, and returns the
// finished artifact. On any failure no artifact is produced.
func (e *Exporter) Export(ctx context.Context, surfaceHTML string) (*Artifact, error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		return nil, ErrExportInFlight
	}
	defer e.inFlight.Store(false)

	raster, err := e.capturer.CaptureHTML(ctx, surfaceHTML)
	if err != nil {
		return nil, err
	}
	return e.assemble(raster)
}

// assemble slices the raster and builds the document. It is separate from
// Export so the geometry and writer stages are exercised without a browser.
func (e *Exporter) assemble(raster *Raster) (*Artifact, error) {
	bands, err := Paginate(raster.Height, e.format.PixelPageHeight(raster.Width))
	if err != nil {
		return nil, err
	}

	w := pdf.NewWriter()
	pageW := e.format.WidthPt()
	pageH := e.format.HeightPt()
	for _, b := range bands {
		// The slice fills the full page width; its placed height follows
		// from the band's share of the source pixel rows.
		imgH := float64(b.Height) / float64(raster.Width) * pageW
		if imgH > pageH {
			// Guards float rounding on full-height bands.
			imgH = pageH
		}
		if err := w.AddImagePage(raster.Slice(b), pageW, pageH, imgH); err != nil {
			return nil, &AssemblyError{Stage: "page", Cause: err}
		}
	}

	data, err := w.Finalize()
	if err != nil {
		return nil, &AssemblyError{Stage: "finalize", Cause: err}
	}
	return NewArtifact(ArtifactName, data), nil
}
