// Package croreport captures rendered analysis reports and exports them as
// fixed-page-size PDF documents.
//
// The pipeline has four stages: a [Capturer] rasterizes an HTML surface
// into a single bitmap via headless Chrome, [Paginate] slices the bitmap
// into page-sized bands, and an [Exporter] orchestrates both and assembles
// one document page per band. A [PrintAdapter] offers a parallel path that
// delegates pagination to the browser's native print engine through the
// surface's print stylesheet; both paths share the same [PageFormat].
//
// Typical use:
//
//	c, err := croreport.NewCapturer(croreport.WithScale(2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	exp := croreport.NewExporter(c, croreport.A4Portrait)
//	artifact, err := exp.Export(ctx, reportHTML)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artifact.WriteToFile(artifact.Name(), 0o644)
//
// Or through the native print pipeline:
//
//	pr := croreport.NewPrintAdapter(c, croreport.A4Portrait)
//	artifact, err := pr.Print(ctx, reportHTML)
//
// Exports never overlap: a second Export on the same Exporter while one is
// running fails with [ErrExportInFlight], and a failed capture or assembly
// never leaves a partial artifact behind.
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload].
package croreport
