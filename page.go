package croreport

import "math"

// PageFormat describes the physical dimensions of one output page in
// millimetres. The same format is shared by the raster export path and the
// native print path so the two never drift apart.
type PageFormat struct {
	Width  float64 // Page width in millimetres.
	Height float64 // Page height in millimetres.
	Margin float64 // Print-path margin in millimetres; the raster path is full-bleed.
}

// A4Portrait is the page format used for exported reports: A4 paper in
// portrait orientation with a 20 mm print margin.
var A4Portrait = PageFormat{Width: 210, Height: 297, Margin: 20}

const (
	mmPerInch = 25.4
	ptPerInch = 72.0
)

// PixelPageHeight returns the number of source pixel rows that fill one
// page once a raster of the given pixel width is scaled to the full page
// width. This is the band height used by [Paginate]. The value is floored
// so a full-height band, scaled back to points, never exceeds the page box.
func (f PageFormat) PixelPageHeight(imageWidth int) int {
	if imageWidth <= 0 || f.Width <= 0 {
		return 0
	}
	return int(math.Floor(float64(imageWidth) * f.Height / f.Width))
}

// WidthPt returns the page width in PDF points.
func (f PageFormat) WidthPt() float64 {
	return f.Width / mmPerInch * ptPerInch
}

// HeightPt returns the page height in PDF points.
func (f PageFormat) HeightPt() float64 {
	return f.Height / mmPerInch * ptPerInch
}

// paperInches returns the paper dimensions in inches for PrintToPDF.
func (f PageFormat) paperInches() (width, height float64) {
	return f.Width / mmPerInch, f.Height / mmPerInch
}

// marginInches returns the uniform print margin in inches.
func (f PageFormat) marginInches() float64 {
	return f.Margin / mmPerInch
}
