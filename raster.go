package croreport

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// Raster is a fixed-resolution bitmap snapshot of a rendered surface.
//
// A Raster is produced once per export, fully consumed by pagination, and
// discarded; it is never shared between exports.
type Raster struct {
	// Img is the decoded pixel data.
	Img image.Image

	// Width and Height are the pixel dimensions of the snapshot.
	Width  int
	Height int

	// Scale is the device scale factor the snapshot was rendered at.
	Scale float64

	encoded []byte // original PNG bytes
}

// newRaster decodes the PNG screenshot returned by the browser.
func newRaster(data []byte, scale float64) (*Raster, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding screenshot: %w", err)
	}
	b := img.Bounds()
	return &Raster{
		Img:     img,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Scale:   scale,
		encoded: data,
	}, nil
}

// PNG returns the original PNG-encoded snapshot bytes.
func (r *Raster) PNG() []byte { return r.encoded }

// Slice returns the sub-image covered by the given band. The slice shares
// pixel memory with the source where the underlying image type allows it.
func (r *Raster) Slice(b Band) image.Image {
	min := r.Img.Bounds().Min
	rect := image.Rect(min.X, min.Y+b.Offset, min.X+r.Width, min.Y+b.Offset+b.Height)

	if sub, ok := r.Img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.Width, b.Height))
	draw.Draw(dst, dst.Bounds(), r.Img, rect.Min, draw.Src)
	return dst
}
