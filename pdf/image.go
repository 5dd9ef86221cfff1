package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
)

// compressionLevel trades output size for encoding speed. Report pages are
// screenshot-heavy and produced interactively, so the fast setting wins.
const compressionLevel = zlib.BestSpeed

// encodeRGB flattens img to 8-bit DeviceRGB rows and deflates them into
// the form an image XObject stream expects. Alpha is dropped; the capture
// pipeline only produces opaque rasters.
func encodeRGB(img image.Image) (data []byte, width, height int, err error) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, 0, 0, fmt.Errorf("pdf: empty image %dx%d", width, height)
	}

	raw := make([]byte, 0, width*height*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			raw = append(raw, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}

	var zbuf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&zbuf, compressionLevel)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("pdf: creating deflate writer: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return nil, 0, 0, fmt.Errorf("pdf: deflating image data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, 0, 0, fmt.Errorf("pdf: closing deflate stream: %w", err)
	}

	return zbuf.Bytes(), width, height, nil
}
