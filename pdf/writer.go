// Package pdf assembles multi-page PDF documents where each page carries a
// single full-width image. It writes the small, fixed subset of PDF 1.4
// needed by the report exporter: a catalog, a page tree, and per page one
// content stream plus one flate-compressed DeviceRGB image XObject.
package pdf

import (
	"bytes"
	"fmt"
	"image"
)

// pageImage holds everything needed to emit one physical page.
type pageImage struct {
	pageW, pageH float64 // page size in points
	imgH         float64 // placed image height in points
	width        int     // image width in pixels
	height       int     // image height in pixels
	data         []byte  // flate-compressed RGB rows
}

// Writer accumulates pages and serializes them into a PDF document.
// A Writer is single-use: call [Writer.AddImagePage] for each page in
// order, then [Writer.Finalize] exactly once.
type Writer struct {
	pages []pageImage
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// PageCount returns the number of pages added so far.
func (w *Writer) PageCount() int { return len(w.pages) }

// AddImagePage appends one physical page of pageW x pageH points with img
// placed at the top-left corner, spanning the full page width and imgH
// points tall.
func (w *Writer) AddImagePage(img image.Image, pageW, pageH, imgH float64) error {
	if pageW <= 0 || pageH <= 0 {
		return fmt.Errorf("pdf: invalid page size %gx%g", pageW, pageH)
	}
	if imgH <= 0 || imgH > pageH {
		return fmt.Errorf("pdf: image height %g outside page height %g", imgH, pageH)
	}

	data, width, height, err := encodeRGB(img)
	if err != nil {
		return err
	}

	w.pages = append(w.pages, pageImage{
		pageW:  pageW,
		pageH:  pageH,
		imgH:   imgH,
		width:  width,
		height: height,
		data:   data,
	})
	return nil
}

// Object layout: 1 = catalog, 2 = page tree, then three objects per page
// (page dict, content stream, image XObject).
func pageObjID(i int) int    { return 3 + 3*i }
func contentObjID(i int) int { return 4 + 3*i }
func imageObjID(i int) int   { return 5 + 3*i }

// Finalize serializes the accumulated pages and returns the document bytes.
func (w *Writer) Finalize() ([]byte, error) {
	if len(w.pages) == 0 {
		return nil, fmt.Errorf("pdf: document has no pages")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	// Binary marker comment so transfer tools treat the file as binary.
	buf.Write([]byte{'%', 0xE2, 0xE3, 0xCF, 0xD3, '\n'})

	objCount := 2 + 3*len(w.pages)
	offsets := make([]int, objCount+1) // offsets[id], id starting at 1

	writeObj := func(id int, emit func()) {
		offsets[id] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", id)
		emit()
		buf.WriteString("endobj\n")
	}

	writeObj(1, func() {
		buf.WriteString("<< /Type /Catalog /Pages 2 0 R >>\n")
	})

	writeObj(2, func() {
		buf.WriteString("<< /Type /Pages /Kids [")
		for i := range w.pages {
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%d 0 R", pageObjID(i))
		}
		fmt.Fprintf(&buf, "] /Count %d >>\n", len(w.pages))
	})

	for i, pg := range w.pages {
		writeObj(pageObjID(i), func() {
			fmt.Fprintf(&buf,
				"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] "+
					"/Resources << /XObject << /Im0 %d 0 R >> /ProcSet [/PDF /ImageC] >> "+
					"/Contents %d 0 R >>\n",
				pg.pageW, pg.pageH, imageObjID(i), contentObjID(i))
		})

		// PDF origin is bottom-left; the slice sits at the top of the page.
		content := fmt.Sprintf("q\n%.2f 0 0 %.2f 0 %.2f cm\n/Im0 Do\nQ\n",
			pg.pageW, pg.imgH, pg.pageH-pg.imgH)
		writeObj(contentObjID(i), func() {
			fmt.Fprintf(&buf, "<< /Length %d >>\nstream\n%s\nendstream\n", len(content), content)
		})

		writeObj(imageObjID(i), func() {
			fmt.Fprintf(&buf,
				"<< /Type /XObject /Subtype /Image /Width %d /Height %d "+
					"/ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /FlateDecode /Length %d >>\nstream\n",
				pg.width, pg.height, len(pg.data))
			buf.Write(pg.data)
			buf.WriteString("\nendstream\n")
		})
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for id := 1; id <= objCount; id++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[id])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		objCount+1, xrefOffset)

	return buf.Bytes(), nil
}
