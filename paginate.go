package croreport

import "fmt"

// Band describes one vertical slice of a raster destined for one physical
// document page. Offset is the first source row; Height is the number of
// rows rendered on that page.
type Band struct {
	Offset int
	Height int
}

// Paginate slices an image of imageHeight rows into an ordered sequence of
// bands of at most pageHeightPx rows each. The bands cover [0, imageHeight)
// contiguously with no gaps or overlaps; every band except possibly the
// last has height pageHeightPx.
//
// An image height that is an exact multiple of the page height yields
// exactly imageHeight/pageHeightPx bands. The loop terminates strictly when
// the remaining height reaches zero, so no blank trailing page is emitted.
func Paginate(imageHeight, pageHeightPx int) ([]Band, error) {
	if imageHeight == 0 {
		return nil, ErrEmptyCapture
	}
	if imageHeight < 0 {
		return nil, fmt.Errorf("croreport: negative image height %d", imageHeight)
	}
	if pageHeightPx <= 0 {
		return nil, fmt.Errorf("croreport: invalid page pixel height %d", pageHeightPx)
	}

	var bands []Band
	remaining := imageHeight
	for remaining > 0 {
		h := pageHeightPx
		if remaining < h {
			h = remaining
		}
		bands = append(bands, Band{Offset: imageHeight - remaining, Height: h})
		remaining -= pageHeightPx
	}
	return bands, nil
}
