package croreport

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Capturer].
	ErrClosed = errors.New("croreport: capturer is closed")

	// ErrEmptyCapture is returned when the capture surface rendered with
	// zero height, so there is nothing to paginate.
	ErrEmptyCapture = errors.New("croreport: capture surface has zero height")

	// ErrExportInFlight is returned when an export is requested while a
	// previous export on the same [Exporter] has not finished.
	ErrExportInFlight = errors.New("croreport: export already in progress")
)

// CaptureError reports that rasterizing a surface did not complete.
// No partial raster is ever returned alongside a CaptureError.
type CaptureError struct {
	Cause error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("croreport: capture failed: %v", e.Cause)
}

func (e *CaptureError) Unwrap() error { return e.Cause }

// AssemblyError reports a failure while building the output document.
// When it is returned, no artifact has been produced or partially saved.
type AssemblyError struct {
	Stage string // "page", "finalize"
	Cause error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("croreport: document assembly failed at %s: %v", e.Stage, e.Cause)
}

func (e *AssemblyError) Unwrap() error { return e.Cause }
