package croreport

import (
	"context"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PrintAdapter produces a PDF through the browser's native print pipeline.
//
// Unlike [Exporter], no rasterization or manual pagination happens on this
// path: page breaks are delegated to the rendering engine's CSS box layout,
// driven by the print stylesheet embedded in the report surface. Both paths
// share the same [PageFormat] so physical dimensions never drift apart.
type PrintAdapter struct {
	capturer *Capturer
	format   PageFormat
}

// NewPrintAdapter creates a PrintAdapter that renders with c's browser and
// paginates to format. A zero-value format falls back to [A4Portrait].
func NewPrintAdapter(c *Capturer, format PageFormat) *PrintAdapter {
	if format == (PageFormat{}) {
		format = A4Portrait
	}
	return &PrintAdapter{capturer: c, format: format}
}

// Print renders surfaceHTML through PrintToPDF and returns the finished
// artifact under the same fixed name as the raster export path.
func (p *PrintAdapter) Print(ctx context.Context, surfaceHTML string) (*Artifact, error) {
	if err := p.capturer.checkClosed(); err != nil {
		return nil, err
	}

	target, cleanup, err := p.capturer.stageHTML(surfaceHTML)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if p.capturer.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.capturer.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(p.capturer.browserCtx)
	defer tabCancel()

	width, height := p.format.paperInches()
	margin := p.format.marginInches()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(margin).
				WithMarginRight(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	); err != nil {
		return nil, &CaptureError{Cause: err}
	}

	return NewArtifact(ArtifactName, buf), nil
}
