package croreport

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/chromedp"
)

// pngQuality selects lossless PNG output from the screenshot command.
const pngQuality = 100

// Capturer rasterizes rendered surfaces into bitmap snapshots.
//
// A Capturer manages a headless browser instance that is reused across
// multiple captures for performance. It is safe for concurrent use.
//
// Call [Capturer.Close] when the Capturer is no longer needed to release
// browser resources.
type Capturer struct {
	cfg           capturerConfig
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewCapturer creates a Capturer with the given options.
//
// It starts a headless browser in the background. The caller must call
// [Capturer.Close] when finished.
func NewCapturer(opts ...Option) (*Capturer, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.autoDownload && cfg.chromePath == "" {
		path, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		cfg.chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}
	if !cfg.sameOriginOnly {
		// The report surface embeds screenshots served from arbitrary
		// origins; a capture must include them rather than blank them.
		allocOpts = append(allocOpts,
			chromedp.Flag("disable-web-security", true),
			chromedp.Flag("allow-running-insecure-content", true),
		)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("croreport: starting browser: %w", err)
	}

	return &Capturer{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the Capturer, including the
// browser process. Close is idempotent.
func (c *Capturer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browserCancel()
	c.allocCancel()
	return nil
}

// Scale returns the configured device scale factor.
func (c *Capturer) Scale() float64 { return c.cfg.scale }

// CaptureHTML rasterizes a self-contained HTML document.
func (c *Capturer) CaptureHTML(ctx context.Context, html string) (*Raster, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	target, cleanup, err := c.stageHTML(html)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.capture(ctx, target, "")
}

// CaptureURL rasterizes the full page at rawURL.
func (c *Capturer) CaptureURL(ctx context.Context, rawURL string) (*Raster, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("croreport: invalid URL %q: %w", rawURL, err)
	}
	return c.capture(ctx, rawURL, "")
}

// CaptureElement rasterizes the first element matching the CSS selector sel
// on the page at rawURL. It returns a [*CaptureError] when no such element
// becomes visible before the configured timeout.
func (c *Capturer) CaptureElement(ctx context.Context, rawURL, sel string) (*Raster, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("croreport: invalid URL %q: %w", rawURL, err)
	}
	if sel == "" {
		return nil, fmt.Errorf("croreport: empty selector")
	}
	return c.capture(ctx, rawURL, sel)
}

// stageHTML writes the surface to a temp file and returns its file:// URL.
func (c *Capturer) stageHTML(html string) (target string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "croreport-*.html")
	if err != nil {
		return "", nil, fmt.Errorf("croreport: creating temp file: %w", err)
	}
	name := f.Name()
	cleanup = func() { os.Remove(name) }

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("croreport: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("croreport: closing temp file: %w", err)
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("croreport: resolving path: %w", err)
	}
	return "file://" + abs, cleanup, nil
}

// capture performs the navigation and screenshot. A non-empty sel limits
// the snapshot to the first matching element; otherwise the full content
// box is captured beyond the viewport.
func (c *Capturer) capture(ctx context.Context, targetURL, sel string) (*Raster, error) {
	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	defer tabCancel()

	actions := []chromedp.Action{
		chromedp.EmulateViewport(int64(c.cfg.viewportWidth), 800, chromedp.EmulateScale(c.cfg.scale)),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}

	var buf []byte
	if sel == "" {
		actions = append(actions, chromedp.FullScreenshot(&buf, pngQuality))
	} else {
		actions = append(actions, chromedp.Screenshot(sel, &buf, chromedp.NodeVisible, chromedp.ByQuery))
	}

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return nil, &CaptureError{Cause: err}
	}

	raster, err := newRaster(buf, c.cfg.scale)
	if err != nil {
		return nil, &CaptureError{Cause: err}
	}
	return raster, nil
}

func (c *Capturer) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}
