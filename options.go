package croreport

import "time"

// capturerConfig holds internal configuration for a Capturer.
type capturerConfig struct {
	chromePath     string
	timeout        time.Duration
	noSandbox      bool
	headless       string
	scale          float64
	viewportWidth  int
	autoDownload   bool
	sameOriginOnly bool
}

func defaultConfig() capturerConfig {
	return capturerConfig{
		timeout:       30 * time.Second,
		headless:      "new",
		scale:         2.0,
		viewportWidth: 1280,
	}
}

// Option configures a [Capturer].
type Option func(*capturerConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *capturerConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration for a single capture or print.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *capturerConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *capturerConfig) {
		c.noSandbox = true
	}
}

// WithScale sets the device scale factor for rasterization. Defaults to 2.
// Values at or below zero fall back to the default.
func WithScale(scale float64) Option {
	return func(c *capturerConfig) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// WithViewportWidth sets the CSS pixel width the surface is laid out at
// before capture. Defaults to 1280.
func WithViewportWidth(w int) Option {
	return func(c *capturerConfig) {
		if w > 0 {
			c.viewportWidth = w
		}
	}
}

// WithAutoDownload downloads a compatible Chromium binary when no Chrome
// executable is configured or found in standard locations.
func WithAutoDownload() Option {
	return func(c *capturerConfig) {
		c.autoDownload = true
	}
}

// WithSameOriginOnly keeps Chrome's web security enabled during capture.
// By default security is relaxed so cross-origin images embedded in the
// report surface are included in the raster instead of blanking.
func WithSameOriginOnly() Option {
	return func(c *capturerConfig) {
		c.sameOriginOnly = true
	}
}
