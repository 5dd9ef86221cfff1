package insight

import (
	"context"
	"encoding/base64"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	croreport "github.com/crolens/cro-report"
	"github.com/crolens/cro-report/internal/report"
)

// SectionCapturer captures one element of a live page as a raster.
type SectionCapturer interface {
	CaptureElement(ctx context.Context, rawURL, sel string) (*croreport.Raster, error)
}

// sectionSelectors identifies the named page regions to screenshot.
var sectionSelectors = []struct {
	name string
	sel  string
}{
	{"header", "header, .header, #header"},
	{"nav", "nav, .nav, #nav, .navbar, #navbar"},
	{"main", "main, .main, #main, .content, #content"},
	{"footer", "footer, .footer, #footer"},
}

// captureSections screenshots the named page regions concurrently.
// A section that is missing or fails to capture is left empty; section
// screenshots are never a reason to fail the analysis.
func captureSections(ctx context.Context, shots SectionCapturer, targetURL string, logger *slog.Logger) report.Screenshots {
	var (
		mu     sync.Mutex
		result report.Screenshots
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, section := range sectionSelectors {
		section := section
		g.Go(func() error {
			raster, err := shots.CaptureElement(ctx, targetURL, section.sel)
			if err != nil {
				logger.Debug("section capture skipped", "section", section.name, "error", err)
				return nil
			}
			encoded := base64.StdEncoding.EncodeToString(raster.PNG())

			mu.Lock()
			defer mu.Unlock()
			switch section.name {
			case "header":
				result.Header = encoded
			case "nav":
				result.Nav = encoded
			case "main":
				result.Main = encoded
			case "footer":
				result.Footer = encoded
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return result
}
