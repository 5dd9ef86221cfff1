package insight

import (
	"strings"

	"github.com/crolens/cro-report/internal/report"
)

// ctaKeywords mark links that function as calls to action.
var ctaKeywords = []string{"contact", "signup", "register", "buy", "order", "get started", "download"}

// buildSiteData derives the report metrics from a parse result.
func buildSiteData(targetURL string, statusCode int, p *ParseResult) report.SiteData {
	data := report.SiteData{
		URL:             targetURL,
		StatusCode:      statusCode,
		Title:           p.Title,
		MetaDescription: p.MetaDescription,
		Headings:        p.Headings,
		WordCount:       p.WordCount,
		ImageCount:      len(p.Images),
		LinkCount:       len(p.Links),
		H1Count:         p.Headings["h1"],
		FormCount:       p.FormCount,
	}
	if data.Title == "" {
		data.Title = "No title"
	}
	if data.MetaDescription == "" {
		data.MetaDescription = "No meta description"
	}

	withAlt := 0
	for _, img := range p.Images {
		if img.Alt != "" {
			withAlt++
		}
	}
	if data.ImageCount > 0 {
		data.AltTextCoverage = float64(withAlt) / float64(data.ImageCount) * 100
	}

	for _, link := range p.Links {
		lower := strings.ToLower(link)
		for _, kw := range ctaKeywords {
			if strings.Contains(lower, kw) {
				data.CTACount++
				break
			}
		}
	}

	return data
}

// headingLevelsUsed counts the distinct heading levels present on the page.
func headingLevelsUsed(headings map[string]int) int {
	levels := 0
	for _, count := range headings {
		if count > 0 {
			levels++
		}
	}
	return levels
}
