package report

import (
	"strings"
	"testing"
)

func sampleReport() *AnalysisReport {
	return &AnalysisReport{
		Site: SiteData{
			URL:             "https://example.com",
			StatusCode:      200,
			Title:           "Example Domain",
			MetaDescription: "An example page.",
			WordCount:       120,
			ImageCount:      3,
			LinkCount:       12,
			AltTextCoverage: 66.7,
		},
		Screenshots: Screenshots{Header: "aGVhZGVy"},
		Scores: Scores{
			UserExperience:         55,
			ContentEffectiveness:   80,
			ConversionOptimization: 30,
			VisualDesign:           57,
			BusinessAlignment:      25,
			ContentAnalysis:        map[string]int{"performance": 55, "seo": 100, "ux": 90, "security": 0},
		},
		Summary:  "# Summary of Recommended Actions",
		Analysis: "Narrative analysis body.",
	}
}

func TestRender_ContainsReportContent(t *testing.T) {
	html, err := Render(sampleReport())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"Website Analysis: Example Domain",
		"https://example.com",
		"An example page.",
		"66.7%",
		">55%<",
		">80%<",
		"data:image/png;base64,aGVhZGVy",
		"Summary of Recommended Actions",
		"Narrative analysis body.",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered view missing %q", want)
		}
	}
}

func TestRender_PrintStylesheet(t *testing.T) {
	html, err := Render(sampleReport())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"@page { size: A4; margin: 20mm; }",
		"@media print",
		"break-inside: avoid",
		"print-color-adjust: exact",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("print stylesheet missing %q", want)
		}
	}
}

func TestRender_OmitsEmptySections(t *testing.T) {
	rep := sampleReport()
	rep.Screenshots = Screenshots{}
	rep.Analysis = ""

	html, err := Render(rep)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if strings.Contains(html, "Section Screenshots") {
		t.Error("screenshot section rendered with no screenshots")
	}
	if strings.Contains(html, "Detailed Analysis") {
		t.Error("analysis section rendered with no analysis")
	}
}

func TestRender_EscapesMarkup(t *testing.T) {
	rep := sampleReport()
	rep.Site.Title = `<script>alert("x")</script>`

	html, err := Render(rep)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, `<script>alert`) {
		t.Error("title markup was not escaped")
	}
}
