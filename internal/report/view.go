package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// viewModel flattens an AnalysisReport for the template.
type viewModel struct {
	Report      *AnalysisReport
	GeneratedAt string
	ScoreRows   []scoreRow
	Subscores   []scoreRow
	Sections    []sectionShot
}

type scoreRow struct {
	Label string
	Value int
}

type sectionShot struct {
	Label   string
	DataURI template.URL
}

// Render produces the self-contained HTML surface for a report. The same
// surface feeds the raster export path and, through its print stylesheet,
// the native print path.
func Render(r *AnalysisReport) (string, error) {
	vm := viewModel{
		Report:      r,
		GeneratedAt: time.Now().Format("2006-01-02 15:04 MST"),
		ScoreRows: []scoreRow{
			{"User Experience", r.Scores.UserExperience},
			{"Content Effectiveness", r.Scores.ContentEffectiveness},
			{"Conversion Optimization", r.Scores.ConversionOptimization},
			{"Visual Design", r.Scores.VisualDesign},
			{"Business Alignment", r.Scores.BusinessAlignment},
		},
	}

	for _, name := range []string{"performance", "seo", "ux", "security"} {
		vm.Subscores = append(vm.Subscores, scoreRow{Label: name, Value: r.Scores.ContentAnalysis[name]})
	}

	for _, s := range []struct {
		label string
		data  string
	}{
		{"Header", r.Screenshots.Header},
		{"Navigation", r.Screenshots.Nav},
		{"Main Content", r.Screenshots.Main},
		{"Footer", r.Screenshots.Footer},
	} {
		if s.data == "" {
			continue
		}
		vm.Sections = append(vm.Sections, sectionShot{
			Label:   s.label,
			DataURI: template.URL("data:image/png;base64," + s.data),
		})
	}

	var sb strings.Builder
	if err := viewTemplate.Execute(&sb, vm); err != nil {
		return "", fmt.Errorf("report: rendering view: %w", err)
	}
	return sb.String(), nil
}

var viewTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>CRO Analysis Report for {{.Report.Site.Title}}</title>
<style>
  * { margin: 0; box-sizing: border-box; }
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #000; background: #fff; padding: 32px; }
  h1 { color: #2c3e50; }
  h2 { color: #34495e; margin: 24px 0 12px; }
  h3 { color: #3498db; margin: 16px 0 8px; }
  .banner { background: #3498db; color: white; padding: 20px; margin-bottom: 20px; }
  .banner p { font-size: 13px; opacity: 0.9; }
  .card { background: #f8f9fa; border-left: 4px solid #3498db; padding: 16px; margin: 16px 0; }
  .meta-table, .subscore-table { width: 100%; border-collapse: collapse; margin-top: 8px; }
  .meta-table td, .subscore-table th, .subscore-table td { border: 1px solid #ddd; padding: 8px; text-align: left; }
  .subscore-table th { background: #f2f2f2; }
  .score-row { display: flex; align-items: center; margin-bottom: 10px; }
  .score-label { width: 220px; }
  .score-bar-track { width: 240px; height: 14px; background: #eee; margin-right: 10px; }
  .score-bar { height: 14px; display: block; background: #3498db; }
  .score-value { font-weight: bold; color: #2c3e50; }
  .screenshot { max-width: 100%; height: auto; border: 1px solid #ddd; }
  .narrative { white-space: pre-wrap; font-family: inherit; }
  .footnote { margin-top: 30px; text-align: center; font-size: 12px; color: #7f8c8d; }

  @page { size: A4; margin: 20mm; }
  @media print {
    body { padding: 0; print-color-adjust: exact; -webkit-print-color-adjust: exact; }
    .card, .score-row, .screenshot-card, .summary-block, .analysis-block {
      break-inside: avoid;
      page-break-inside: avoid;
    }
  }
</style>
</head>
<body>
  <div class="banner card">
    <h1>Website Analysis Report</h1>
    <p>Generated on {{.GeneratedAt}}</p>
  </div>

  <h2>Website Analysis: {{.Report.Site.Title}}</h2>

  <div class="card">
    <h3>Basic Information</h3>
    <table class="meta-table">
      <tr><td><strong>URL</strong></td><td>{{.Report.Site.URL}}</td></tr>
      <tr><td><strong>Title</strong></td><td>{{.Report.Site.Title}}</td></tr>
      <tr><td><strong>Meta Description</strong></td><td>{{.Report.Site.MetaDescription}}</td></tr>
      <tr><td><strong>Word Count</strong></td><td>{{.Report.Site.WordCount}}</td></tr>
      <tr><td><strong>Images</strong></td><td>{{.Report.Site.ImageCount}}</td></tr>
      <tr><td><strong>Links</strong></td><td>{{.Report.Site.LinkCount}}</td></tr>
      <tr><td><strong>CTA Links</strong></td><td>{{.Report.Site.CTACount}}</td></tr>
      <tr><td><strong>Forms</strong></td><td>{{.Report.Site.FormCount}}</td></tr>
      <tr><td><strong>H1 Tags</strong></td><td>{{.Report.Site.H1Count}}</td></tr>
      <tr><td><strong>Alt Text Coverage</strong></td><td>{{printf "%.1f" .Report.Site.AltTextCoverage}}%</td></tr>
    </table>
  </div>

  <div class="card">
    <h3>Functional Scores</h3>
    {{range .ScoreRows}}
    <div class="score-row">
      <span class="score-label">{{.Label}}</span>
      <span class="score-bar-track"><span class="score-bar" style="width: {{.Value}}%"></span></span>
      <span class="score-value">{{.Value}}%</span>
    </div>
    {{end}}
    <table class="subscore-table">
      <tr><th>Metric</th><th>Score</th></tr>
      {{range .Subscores}}<tr><td>{{.Label}}</td><td>{{.Value}}%</td></tr>
      {{end}}
    </table>
  </div>

  {{if .Sections}}
  <h2>Section Screenshots</h2>
  {{range .Sections}}
  <div class="card screenshot-card">
    <h3>{{.Label}}</h3>
    <img class="screenshot" src="{{.DataURI}}" alt="{{.Label}} screenshot">
  </div>
  {{end}}
  {{end}}

  {{if .Report.Summary}}
  <div class="card summary-block">
    <h2>Summary of Recommended Actions</h2>
    <pre class="narrative">{{.Report.Summary}}</pre>
  </div>
  {{end}}

  {{if .Report.Analysis}}
  <div class="card analysis-block">
    <h2>Detailed Analysis</h2>
    <pre class="narrative">{{.Report.Analysis}}</pre>
  </div>
  {{end}}

  <p class="footnote">CRO analysis report</p>
</body>
</html>
`))
