// Package report defines the analysis report model and renders it into the
// HTML surface that both export paths capture.
package report

// AnalysisReport is the complete result of one analysis session. It is
// immutable once constructed and owned by the session that produced it.
type AnalysisReport struct {
	Site        SiteData    `json:"site_data"`
	Screenshots Screenshots `json:"screenshots"`
	Scores      Scores      `json:"scores"`
	Summary     string      `json:"summary"`
	Analysis    string      `json:"analysis"`
}

// SiteData holds the metadata and metrics extracted from the target page.
type SiteData struct {
	URL             string         `json:"url"`
	StatusCode      int            `json:"status_code"`
	Title           string         `json:"title"`
	MetaDescription string         `json:"meta_description"`
	Headings        map[string]int `json:"headings"`
	WordCount       int            `json:"word_count"`
	ImageCount      int            `json:"image_count"`
	LinkCount       int            `json:"link_count"`
	H1Count         int            `json:"h1_count"`
	AltTextCoverage float64        `json:"alt_text_coverage"`
	CTACount        int            `json:"cta_count"`
	FormCount       int            `json:"form_count"`
}

// Screenshots holds the optional base64-encoded PNG captures of the
// target page's named sections. A missing section is the empty string.
type Screenshots struct {
	Header string `json:"header_screenshot,omitempty"`
	Nav    string `json:"nav_screenshot,omitempty"`
	Main   string `json:"main_screenshot,omitempty"`
	Footer string `json:"footer_screenshot,omitempty"`
}

// Scores holds the functional dimension scores, each an integer
// percentage in [0, 100].
type Scores struct {
	UserExperience         int            `json:"user_experience"`
	ContentEffectiveness   int            `json:"content_effectiveness"`
	ConversionOptimization int            `json:"conversion_optimization"`
	VisualDesign           int            `json:"visual_design"`
	BusinessAlignment      int            `json:"business_alignment"`
	ContentAnalysis        map[string]int `json:"content_analysis"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
