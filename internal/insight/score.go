package insight

import "github.com/crolens/cro-report/internal/report"

func clamp(v, max int) int {
	if v > max {
		return max
	}
	return v
}

// calculateScores derives the functional dimension scores from the
// extracted site metrics. Each score is an integer percentage in [0, 100].
func calculateScores(d report.SiteData) report.Scores {
	titleOK := len(d.Title) > 10 && len(d.Title) < 70
	metaOK := len(d.MetaDescription) > 50 && len(d.MetaDescription) < 160
	levels := headingLevelsUsed(d.Headings)

	var s report.Scores

	ux := 0
	if titleOK {
		ux += 20
	}
	if d.H1Count == 1 {
		ux += 20
	}
	if d.AltTextCoverage > 50 {
		ux += 15
	}
	s.UserExperience = clamp(ux, 100)

	content := 0
	if metaOK {
		content += 25
	}
	if d.WordCount > 300 {
		content += 25
	}
	content += clamp(levels*10, 30)
	s.ContentEffectiveness = clamp(content, 100)

	conversion := clamp(d.CTACount*10, 30) + clamp(d.FormCount*10, 20)
	s.ConversionOptimization = clamp(conversion, 100)

	visual := clamp(int(d.AltTextCoverage*0.5), 40) + clamp(d.ImageCount*2, 30)
	s.VisualDesign = clamp(visual, 100)

	business := clamp(int(float64(d.LinkCount)*0.5), 30) + clamp(d.WordCount/100, 20)
	s.BusinessAlignment = clamp(business, 100)

	seo := 0
	if titleOK {
		seo += 40
	}
	if metaOK {
		seo += 40
	}
	if d.H1Count == 1 {
		seo += 20
	}

	uxSub := 0
	if d.H1Count == 1 {
		uxSub += 30
	}
	if d.WordCount > 300 {
		uxSub += 30
	}
	uxSub += clamp(levels*10, 40)

	s.ContentAnalysis = map[string]int{
		"performance": clamp(int(d.AltTextCoverage*0.7+float64(d.ImageCount)*0.3), 100),
		"seo":         clamp(seo, 100),
		"ux":          clamp(uxSub, 100),
		"security":    0,
	}

	return s
}
