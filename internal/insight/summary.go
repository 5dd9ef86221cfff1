package insight

import (
	"fmt"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/crolens/cro-report/internal/report"
)

// summarySection pairs a scored dimension with its canned recommendations.
type summarySection struct {
	title   string
	actions []string
}

// buildSummary renders the non-technical recommendations summary as
// markdown, parameterized by the computed scores.
func buildSummary(s report.Scores) (string, error) {
	sections := []struct {
		name  string
		score int
		summarySection
	}{
		{"User Experience", s.UserExperience, summarySection{
			actions: []string{
				"Improve navigation clarity",
				"Enhance mobile responsiveness",
				"Optimize first impression",
			},
		}},
		{"Content Effectiveness", s.ContentEffectiveness, summarySection{
			actions: []string{
				"Strengthen value proposition",
				"Improve content structure",
				"Enhance call-to-action effectiveness",
			},
		}},
		{"Conversion Optimization", s.ConversionOptimization, summarySection{
			actions: []string{
				"Reduce conversion friction",
				"Implement exit intent strategies",
				"Personalize user experience",
			},
		}},
		{"Visual Design", s.VisualDesign, summarySection{
			actions: []string{
				"Improve visual hierarchy",
				"Enhance color psychology",
				"Optimize whitespace usage",
			},
		}},
		{"Business Alignment", s.BusinessAlignment, summarySection{
			actions: []string{
				"Align content with business objectives",
				"Improve revenue generation paths",
				"Implement customer journey mapping",
			},
		}},
	}

	var sb strings.Builder
	md := markdown.NewMarkdown(&sb)
	md.H1("Summary of Recommended Actions")
	md.PlainText("")
	for _, sec := range sections {
		md.H2(fmt.Sprintf("%s Score: %d%%", sec.name, sec.score))
		md.BulletList(sec.actions...)
		md.PlainText("")
	}
	md.PlainText("These recommendations are prioritized based on potential impact. " +
		"Start with user experience and content effectiveness for quick wins.")

	if err := md.Build(); err != nil {
		return "", fmt.Errorf("insight: building summary: %w", err)
	}
	return sb.String(), nil
}
