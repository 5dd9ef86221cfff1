package insight

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/crolens/cro-report/internal/platform/errs"
	"github.com/crolens/cro-report/internal/report"
)

// Engine orchestrates page fetching, HTML parsing, section screenshots,
// scoring, and narrative generation.
type Engine struct {
	fetcher  Fetcher
	shots    SectionCapturer // nil disables section screenshots
	narrator Narrator        // nil disables the LLM analysis
	logger   *slog.Logger
}

// NewEngine returns an Engine backed by the given collaborators. Both
// shots and narrator may be nil, which disables the corresponding part of
// the report.
func NewEngine(fetcher Fetcher, shots SectionCapturer, narrator Narrator, logger *slog.Logger) *Engine {
	return &Engine{
		fetcher:  fetcher,
		shots:    shots,
		narrator: narrator,
		logger:   logger,
	}
}

// Analyze fetches a URL and assembles the complete analysis report.
func (e *Engine) Analyze(ctx context.Context, targetURL string) (*report.AnalysisReport, error) {
	parsed, err := url.Parse(targetURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com).",
			Cause:   err,
		}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Only http and https URLs are supported.",
		}
	}

	body, statusCode, err := e.fetcher.Fetch(ctx, targetURL)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.Unreachable,
			Message: "The provided URL could not be reached. Check the address.",
			Cause:   err,
		}
	}
	defer func() { _ = body.Close() }()

	if statusCode >= 400 {
		return nil, &errs.AppError{
			Kind:           errs.Unreachable,
			UpstreamStatus: statusCode,
			Message:        "The provided URL returned an error status.",
		}
	}

	parseResult, err := Parse(body)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.ParsingFailed,
			Message: "Failed to parse the HTML content.",
			Cause:   err,
		}
	}

	data := buildSiteData(targetURL, statusCode, parseResult)
	scores := calculateScores(data)

	var shots report.Screenshots
	if e.shots != nil {
		shots = captureSections(ctx, e.shots, targetURL, e.logger)
	}

	analysis := ""
	if e.narrator != nil {
		analysis, err = e.narrator.Narrate(ctx, data)
		if err != nil {
			return nil, &errs.AppError{
				Kind:    errs.AnalysisFailed,
				Message: "The analysis backend failed to generate the report narrative.",
				Cause:   err,
			}
		}
	}

	summary, err := buildSummary(scores)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.Unknown,
			Message: "Failed to assemble the report summary.",
			Cause:   err,
		}
	}

	e.logger.Info("analysis complete",
		"url", targetURL,
		"title", data.Title,
		"word_count", data.WordCount,
		"image_count", data.ImageCount,
		"link_count", data.LinkCount,
	)

	return &report.AnalysisReport{
		Site:        data,
		Screenshots: shots,
		Scores:      scores,
		Summary:     summary,
		Analysis:    analysis,
	}, nil
}
