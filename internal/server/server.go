// Package server exposes the analysis and export pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	croreport "github.com/crolens/cro-report"
	"github.com/crolens/cro-report/internal/platform/errs"
	"github.com/crolens/cro-report/internal/report"
)

const analyzeTimeout = 120 * time.Second

// Analyzer runs a complete analysis of a target URL.
type Analyzer interface {
	Analyze(ctx context.Context, targetURL string) (*report.AnalysisReport, error)
}

// DocumentExporter turns a rendered report surface into a PDF artifact by
// rasterizing and paginating it.
type DocumentExporter interface {
	Export(ctx context.Context, surfaceHTML string) (*croreport.Artifact, error)
}

// PrintProducer turns a rendered report surface into a PDF artifact using
// the browser's native print pipeline.
type PrintProducer interface {
	Print(ctx context.Context, surfaceHTML string) (*croreport.Artifact, error)
}

// Server wires the analysis engine and both export paths into an HTTP API.
type Server struct {
	analyzer Analyzer
	exporter DocumentExporter
	printer  PrintProducer
	sessions *Store
	logger   *slog.Logger
}

// New constructs a Server. printer may be nil, which disables the native
// print endpoint.
func New(analyzer Analyzer, exporter DocumentExporter, printer PrintProducer, sessions *Store, logger *slog.Logger) *Server {
	return &Server{
		analyzer: analyzer,
		exporter: exporter,
		printer:  printer,
		sessions: sessions,
		logger:   logger,
	}
}

// Router builds the chi router with CORS configured for the given origins.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/api/analyze", s.handleAnalyze)
	r.Get("/api/sessions/{id}/export.pdf", s.handleExport)
	r.Get("/api/sessions/{id}/print.pdf", s.handlePrint)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analyzeRequest struct {
	URL string `json:"url"`
}

type analyzeResponse struct {
	SessionID string                 `json:"session_id"`
	Report    *report.AnalysisReport `json:"report"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.renderError(w, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Request body must be JSON with a \"url\" field.",
			Cause:   err,
		})
		return
	}
	if req.URL == "" {
		s.renderError(w, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "The \"url\" field is required.",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	rep, err := s.analyzer.Analyze(ctx, req.URL)
	if err != nil {
		s.renderError(w, err)
		return
	}

	html, err := report.Render(rep)
	if err != nil {
		s.renderError(w, &errs.AppError{
			Kind:    errs.Unknown,
			Message: "Failed to render the report.",
			Cause:   err,
		})
		return
	}

	sess := s.sessions.Put(rep, html)
	s.logger.Info("session created", "session_id", sess.ID, "url", req.URL)
	s.renderJSON(w, http.StatusOK, analyzeResponse{SessionID: sess.ID, Report: rep})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.exportSession(w, r, func(ctx context.Context, html string) (*croreport.Artifact, error) {
		return s.exporter.Export(ctx, html)
	})
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	if s.printer == nil {
		s.renderError(w, &errs.AppError{
			Kind:    errs.NotFound,
			Message: "Native print export is not enabled on this server.",
		})
		return
	}
	s.exportSession(w, r, func(ctx context.Context, html string) (*croreport.Artifact, error) {
		return s.printer.Print(ctx, html)
	})
}

// exportSession runs one export operation against a stored session. The
// session's busy flag rejects a second export while one is running.
func (s *Server) exportSession(w http.ResponseWriter, r *http.Request, produce func(context.Context, string) (*croreport.Artifact, error)) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.Get(id)
	if !ok {
		s.renderError(w, &errs.AppError{
			Kind:    errs.NotFound,
			Message: "No analysis session with that id. Run an analysis first.",
		})
		return
	}

	if !sess.tryAcquire() {
		s.renderError(w, &errs.AppError{
			Kind:    errs.Busy,
			Message: "An export is already running for this session.",
		})
		return
	}
	defer sess.release()

	artifact, err := produce(r.Context(), sess.HTML)
	if err != nil {
		if errors.Is(err, croreport.ErrExportInFlight) {
			s.renderError(w, &errs.AppError{
				Kind:    errs.Busy,
				Message: "An export is already running.",
				Cause:   err,
			})
			return
		}
		s.renderError(w, &errs.AppError{
			Kind:    errs.ExportFailed,
			Message: "The report could not be exported. Please try again.",
			Cause:   err,
		})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Name()))
	w.Header().Set("Content-Length", strconv.Itoa(artifact.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := artifact.WriteTo(w); err != nil {
		s.logger.Error("writing artifact", "session_id", id, "error", err)
	}
}

func (s *Server) renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// renderError maps an error to its HTTP status and JSON body.
func (s *Server) renderError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "An unexpected error occurred."

	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		status = statusFor(appErr.Kind)
		message = appErr.Message
		if appErr.UpstreamStatus != 0 {
			message = fmt.Sprintf("%s The site responded with status %d.", message, appErr.UpstreamStatus)
		}
	}

	if status >= 500 {
		s.logger.Error("request failed", "status", status, "error", err)
	} else {
		s.logger.Info("request rejected", "status", status, "error", err)
	}

	s.renderJSON(w, status, report.ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
	})
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.InvalidInput:
		return http.StatusBadRequest
	case errs.NotFound:
		return http.StatusNotFound
	case errs.Busy:
		return http.StatusConflict
	case errs.Unreachable, errs.AnalysisFailed:
		return http.StatusBadGateway
	case errs.Timeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
