// Command crolens serves the website analysis and report export API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	croreport "github.com/crolens/cro-report"
	"github.com/crolens/cro-report/internal/config"
	"github.com/crolens/cro-report/internal/insight"
	"github.com/crolens/cro-report/internal/platform/logger"
	"github.com/crolens/cro-report/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.New("INFO").Error("loading config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log := logger.New(cfg.Log.Level)

	opts := []croreport.Option{
		croreport.WithScale(cfg.Capture.Scale),
		croreport.WithViewportWidth(cfg.Capture.ViewportWidth),
		croreport.WithTimeout(cfg.CaptureTimeout()),
	}
	if cfg.Capture.ChromePath != "" {
		opts = append(opts, croreport.WithChromePath(cfg.Capture.ChromePath))
	}
	if cfg.Capture.NoSandbox {
		opts = append(opts, croreport.WithNoSandbox())
	}
	if cfg.Capture.AutoDownload {
		opts = append(opts, croreport.WithAutoDownload())
	}

	capturer, err := croreport.NewCapturer(opts...)
	if err != nil {
		log.Error("starting browser", "error", err)
		os.Exit(1)
	}
	defer func() { _ = capturer.Close() }()

	exporter := croreport.NewExporter(capturer, croreport.A4Portrait)
	printer := croreport.NewPrintAdapter(capturer, croreport.A4Portrait)

	var narrator insight.Narrator
	if cfg.OpenAI.APIKey != "" {
		narrator = insight.NewOpenAINarrator(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	} else {
		log.Warn("no OpenAI API key configured, narrative analysis disabled")
	}

	engine := insight.NewEngine(insight.NewHTTPClient(), capturer, narrator, log)
	sessions := server.NewStore(cfg.SessionTTL())
	srv := server.New(engine, exporter, printer, sessions, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Router(cfg.Server.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute, // exports hold the connection while rendering
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
