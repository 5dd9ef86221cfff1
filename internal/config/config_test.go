package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Capture.Scale != 2 {
		t.Errorf("Scale = %g", cfg.Capture.Scale)
	}
	if cfg.CaptureTimeout() != 60*time.Second {
		t.Errorf("CaptureTimeout = %v", cfg.CaptureTimeout())
	}
	if cfg.SessionTTL() != 30*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL())
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  allowedOrigins: ["https://app.example.com"]
openai:
  apiKey: test-key
  model: gpt-4o
capture:
  scale: 1.5
  viewportWidth: 1440
  timeoutSeconds: 90
session:
  ttlMinutes: 10
log:
  level: DEBUG
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("Model = %q", cfg.OpenAI.Model)
	}
	if cfg.Capture.Scale != 1.5 || cfg.Capture.ViewportWidth != 1440 {
		t.Errorf("Capture = %+v", cfg.Capture)
	}
	if cfg.CaptureTimeout() != 90*time.Second {
		t.Errorf("CaptureTimeout = %v", cfg.CaptureTimeout())
	}
	if cfg.SessionTTL() != 10*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL())
	}
	if cfg.Log.Level != "DEBUG" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
}

func TestLoad_PartialAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":3000\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Capture.Scale != 2 || cfg.Session.TTLMinutes != 30 {
		t.Error("defaults were not applied to unset fields")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	for _, content := range []string{
		"capture:\n  scale: 9\n",
		"session:\n  ttlMinutes: -5\n",
	} {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("Load(%q) should fail", content)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}
