package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".blocksolve.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadSettings_Missing(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("missing config must not be an error, got %v", err)
	}
	if s.Solver != "" || s.Models != nil {
		t.Errorf("missing config should yield zero settings, got %+v", s)
	}
}

func TestLoadSettings_Full(t *testing.T) {
	path := writeConfig(t, `
solver: clingo-dl
models: 0
options: "--quiet=1"
max_runtime: 30s
history: true
history_path: /tmp/hist.db
tangle_dir: out
`)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Solver != "clingo-dl" {
		t.Errorf("Solver = %q", s.Solver)
	}
	if s.Models == nil || *s.Models != 0 {
		t.Errorf("Models = %v, want 0 (explicit zero, not unset)", s.Models)
	}
	if s.Options != "--quiet=1" {
		t.Errorf("Options = %q", s.Options)
	}
	if s.MaxRuntime != 30*time.Second {
		t.Errorf("MaxRuntime = %v", s.MaxRuntime)
	}
	if !s.History || s.HistoryPath != "/tmp/hist.db" {
		t.Errorf("history settings = %v %q", s.History, s.HistoryPath)
	}
	if s.TangleDir != "out" {
		t.Errorf("TangleDir = %q", s.TangleDir)
	}
}

func TestLoadSettings_UnsetModelsStaysNil(t *testing.T) {
	s, err := LoadSettings(writeConfig(t, "solver: clingo\n"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Models != nil {
		t.Errorf("Models = %v, want nil when omitted", *s.Models)
	}
}

func TestLoadSettings_NegativeModels(t *testing.T) {
	if _, err := LoadSettings(writeConfig(t, "models: -1\n")); err == nil {
		t.Fatal("expected error for negative models")
	}
}

func TestLoadSettings_BadYAML(t *testing.T) {
	if _, err := LoadSettings(writeConfig(t, "solver: [unclosed\n")); err == nil {
		t.Fatal("expected parse error")
	}
}
