package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Import.ConfidenceThreshold != 0.5 {
		t.Errorf("confidence threshold = %v, want 0.5", cfg.Import.ConfidenceThreshold)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Import.ConfidenceThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("threshold above 1 must be rejected")
	}

	cfg = Default()
	cfg.Import.SupportedFormats = nil
	if err := cfg.Validate(); err == nil {
		t.Error("empty format list must be rejected")
	}

	cfg = Default()
	cfg.Output.PreviewScale = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero preview scale must be rejected")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Import.Hints = true
	cfg.Import.ConfidenceThreshold = 0.7
	cfg.Output.OutputDir = "/tmp/sprites"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Import.Hints || loaded.Import.ConfidenceThreshold != 0.7 {
		t.Errorf("unexpected import config: %+v", loaded.Import)
	}
	if loaded.Output.OutputDir != "/tmp/sprites" {
		t.Errorf("output dir = %q", loaded.Output.OutputDir)
	}
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := []byte("import:\n  hints: true\n")
	if err := os.WriteFile(path, partial, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Import.Hints {
		t.Error("hints not loaded")
	}
	if loaded.Output.PreviewScale != Default().Output.PreviewScale {
		t.Error("unset fields must keep defaults")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file must error")
	}
}
