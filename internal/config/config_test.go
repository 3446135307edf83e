package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d", cfg.WorkerCount)
	}
	if cfg.Merger != "pdfcpu" || cfg.Converter != "docx" {
		t.Errorf("tool selection = %q/%q", cfg.Merger, cfg.Converter)
	}
	if cfg.ToolTimeout != 60*time.Second {
		t.Errorf("ToolTimeout = %v", cfg.ToolTimeout)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("MERGER", "pdfunite")
	t.Setenv("CONVERTER", "pandoc")
	t.Setenv("TOOL_TIMEOUT", "90s")
	t.Setenv("STRICT_FACTS", "true")

	cfg := Load()
	if cfg.Port != "9999" || cfg.WorkerCount != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Merger != "pdfunite" || cfg.Converter != "pandoc" {
		t.Errorf("tool selection = %q/%q", cfg.Merger, cfg.Converter)
	}
	if cfg.ToolTimeout != 90*time.Second {
		t.Errorf("ToolTimeout = %v", cfg.ToolTimeout)
	}
	if !cfg.StrictFacts {
		t.Error("StrictFacts = false")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "nonsense")
	t.Setenv("MAX_QUEUE_SIZE", "-5")

	cfg := Load()
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d", cfg.WorkerCount)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("MaxQueueSize = %d", cfg.MaxQueueSize)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.Merger = "ghostscript"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown merger accepted")
	}

	cfg = Load()
	cfg.Converter = "libreoffice"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown converter accepted")
	}
}
