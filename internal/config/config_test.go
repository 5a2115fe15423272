package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Engine != "auto" || cfg.Quality != "balanced" {
		t.Fatalf("unexpected defaults: engine=%s quality=%s", cfg.Engine, cfg.Quality)
	}
	if cfg.OutputSuffix != "-compressed" {
		t.Fatalf("unexpected suffix: %s", cfg.OutputSuffix)
	}
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = "turbo"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown engine")
	}

	cfg = DefaultConfig()
	cfg.Quality = "maximum"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown quality")
	}

	cfg = DefaultConfig()
	cfg.Logging.Level = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestValidateNormalizesSuffix(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputSuffix = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputSuffix != "-compressed" {
		t.Fatalf("empty suffix not defaulted: %q", cfg.OutputSuffix)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ghostscript.TimeoutSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative timeout")
	}

	cfg = DefaultConfig()
	cfg.Web.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestGhostscriptTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.GhostscriptTimeout() != 0 {
		t.Fatalf("expected no timeout by default, got %v", cfg.GhostscriptTimeout())
	}
	cfg.Ghostscript.TimeoutSeconds = 90
	if cfg.GhostscriptTimeout() != 90*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.GhostscriptTimeout())
	}
}
