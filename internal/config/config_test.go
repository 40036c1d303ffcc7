package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.BaseURL != "https://api.deepseek.com" {
		t.Errorf("base_url = %q", cfg.BaseURL)
	}
	if cfg.Model != "deepseek-chat" {
		t.Errorf("model = %q", cfg.Model)
	}
	if cfg.Timeout != "120s" {
		t.Errorf("timeout = %q", cfg.Timeout)
	}
	if cfg.Outline == "" || cfg.OutputDir == "" {
		t.Errorf("paths unset: outline=%q output_dir=%q", cfg.Outline, cfg.OutputDir)
	}
	if !cfg.Images {
		t.Error("images should default to true")
	}
	if !cfg.KeyFiles {
		t.Error("key_files should default to true")
	}
}

func TestGetTimeout(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"90s", "1m30s"},
		{"", "2m0s"},        // default
		{"invalid", "2m0s"}, // fallback to default
		{"-5s", "2m0s"},     // non-positive rejected
	}
	for _, tt := range tests {
		cfg := &Config{Timeout: tt.input}
		if got := cfg.GetTimeout().String(); got != tt.want {
			t.Errorf("GetTimeout(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvModel, "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `model: deepseek-reasoner
images: false
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "deepseek-reasoner" {
		t.Errorf("model = %q, want deepseek-reasoner", cfg.Model)
	}
	if cfg.Images {
		t.Error("images = true, want false from file")
	}
	// Omitted fields keep their defaults
	if cfg.BaseURL != "https://api.deepseek.com" {
		t.Errorf("base_url = %q, want default", cfg.BaseURL)
	}
	if !cfg.KeyFiles {
		t.Error("key_files should keep default true")
	}
}

func TestLoadNonexistentWritesDefaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvModel, "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "deepseek-chat" {
		t.Errorf("model = %q, want embedded default", cfg.Model)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("defaults not written on first run: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("model: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvBaseURL, "https://proxy.example.com")
	t.Setenv(EnvModel, "from-env")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://proxy.example.com" {
		t.Errorf("base_url = %q, want env override", cfg.BaseURL)
	}
	if cfg.Model != "from-env" {
		t.Errorf("model = %q, want env override over file", cfg.Model)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("model: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateBadScheme(t *testing.T) {
	cfg := &Config{BaseURL: "file:///etc", Model: "m", Outline: "o.json", OutputDir: "out"}
	if err := validate(cfg); err == nil {
		t.Error("expected error for file:// base_url")
	}
}

func TestValidateMissingModel(t *testing.T) {
	cfg := &Config{BaseURL: "https://api.deepseek.com", Outline: "o.json", OutputDir: "out"}
	if err := validate(cfg); err == nil {
		t.Error("expected error for missing model")
	}
}

func TestValidateBadTimeout(t *testing.T) {
	cfg := &Config{BaseURL: "https://api.deepseek.com", Model: "m", Timeout: "soon", Outline: "o.json", OutputDir: "out"}
	if err := validate(cfg); err == nil {
		t.Error("expected error for unparsable timeout")
	}
	cfg.Timeout = "-5s"
	if err := validate(cfg); err == nil {
		t.Error("expected error for negative timeout")
	}
}

func TestValidateMissingPaths(t *testing.T) {
	cfg := &Config{BaseURL: "https://api.deepseek.com", Model: "m", OutputDir: "out"}
	if err := validate(cfg); err == nil || !strings.Contains(err.Error(), "outline") {
		t.Errorf("expected outline error, got %v", err)
	}
	cfg = &Config{BaseURL: "https://api.deepseek.com", Model: "m", Outline: "o.json"}
	if err := validate(cfg); err == nil || !strings.Contains(err.Error(), "output_dir") {
		t.Errorf("expected output_dir error, got %v", err)
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if err := validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
