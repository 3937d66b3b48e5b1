package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CONFIG_PATH", "APP_HOST", "APP_PORT", "SERP_COUNTRY", "SERP_PAGE", "OPENAI_MODEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:10000" {
		t.Errorf("expected 0.0.0.0:10000, got %s", cfg.Addr())
	}
	if cfg.SerpCountry != "us" || cfg.SerpPage != 10 {
		t.Errorf("unexpected search defaults: country=%s page=%d", cfg.SerpCountry, cfg.SerpPage)
	}
	if cfg.OpenAIModel != "gpt-4-1106-preview" {
		t.Errorf("unexpected model %s", cfg.OpenAIModel)
	}
}

func TestLoad_MissingKeysAreNotValidated(t *testing.T) {
	t.Setenv("SERP_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected missing keys to be tolerated, got %v", err)
	}
	if cfg.SerpAPIKey != "" || cfg.OpenAIAPIKey != "" {
		t.Errorf("expected empty keys, got %q %q", cfg.SerpAPIKey, cfg.OpenAIAPIKey)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `app_port: 8081
serp_api_key: file-serp
openai_model: gpt-4o
http_timeout: 30s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERP_API_KEY", "env-serp")
	t.Setenv("OPENAI_API_KEY", "env-openai")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppPort != 8081 {
		t.Errorf("expected port from file, got %d", cfg.AppPort)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("expected model from file, got %s", cfg.OpenAIModel)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.HTTPTimeout)
	}
	if cfg.SerpAPIKey != "env-serp" {
		t.Errorf("expected env to override file, got %s", cfg.SerpAPIKey)
	}
	if cfg.OpenAIAPIKey != "env-openai" {
		t.Errorf("expected openai key from env, got %s", cfg.OpenAIAPIKey)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"BadPort", "APP_PORT", "ten-thousand"},
		{"BadPage", "SERP_PAGE", "x"},
		{"BadTimeout", "HTTP_TIMEOUT", "soon"},
		{"MissingFile", "CONFIG_PATH", "/does/not/exist.yaml"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}
