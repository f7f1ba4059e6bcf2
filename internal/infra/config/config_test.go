package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != 8080 {
		t.Errorf("httpPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.DBPath != "mealdash.db" {
		t.Errorf("dbPath = %q", cfg.DBPath)
	}
	if cfg.LLMProvider != "ollama" {
		t.Errorf("llmProvider = %q", cfg.LLMProvider)
	}
	if cfg.OllamaBaseURL != "http://localhost:11434" {
		t.Errorf("ollamaBaseURL = %q", cfg.OllamaBaseURL)
	}
	if cfg.LLMTimeoutSec != 30 {
		t.Errorf("llmTimeoutSec = %d, want 30", cfg.LLMTimeoutSec)
	}
	if cfg.ElasticIndex != "restaurants" {
		t.Errorf("elasticIndex = %q", cfg.ElasticIndex)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MEALDASH_PORT", "9090")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_TIMEOUT_SECONDS", "5")

	cfg := Load()
	if cfg.HTTPPort != 9090 {
		t.Errorf("httpPort = %d, want 9090", cfg.HTTPPort)
	}
	if cfg.LLMProvider != "gemini" {
		t.Errorf("llmProvider = %q, want gemini", cfg.LLMProvider)
	}
	if cfg.LLMTimeoutSec != 5 {
		t.Errorf("llmTimeoutSec = %d, want 5", cfg.LLMTimeoutSec)
	}
}

func TestLoadIgnoresInvalidInts(t *testing.T) {
	t.Setenv("MEALDASH_PORT", "not-a-port")
	t.Setenv("LLM_TIMEOUT_SECONDS", "-3")

	cfg := Load()
	if cfg.HTTPPort != 8080 {
		t.Errorf("httpPort = %d, want default 8080", cfg.HTTPPort)
	}
	if cfg.LLMTimeoutSec != 30 {
		t.Errorf("llmTimeoutSec = %d, want default 30", cfg.LLMTimeoutSec)
	}
}
