// Package config provides application-wide configuration loaded from env vars.
// All fields have safe defaults so the binary runs locally without any env setup.
package config

import (
	"os"
	"strconv"
)

// Config holds runtime configuration for mealdash.
type Config struct {
	// HTTP
	HTTPHost string // MEALDASH_HOST — default: "0.0.0.0"
	HTTPPort int    // MEALDASH_PORT — default: 8080

	// Database
	DBPath string // MEALDASH_DB — default: "mealdash.db"

	// LLM
	LLMProvider   string // LLM_PROVIDER — default: "ollama"
	OllamaBaseURL string // OLLAMA_BASE_URL — default: "http://localhost:11434"
	OllamaModel   string // OLLAMA_MODEL — default: "llama3.2:1b"
	GeminiAPIKey  string // GEMINI_API_KEY — empty disables the gemini provider
	GeminiModel   string // GEMINI_MODEL — default: "gemini-2.0-flash"
	LLMTimeoutSec int    // LLM_TIMEOUT_SECONDS — default: 30

	// Secondary search index
	ElasticNode     string // ELASTICSEARCH_NODE — default: "http://localhost:9200"
	ElasticUsername string // ELASTICSEARCH_USERNAME — default: "elastic"
	ElasticPassword string // ELASTICSEARCH_PASSWORD — default: ""
	ElasticIndex    string // ELASTICSEARCH_INDEX — default: "restaurants"
}

const (
	envKeyHTTPHost        = "MEALDASH_HOST"
	envKeyHTTPPort        = "MEALDASH_PORT"
	envKeyDBPath          = "MEALDASH_DB"
	envKeyLLMProvider     = "LLM_PROVIDER"
	envKeyOllamaBaseURL   = "OLLAMA_BASE_URL"
	envKeyOllamaModel     = "OLLAMA_MODEL"
	envKeyGeminiAPIKey    = "GEMINI_API_KEY"
	envKeyGeminiModel     = "GEMINI_MODEL"
	envKeyLLMTimeoutSec   = "LLM_TIMEOUT_SECONDS"
	envKeyElasticNode     = "ELASTICSEARCH_NODE"
	envKeyElasticUsername = "ELASTICSEARCH_USERNAME"
	envKeyElasticPassword = "ELASTICSEARCH_PASSWORD"
	envKeyElasticIndex    = "ELASTICSEARCH_INDEX"
)

// Load reads configuration from environment variables, applying defaults for missing values.
func Load() Config {
	return Config{
		HTTPHost:        envOr(envKeyHTTPHost, "0.0.0.0"),
		HTTPPort:        envOrInt(envKeyHTTPPort, 8080),
		DBPath:          envOr(envKeyDBPath, "mealdash.db"),
		LLMProvider:     envOr(envKeyLLMProvider, "ollama"),
		OllamaBaseURL:   envOr(envKeyOllamaBaseURL, "http://localhost:11434"),
		OllamaModel:     envOr(envKeyOllamaModel, "llama3.2:1b"),
		GeminiAPIKey:    envOr(envKeyGeminiAPIKey, ""),
		GeminiModel:     envOr(envKeyGeminiModel, "gemini-2.0-flash"),
		LLMTimeoutSec:   envOrInt(envKeyLLMTimeoutSec, 30),
		ElasticNode:     envOr(envKeyElasticNode, "http://localhost:9200"),
		ElasticUsername: envOr(envKeyElasticUsername, "elastic"),
		ElasticPassword: envOr(envKeyElasticPassword, ""),
		ElasticIndex:    envOr(envKeyElasticIndex, "restaurants"),
	}
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrInt returns the integer value of the environment variable key,
// or fallback if not set or not a valid positive integer.
func envOrInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
